// handlers/schedule.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/datatypes"

	"mjengo.ke/estimator/config"
	"mjengo.ke/estimator/models"
	"mjengo.ke/estimator/pkg/schedule"
)

// ConsolidateSchedule extracts materials from every source on the quote
// (BOQ rows, concrete constituents, rebar records, room figures), merges
// them into unique purchasable lines, and records the run.
func ConsolidateSchedule(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}

	sections, err := quote.DecodeBOQ()
	if err != nil {
		http.Error(w, "corrupt boq payload: "+err.Error(), http.StatusInternalServerError)
		return
	}
	concrete, err := quote.DecodeConcreteMaterials()
	if err != nil {
		http.Error(w, "corrupt concrete materials: "+err.Error(), http.StatusInternalServerError)
		return
	}
	rebar, err := quote.DecodeRebarRows()
	if err != nil {
		http.Error(w, "corrupt rebar payload: "+err.Error(), http.StatusInternalServerError)
		return
	}
	rooms, err := quote.DecodeRooms()
	if err != nil {
		http.Error(w, "corrupt rooms payload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	ex := schedule.NewExtractor()
	materials := ex.FromSections(sections)
	materials = append(materials, ex.FromConcrete(concrete)...)
	materials = append(materials, ex.FromRebar(rebar)...)
	materials = append(materials, ex.FromRooms(rooms)...)

	consolidated := schedule.Consolidate(materials)

	total := 0.0
	for _, line := range consolidated {
		total += line.Amount
	}
	sources := make([]string, 0, len(sections))
	for _, sec := range sections {
		sources = append(sources, sec.Title)
	}

	run := models.MaterialScheduleRun{
		QuoteID:        quote.ID,
		SourceSections: sources,
		TotalAmount:    total,
		RanAt:          models.JSONTime(time.Now()),
	}
	if raw, err := json.Marshal(materials); err == nil {
		run.Materials = datatypes.JSON(raw)
	}
	if raw, err := json.Marshal(consolidated); err == nil {
		run.Consolidated = datatypes.JSON(raw)
	}
	if err := config.DB.Create(&run).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runId":        run.ID,
		"materials":    materials,
		"schedule":     schedule.Bucket(materials),
		"consolidated": consolidated,
		"totalAmount":  total,
	})
}

// ListScheduleRuns returns prior consolidation runs for a quote.
func ListScheduleRuns(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}
	var runs []models.MaterialScheduleRun
	if err := config.DB.Where("quote_id = ?", quote.ID).Order("created_at DESC").Find(&runs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
