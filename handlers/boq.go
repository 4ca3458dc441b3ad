// handlers/boq.go
package handlers

import (
	"encoding/json"
	"net/http"

	"mjengo.ke/estimator/config"
	"mjengo.ke/estimator/models"
	"mjengo.ke/estimator/pkg/boq"
)

// GetBOQ returns the persisted document with totals and current findings.
func GetBOQ(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}
	sections, err := quote.DecodeBOQ()
	if err != nil {
		http.Error(w, "corrupt boq payload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	findings := boq.Validate(sections)
	if f, flagged := boq.CheckDeclaredTotal(sections, quote.DeclaredTotal); flagged {
		findings = append(findings, f)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sections":   sections,
		"grandTotal": boq.GrandTotal(sections),
		"findings":   findings,
	})
}

// RecomputeBOQ reruns the full takeoff pipeline for a quote and persists
// the reconciled document.
func RecomputeBOQ(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}
	prices, err := priceIndexFor(quote)
	if err != nil {
		http.Error(w, "no price book available: "+err.Error(), http.StatusConflict)
		return
	}

	result, err := runPipeline(quote, prices)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := quote.SetBOQ(result.Sections); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := config.DB.Model(quote).Update("boq_data", quote.BOQData).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// mutateBOQ loads the document, applies one transform, persists the new
// snapshot, and responds with the updated document plus fresh findings.
func mutateBOQ(w http.ResponseWriter, r *http.Request, apply func(*models.Quote, []boq.Section) ([]boq.Section, error)) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}
	sections, err := quote.DecodeBOQ()
	if err != nil {
		http.Error(w, "corrupt boq payload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	updated, err := apply(quote, sections)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := quote.SetBOQ(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := config.DB.Model(quote).Update("boq_data", quote.BOQData).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sections":   updated,
		"grandTotal": boq.GrandTotal(updated),
		"findings":   boq.Validate(updated),
	})
}

type addItemReq struct {
	Section int      `json:"section"`
	Item    boq.Item `json:"item"`
}

func AddBOQItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	mutateBOQ(w, r, func(_ *models.Quote, sections []boq.Section) ([]boq.Section, error) {
		return boq.AddCustomItem(sections, req.Section, req.Item)
	})
}

type addHeaderReq struct {
	Section     int    `json:"section"`
	Description string `json:"description"`
}

func AddBOQHeader(w http.ResponseWriter, r *http.Request) {
	var req addHeaderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	mutateBOQ(w, r, func(_ *models.Quote, sections []boq.Section) ([]boq.Section, error) {
		return boq.AddHeaderItem(sections, req.Section, req.Description)
	})
}

type sectionReq struct {
	Section int    `json:"section"`
	Title   string `json:"title"`
}

func AddBOQSection(w http.ResponseWriter, r *http.Request) {
	var req sectionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	mutateBOQ(w, r, func(_ *models.Quote, sections []boq.Section) ([]boq.Section, error) {
		return boq.AddSection(sections, req.Title), nil
	})
}

func RenameBOQSection(w http.ResponseWriter, r *http.Request) {
	var req sectionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	mutateBOQ(w, r, func(_ *models.Quote, sections []boq.Section) ([]boq.Section, error) {
		return boq.RenameSection(sections, req.Section, req.Title)
	})
}

func RemoveBOQSection(w http.ResponseWriter, r *http.Request) {
	var req sectionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	mutateBOQ(w, r, func(_ *models.Quote, sections []boq.Section) ([]boq.Section, error) {
		return boq.RemoveSection(sections, req.Section)
	})
}

type updateFieldReq struct {
	Section int    `json:"section"`
	Item    int    `json:"item"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

func UpdateBOQItem(w http.ResponseWriter, r *http.Request) {
	var req updateFieldReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	mutateBOQ(w, r, func(_ *models.Quote, sections []boq.Section) ([]boq.Section, error) {
		return boq.UpdateItemField(sections, req.Section, req.Item, req.Field, req.Value)
	})
}

type removeItemReq struct {
	Section int `json:"section"`
	Item    int `json:"item"`
}

func RemoveBOQItem(w http.ResponseWriter, r *http.Request) {
	var req removeItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	mutateBOQ(w, r, func(_ *models.Quote, sections []boq.Section) ([]boq.Section, error) {
		return boq.RemoveItem(sections, req.Section, req.Item)
	})
}
