package takeoff

import (
	"fmt"
	"log"
	"strings"

	"mjengo.ke/estimator/pkg/boq"
)

// totalLabel marks the precomputed cost line a concrete pour must carry.
const totalLabel = "total"

// MapConcrete produces one BOQ item per pour row. Each row must have a
// matching "Total" cost line; a row without one is dropped and logged and
// the rest of the batch proceeds. The returned slice of row IDs records
// what was skipped so callers can surface it.
func MapConcrete(rows []ConcreteRow, totals []ConcreteTotal) ([]boq.Item, []string) {
	totalByRow := make(map[string]float64, len(totals))
	for _, t := range totals {
		if strings.EqualFold(strings.TrimSpace(t.Label), totalLabel) {
			totalByRow[t.RowID] = t.Amount
		}
	}

	seq := NewSequence("CONC")
	items := make([]boq.Item, 0, len(rows))
	var skipped []string

	for _, row := range rows {
		amount, ok := totalByRow[row.ID]
		if !ok {
			log.Printf("takeoff: concrete row %s (%s) has no total cost line, skipping", row.ID, row.Element)
			skipped = append(skipped, row.ID)
			continue
		}

		volume := row.Volume()
		rate := 0.0
		if volume > 0 {
			rate = amount / volume
		}

		items = append(items, boq.Item{
			ItemNo:         seq.Next(),
			Description:    fmt.Sprintf("Vibrated reinforced concrete (%s) to %s", row.Mix, row.Element),
			Unit:           "m³",
			Quantity:       volume,
			Rate:           rate,
			Amount:         amount,
			Category:       row.Category,
			Element:        row.Element,
			MaterialType:   "concrete",
			CalculatedFrom: row.ID,
		})
	}

	return items, skipped
}

// MapFoundationWalling emits one item per concrete row that carries an
// associated masonry wall on a foundation element. The walling rate comes
// from the price catalog via the caller. Negative block counts or wall
// thicknesses signal corrupted upstream data and abort the mapper.
func MapFoundationWalling(rows []ConcreteRow, rate float64) ([]boq.Item, error) {
	seq := NewSequence("FDW")
	var items []boq.Item

	for _, row := range rows {
		if !row.HasMasonryWall || !strings.EqualFold(strings.TrimSpace(row.Element), "foundation") {
			continue
		}
		if row.MasonryBlocks < 0 {
			return nil, fmt.Errorf("takeoff: foundation walling on row %s has negative block count %v", row.ID, row.MasonryBlocks)
		}
		if row.MasonryWallThickness < 0 {
			return nil, fmt.Errorf("takeoff: foundation walling on row %s has negative thickness %v", row.ID, row.MasonryWallThickness)
		}

		height := row.MasonryWallHeight
		if height <= 0 {
			height = 1.0
		}
		area := row.Length * height

		items = append(items, boq.Item{
			ItemNo:         seq.Next(),
			Description:    fmt.Sprintf("%.0fmm foundation walling", row.MasonryWallThickness*1000),
			Unit:           "m²",
			Quantity:       area,
			Rate:           rate,
			Amount:         area * rate,
			Category:       "substructure",
			Element:        "Foundation Walling",
			MaterialType:   "blockwork",
			CalculatedFrom: row.ID,
		})
	}

	return items, nil
}
