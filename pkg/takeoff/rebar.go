package takeoff

import (
	"fmt"
	"strings"

	"mjengo.ke/estimator/pkg/boq"
)

// MapRebar produces one item per reinforcement calculation record. Element
// names resolve through the id-keyed lookup supplied by the caller; an
// unknown id falls back to the raw element id so the row is still traceable.
func MapRebar(records []RebarRecord, elements map[string]string) []boq.Item {
	seq := NewSequence("RBR")
	items := make([]boq.Item, 0, len(records))

	for _, rec := range records {
		name, ok := elements[rec.ElementID]
		if !ok {
			name = rec.ElementID
		}

		desc := "Reinforcement steel"
		if rec.BarSize != "" {
			desc = fmt.Sprintf("Reinforcement steel %s", rec.BarSize)
		}
		if name != "" {
			desc = fmt.Sprintf("%s to %s", desc, name)
		}

		category := strings.TrimSpace(rec.Category)
		if category == "" {
			category = "superstructure"
		}

		items = append(items, boq.Item{
			ItemNo:         seq.Next(),
			Description:    desc,
			Unit:           "kg",
			Quantity:       rec.TotalWeightKg,
			Rate:           rec.Rate,
			Amount:         rec.TotalWeightKg * rec.Rate,
			Category:       category,
			Element:        "Reinforcement",
			MaterialType:   "steel",
			CalculatedFrom: rec.ID,
		})
	}

	return items
}
