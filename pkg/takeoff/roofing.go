package takeoff

import (
	"fmt"

	"mjengo.ke/estimator/pkg/boq"
	"mjengo.ke/estimator/pkg/roofing"
)

// MapRoofing converts roof engine output into bill items, one line per
// roof structure. Wastage-adjusted figures are the billed ones; the raw
// breakdown stays on the calculation record for reports. Lump-sum roofs
// bill as a single Sum line.
func MapRoofing(calcs []roofing.Calculation) []boq.Item {
	seq := NewSequence("RF")
	items := make([]boq.Item, 0, len(calcs))
	for _, c := range calcs {
		name := c.Name
		if name == "" {
			name = string(c.Type) + " roof"
		}

		it := boq.Item{
			ItemNo:         seq.Next(),
			Category:       "roofing",
			Element:        name,
			WorkType:       "roofing",
			CalculatedFrom: c.ID,
		}

		if c.Wastage.LumpSumOverride || c.CoveringArea <= 0 {
			it.Description = fmt.Sprintf("Roof construction to %s (all-in)", name)
			it.Unit = "Sum"
			it.Quantity = 1
			it.Rate = c.TotalCostAdjusted
			it.Amount = c.TotalCostAdjusted
		} else {
			it.Description = fmt.Sprintf("Roof construction (%s) to %s", c.Covering, name)
			it.Unit = "m²"
			it.Quantity = c.CoveringArea
			it.Rate = c.TotalCostAdjusted / c.CoveringArea
			it.Amount = c.TotalCostAdjusted
		}
		items = append(items, it)
	}
	return items
}
