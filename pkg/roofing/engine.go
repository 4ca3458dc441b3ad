package roofing

import (
	"math"
	"sort"

	"mjengo.ke/estimator/pkg/costing"
)

// Catalog category names the engine resolves against.
const (
	catalogTimberPerM3  = "timber"        // legacy per-m³ prices
	catalogTimberPerKg  = "timber-per-kg" // preferred per-kg prices
	catalogCovering     = "covering"
	catalogUnderlayment = "underlayment"
	catalogInsulation   = "insulation"
)

// perKgFromPerM3 is the legacy conversion carried over from the price books
// this engine was built against: catalogs quote structural timber per cubic
// meter, and the historical documents divided that by 1000 as a stand-in
// per-kg figure. The conversion is isolated here so a real density-based
// conversion replaces exactly one call site; when a price book carries a
// timber-per-kg entry this function never runs.
func perKgFromPerM3(perM3 float64) float64 {
	return perM3 / 1000
}

// Compute derives geometry, quantities and costs for one roof structure
// against a price index. It never fails: unpriced inputs contribute zero
// cost and are listed in the wastage detail for the caller to surface.
func Compute(s Structure, prices *costing.PriceIndex) Calculation {
	geom := DeriveGeometry(s)
	wastage := costing.WastageFraction(s.Wastage)

	calc := Calculation{
		ID:       s.ID,
		Name:     s.Name,
		Type:     s.Type,
		Covering: s.Covering,
		Geometry: geom,
		Wastage: WastageDetail{
			Fraction: wastage,
		},
		Efficiency: Efficiency{
			WastePercentage: wastage * 100,
		},
	}

	if s.IsLumpSum {
		calc.TotalCost = s.LumpSumAmount
		calc.TotalCostAdjusted = s.LumpSumAmount
		calc.Wastage.LumpSumOverride = true
		return calc
	}

	area := geom.PitchedArea

	// Timber: weight-based. Component iteration is sorted so identical
	// inputs always price in the same order.
	components := make([]string, 0, len(s.TimberRates))
	for component := range s.TimberRates {
		components = append(components, component)
	}
	sort.Strings(components)

	for _, component := range components {
		unitRate := s.TimberRates[component]
		if unitRate <= 0 {
			continue
		}
		weight := area * unitRate
		calc.TimberWeightKg += weight

		perKg, ok := prices.Lookup(catalogTimberPerKg, component)
		if !ok {
			perM3, okM3 := prices.Lookup(catalogTimberPerM3, component)
			if !okM3 {
				calc.Wastage.UnpricedEntries = append(calc.Wastage.UnpricedEntries, "timber/"+component)
			}
			perKg = perKgFromPerM3(perM3)
		}

		calc.Breakdown.Timber += weight * perKg
		calc.BreakdownAdjusted.Timber += float64(costing.ApplyWastage(weight, wastage)) * perKg
	}
	calc.Wastage.TimberWeightRaw = calc.TimberWeightKg
	calc.Wastage.TimberWeightBuy = costing.ApplyWastage(calc.TimberWeightKg, wastage)

	// Covering: area-based.
	coveringArea := area * (1 + wastage)
	calc.CoveringArea = coveringArea
	calc.Wastage.CoveringAreaRaw = area
	calc.Wastage.CoveringAreaBuy = costing.ApplyWastage(area, wastage)

	coverPrice, ok := prices.Lookup(catalogCovering, s.Covering)
	if !ok {
		calc.Wastage.UnpricedEntries = append(calc.Wastage.UnpricedEntries, "covering/"+s.Covering)
	}
	calc.Breakdown.Covering = area * coverPrice
	calc.BreakdownAdjusted.Covering = coveringArea * coverPrice

	// Underlayment: plain area pricing.
	if s.Underlayment != "" {
		price, ok := prices.Lookup(catalogUnderlayment, s.Underlayment)
		if !ok {
			calc.Wastage.UnpricedEntries = append(calc.Wastage.UnpricedEntries, "underlayment/"+s.Underlayment)
		}
		calc.Breakdown.Underlayment = area * price
		calc.BreakdownAdjusted.Underlayment = area * (1 + wastage) * price
	}

	// Insulation: area pricing scaled by thickness against a 50mm baseline.
	if s.InsulationThicknessMM > 0 {
		price, ok := prices.Lookup(catalogInsulation, s.InsulationType)
		if !ok {
			price, ok = prices.FirstInCategory(catalogInsulation)
		}
		if !ok {
			calc.Wastage.UnpricedEntries = append(calc.Wastage.UnpricedEntries, "insulation/"+s.InsulationType)
		}
		coverage := s.InsulationThicknessMM / 50
		calc.Breakdown.Insulation = area * price * coverage
		calc.BreakdownAdjusted.Insulation = area * (1 + wastage) * price * coverage
	}

	// Accessories: declared lengths/counts, each independently buffered.
	for _, acc := range s.Accessories {
		if acc.Quantity <= 0 {
			continue
		}
		price, ok := prices.Lookup(acc.Kind, acc.Subtype)
		if !ok {
			price, ok = prices.FirstInCategory(acc.Kind)
		}
		if !ok {
			calc.Wastage.UnpricedEntries = append(calc.Wastage.UnpricedEntries, acc.Kind+"/"+acc.Subtype)
		}
		calc.Breakdown.Accessories += acc.Quantity * price
		calc.BreakdownAdjusted.Accessories += float64(costing.ApplyWastage(acc.Quantity, wastage)) * price
	}

	calc.TotalCost = calc.Breakdown.total()
	calc.TotalCostAdjusted = calc.BreakdownAdjusted.total()

	// Heuristic utilization figure carried over from the reporting screens;
	// not a physical ratio.
	if area > 0 {
		calc.Efficiency.MaterialUtilization = math.Min(100, calc.TimberWeightKg/(area*100)*100)
	}

	return calc
}

// ComputeAll runs every roof structure through Compute.
func ComputeAll(structures []Structure, prices *costing.PriceIndex) []Calculation {
	calcs := make([]Calculation, 0, len(structures))
	for _, s := range structures {
		calcs = append(calcs, Compute(s, prices))
	}
	return calcs
}

// Aggregate sums per-roof calculations field by field. An empty input
// yields an explicit zero-valued Totals, not an error.
func Aggregate(calcs []Calculation) Totals {
	var t Totals
	for _, c := range calcs {
		t.RoofCount++
		t.TotalPlanArea += c.Geometry.PlanArea
		t.TotalPitchedArea += c.Geometry.PitchedArea
		t.TotalTimberKg += c.TimberWeightKg
		t.TotalCoveringArea += c.CoveringArea
		t.Breakdown.add(c.Breakdown)
		t.BreakdownAdjusted.add(c.BreakdownAdjusted)
		t.TotalCost += c.TotalCost
		t.TotalCostAdjusted += c.TotalCostAdjusted
	}
	return t
}
