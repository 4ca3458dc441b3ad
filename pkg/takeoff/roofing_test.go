package takeoff

import (
	"math"
	"testing"

	"mjengo.ke/estimator/pkg/roofing"
)

func TestMapRoofing(t *testing.T) {
	calcs := []roofing.Calculation{
		{
			ID: "r1", Name: "Main House", Type: roofing.Hip, Covering: "concrete-tiles",
			CoveringArea: 120, TotalCostAdjusted: 540000,
		},
		{
			ID: "r2", Type: roofing.Flat, Covering: "box-profile-28g",
			CoveringArea: 0, TotalCostAdjusted: 80000,
			Wastage: roofing.WastageDetail{LumpSumOverride: true},
		},
	}

	items := MapRoofing(calcs)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	main := items[0]
	if main.ItemNo != "RF-001" || main.Unit != "m²" || main.Quantity != 120 {
		t.Errorf("measured roof item = %+v", main)
	}
	if math.Abs(main.Rate-4500) > 1e-9 || main.Amount != 540000 {
		t.Errorf("rate/amount = %v/%v, want 4500/540000", main.Rate, main.Amount)
	}
	if main.Element != "Main House" || main.CalculatedFrom != "r1" {
		t.Errorf("traceability fields = %+v", main)
	}

	lump := items[1]
	if lump.Unit != "Sum" || lump.Quantity != 1 || lump.Amount != 80000 {
		t.Errorf("lump-sum roof item = %+v", lump)
	}
	if lump.Element != "flat roof" {
		t.Errorf("unnamed roof element = %q", lump.Element)
	}
}
