package schedule

import (
	"math"
	"strings"
	"testing"

	"mjengo.ke/estimator/pkg/boq"
	"mjengo.ke/estimator/pkg/takeoff"
)

func TestAutoCategorization(t *testing.T) {
	tests := []struct {
		description string
		category    string
		element     string
		unit        string
	}{
		{"Blinding to foundation trench", "substructure", "general", "Unit"},
		{"Reinforced concrete column", "superstructure", "general", "Unit"},
		{"Machine cut block", "masonry", "masonry", "No."},
		{"Emulsion paint to walls", "masonry", "finish", "Unit"},
		{"Paint to ceiling", "finishes", "finish", "Unit"},
		{"Wooden door 900x2100", "openings", "door", "No."},
		{"Cement 32.5N", "miscellaneous", "concrete", "Bags"},
		{"River sand", "miscellaneous", "concrete", "m³"},
		{"Reinforcement steel D12", "miscellaneous", "reinforcement", "Kg"},
		{"Polythene sheeting", "miscellaneous", "general", "Unit"},
	}
	for _, tc := range tests {
		if got := autoCategory(tc.description); got != tc.category {
			t.Errorf("autoCategory(%q) = %q, want %q", tc.description, got, tc.category)
		}
		if got := autoElement(tc.description); got != tc.element {
			t.Errorf("autoElement(%q) = %q, want %q", tc.description, got, tc.element)
		}
		if got := autoUnit(tc.description); got != tc.unit {
			t.Errorf("autoUnit(%q) = %q, want %q", tc.description, got, tc.unit)
		}
	}
}

func TestFromSectionsSkipsHeaders(t *testing.T) {
	sections := []boq.Section{{
		Title: "1. Substructure",
		Items: []boq.Item{
			{Description: "SUBSTRUCTURE", IsHeader: true},
			{
				ItemNo: "CONC-001", Description: "Concrete to strip foundation",
				Unit: "m³", Quantity: 12, Rate: 15000, Amount: 180000,
				Category: "substructure", Element: "Strip foundation",
			},
			{
				Description: "Hardcore filling",
				Quantity:    20, Rate: 800, Amount: 16000,
			},
		},
	}}

	got := NewExtractor().FromSections(sections)
	if len(got) != 2 {
		t.Fatalf("extracted %d lines, want 2", len(got))
	}
	if got[0].ItemNo != "CONC-001" || got[0].Location != "1. Substructure" {
		t.Errorf("first line = %+v", got[0])
	}
	// Missing itemNo, category and unit fall back to generated values.
	if got[1].ItemNo != "M001" {
		t.Errorf("generated itemNo = %q, want M001", got[1].ItemNo)
	}
	if got[1].Unit != "Unit" || got[1].Category != "miscellaneous" {
		t.Errorf("fallbacks not applied: %+v", got[1])
	}
}

func TestFromRoomsEmitsCarriedMaterialsOnly(t *testing.T) {
	rooms := []takeoff.RoomRecord{{
		Name:       "Kitchen",
		CementBags: 10,
		CementCost: 8500,
		Blocks:     300,
		BlockCost:  19500,
		BlockType:  "Machine Cut",
		Doors: []takeoff.Opening{{
			Type: "Wooden", Count: 1, Price: 12000,
			Frame: &takeoff.Frame{Type: "Hardwood", Price: 4500},
		}},
	}}

	got := NewExtractor().FromRooms(rooms)
	if len(got) != 4 {
		t.Fatalf("extracted %d lines, want 4 (cement, blocks, door, frame)", len(got))
	}

	if got[0].Description != "Cement - Kitchen" || got[0].Rate != 850 {
		t.Errorf("cement line = %+v", got[0])
	}
	if got[1].Description != "Machine Cut - Kitchen" || got[1].Unit != "No." {
		t.Errorf("block line = %+v", got[1])
	}
	if got[2].Description != "Wooden door - Kitchen" || got[2].Amount != 12000 {
		t.Errorf("door line = %+v", got[2])
	}
	if got[3].Element != "door-frame" || got[3].Amount != 4500 {
		t.Errorf("frame line = %+v", got[3])
	}
}

func TestFromRebarAndConcretePrefixes(t *testing.T) {
	ex := NewExtractor()
	conc := ex.FromConcrete([]ConcreteMaterial{
		{Name: "Cement", Quantity: 40, UnitPrice: 850, TotalPrice: 34000},
	})
	reb := ex.FromRebar([]takeoff.RebarRecord{
		{ElementID: "col-1", BarSize: "D12", TotalWeightKg: 120, Rate: 250},
	})

	if conc[0].ItemNo != "C001" || conc[0].Unit != "Bags" {
		t.Errorf("concrete line = %+v", conc[0])
	}
	if reb[0].ItemNo != "R002" {
		t.Errorf("rebar itemNo = %q, want R002 (counter shared across sources)", reb[0].ItemNo)
	}
	if reb[0].Amount != 120*250 {
		t.Errorf("rebar amount = %v", reb[0].Amount)
	}
}

func TestConsolidateMergesAcrossLocations(t *testing.T) {
	materials := []CategorizedMaterial{
		{Description: "Cement - Kitchen", Unit: "Bags", Category: "masonry", Quantity: 10, Rate: 850, Amount: 8500, Location: "Kitchen"},
		{Description: "Cement - Lounge", Unit: "Bags", Category: "masonry", Quantity: 15, Rate: 900, Amount: 13500, Location: "Lounge"},
		{Description: "Sand - Kitchen", Unit: "m³", Category: "masonry", Quantity: 3, Rate: 2500, Amount: 7500, Location: "Kitchen"},
	}

	got := Consolidate(materials)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}

	cement := got[0]
	if cement.ItemNo != "A" {
		t.Errorf("itemNo = %q, want A", cement.ItemNo)
	}
	if cement.Quantity != 25 || cement.Amount != 22000 {
		t.Errorf("cement merged to qty=%v amount=%v", cement.Quantity, cement.Amount)
	}
	if want := 22000.0 / 25.0; math.Abs(cement.Rate-want) > 1e-9 {
		t.Errorf("rate = %v, want weighted average %v", cement.Rate, want)
	}
	if len(cement.Locations) != 2 {
		t.Errorf("locations = %v", cement.Locations)
	}
	if !strings.HasPrefix(cement.Description, "Cement (from ") {
		t.Errorf("description = %q", cement.Description)
	}
}

func TestConsolidateExpandsBreakdowns(t *testing.T) {
	materials := []CategorizedMaterial{{
		Description: "Vibrated reinforced concrete",
		Unit:        "m³",
		Category:    "substructure",
		Quantity:    10,
		Rate:        15000,
		Amount:      150000,
		Location:    "1. Substructure",
		Breakdown: []boq.BreakdownPart{
			{Material: "Cement", Unit: "bags", Ratio: 0.25},
			{Material: "Sand", Unit: "m³", Ratio: 0.25},
			{Material: "Ballast", Unit: "m³", Ratio: 0.45},
			{Material: "Water", Unit: "litres", Ratio: 0.05},
		},
	}}

	got := Consolidate(materials)
	if len(got) != 4 {
		t.Fatalf("got %d constituents, want 4", len(got))
	}
	if got[0].Description != "Cement (from 1. Substructure)" || got[0].Quantity != 2.5 {
		t.Errorf("cement constituent = %+v", got[0])
	}

	total := 0.0
	for _, line := range got {
		total += line.Amount
	}
	if math.Abs(total-150000) > 1e-6 {
		t.Errorf("cost not conserved: expanded total %v, want 150000", total)
	}
}

func TestConsolidateConservesCost(t *testing.T) {
	materials := []CategorizedMaterial{
		{Description: "Cement - A", Unit: "Bags", Category: "masonry", Quantity: 4, Rate: 850, Amount: 3400, Location: "A"},
		{Description: "Cement - B", Unit: "Bags", Category: "masonry", Quantity: 6, Rate: 900, Amount: 5400, Location: "B"},
		{Description: "DPM 1000 gauge", Unit: "m²", Category: "substructure", Quantity: 90, Rate: 120, Amount: 10800, Location: "1. Substructure"},
	}

	before := 0.0
	for _, m := range materials {
		before += m.Amount
	}
	after := 0.0
	for _, line := range Consolidate(materials) {
		after += line.Amount
	}
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("total drifted: before %v, after %v", before, after)
	}
}

func TestLetterItemNumbers(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"}, {1, "B"}, {25, "Z"}, {26, "Z1"}, {27, "Z2"}, {51, "Z26"},
	}
	for _, tc := range tests {
		if got := letterItemNo(tc.index); got != tc.want {
			t.Errorf("letterItemNo(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}

func TestBucketRoutesUnknownToMiscellaneous(t *testing.T) {
	materials := []CategorizedMaterial{
		{Description: "Cement", Category: "masonry"},
		{Description: "Rollers", Category: "tooling"},
		{Description: "Paint", Category: "finishes"},
	}
	buckets := Bucket(materials)
	if len(buckets["masonry"]) != 1 || len(buckets["finishes"]) != 1 {
		t.Errorf("known categories misbucketed: %v", buckets)
	}
	if len(buckets["miscellaneous"]) != 1 || buckets["miscellaneous"][0].Description != "Rollers" {
		t.Errorf("unknown category not routed to miscellaneous: %v", buckets)
	}
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Cement - Kitchen", "Cement"},
		{"Machine Cut (200mm) - Lounge", "Machine Cut"},
		{"River  sand", "River sand"},
		{"Ballast", "Ballast"},
	}
	for _, tc := range tests {
		if got := cleanDescription(tc.in); got != tc.want {
			t.Errorf("cleanDescription(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
