package takeoff

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestSequence(t *testing.T) {
	seq := NewSequence("CONC")
	if got := seq.Next(); got != "CONC-001" {
		t.Errorf("first number = %q, expected CONC-001", got)
	}
	if got := seq.Next(); got != "CONC-002" {
		t.Errorf("second number = %q, expected CONC-002", got)
	}
}

func TestMapConcrete(t *testing.T) {
	rows := []ConcreteRow{
		{ID: "c1", Element: "foundation", Category: "substructure", Mix: "1:3:6", Length: 10, Width: 0.6, Height: 0.2, Count: 1},
		{ID: "c2", Element: "columns", Category: "superstructure", Mix: "1:2:4", Length: 0.3, Width: 0.3, Height: 3, Count: 4},
		{ID: "c3", Element: "slab", Category: "superstructure", Mix: "1:2:4", Length: 8, Width: 6, Height: 0.15, Count: 1},
	}
	totals := []ConcreteTotal{
		{RowID: "c1", Label: "Total", Amount: 15000},
		{RowID: "c2", Label: "Total", Amount: 15660},
		{RowID: "c3", Label: "Cement", Amount: 9999}, // not a total line
	}

	items, skipped := MapConcrete(rows, totals)

	if len(items) != 2 {
		t.Fatalf("items = %d, expected 2", len(items))
	}
	if !reflect.DeepEqual(skipped, []string{"c3"}) {
		t.Errorf("skipped = %v, expected [c3]", skipped)
	}

	first := items[0]
	if first.ItemNo != "CONC-001" || first.Unit != "m³" {
		t.Errorf("unexpected first item shape: %+v", first)
	}
	wantVolume := 10 * 0.6 * 0.2
	if math.Abs(first.Quantity-wantVolume) > 1e-9 {
		t.Errorf("volume = %v, expected %v", first.Quantity, wantVolume)
	}
	if math.Abs(first.Amount-first.Quantity*first.Rate) > 1 {
		t.Errorf("amount invariant broken: %v vs %v", first.Amount, first.Quantity*first.Rate)
	}

	// Column volume multiplies by the count.
	second := items[1]
	if math.Abs(second.Quantity-0.3*0.3*3*4) > 1e-9 {
		t.Errorf("counted volume = %v, expected %v", second.Quantity, 0.3*0.3*3*4)
	}
}

func TestMapConcreteDeterministic(t *testing.T) {
	rows := []ConcreteRow{
		{ID: "c1", Element: "foundation", Category: "substructure", Length: 10, Width: 0.6, Height: 0.2},
		{ID: "c2", Element: "slab", Category: "superstructure", Length: 8, Width: 6, Height: 0.15},
	}
	totals := []ConcreteTotal{
		{RowID: "c1", Label: "Total", Amount: 15000},
		{RowID: "c2", Label: "Total", Amount: 98000},
	}

	a, _ := MapConcrete(rows, totals)
	b, _ := MapConcrete(rows, totals)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different item arrays")
	}
}

func TestMapMasonryMergesGroups(t *testing.T) {
	rows := []WallRow{
		{Room: "Bedroom 1", Plaster: "Both Sides", Thickness: 0.2, BlockType: "Machine Cut", Blocks: 100, Cost: 5000, Rate: 50},
		{Room: "Bedroom 2", Plaster: "Both Sides", Thickness: 0.2, BlockType: "Machine Cut", Blocks: 150, Cost: 7500, Rate: 50},
	}

	items := MapMasonry(rows)
	if len(items) != 1 {
		t.Fatalf("items = %d, expected a single merged group", len(items))
	}

	merged := items[0]
	if merged.Quantity != 250 {
		t.Errorf("quantity = %v, expected 250", merged.Quantity)
	}
	if merged.Amount != 12500 {
		t.Errorf("amount = %v, expected 12500", merged.Amount)
	}
	if merged.Rate != 50 {
		t.Errorf("rate = %v, expected 50 (first room's declared rate)", merged.Rate)
	}
	if merged.ItemNo != "MAS-001" {
		t.Errorf("item number = %q, expected MAS-001", merged.ItemNo)
	}
}

func TestMapMasonryRateFromArea(t *testing.T) {
	rows := []WallRow{
		{Room: "Lounge", Plaster: "External Only", Thickness: 0.2, BlockType: "Machine Cut", Blocks: 200, Area: 20, Cost: 24000, Rate: 1100},
		{Room: "Kitchen", Plaster: "External Only", Thickness: 0.2, BlockType: "Machine Cut", Blocks: 100, Area: 10, Cost: 12000, Rate: 1100},
	}

	items := MapMasonry(rows)
	if len(items) != 1 {
		t.Fatalf("items = %d, expected 1", len(items))
	}
	if items[0].Quantity != 30 || items[0].Rate != 1200 {
		t.Errorf("got qty=%v rate=%v, expected 30 m² at 1200", items[0].Quantity, items[0].Rate)
	}
}

func TestMapMasonrySeparatesGroups(t *testing.T) {
	rows := []WallRow{
		{Room: "A", Plaster: "Both Sides", Thickness: 0.2, BlockType: "Machine Cut", Blocks: 100, Cost: 5000},
		{Room: "B", Plaster: "External Only", Thickness: 0.2, BlockType: "Machine Cut", Blocks: 100, Cost: 5000},
		{Room: "C", Plaster: "Both Sides", Thickness: 0.1, BlockType: "Machine Cut", Blocks: 100, Cost: 5000},
		{Room: "D", Plaster: "Both Sides", Thickness: 0.2, BlockType: "Quarry Stone", Blocks: 100, Cost: 5000},
	}

	items := MapMasonry(rows)
	if len(items) != 4 {
		t.Fatalf("items = %d, expected 4 distinct groups", len(items))
	}
}

func TestMapRebar(t *testing.T) {
	records := []RebarRecord{
		{ID: "r1", ElementID: "e1", BarSize: "D12", TotalWeightKg: 420, Rate: 180, Category: "superstructure"},
		{ID: "r2", ElementID: "missing", BarSize: "D8", TotalWeightKg: 80, Rate: 175},
	}
	elements := map[string]string{"e1": "first floor slab"}

	items := MapRebar(records, elements)
	if len(items) != 2 {
		t.Fatalf("items = %d, expected 2", len(items))
	}
	if !strings.Contains(items[0].Description, "first floor slab") {
		t.Errorf("element name not resolved: %q", items[0].Description)
	}
	if items[0].Amount != 420*180 {
		t.Errorf("amount = %v, expected %v", items[0].Amount, 420*180)
	}
	// Unknown element id falls back to the raw id, not an empty description.
	if !strings.Contains(items[1].Description, "missing") {
		t.Errorf("fallback element missing from description: %q", items[1].Description)
	}
	if items[1].Category != "superstructure" {
		t.Errorf("blank category should default to superstructure, got %q", items[1].Category)
	}
}

func TestMapFoundationWalling(t *testing.T) {
	rows := []ConcreteRow{
		{ID: "c1", Element: "foundation", Length: 20, HasMasonryWall: true, MasonryWallHeight: 1.2, MasonryWallThickness: 0.2, MasonryBlocks: 300},
		{ID: "c2", Element: "foundation", Length: 10, HasMasonryWall: false},
		{ID: "c3", Element: "slab", Length: 8, HasMasonryWall: true, MasonryWallThickness: 0.2},
	}

	items, err := MapFoundationWalling(rows, 1200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, expected only the flagged foundation row", len(items))
	}
	it := items[0]
	if it.Quantity != 24 || it.Rate != 1200 || it.Amount != 28800 {
		t.Errorf("unexpected walling figures: %+v", it)
	}
	if it.Description != "200mm foundation walling" {
		t.Errorf("description = %q", it.Description)
	}
}

func TestMapFoundationWallingCorruptData(t *testing.T) {
	rows := []ConcreteRow{
		{ID: "c1", Element: "foundation", Length: 20, HasMasonryWall: true, MasonryBlocks: -1},
	}
	if _, err := MapFoundationWalling(rows, 1200); err == nil {
		t.Fatal("negative block count should be a hard error")
	}

	rows[0].MasonryBlocks = 10
	rows[0].MasonryWallThickness = -0.2
	if _, err := MapFoundationWalling(rows, 1200); err == nil {
		t.Fatal("negative thickness should be a hard error")
	}
}

func TestMapDoorsAndFrames(t *testing.T) {
	rooms := []RoomRecord{
		{
			Name: "Master Bedroom",
			Doors: []Opening{
				{Type: "Flush", StandardSize: "0.9x2.1", Count: 1, Price: 8500, Frame: &Frame{Type: "Hardwood", Price: 3200}},
				{Type: "Flush", Count: 2, Price: 8500}, // no frame
			},
		},
		{
			Name:    "Lounge",
			Windows: []Opening{{Glass: "Tinted", Count: 3, Price: 12000, Frame: &Frame{Type: "Steel", Price: 0}}},
		},
	}

	doors, err := MapDoors(rooms)
	if err != nil {
		t.Fatalf("MapDoors: %v", err)
	}
	if len(doors) != 2 {
		t.Fatalf("doors = %d, expected one item per opening instance", len(doors))
	}
	if doors[1].Quantity != 2 || doors[1].Amount != 17000 {
		t.Errorf("second door item = %+v", doors[1])
	}

	windows, err := MapWindows(rooms)
	if err != nil {
		t.Fatalf("MapWindows: %v", err)
	}
	if len(windows) != 1 || windows[0].Amount != 36000 {
		t.Errorf("windows = %+v", windows)
	}

	frames, err := MapFrames(rooms)
	if err != nil {
		t.Fatalf("MapFrames: %v", err)
	}
	// Only the hardwood frame has a positive price; the zero-priced steel
	// frame emits nothing.
	if len(frames) != 1 {
		t.Fatalf("frames = %d, expected 1", len(frames))
	}
	if frames[0].Amount != 3200 {
		t.Errorf("frame amount = %v, expected 3200", frames[0].Amount)
	}
}

func TestMapOpeningsCorruptData(t *testing.T) {
	rooms := []RoomRecord{
		{Name: "Lounge", Doors: []Opening{{Type: "Flush", Count: -1, Price: 8500}}},
	}
	if _, err := MapDoors(rooms); err == nil {
		t.Fatal("negative count should be a hard error")
	}

	rooms[0].Doors[0] = Opening{Type: "Flush", Count: 1, Price: -5}
	if _, err := MapDoors(rooms); err == nil {
		t.Fatal("negative price should be a hard error")
	}
}
