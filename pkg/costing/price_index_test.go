package costing

import "testing"

func testCatalog() map[string]interface{} {
	return map[string]interface{}{
		"covering": map[string]interface{}{
			"concrete-tiles": 1850.0,
			"metal-sheets":   950.0,
			"free-offcut":    0.0,
		},
		"timber": map[string]interface{}{
			"rafters":   "48500", // numeric string, as JSONB catalogs sometimes carry
			"wallplate": 46000.0,
		},
		"gutters": map[string]interface{}{
			"pvc": 650.0,
		},
		"transport": 15000.0, // bare category-level price
		"flashings": map[string]interface{}{
			"roof": map[string]interface{}{ // one level deeper than usual
				"galvanized": 420.0,
			},
		},
		"broken": map[string]interface{}{
			"entry": "not-a-number",
		},
	}
}

func TestPriceIndexLookup(t *testing.T) {
	idx := BuildPriceIndex(testCatalog())

	tests := []struct {
		name     string
		category string
		typ      string
		price    float64
		found    bool
	}{
		{"plain type", "covering", "concrete-tiles", 1850, true},
		{"case and space tolerant", " Covering ", "Metal-Sheets", 950, true},
		{"numeric string price", "timber", "rafters", 48500, true},
		{"bare category price", "transport", "", 15000, true},
		{"legitimate zero is found", "covering", "free-offcut", 0, true},
		{"deep nesting flattened", "flashings", "roof/galvanized", 420, true},
		{"missing type", "covering", "thatch", 0, false},
		{"missing category", "plumbing", "pvc", 0, false},
		{"unparseable price dropped", "broken", "entry", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := idx.Lookup(tt.category, tt.typ)
			if price != tt.price || ok != tt.found {
				t.Errorf("Lookup(%q, %q) = (%v, %v), expected (%v, %v)",
					tt.category, tt.typ, price, ok, tt.price, tt.found)
			}
		})
	}
}

func TestPriceIndexResolveNeverFails(t *testing.T) {
	idx := BuildPriceIndex(testCatalog())
	if got := idx.Resolve("no-such-category", "no-such-type"); got != 0 {
		t.Errorf("Resolve on missing entry = %v, expected 0", got)
	}
	if got := idx.Resolve("covering", "concrete-tiles"); got != 1850 {
		t.Errorf("Resolve on present entry = %v, expected 1850", got)
	}
}

func TestPriceIndexFirstInCategory(t *testing.T) {
	idx := BuildPriceIndex(testCatalog())

	// Deterministic: subtypes are sorted, so "concrete-tiles" wins.
	price, ok := idx.FirstInCategory("covering")
	if !ok || price != 1850 {
		t.Errorf("FirstInCategory(covering) = (%v, %v), expected (1850, true)", price, ok)
	}

	if _, ok := idx.FirstInCategory("transport"); ok {
		t.Error("FirstInCategory on a bare-price category should report no subtypes")
	}
	if _, ok := idx.FirstInCategory("missing"); ok {
		t.Error("FirstInCategory on a missing category should report not found")
	}
}

func TestPriceIndexHas(t *testing.T) {
	idx := BuildPriceIndex(testCatalog())
	if !idx.Has("gutters") {
		t.Error("Has(gutters) = false, expected true")
	}
	if !idx.Has("transport") {
		t.Error("Has(transport) = false, expected true")
	}
	if idx.Has("plumbing") {
		t.Error("Has(plumbing) = true, expected false")
	}
}
