// Package schedule reduces a finished bill of quantities, plus the raw
// calculation outputs behind it, to a procurement-ready material list:
// extraction pulls flat priced materials out of every source, and
// consolidation collapses them into unique purchasable lines.
package schedule

import "mjengo.ke/estimator/pkg/boq"

// CategorizedMaterial is one flat priced material line attributed to a
// category bucket and a source location. Lines carrying a ratio breakdown
// are composite and get expanded into their constituents during
// consolidation.
type CategorizedMaterial struct {
	ItemNo      string              `json:"itemNo"`
	Category    string              `json:"category"`
	Element     string              `json:"element"`
	Description string              `json:"description"`
	Unit        string              `json:"unit"`
	Quantity    float64             `json:"quantity"`
	Rate        float64             `json:"rate"`
	Amount      float64             `json:"amount"`
	Source      string              `json:"source"`
	Location    string              `json:"location,omitempty"`
	Breakdown   []boq.BreakdownPart `json:"breakdown,omitempty"`
}

// Consolidated is one merged purchasable material with its contributing
// locations retained for traceability.
type Consolidated struct {
	ItemNo      string   `json:"itemNo"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	Quantity    float64  `json:"quantity"`
	Rate        float64  `json:"rate"`
	Amount      float64  `json:"amount"`
	Locations   []string `json:"locations"`
	Category    string   `json:"category"`
}

// Category buckets, in display order. Anything unrecognized lands in
// miscellaneous.
var CategoryOrder = []string{
	"substructure", "superstructure", "masonry", "finishes", "openings", "miscellaneous",
}

// MaterialSchedule is the extracted material list bucketed by category.
type MaterialSchedule map[string][]CategorizedMaterial

// Bucket groups materials into the fixed category buckets.
func Bucket(materials []CategorizedMaterial) MaterialSchedule {
	known := make(map[string]bool, len(CategoryOrder))
	for _, c := range CategoryOrder {
		known[c] = true
	}
	out := MaterialSchedule{}
	for _, m := range materials {
		cat := m.Category
		if !known[cat] {
			cat = "miscellaneous"
		}
		out[cat] = append(out[cat], m)
	}
	return out
}

// ConcreteMaterial is a derived concrete constituent line (cement, sand,
// ballast per pour) as stored on the quote record.
type ConcreteMaterial struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	Location   string  `json:"location"`
}
