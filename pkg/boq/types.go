package boq

import "strings"

// BreakdownPart is one constituent of a ratio-decomposed material line
// (e.g. the cement share of a concrete item). Ratios across a breakdown
// sum to 1.0.
type BreakdownPart struct {
	Material string  `json:"material"`
	Unit     string  `json:"unit"`
	Ratio    float64 `json:"ratio"`
}

// Item is a single bill-of-quantities row. Machine-mapped rows are
// regenerated on every pipeline run; custom rows (including header/note
// rows) survive regeneration through reconciliation.
type Item struct {
	ItemNo      string  `json:"itemNo"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Element     string  `json:"element"`
	IsHeader    bool    `json:"isHeader"`

	// Reconciliation flags: set on persisted rows that were reattached
	// because no freshly mapped row carries their key.
	IsExisting bool `json:"isExisting,omitempty"`
	WasMatched bool `json:"wasMatched,omitempty"`

	MaterialType   string          `json:"materialType,omitempty"`
	WorkType       string          `json:"workType,omitempty"`
	CalculatedFrom string          `json:"calculatedFrom,omitempty"`
	Breakdown      []BreakdownPart `json:"breakdown,omitempty"`
}

// Section is an ordered run of items under a titled bill division.
// Titles follow the "N. Name" convention so document ordering survives
// round trips through persistence.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Key is the identity triple that decides whether a persisted item "is" a
// freshly generated one. It is the only matching signal reconciliation uses.
type Key struct {
	Category    string
	Element     string
	Description string
}

// KeyOf derives the reconciliation key for an item. Comparison is
// case-insensitive and whitespace-trimmed so cosmetic edits do not
// duplicate rows.
func KeyOf(it Item) Key {
	return Key{
		Category:    strings.ToLower(strings.TrimSpace(it.Category)),
		Element:     strings.ToLower(strings.TrimSpace(it.Element)),
		Description: strings.ToLower(strings.TrimSpace(it.Description)),
	}
}

// Clone deep-copies a snapshot. Every mutation works on a clone and
// replaces the snapshot wholesale, so a failed mutation leaves prior
// state untouched.
func Clone(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		items := make([]Item, len(s.Items))
		copy(items, s.Items)
		for j := range items {
			if len(items[j].Breakdown) > 0 {
				parts := make([]BreakdownPart, len(items[j].Breakdown))
				copy(parts, items[j].Breakdown)
				items[j].Breakdown = parts
			}
		}
		out[i] = Section{Title: s.Title, Items: items}
	}
	return out
}
