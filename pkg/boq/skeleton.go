package boq

import "strings"

// Mapped is the collected output of one pipeline run of the domain mappers.
type Mapped struct {
	Concrete          []Item
	FoundationWalling []Item
	Rebar             []Item
	Masonry           []Item
	Doors             []Item
	Windows           []Item
	Frames            []Item
	Roofing           []Item
}

// Fixed section skeleton. Ordering is part of the document contract; the
// leading integer is what reconciliation sorts on.
const (
	TitleSubstructure   = "1. Substructure"
	TitleSuperstructure = "2. Superstructure"
	TitleWalling        = "3. Walling & Partitions"
	TitleOpenings       = "4. Openings"
	TitleRoofing        = "5. Roofing"
	TitleFinishes       = "6. Finishes"
)

func headerFor(title, category string) Item {
	name := title
	if i := strings.Index(title, ". "); i >= 0 {
		name = title[i+2:]
	}
	return Item{
		Description: strings.ToUpper(name),
		Category:    category,
		Element:     "Header",
		IsHeader:    true,
	}
}

func hasCategory(category string) func(Item) bool {
	return func(it Item) bool { return strings.EqualFold(it.Category, category) }
}

func splice(items []Item, pred func(Item) bool) []Item {
	var out []Item
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// BuildSkeleton assembles the fresh section skeleton for one pipeline run:
// fixed ordered sections pre-seeded with label header rows, with each
// mapper's output spliced in by category/element predicates.
func BuildSkeleton(m Mapped) []Section {
	substructure := Section{Title: TitleSubstructure, Items: []Item{headerFor(TitleSubstructure, "substructure")}}
	substructure.Items = append(substructure.Items, splice(m.Concrete, hasCategory("substructure"))...)
	substructure.Items = append(substructure.Items, m.FoundationWalling...)
	substructure.Items = append(substructure.Items, splice(m.Rebar, hasCategory("substructure"))...)

	superstructure := Section{Title: TitleSuperstructure, Items: []Item{headerFor(TitleSuperstructure, "superstructure")}}
	superstructure.Items = append(superstructure.Items, splice(m.Concrete, hasCategory("superstructure"))...)
	superstructure.Items = append(superstructure.Items, splice(m.Rebar, hasCategory("superstructure"))...)

	walling := Section{Title: TitleWalling, Items: []Item{headerFor(TitleWalling, "walling")}}
	walling.Items = append(walling.Items, m.Masonry...)

	openings := Section{Title: TitleOpenings, Items: []Item{headerFor(TitleOpenings, "openings")}}
	openings.Items = append(openings.Items, m.Doors...)
	openings.Items = append(openings.Items, m.Windows...)
	openings.Items = append(openings.Items, m.Frames...)

	roofing := Section{Title: TitleRoofing, Items: []Item{headerFor(TitleRoofing, "roofing")}}
	roofing.Items = append(roofing.Items, m.Roofing...)

	finishes := Section{Title: TitleFinishes, Items: []Item{headerFor(TitleFinishes, "finishes")}}

	return []Section{substructure, superstructure, walling, openings, roofing, finishes}
}
