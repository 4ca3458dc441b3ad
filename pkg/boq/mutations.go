package boq

import (
	"fmt"
	"strconv"
	"strings"
)

// Mutations are pure snapshot transforms: each takes the current section
// list, works on a deep copy, and returns the full replacement. Callers
// persist the result wholesale, so a rejected mutation leaves prior state
// untouched.

func checkSection(sections []Section, idx int) error {
	if idx < 0 || idx >= len(sections) {
		return fmt.Errorf("boq: section index %d out of range", idx)
	}
	return nil
}

func checkItem(sections []Section, si, ii int) error {
	if err := checkSection(sections, si); err != nil {
		return err
	}
	if ii < 0 || ii >= len(sections[si].Items) {
		return fmt.Errorf("boq: item index %d out of range in section %q", ii, sections[si].Title)
	}
	return nil
}

// nextCustomNo returns the next sequential number for a prefixed custom
// item within one section, scanning for the highest existing suffix so
// removals never cause number reuse collisions within the same snapshot.
func nextCustomNo(section Section, prefix string) string {
	max := 0
	for _, it := range section.Items {
		rest, ok := strings.CutPrefix(it.ItemNo, prefix+"-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%d", prefix, max+1)
}

// AddCustomItem appends an operator-created row to a section and assigns
// the next CUS-n number within it.
func AddCustomItem(sections []Section, sectionIdx int, item Item) ([]Section, error) {
	if err := checkSection(sections, sectionIdx); err != nil {
		return nil, err
	}
	out := Clone(sections)
	item.ItemNo = nextCustomNo(out[sectionIdx], "CUS")
	item.IsHeader = false
	item.Element = orDefault(item.Element, "Custom")
	item.Category = orDefault(item.Category, out[sectionIdx].Title)
	item.Amount = item.Quantity * item.Rate
	out[sectionIdx].Items = append(out[sectionIdx].Items, item)
	return out, nil
}

// AddHeaderItem appends an operator-created header/note row.
func AddHeaderItem(sections []Section, sectionIdx int, description string) ([]Section, error) {
	if err := checkSection(sections, sectionIdx); err != nil {
		return nil, err
	}
	out := Clone(sections)
	out[sectionIdx].Items = append(out[sectionIdx].Items, Item{
		ItemNo:      nextCustomNo(out[sectionIdx], "HDR"),
		Description: orDefault(description, "New Header/Note"),
		Category:    out[sectionIdx].Title,
		Element:     "Header",
		IsHeader:    true,
	})
	return out, nil
}

// AddSection appends a new empty section.
func AddSection(sections []Section, title string) []Section {
	out := Clone(sections)
	if title == "" {
		title = fmt.Sprintf("Custom Section %d", len(out)+1)
	}
	return append(out, Section{Title: title})
}

// RenameSection retitles a section in place.
func RenameSection(sections []Section, sectionIdx int, title string) ([]Section, error) {
	if err := checkSection(sections, sectionIdx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("boq: section title cannot be empty")
	}
	out := Clone(sections)
	out[sectionIdx].Title = title
	return out, nil
}

// RemoveSection drops a section. The last remaining section cannot be
// removed; a BOQ document always has at least one.
func RemoveSection(sections []Section, sectionIdx int) ([]Section, error) {
	if err := checkSection(sections, sectionIdx); err != nil {
		return nil, err
	}
	if len(sections) <= 1 {
		return nil, fmt.Errorf("boq: cannot remove the last section")
	}
	out := Clone(sections)
	return append(out[:sectionIdx], out[sectionIdx+1:]...), nil
}

// RemoveItem drops a single row.
func RemoveItem(sections []Section, sectionIdx, itemIdx int) ([]Section, error) {
	if err := checkItem(sections, sectionIdx, itemIdx); err != nil {
		return nil, err
	}
	out := Clone(sections)
	items := out[sectionIdx].Items
	out[sectionIdx].Items = append(items[:itemIdx], items[itemIdx+1:]...)
	return out, nil
}

// UpdateItemField applies a single-field edit. Quantity and rate edits
// recompute the amount for non-header rows; a material-type edit
// re-derives the unit and a fresh ratio breakdown for the new material.
// Unparseable numeric input degrades to zero (and advisory validation
// flags it) rather than rejecting the edit.
func UpdateItemField(sections []Section, sectionIdx, itemIdx int, field, value string) ([]Section, error) {
	if err := checkItem(sections, sectionIdx, itemIdx); err != nil {
		return nil, err
	}

	out := Clone(sections)
	item := &out[sectionIdx].Items[itemIdx]

	switch strings.ToLower(field) {
	case "description":
		item.Description = value
	case "unit":
		item.Unit = value
	case "itemno":
		item.ItemNo = value
	case "worktype":
		item.WorkType = value
	case "quantity":
		item.Quantity = parseAmount(value)
		if !item.IsHeader {
			item.Amount = item.Quantity * item.Rate
		}
	case "rate":
		item.Rate = parseAmount(value)
		if !item.IsHeader {
			item.Amount = item.Quantity * item.Rate
		}
	case "materialtype":
		item.MaterialType = value
		if unit, ok := UnitForMaterial(value); ok {
			item.Unit = unit
		}
		item.Breakdown = BreakdownForMaterial(value)
	default:
		return nil, fmt.Errorf("boq: unknown item field %q", field)
	}

	return out, nil
}

func parseAmount(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
