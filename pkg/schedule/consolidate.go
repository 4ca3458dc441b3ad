package schedule

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reParenthetical  = regexp.MustCompile(`\([^)]*\)`)
	reTrailingDashed = regexp.MustCompile(`\s*-\s*[^-]*$`)
	reSpaces         = regexp.MustCompile(`\s+`)
)

// cleanDescription strips per-location decoration so "Cement - Kitchen"
// and "Cement - Lounge" merge into one cement line.
func cleanDescription(description string) string {
	s := reParenthetical.ReplaceAllString(description, "")
	s = reTrailingDashed.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func groupKey(description, unit, category string) string {
	return strings.ToLower(fmt.Sprintf("%s_%s_%s", cleanDescription(description), unit, category))
}

// letterItemNo relabels merged lines A..Z, then Z1, Z2, and so on.
func letterItemNo(index int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if index < len(letters) {
		return string(letters[index])
	}
	return fmt.Sprintf("Z%d", index-len(letters)+1)
}

// Consolidate collapses extracted materials into unique purchasable lines.
// Composite lines carrying a ratio breakdown are expanded into their
// constituents first; quantities and amounts sum across each group and the
// merged rate is re-derived as amount/quantity so it stays a weighted
// average. Output order follows first appearance of each group.
func Consolidate(materials []CategorizedMaterial) []Consolidated {
	merged := make(map[string]*Consolidated)
	var order []string

	absorb := func(key string, line Consolidated, location string) {
		existing, ok := merged[key]
		if !ok {
			if location != "" {
				line.Locations = []string{location}
			}
			merged[key] = &line
			order = append(order, key)
			return
		}
		existing.Quantity += line.Quantity
		existing.Amount += line.Amount
		if location != "" && !contains(existing.Locations, location) {
			existing.Locations = append(existing.Locations, location)
		}
		if existing.Quantity > 0 {
			existing.Rate = existing.Amount / existing.Quantity
		}
	}

	for _, m := range materials {
		if len(m.Breakdown) > 0 {
			for _, part := range m.Breakdown {
				absorb(groupKey(part.Material, part.Unit, m.Category), Consolidated{
					Description: cleanDescription(part.Material),
					Unit:        part.Unit,
					Quantity:    m.Quantity * part.Ratio,
					Rate:        m.Rate * part.Ratio,
					Amount:      m.Rate * part.Ratio * m.Quantity,
					Category:    m.Category,
				}, m.Location)
			}
			continue
		}
		absorb(groupKey(m.Description, m.Unit, m.Category), Consolidated{
			Description: cleanDescription(m.Description),
			Unit:        m.Unit,
			Quantity:    m.Quantity,
			Rate:        m.Rate,
			Amount:      m.Amount,
			Category:    m.Category,
		}, m.Location)
	}

	out := make([]Consolidated, 0, len(order))
	for i, key := range order {
		line := *merged[key]
		line.ItemNo = letterItemNo(i)
		if len(line.Locations) > 0 {
			line.Description = fmt.Sprintf("%s (from %s)", line.Description, line.Locations[0])
		}
		out = append(out, line)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
