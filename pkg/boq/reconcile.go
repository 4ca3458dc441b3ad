package boq

import (
	"sort"
	"strconv"
	"strings"
)

// Reconcile merges a freshly generated skeleton with the previously
// persisted document. Machine-derived rows refresh from the skeleton;
// persisted rows whose identity key no longer appears in the fresh output
// are manual additions (or rows the mappers stopped producing) and are
// reattached rather than discarded. Repeated regeneration never
// accumulates duplicates because the key sets are rebuilt from the fresh
// skeleton on every run.
func Reconcile(fresh, persisted []Section) []Section {
	result := Clone(fresh)

	headerKeys := make(map[Key]struct{})
	itemKeys := make(map[Key]struct{})
	for _, section := range result {
		for _, it := range section.Items {
			if it.IsHeader {
				headerKeys[KeyOf(it)] = struct{}{}
			} else {
				itemKeys[KeyOf(it)] = struct{}{}
			}
		}
	}

	freshByTitle := make(map[string]int, len(result))
	for i, section := range result {
		freshByTitle[section.Title] = i
	}

	isGenerated := func(it Item) bool {
		key := KeyOf(it)
		if it.IsHeader {
			_, ok := headerKeys[key]
			return ok
		}
		_, ok := itemKeys[key]
		return ok
	}

	for _, old := range persisted {
		if idx, ok := freshByTitle[old.Title]; ok {
			for _, it := range old.Items {
				if isGenerated(it) {
					continue
				}
				it.IsExisting = true
				it.WasMatched = false
				result[idx].Items = append(result[idx].Items, it)
			}
			continue
		}

		// The fresh skeleton no longer carries this section. Keep only
		// what the mappers could not have regenerated (manual content);
		// anything regenerable is discarded to avoid duplication.
		var carried []Item
		for _, it := range old.Items {
			if isGenerated(it) {
				continue
			}
			it.IsExisting = true
			it.WasMatched = false
			carried = append(carried, it)
		}
		if len(carried) > 0 {
			result = append(result, Section{Title: old.Title, Items: carried})
		}
	}

	sortSections(result)
	return prune(result)
}

// leadingInt parses the integer prefix of a section title ("3. Walling"
// gives 3). Titles without one sort after every numbered title.
func leadingInt(title string) (int, bool) {
	s := strings.TrimSpace(title)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func sortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		ni, oki := leadingInt(sections[i].Title)
		nj, okj := leadingInt(sections[j].Title)
		if oki && okj {
			return ni < nj
		}
		return oki && !okj
	})
}

// prune drops sections with nothing to show: no items at all, or nothing
// beyond their own seeded label header.
func prune(sections []Section) []Section {
	out := sections[:0]
	for _, section := range sections {
		keep := false
		for _, it := range section.Items {
			if !it.IsHeader || it.IsExisting {
				keep = true
				break
			}
		}
		if keep {
			out = append(out, section)
		}
	}
	return out
}
