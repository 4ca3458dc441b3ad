package costing

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// PriceIndex is a flattened view of a nested category→type→price catalog.
// Catalogs arrive from JSONB columns with inconsistent nesting (a category
// may hold a bare price, a type→price map, or another level of subtypes),
// so the index is built once with a tolerant walk and then answers lookups
// without any defensive probing.
type PriceIndex struct {
	prices     map[string]float64
	categories map[string][]string
}

// BuildPriceIndex flattens a decoded catalog. Keys are lower-cased; nested
// levels beyond category/type are flattened into the type key with "/".
func BuildPriceIndex(catalog map[string]interface{}) *PriceIndex {
	idx := &PriceIndex{
		prices:     make(map[string]float64),
		categories: make(map[string][]string),
	}
	for category, node := range catalog {
		idx.walk(normalizeKey(category), "", node)
	}
	for _, types := range idx.categories {
		sort.Strings(types)
	}
	return idx
}

func (idx *PriceIndex) walk(category, typ string, node interface{}) {
	if price, ok := asPrice(node); ok {
		key := category
		if typ != "" {
			key = category + "." + typ
			idx.categories[category] = append(idx.categories[category], typ)
		}
		idx.prices[key] = price
		return
	}
	nested, ok := node.(map[string]interface{})
	if !ok {
		return
	}
	for sub, child := range nested {
		next := normalizeKey(sub)
		if typ != "" {
			next = typ + "/" + next
		}
		idx.walk(category, next, child)
	}
}

// Lookup returns the price for category/type and whether the entry exists,
// so callers can tell "unpriced" apart from a legitimate zero price.
// An empty typ looks up a bare category-level price.
func (idx *PriceIndex) Lookup(category, typ string) (float64, bool) {
	key := normalizeKey(category)
	if typ != "" {
		key += "." + normalizeKey(typ)
	}
	price, ok := idx.prices[key]
	return price, ok
}

// Resolve is the tolerant form of Lookup: any missing level yields 0 so the
// pipeline never aborts solely because a catalog is incomplete. Callers that
// care about the distinction use Lookup instead.
func (idx *PriceIndex) Resolve(category, typ string) float64 {
	price, _ := idx.Lookup(category, typ)
	return price
}

// FirstInCategory returns the lowest-sorted subtype price within a category.
// Accessory pricing falls back to this when the requested subtype is absent.
func (idx *PriceIndex) FirstInCategory(category string) (float64, bool) {
	types := idx.categories[normalizeKey(category)]
	if len(types) == 0 {
		return 0, false
	}
	return idx.Lookup(category, types[0])
}

// Has reports whether the category exists at all, at any nesting depth.
func (idx *PriceIndex) Has(category string) bool {
	key := normalizeKey(category)
	if _, ok := idx.prices[key]; ok {
		return true
	}
	return len(idx.categories[key]) > 0
}

// Entries returns a copy of the flattened price map for inspection.
func (idx *PriceIndex) Entries() map[string]float64 {
	out := make(map[string]float64, len(idx.prices))
	for k, v := range idx.prices {
		out[k] = v
	}
	return out
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func asPrice(node interface{}) (float64, bool) {
	switch v := node.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
