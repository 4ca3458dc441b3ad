package takeoff

import (
	"fmt"
	"sort"
	"strings"

	"mjengo.ke/estimator/pkg/boq"
)

type masonryKey struct {
	orientation string
	thickness   float64
	blockType   string
}

type masonryGroup struct {
	key       masonryKey
	blocks    float64
	area      float64
	cost      float64
	firstRate float64
	firstSeen int
}

// orientationFromPlaster infers the wall orientation from its plaster
// specification: plastering one face tells you which side of the building
// the wall faces, plastering both means an internal partition.
func orientationFromPlaster(plaster string) string {
	p := strings.ToLower(plaster)
	switch {
	case strings.Contains(p, "both"):
		return "Internal"
	case strings.Contains(p, "external"):
		return "External"
	case strings.Contains(p, "internal"):
		return "Internal"
	default:
		return "General"
	}
}

// MapMasonry groups room-level wall rows by (orientation, thickness, block
// type) and emits one merged item per group. Blocks and cost sum across
// the group; the rate re-derives as cost over area, falling back to the
// first room's declared rate when no area was measured (in which case the
// quantity basis is the block count).
func MapMasonry(rows []WallRow) []boq.Item {
	groups := make(map[masonryKey]*masonryGroup)
	for i, row := range rows {
		key := masonryKey{
			orientation: orientationFromPlaster(row.Plaster),
			thickness:   row.Thickness,
			blockType:   strings.TrimSpace(row.BlockType),
		}
		g, ok := groups[key]
		if !ok {
			g = &masonryGroup{key: key, firstRate: row.Rate, firstSeen: i}
			groups[key] = g
		}
		g.blocks += row.Blocks
		g.area += row.Area
		g.cost += row.Cost
	}

	ordered := make([]*masonryGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].firstSeen < ordered[j].firstSeen })

	seq := NewSequence("MAS")
	items := make([]boq.Item, 0, len(ordered))
	for _, g := range ordered {
		blockType := g.key.blockType
		if blockType == "" {
			blockType = "Standard Block"
		}

		var quantity, rate float64
		unit := "m²"
		if g.area > 0 {
			quantity = g.area
			rate = g.cost / g.area
		} else {
			// No measured area: bill by block count at the declared rate.
			quantity = g.blocks
			rate = g.firstRate
			unit = "No"
		}

		items = append(items, boq.Item{
			ItemNo:       seq.Next(),
			Description:  fmt.Sprintf("%.0fmm %s walling (%s)", g.key.thickness*1000, blockType, g.key.orientation),
			Unit:         unit,
			Quantity:     quantity,
			Rate:         rate,
			Amount:       g.cost,
			Category:     "walling",
			Element:      "Masonry",
			MaterialType: "blockwork",
		})
	}

	return items
}
