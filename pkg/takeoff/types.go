// Package takeoff converts per-domain calculation outputs into canonical
// BOQ line items. Every mapper is a pure function: deterministic for
// identical inputs, order-preserving, and free of shared state, because
// the reconciliation engine relies on regenerated output matching the
// previous run key for key.
package takeoff

import "fmt"

// Sequence issues PREFIX-NNN item numbers. One sequence is created per
// mapper invocation so numbering always restarts at 1 and mappers stay
// independently testable.
type Sequence struct {
	prefix string
	n      int
}

// NewSequence returns a sequence starting at PREFIX-001.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next item number in the sequence.
func (s *Sequence) Next() string {
	s.n++
	return fmt.Sprintf("%s-%03d", s.prefix, s.n)
}

// ConcreteRow is one pour on the building model.
type ConcreteRow struct {
	ID       string  `json:"id"`
	Element  string  `json:"element"`  // e.g. "foundation", "columns", "slab"
	Category string  `json:"category"` // "substructure" or "superstructure"
	Mix      string  `json:"mix"`      // e.g. "1:2:4"
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Count    float64 `json:"count"`

	// Foundation walling carried on this pour, when present.
	HasMasonryWall       bool    `json:"hasMasonryWall"`
	MasonryWallHeight    float64 `json:"masonryWallHeight"`
	MasonryWallThickness float64 `json:"masonryWallThickness"` // meters
	MasonryBlocks        float64 `json:"masonryBlocks"`
}

// Volume is the pour volume in m³.
func (r ConcreteRow) Volume() float64 {
	count := r.Count
	if count <= 0 {
		count = 1
	}
	return r.Length * r.Width * r.Height * count
}

// ConcreteTotal is a precomputed cost line for a pour row. The mapper only
// consumes lines labelled "Total".
type ConcreteTotal struct {
	RowID  string  `json:"rowId"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// RebarRecord is one reinforcement calculation.
type RebarRecord struct {
	ID            string  `json:"id"`
	ElementID     string  `json:"elementId"`
	Category      string  `json:"category"`
	BarSize       string  `json:"barSize"` // e.g. "D12"
	TotalWeightKg float64 `json:"totalWeightKg"`
	Rate          float64 `json:"rate"` // per kg
}

// WallRow is one room-level wall measurement feeding the masonry mapper.
type WallRow struct {
	Room      string  `json:"room"`
	Plaster   string  `json:"plaster"` // e.g. "External Only", "Both Sides"
	Thickness float64 `json:"thickness"` // meters
	BlockType string  `json:"blockType"`
	Blocks    float64 `json:"blocks"`
	Area      float64 `json:"area"` // net wall area, m²
	Cost      float64 `json:"cost"`
	Rate      float64 `json:"rate"` // declared per-unit rate, fallback when area is 0
}

// Frame is the optional frame attached to an opening.
type Frame struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// Opening is one door or window entry inside a room.
type Opening struct {
	Type         string  `json:"type"`  // door leaf type, e.g. "Wooden"
	Glass        string  `json:"glass"` // window glazing, e.g. "Clear"
	StandardSize string  `json:"standardSize"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Count        float64 `json:"count"`
	Price        float64 `json:"price"`
	Frame        *Frame  `json:"frame,omitempty"`
}

// RoomRecord carries the per-room data the opening and schedule mappers
// traverse.
type RoomRecord struct {
	Name    string    `json:"name"`
	Doors   []Opening `json:"doors"`
	Windows []Opening `json:"windows"`

	// Masonry material figures used by schedule extraction.
	CementBags float64 `json:"cementBags"`
	CementCost float64 `json:"cementCost"`
	SandVolume float64 `json:"sandVolume"`
	SandCost   float64 `json:"sandCost"`
	Blocks     float64 `json:"blocks"`
	BlockCost  float64 `json:"blockCost"`
	BlockType  string  `json:"blockType"`
}

// size renders the opening size for descriptions, preferring the declared
// standard size.
func (o Opening) size(defaultW, defaultH float64) string {
	if o.StandardSize != "" {
		return o.StandardSize
	}
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultW
	}
	if h <= 0 {
		h = defaultH
	}
	return fmt.Sprintf("%vx%v", w, h)
}
