package roofing

// Type enumerates the supported roof forms.
type Type string

const (
	Pitched   Type = "pitched"
	Flat      Type = "flat"
	Gable     Type = "gable"
	Hip       Type = "hip"
	Mansard   Type = "mansard"
	Butterfly Type = "butterfly"
	Skillion  Type = "skillion"
)

// Timber component keys. Each carries a kg/m² unit rate on the structure.
const (
	TimberRafters     = "rafters"
	TimberWallPlate   = "wall-plate"
	TimberFasciaBoard = "fascia-board"
	TimberPurlins     = "purlins"
	TimberBattens     = "battens"
	TimberKingPost    = "king-post-tie-beam"
)

// Accessory kinds. Each is priced through a kind→subtype catalog lookup.
const (
	AccessoryGutters    = "gutters"
	AccessoryDownpipes  = "downpipes"
	AccessoryFlashings  = "flashings"
	AccessoryFascia     = "fascia"
	AccessorySoffit     = "soffit"
	AccessoryRidgeCaps  = "ridge-caps"
	AccessoryValleyTray = "valley-trays"
)

// Accessory is a declared linear length or count on a roof structure.
type Accessory struct {
	Kind     string  `json:"kind"`
	Subtype  string  `json:"subtype"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"` // "m" or "No"
}

// Structure is one roof on the building model.
type Structure struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	Covering string `json:"covering"` // covering material key, e.g. "concrete-tiles"

	Length        float64 `json:"length"`        // plan length, m
	Width         float64 `json:"width"`         // plan width (span), m
	Pitch         float64 `json:"pitch"`         // degrees
	EavesOverhang float64 `json:"eavesOverhang"` // m, added on all sides

	// kg of timber per m² of sloped roof area, keyed by timber component.
	TimberRates map[string]float64 `json:"timberRates"`

	Underlayment          string  `json:"underlayment"` // underlayment type key, empty = none
	InsulationThicknessMM float64 `json:"insulationThicknessMm"`
	InsulationType        string  `json:"insulationType"`

	Accessories []Accessory `json:"accessories"`

	// Configured wastage percent; numeric or numeric-string, resolved
	// through costing.WastageFraction.
	Wastage interface{} `json:"wastage"`

	IsLumpSum     bool    `json:"isLumpSum"`
	LumpSumAmount float64 `json:"lumpSumAmount"`
}

// Geometry is the derived shape of a roof.
type Geometry struct {
	PlanArea     float64 `json:"planArea"`    // footprint incl. eaves overhang, m²
	PitchedArea  float64 `json:"pitchedArea"` // plan area corrected for slope, m²
	RidgeHeight  float64 `json:"ridgeHeight"` // m
	RidgeLength  float64 `json:"ridgeLength"` // m
	HipLength    float64 `json:"hipLength"`   // m, hip and mansard only
	ValleyLength float64 `json:"valleyLength"`
	PitchRatio   string  `json:"pitchRatio"` // rise:12 form, e.g. "6.93:12"
}

// Breakdown is a per-concern cost split. Raw and wastage-adjusted copies are
// carried side by side so callers can show the buffer explicitly.
type Breakdown struct {
	Timber       float64 `json:"timber"`
	Covering     float64 `json:"covering"`
	Underlayment float64 `json:"underlayment"`
	Insulation   float64 `json:"insulation"`
	Accessories  float64 `json:"accessories"`
}

func (b Breakdown) total() float64 {
	return b.Timber + b.Covering + b.Underlayment + b.Insulation + b.Accessories
}

func (b *Breakdown) add(o Breakdown) {
	b.Timber += o.Timber
	b.Covering += o.Covering
	b.Underlayment += o.Underlayment
	b.Insulation += o.Insulation
	b.Accessories += o.Accessories
}

// Efficiency carries the heuristic utilization metrics shown on roof reports.
type Efficiency struct {
	MaterialUtilization float64 `json:"materialUtilization"` // %, capped at 100
	WastePercentage     float64 `json:"wastePercentage"`
}

// WastageDetail records how the buffer was applied and which inputs came
// back unpriced from the catalog.
type WastageDetail struct {
	Fraction         float64  `json:"fraction"`
	CoveringAreaRaw  float64  `json:"coveringAreaRaw"`
	CoveringAreaBuy  int      `json:"coveringAreaBuy"` // purchasable m² after wastage
	TimberWeightRaw  float64  `json:"timberWeightRaw"`
	TimberWeightBuy  int      `json:"timberWeightBuy"`
	UnpricedEntries  []string `json:"unpricedEntries,omitempty"`
	LumpSumOverride  bool     `json:"lumpSumOverride"`
}

// Calculation is the derived output for a single roof structure.
type Calculation struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	Covering string `json:"covering"`

	Geometry Geometry `json:"geometry"`

	TimberWeightKg float64 `json:"timberWeightKg"`
	CoveringArea   float64 `json:"coveringArea"` // wastage-adjusted, m²

	Breakdown         Breakdown `json:"breakdown"`
	BreakdownAdjusted Breakdown `json:"breakdownAdjusted"`
	TotalCost         float64   `json:"totalCost"`
	TotalCostAdjusted float64   `json:"totalCostAdjusted"`

	Efficiency Efficiency    `json:"efficiency"`
	Wastage    WastageDetail `json:"wastage"`
}

// Totals aggregates every roof in a project, field by field.
type Totals struct {
	RoofCount         int       `json:"roofCount"`
	TotalPlanArea     float64   `json:"totalPlanArea"`
	TotalPitchedArea  float64   `json:"totalPitchedArea"`
	TotalTimberKg     float64   `json:"totalTimberKg"`
	TotalCoveringArea float64   `json:"totalCoveringArea"`
	Breakdown         Breakdown `json:"breakdown"`
	BreakdownAdjusted Breakdown `json:"breakdownAdjusted"`
	TotalCost         float64   `json:"totalCost"`
	TotalCostAdjusted float64   `json:"totalCostAdjusted"`
}
