package boq

import "strings"

// materialSpec couples the purchasable unit of a material type with its
// standard ratio decomposition, when one exists. Ratios are the fixed mix
// shares used on site; they sum to 1.0 per breakdown.
type materialSpec struct {
	unit      string
	breakdown []BreakdownPart
}

var materialSpecs = map[string]materialSpec{
	"concrete": {
		unit: "m³",
		breakdown: []BreakdownPart{
			{Material: "Cement", Unit: "bags", Ratio: 0.25},
			{Material: "Sand", Unit: "m³", Ratio: 0.25},
			{Material: "Ballast", Unit: "m³", Ratio: 0.45},
			{Material: "Water", Unit: "litres", Ratio: 0.05},
		},
	},
	"mortar": {
		unit: "m³",
		breakdown: []BreakdownPart{
			{Material: "Cement", Unit: "bags", Ratio: 0.35},
			{Material: "Sand", Unit: "m³", Ratio: 0.60},
			{Material: "Water", Unit: "litres", Ratio: 0.05},
		},
	},
	"plaster": {
		unit: "m²",
		breakdown: []BreakdownPart{
			{Material: "Cement", Unit: "bags", Ratio: 0.40},
			{Material: "Sand", Unit: "m³", Ratio: 0.55},
			{Material: "Water", Unit: "litres", Ratio: 0.05},
		},
	},
	"blockwork":     {unit: "m²"},
	"steel":         {unit: "kg"},
	"timber":        {unit: "m"},
	"roofing-sheet": {unit: "m²"},
	"paint":         {unit: "litres"},
	"tiles":         {unit: "m²"},
	"glass":         {unit: "m²"},
	"hardcore":      {unit: "m³"},
	"dpm":           {unit: "m²"},
}

// KnownMaterialType reports whether a material-type key is registered.
func KnownMaterialType(materialType string) bool {
	_, ok := materialSpecs[normalizeMaterial(materialType)]
	return ok
}

// UnitForMaterial returns the purchasable unit for a material type.
func UnitForMaterial(materialType string) (string, bool) {
	spec, ok := materialSpecs[normalizeMaterial(materialType)]
	return spec.unit, ok
}

// BreakdownForMaterial returns a fresh copy of the material's ratio
// decomposition, or nil when the material is flat (no composite mix).
func BreakdownForMaterial(materialType string) []BreakdownPart {
	spec, ok := materialSpecs[normalizeMaterial(materialType)]
	if !ok || len(spec.breakdown) == 0 {
		return nil
	}
	parts := make([]BreakdownPart, len(spec.breakdown))
	copy(parts, spec.breakdown)
	return parts
}

func normalizeMaterial(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
