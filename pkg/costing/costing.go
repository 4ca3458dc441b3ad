package costing

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultWastageFraction is applied when a wastage setting is absent or
// cannot be parsed.
const DefaultWastageFraction = 0.10

// WastageFraction converts a configured wastage percentage into a fraction
// in [0,1]. The value may arrive as a number or a numeric string ("10",
// "10%", 12.5). Anything unparseable falls back to DefaultWastageFraction.
func WastageFraction(raw interface{}) float64 {
	var pct float64
	switch v := raw.(type) {
	case nil:
		return DefaultWastageFraction
	case float64:
		pct = v
	case float32:
		pct = float64(v)
	case int:
		pct = float64(v)
	case int64:
		pct = float64(v)
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if s == "" {
			return DefaultWastageFraction
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return DefaultWastageFraction
		}
		pct = parsed
	default:
		return DefaultWastageFraction
	}

	if math.IsNaN(pct) || pct < 0 {
		return DefaultWastageFraction
	}
	frac := pct / 100
	if frac > 1 {
		frac = 1
	}
	return frac
}

// ApplyWastage returns the purchasable quantity after adding the wastage
// buffer. The result is rounded up because fractional purchasable units
// cannot be bought. Non-decreasing in both arguments and never below the
// rounded-up input quantity.
func ApplyWastage(quantity, fraction float64) int {
	if quantity <= 0 {
		return 0
	}
	if fraction < 0 {
		fraction = 0
	}
	// Absorb binary float noise before the ceiling: 100*(1+0.10) evaluates
	// to 110.00000000000001, which must not round up to 111 units.
	x := math.Round(quantity*(1+fraction)*1e9) / 1e9
	n := int(math.Ceil(x))
	if n < 1 {
		n = 1
	}
	return n
}

// Sum totals a list of currency amounts exactly. BOQ rows are float64
// end to end, but declared-total comparisons must not be subject to float
// accumulation drift, so the summation runs through decimal.
func Sum(amounts []float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Float64()
	return f
}
