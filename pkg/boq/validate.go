package boq

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Finding is an advisory validation result. Findings never block
// persistence or recomputation; they surface data quality problems to
// the operator alongside the document.
type Finding struct {
	Severity string `json:"severity"`
	Section  string `json:"section"`
	ItemNo   string `json:"item_no,omitempty"`
	Message  string `json:"message"`
}

// Validate runs the advisory checks over a full document.
func Validate(sections []Section) []Finding {
	var findings []Finding

	add := func(severity, section, itemNo, format string, args ...interface{}) {
		findings = append(findings, Finding{
			Severity: severity,
			Section:  section,
			ItemNo:   itemNo,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	for _, sec := range sections {
		for _, it := range sec.Items {
			if it.IsHeader {
				continue
			}
			if strings.TrimSpace(it.Description) == "" {
				add(SeverityError, sec.Title, it.ItemNo, "missing description")
			}
			if strings.TrimSpace(it.Unit) == "" {
				add(SeverityError, sec.Title, it.ItemNo, "missing unit")
			}
			if it.Quantity < 0 {
				add(SeverityError, sec.Title, it.ItemNo, "negative quantity %.2f", it.Quantity)
			} else if it.Quantity == 0 {
				add(SeverityWarning, sec.Title, it.ItemNo, "zero quantity")
			}
			if it.Rate < 0 {
				add(SeverityError, sec.Title, it.ItemNo, "negative rate %.2f", it.Rate)
			} else if it.Rate == 0 {
				add(SeverityWarning, sec.Title, it.ItemNo, "zero rate")
			}
			if it.MaterialType != "" && !KnownMaterialType(it.MaterialType) {
				add(SeverityWarning, sec.Title, it.ItemNo, "unknown material type %q", it.MaterialType)
			}
			if len(it.Breakdown) > 0 {
				sum := 0.0
				for _, part := range it.Breakdown {
					sum += part.Ratio
				}
				if math.Abs(sum-1.0) > 1e-4 {
					add(SeverityWarning, sec.Title, it.ItemNo, "breakdown ratios sum to %.4f, expected 1.0", sum)
				}
			}
		}
	}

	return findings
}

// CheckDeclaredTotal compares the computed grand total against a project
// level declared figure and reports the drift as an advisory finding.
// A declared total of zero means none was recorded and is ignored.
func CheckDeclaredTotal(sections []Section, declared float64) (Finding, bool) {
	if declared == 0 {
		return Finding{}, false
	}
	computed := GrandTotal(sections)
	diff := decimal.NewFromFloat(computed).Sub(decimal.NewFromFloat(declared))
	if diff.Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)) {
		return Finding{}, false
	}
	return Finding{
		Severity: SeverityWarning,
		Section:  "",
		Message: fmt.Sprintf("computed total %s differs from declared total %s by %s",
			decimal.NewFromFloat(computed).StringFixed(2),
			decimal.NewFromFloat(declared).StringFixed(2),
			diff.StringFixed(2)),
	}, true
}
