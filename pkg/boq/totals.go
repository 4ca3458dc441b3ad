package boq

import "mjengo.ke/estimator/pkg/costing"

// SectionTotal sums line amounts in one section. Header rows carry no
// amounts and are skipped.
func SectionTotal(sec Section) float64 {
	amounts := make([]float64, 0, len(sec.Items))
	for _, it := range sec.Items {
		if it.IsHeader {
			continue
		}
		amounts = append(amounts, it.Amount)
	}
	return costing.Sum(amounts)
}

// GrandTotal sums every section of the document.
func GrandTotal(sections []Section) float64 {
	totals := make([]float64, 0, len(sections))
	for _, sec := range sections {
		totals = append(totals, SectionTotal(sec))
	}
	return costing.Sum(totals)
}
