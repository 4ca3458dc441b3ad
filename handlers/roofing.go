// handlers/roofing.go
package handlers

import (
	"net/http"

	"mjengo.ke/estimator/pkg/roofing"
)

// ComputeRoofing recomputes every roof structure on the quote without
// touching the persisted BOQ. Used by the roof design screen, which wants
// geometry and cost feedback per edit.
func ComputeRoofing(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}
	roofs, err := quote.DecodeRoofStructures()
	if err != nil {
		http.Error(w, "corrupt roof payload: "+err.Error(), http.StatusInternalServerError)
		return
	}
	prices, err := priceIndexFor(quote)
	if err != nil {
		http.Error(w, "no price book available: "+err.Error(), http.StatusConflict)
		return
	}

	calcs := roofing.ComputeAll(roofs, prices)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"calculations": calcs,
		"totals":       roofing.Aggregate(calcs),
	})
}
