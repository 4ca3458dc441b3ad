// handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"mjengo.ke/estimator/config"
	"mjengo.ke/estimator/middleware"
	"mjengo.ke/estimator/models"
	"mjengo.ke/estimator/pkg/costing"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// loadQuote fetches a quote scoped to the requesting user. Admins can read
// any quote.
func loadQuote(w http.ResponseWriter, r *http.Request) (*models.Quote, bool) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "invalid quote id", http.StatusBadRequest)
		return nil, false
	}

	q := config.DB.Where("id = ?", id)
	if middleware.GetRole(r) != models.RoleAdmin {
		q = q.Where("user_id = ?", middleware.GetUserID(r))
	}

	var quote models.Quote
	if err := q.First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "quote not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return &quote, true
}

// priceIndexFor builds the flattened price index for a quote: its own
// price book when assigned, otherwise the default book.
func priceIndexFor(quote *models.Quote) (*costing.PriceIndex, error) {
	var book models.PriceBook
	q := config.DB
	if quote.PriceBookID != nil {
		q = q.Where("id = ?", *quote.PriceBookID)
	} else {
		q = q.Where("is_default = ?", true)
	}
	if err := q.First(&book).Error; err != nil {
		return nil, err
	}
	catalog, err := book.CatalogMap()
	if err != nil {
		return nil, err
	}
	return costing.BuildPriceIndex(catalog), nil
}
