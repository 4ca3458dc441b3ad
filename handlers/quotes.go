// handlers/quotes.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"mjengo.ke/estimator/config"
	"mjengo.ke/estimator/middleware"
	"mjengo.ke/estimator/models"
)

func ListQuotes(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Order("updated_at DESC")
	if middleware.GetRole(r) != models.RoleAdmin {
		q = q.Where("user_id = ?", middleware.GetUserID(r))
	}

	var quotes []models.Quote
	if err := q.Find(&quotes).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func GetQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func CreateQuote(w http.ResponseWriter, r *http.Request) {
	var quote models.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if quote.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	quote.ID = uuid.Nil
	quote.UserID = userID
	if quote.Status == "" {
		quote.Status = "draft"
	}

	if err := config.DB.Create(&quote).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, quote)
}

func UpdateQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}

	var patch models.Quote
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// Identity and ownership are not editable through this endpoint.
	patch.ID = quote.ID
	patch.UserID = quote.UserID
	patch.CreatedAt = quote.CreatedAt

	if err := config.DB.Model(quote).Updates(patch).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func DeleteQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}
	if err := config.DB.Delete(quote).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
