// handlers/pricebooks.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"mjengo.ke/estimator/config"
	"mjengo.ke/estimator/models"
	"mjengo.ke/estimator/pkg/costing"
)

func ListPriceBooks(w http.ResponseWriter, r *http.Request) {
	var books []models.PriceBook
	if err := config.DB.Order("is_default DESC, name ASC").Find(&books).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func GetPriceBook(w http.ResponseWriter, r *http.Request) {
	var book models.PriceBook
	if err := config.DB.First(&book, "id = ?", mux.Vars(r)["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "price book not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func CreatePriceBook(w http.ResponseWriter, r *http.Request) {
	var book models.PriceBook
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if book.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if _, err := book.CatalogMap(); err != nil {
		http.Error(w, "invalid catalog: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := config.DB.Create(&book).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "price book name already taken", http.StatusConflict)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func UpdatePriceBook(w http.ResponseWriter, r *http.Request) {
	var book models.PriceBook
	if err := config.DB.First(&book, "id = ?", mux.Vars(r)["id"]).Error; err != nil {
		http.Error(w, "price book not found", http.StatusNotFound)
		return
	}

	var patch models.PriceBook
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(patch.Catalog) > 0 {
		if _, err := patch.CatalogMap(); err != nil {
			http.Error(w, "invalid catalog: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	patch.ID = book.ID

	if err := config.DB.Model(&book).Updates(patch).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func DeletePriceBook(w http.ResponseWriter, r *http.Request) {
	var book models.PriceBook
	if err := config.DB.First(&book, "id = ?", mux.Vars(r)["id"]).Error; err != nil {
		http.Error(w, "price book not found", http.StatusNotFound)
		return
	}
	if book.IsDefault {
		http.Error(w, "cannot delete the default price book", http.StatusConflict)
		return
	}
	if err := config.DB.Delete(&book).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewPriceIndex flattens a book's catalog the way the engines will see
// it, so admins can verify nesting resolves as intended.
func PreviewPriceIndex(w http.ResponseWriter, r *http.Request) {
	var book models.PriceBook
	if err := config.DB.First(&book, "id = ?", mux.Vars(r)["id"]).Error; err != nil {
		http.Error(w, "price book not found", http.StatusNotFound)
		return
	}
	catalog, err := book.CatalogMap()
	if err != nil {
		http.Error(w, "invalid catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, costing.BuildPriceIndex(catalog).Entries())
}
