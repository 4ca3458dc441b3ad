package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"mjengo.ke/estimator/handlers"
	"mjengo.ke/estimator/middleware"
	"mjengo.ke/estimator/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/profile", handlers.Profile).Methods("GET")

	// Quotes
	api.HandleFunc("/quotes", handlers.ListQuotes).Methods("GET")
	api.HandleFunc("/quotes", handlers.CreateQuote).Methods("POST")
	api.HandleFunc("/quotes/{id}", handlers.GetQuote).Methods("GET")
	api.HandleFunc("/quotes/{id}", handlers.UpdateQuote).Methods("PUT")
	api.HandleFunc("/quotes/{id}", handlers.DeleteQuote).Methods("DELETE")

	// BOQ document
	api.HandleFunc("/quotes/{id}/boq", handlers.GetBOQ).Methods("GET")
	api.HandleFunc("/quotes/{id}/boq/recompute", handlers.RecomputeBOQ).Methods("POST")
	api.HandleFunc("/quotes/{id}/boq/items", handlers.AddBOQItem).Methods("POST")
	api.HandleFunc("/quotes/{id}/boq/headers", handlers.AddBOQHeader).Methods("POST")
	api.HandleFunc("/quotes/{id}/boq/items", handlers.RemoveBOQItem).Methods("DELETE")
	api.HandleFunc("/quotes/{id}/boq/items", handlers.UpdateBOQItem).Methods("PATCH")
	api.HandleFunc("/quotes/{id}/boq/sections", handlers.AddBOQSection).Methods("POST")
	api.HandleFunc("/quotes/{id}/boq/sections", handlers.RenameBOQSection).Methods("PATCH")
	api.HandleFunc("/quotes/{id}/boq/sections", handlers.RemoveBOQSection).Methods("DELETE")

	// Roofing
	api.HandleFunc("/quotes/{id}/roofing", handlers.ComputeRoofing).Methods("GET")

	// Material schedule
	api.HandleFunc("/quotes/{id}/schedule/consolidate", handlers.ConsolidateSchedule).Methods("POST")
	api.HandleFunc("/quotes/{id}/schedule/runs", handlers.ListScheduleRuns).Methods("GET")

	// Exports
	api.HandleFunc("/quotes/{id}/export/boq.xlsx", handlers.ExportBOQToExcel).Methods("GET")
	api.HandleFunc("/quotes/{id}/export/materials.csv", handlers.ExportScheduleToCSV).Methods("GET")

	// Site plan import
	api.HandleFunc("/quotes/{id}/siteplan", handlers.ImportSitePlan).Methods("POST")

	// Price books (read for everyone authenticated)
	api.HandleFunc("/pricebooks", handlers.ListPriceBooks).Methods("GET")
	api.HandleFunc("/pricebooks/{id}", handlers.GetPriceBook).Methods("GET")

	// =====================================================
	// Admin Routes (require admin role)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(func(next http.Handler) http.Handler {
		return middleware.RequireRole([]string{models.RoleAdmin}, next)
	})
	admin.HandleFunc("/pricebooks", handlers.CreatePriceBook).Methods("POST")
	admin.HandleFunc("/pricebooks/{id}", handlers.UpdatePriceBook).Methods("PUT")
	admin.HandleFunc("/pricebooks/{id}", handlers.DeletePriceBook).Methods("DELETE")
	admin.HandleFunc("/pricebooks/{id}/index", handlers.PreviewPriceIndex).Methods("GET")

	return r
}
