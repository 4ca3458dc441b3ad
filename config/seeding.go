package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mjengo.ke/estimator/models"
)

// RunAllSeeding runs all seeding operations in the correct order
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("[1/2] Seeding Default Price Book...")
	if err := SeedDefaultPriceBook(); err != nil {
		return err
	}

	log.Println("[2/2] Seeding Admin User...")
	if err := SeedAdminUser(); err != nil {
		return err
	}

	log.Println("=== Database Seeding Complete ===")
	return nil
}

// defaultCatalog is the Nairobi-region starting catalog. Structural timber
// carries both the legacy per-m³ prices and the preferred per-kg prices;
// the roofing engine prefers the latter when present.
func defaultCatalog() map[string]interface{} {
	return map[string]interface{}{
		"timber": map[string]interface{}{
			"rafters":            65000,
			"wall-plate":         62000,
			"fascia-board":       70000,
			"purlins":            58000,
			"battens":            52000,
			"king-post-tie-beam": 68000,
		},
		"timber-per-kg": map[string]interface{}{
			"rafters":    68,
			"wall-plate": 64,
			"purlins":    60,
		},
		"covering": map[string]interface{}{
			"box-profile-28g": 850,
			"corrugated-30g":  650,
			"clay-tiles":      1800,
			"concrete-tiles":  1400,
			"stone-coated":    2200,
		},
		"underlayment": map[string]interface{}{
			"felt-paper":    180,
			"breather-foil": 320,
		},
		"insulation": map[string]interface{}{
			"fibreglass-50mm": 450,
			"rockwool-50mm":   600,
		},
		"gutters": map[string]interface{}{
			"pvc-white":    950,
			"steel-coated": 1400,
		},
		"downpipes": map[string]interface{}{
			"pvc-90mm": 780,
		},
		"ridge-caps": map[string]interface{}{
			"standard": 550,
		},
		"flashing": map[string]interface{}{
			"galvanized": 420,
		},
		"walling": map[string]interface{}{
			"machine-cut": 65,
			"quarry":      55,
		},
		"concrete": map[string]interface{}{
			"1:2:4": 14500,
			"1:3:6": 12800,
		},
		"reinforcement": map[string]interface{}{
			"D8":  235,
			"D10": 245,
			"D12": 250,
			"D16": 265,
		},
	}
}

// SeedDefaultPriceBook creates the default catalog once; existing books
// are left untouched so admin edits survive restarts.
func SeedDefaultPriceBook() error {
	var existing models.PriceBook
	err := DB.Where("is_default = ?", true).First(&existing).Error
	if err == nil {
		log.Printf("Default price book %q already present, skipping", existing.Name)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	raw, err := json.Marshal(defaultCatalog())
	if err != nil {
		return err
	}
	book := models.PriceBook{
		Name:      "Nairobi Standard Rates",
		Currency:  "KES",
		Region:    "Nairobi",
		IsDefault: true,
		Catalog:   datatypes.JSON(raw),
	}
	if err := DB.Create(&book).Error; err != nil {
		return err
	}
	log.Printf("Created default price book %q", book.Name)
	return nil
}

// SeedAdminUser creates the bootstrap admin account. Credentials come from
// the environment; absent ones fall back to dev defaults.
func SeedAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@mjengo.ke"
	}

	var existing models.User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Admin user %s already present, skipping", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe!2025"
		log.Println("ADMIN_PASSWORD not set, using development default")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Created admin user %s", email)
	return nil
}
