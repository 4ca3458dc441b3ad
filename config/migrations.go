package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"mjengo.ke/estimator/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.PriceBook{}, &models.Quote{})
			},
		},
		{
			ID: "20250412_add_schedule_runs",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.MaterialScheduleRun{})
			},
		},
		{
			ID: "20250530_add_quote_footprint_columns",
			Migrate: func(tx *gorm.DB) error {
				// Older quote rows predate site-plan import.
				if err := tx.Exec("ALTER TABLE quotes ADD COLUMN IF NOT EXISTS footprint_area_m2 numeric DEFAULT 0").Error; err != nil {
					return err
				}
				return tx.Exec("ALTER TABLE quotes ADD COLUMN IF NOT EXISTS perimeter_m numeric DEFAULT 0").Error
			},
		},
		{
			ID: "20250618_add_declared_total",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("ALTER TABLE quotes ADD COLUMN IF NOT EXISTS declared_total numeric DEFAULT 0").Error
			},
		},
	})

	return m.Migrate()
}
