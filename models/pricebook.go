// models/pricebook.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PriceBook is a named material price catalog: nested category -> type ->
// price entries stored as JSONB. The nesting is tolerated as-is; lookup
// flattening happens in the costing package, not here.
type PriceBook struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Currency  string         `gorm:"size:10;not null;default:KES" json:"currency"`
	Region    string         `gorm:"size:100" json:"region,omitempty"`
	IsDefault bool           `gorm:"default:false" json:"isDefault"`
	Catalog   datatypes.JSON `gorm:"type:jsonb;not null" json:"catalog"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *PriceBook) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// CatalogMap decodes the raw nested catalog for price-index construction.
func (p *PriceBook) CatalogMap() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if len(p.Catalog) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(p.Catalog, &out); err != nil {
		return nil, err
	}
	return out, nil
}
