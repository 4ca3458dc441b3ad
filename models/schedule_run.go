// models/schedule_run.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaterialScheduleRun is one consolidation run kept for audit: which BOQ
// sections fed it, the extracted lines, and the consolidated output.
type MaterialScheduleRun struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuoteID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"quoteId"`
	Quote          Quote          `gorm:"foreignKey:QuoteID" json:"-"`
	SourceSections pq.StringArray `gorm:"type:text[]" json:"sourceSections"`
	Materials      datatypes.JSON `gorm:"type:jsonb" json:"materials"`
	Consolidated   datatypes.JSON `gorm:"type:jsonb" json:"consolidated"`
	TotalAmount    float64        `json:"totalAmount"`
	RanAt          JSONTime       `gorm:"not null" json:"ranAt"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (m *MaterialScheduleRun) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
