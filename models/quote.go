// models/quote.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mjengo.ke/estimator/pkg/boq"
	"mjengo.ke/estimator/pkg/roofing"
	"mjengo.ke/estimator/pkg/schedule"
	"mjengo.ke/estimator/pkg/takeoff"
)

// Quote is one building-model/estimate record. The raw takeoff inputs
// (pour rows, rebar records, rooms, walls, roof structures) live as JSONB
// payloads; the BOQ document itself is persisted the same way so
// reconciliation can merge into whatever the surveyor last saved.
type Quote struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	ClientName string    `gorm:"size:200" json:"clientName,omitempty"`
	Region     string    `gorm:"size:100" json:"region,omitempty"`
	Status     string    `gorm:"size:20;not null;default:draft" json:"status"`

	// Footprint figures, either entered directly or derived from an
	// imported site plan.
	FootprintAreaM2 float64 `json:"footprintAreaM2"`
	PerimeterM      float64 `json:"perimeterM"`

	PriceBookID *uuid.UUID `gorm:"type:uuid" json:"priceBookId,omitempty"`
	PriceBook   *PriceBook `gorm:"foreignKey:PriceBookID" json:"-"`

	ConcreteRows      datatypes.JSON `gorm:"type:jsonb" json:"concreteRows,omitempty"`
	ConcreteTotals    datatypes.JSON `gorm:"type:jsonb" json:"concreteTotals,omitempty"`
	ConcreteMaterials datatypes.JSON `gorm:"type:jsonb" json:"concreteMaterials,omitempty"`
	RebarRows         datatypes.JSON `gorm:"type:jsonb" json:"rebarRows,omitempty"`
	ElementRefs       datatypes.JSON `gorm:"type:jsonb" json:"elementRefs,omitempty"`
	WallRows          datatypes.JSON `gorm:"type:jsonb" json:"wallRows,omitempty"`
	Rooms             datatypes.JSON `gorm:"type:jsonb" json:"rooms,omitempty"`
	RoofStructures    datatypes.JSON `gorm:"type:jsonb" json:"roofStructures,omitempty"`
	BOQData           datatypes.JSON `gorm:"type:jsonb" json:"boqData,omitempty"`

	// Project total as declared by the client/architect, checked against
	// the computed grand total during validation.
	DeclaredTotal float64 `json:"declaredTotal"`

	SiteSurveyDate *JSONTime `json:"siteSurveyDate,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}

func decode[T any](raw datatypes.JSON) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (q *Quote) DecodeConcreteRows() ([]takeoff.ConcreteRow, error) {
	return decode[takeoff.ConcreteRow](q.ConcreteRows)
}

func (q *Quote) DecodeConcreteTotals() ([]takeoff.ConcreteTotal, error) {
	return decode[takeoff.ConcreteTotal](q.ConcreteTotals)
}

func (q *Quote) DecodeConcreteMaterials() ([]schedule.ConcreteMaterial, error) {
	return decode[schedule.ConcreteMaterial](q.ConcreteMaterials)
}

func (q *Quote) DecodeRebarRows() ([]takeoff.RebarRecord, error) {
	return decode[takeoff.RebarRecord](q.RebarRows)
}

func (q *Quote) DecodeWallRows() ([]takeoff.WallRow, error) {
	return decode[takeoff.WallRow](q.WallRows)
}

func (q *Quote) DecodeRooms() ([]takeoff.RoomRecord, error) {
	return decode[takeoff.RoomRecord](q.Rooms)
}

func (q *Quote) DecodeRoofStructures() ([]roofing.Structure, error) {
	return decode[roofing.Structure](q.RoofStructures)
}

func (q *Quote) DecodeBOQ() ([]boq.Section, error) {
	return decode[boq.Section](q.BOQData)
}

// DecodeElementRefs maps structural element ids to display names for the
// rebar mapper.
func (q *Quote) DecodeElementRefs() (map[string]string, error) {
	if len(q.ElementRefs) == 0 {
		return nil, nil
	}
	out := map[string]string{}
	if err := json.Unmarshal(q.ElementRefs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetBOQ replaces the persisted document snapshot.
func (q *Quote) SetBOQ(sections []boq.Section) error {
	raw, err := json.Marshal(sections)
	if err != nil {
		return err
	}
	q.BOQData = datatypes.JSON(raw)
	return nil
}
