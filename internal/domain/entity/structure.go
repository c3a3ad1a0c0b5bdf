package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"gorm.io/gorm"
)

// FeeStructure is the resolved fee for one student in one academic session:
// gross (sum of component snapshots), scholarship discount, and the net
// payable amount that installments are generated from. At most one active
// structure exists per (student, session); the partial unique index in the
// migration enforces this under concurrency.
//
// Gross/net are immutable once installments exist. Regeneration goes through
// the explicit overwrite path, which cascade-invalidates installments and is
// refused once payments are recorded.
type FeeStructure struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StudentID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	BatchID           *uuid.UUID     `gorm:"type:uuid;index" json:"batch_id,omitempty"`
	SessionID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	GrossAmount       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	ScholarshipAmount int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	NetAmount         int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Components   []FeeStructureComponent `gorm:"foreignKey:FeeStructureID" json:"components,omitempty"`
	Installments []FeeInstallment        `gorm:"foreignKey:FeeStructureID" json:"installments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s FeeStructure) MarshalJSON() ([]byte, error) {
	type Alias FeeStructure
	return json.Marshal(&struct {
		Alias
		GrossAmount       float64 `json:"gross_amount"`
		ScholarshipAmount float64 `json:"scholarship_amount"`
		NetAmount         float64 `json:"net_amount"`
	}{
		Alias:             Alias(s),
		GrossAmount:       float64(s.GrossAmount) / 100,
		ScholarshipAmount: float64(s.ScholarshipAmount) / 100,
		NetAmount:         float64(s.NetAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new structure
func (s *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeStructure model
func (FeeStructure) TableName() string {
	return "fee_structures"
}

// FeeStructureComponent is the value snapshot of one fee component captured
// at build time. Deactivating or repricing the registry component later never
// changes what a historical structure charged.
type FeeStructureComponent struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	FeeStructureID uuid.UUID          `gorm:"type:uuid;not null;index" json:"fee_structure_id"`
	ComponentID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"component_id"`
	Name           string             `gorm:"size:255;not null" json:"name"`
	Type           enum.ComponentType `gorm:"not null" json:"type"`
	Amount         int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt      time.Time          `json:"created_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c FeeStructureComponent) MarshalJSON() ([]byte, error) {
	type Alias FeeStructureComponent
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(c),
		Amount: float64(c.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new snapshot
func (c *FeeStructureComponent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeStructureComponent model
func (FeeStructureComponent) TableName() string {
	return "fee_structure_components"
}
