package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"gorm.io/gorm"
)

// FeeComponent is a named, typed fee line item (tuition, transport, ...) that
// composes a fee structure. Components are immutable once referenced by a
// structure: structures capture value snapshots, so deactivating a component
// never retroactively alters historical structures.
type FeeComponent struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Name      string             `gorm:"size:255;not null" json:"name"`
	Type      enum.ComponentType `gorm:"not null;default:0" json:"type"`
	IsActive  bool               `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new component
func (c *FeeComponent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeComponent model
func (FeeComponent) TableName() string {
	return "fee_components"
}
