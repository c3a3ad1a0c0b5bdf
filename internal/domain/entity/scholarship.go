package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"gorm.io/gorm"
)

// Scholarship defines a reusable discount: percentage of the basis, fixed
// amount against the basis, or full waiver of one component. BasisComponentID
// nil means the discount applies against the whole gross amount; a
// component_waiver always names a component.
type Scholarship struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name             string            `gorm:"size:255;not null" json:"name"`
	DiscountType     enum.DiscountType `gorm:"not null;default:0" json:"discount_type"`
	DiscountValue    decimal.Decimal   `gorm:"type:numeric(12,4);not null" json:"discount_value"`
	BasisComponentID *uuid.UUID        `gorm:"type:uuid;index" json:"basis_component_id,omitempty"`
	IsActive         bool              `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	BasisComponent *FeeComponent `gorm:"foreignKey:BasisComponentID" json:"basis_component,omitempty"`
}

// BeforeCreate generates a UUID before creating a new scholarship
func (s *Scholarship) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Scholarship model
func (Scholarship) TableName() string {
	return "scholarships"
}

// StudentScholarship assigns one scholarship to one student for one academic
// session. A student may hold any number of active assignments; discounts are
// applied in assignment order.
type StudentScholarship struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StudentID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_student_scholarship_session" json:"student_id"`
	ScholarshipID uuid.UUID      `gorm:"type:uuid;not null;index" json:"scholarship_id"`
	SessionID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_student_scholarship_session" json:"session_id"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Scholarship Scholarship `gorm:"foreignKey:ScholarshipID" json:"scholarship"`
}

// BeforeCreate generates a UUID before creating a new assignment
func (a *StudentScholarship) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StudentScholarship model
func (StudentScholarship) TableName() string {
	return "student_scholarships"
}
