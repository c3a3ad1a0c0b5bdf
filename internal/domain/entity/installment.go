package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"gorm.io/gorm"
)

// FeeInstallment is one dated, amount-bounded payable slice of a fee
// structure. Installments are created only as a full set by the generator,
// never individually; the unique index on (fee_structure_id,
// installment_number) makes concurrent generation race-fail instead of
// double-creating.
type FeeInstallment struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FeeStructureID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"fee_structure_id"`
	InstallmentNumber int            `gorm:"not null" json:"installment_number"`
	DueDate           time.Time      `gorm:"type:date;not null" json:"due_date"`
	Amount            int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaidAmount        int64          `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Payments []InstallmentPayment `gorm:"foreignKey:InstallmentID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i FeeInstallment) MarshalJSON() ([]byte, error) {
	type Alias FeeInstallment
	return json.Marshal(&struct {
		Alias
		Amount     float64 `json:"amount"`
		PaidAmount float64 `json:"paid_amount"`
	}{
		Alias:      Alias(i),
		Amount:     float64(i.Amount) / 100,
		PaidAmount: float64(i.PaidAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new installment
func (i *FeeInstallment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeInstallment model
func (FeeInstallment) TableName() string {
	return "fee_installments"
}

// Remaining returns the unpaid balance in cents
func (i *FeeInstallment) Remaining() int64 {
	return i.Amount - i.PaidAmount
}

// Status derives the installment status for the given date
func (i *FeeInstallment) Status(today time.Time) enum.InstallmentStatus {
	return DeriveInstallmentStatus(i.Amount, i.PaidAmount, i.DueDate, today)
}

// DeriveInstallmentStatus is the pure status function. Status is never stored
// so it cannot drift from its inputs:
//
//	paid:    paidAmount >= amount
//	overdue: paidAmount < amount and dueDate < today
//	partial: 0 < paidAmount < amount and dueDate >= today
//	pending: paidAmount == 0 and dueDate >= today
//
// Dates are compared at whole-day granularity.
func DeriveInstallmentStatus(amount, paidAmount int64, dueDate, today time.Time) enum.InstallmentStatus {
	if paidAmount >= amount {
		return enum.InstallmentStatusPaid
	}

	due := truncateToDay(dueDate)
	now := truncateToDay(today)

	if due.Before(now) {
		return enum.InstallmentStatusOverdue
	}
	if paidAmount > 0 {
		return enum.InstallmentStatusPartial
	}
	return enum.InstallmentStatusPending
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
