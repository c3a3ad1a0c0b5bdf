package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"gorm.io/gorm"
)

// InstallmentPayment is one recorded payment against an installment.
// Payments are append-only: an installment accumulates them until fully
// covered, and a payment that would push paidAmount past the installment
// amount is rejected, never clamped. ReceiptNo is the external reference the
// receipt consumer prints from (1:1 with the payment).
type InstallmentPayment struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	InstallmentID uuid.UUID        `gorm:"type:uuid;not null;index" json:"installment_id"`
	Amount        int64            `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentDate   time.Time        `gorm:"type:date;not null" json:"payment_date"`
	PaymentMode   enum.PaymentMode `gorm:"not null;default:0" json:"payment_mode"`
	TransactionID *string          `gorm:"size:255" json:"transaction_id,omitempty"`
	ReceiptNo     string           `gorm:"size:100;unique;not null" json:"receipt_no"`
	RecordedBy    *uuid.UUID       `gorm:"type:uuid;index" json:"recorded_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p InstallmentPayment) MarshalJSON() ([]byte, error) {
	type Alias InstallmentPayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *InstallmentPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InstallmentPayment model
func (InstallmentPayment) TableName() string {
	return "installment_payments"
}
