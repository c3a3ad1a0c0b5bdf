package request

import "github.com/google/uuid"

// RecordPaymentRequest represents a payment recording request.
// PaymentDate is formatted YYYY-MM-DD and may lag the current date when a
// gateway confirmation arrives late.
type RecordPaymentRequest struct {
	InstallmentID uuid.UUID `json:"installment_id" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	PaymentDate   string    `json:"payment_date" binding:"required"`
	PaymentMode   string    `json:"payment_mode" binding:"required"`
	TransactionID *string   `json:"transaction_id"`
}
