package receipt

import (
	"fmt"
	"time"
)

// Header holds the school header printed at the top of a fee receipt.
type Header struct {
	SchoolName string `json:"school_name"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// FeeReceipt is a value object representing a printable payment receipt.
// It is NOT a database entity; it is composed from one installment payment
// plus its fee-structure context at render time.
type FeeReceipt struct {
	Header            Header    `json:"header"`
	ReceiptNo         string    `json:"receipt_no"`
	StudentName       string    `json:"student_name,omitempty"`
	SessionName       string    `json:"session_name,omitempty"`
	InstallmentNumber int       `json:"installment_number"`
	InstallmentCount  int       `json:"installment_count"`
	PaymentDate       time.Time `json:"payment_date"`
	PaymentMode       string    `json:"payment_mode"`
	TransactionID     string    `json:"transaction_id,omitempty"`
	AmountPaid        float64   `json:"amount_paid"`
	InstallmentAmount float64   `json:"installment_amount"`
	TotalPaid         float64   `json:"total_paid"`
	Balance           float64   `json:"balance"`
}

// Render produces the ESC/POS byte stream for a thermal printer at the fee
// counter. charWidth is the printer's character width (32 or 48).
func (r *FeeReceipt) Render(charWidth int) []byte {
	d := newDocument(charWidth)

	d.setAlign(alignCenter).setBold(true)
	d.text(r.Header.SchoolName)
	d.setBold(false)
	if r.Header.Address != "" {
		d.text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		d.text(r.Header.Phone)
	}
	d.separator()
	d.setBold(true).text("FEE RECEIPT").setBold(false)
	d.setAlign(alignLeft)

	d.keyValue("Receipt No", r.ReceiptNo)
	d.keyValue("Date", r.PaymentDate.Format("02 Jan 2006"))
	if r.StudentName != "" {
		d.keyValue("Student", r.StudentName)
	}
	if r.SessionName != "" {
		d.keyValue("Session", r.SessionName)
	}
	d.separator()

	d.textF("Installment %d of %d", r.InstallmentNumber, r.InstallmentCount)
	d.keyValue("Installment amount", formatAmount(r.InstallmentAmount))
	d.keyValue("Paid now", formatAmount(r.AmountPaid))
	d.keyValue("Total paid", formatAmount(r.TotalPaid))
	d.keyValue("Balance", formatAmount(r.Balance))
	d.separator()

	d.keyValue("Mode", r.PaymentMode)
	if r.TransactionID != "" {
		d.keyValue("Txn Ref", r.TransactionID)
	}

	d.feedLines(3).cut()
	return d.bytes()
}

// formatAmount renders with two decimal places and no currency symbol;
// this is a single-currency deployment.
func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
