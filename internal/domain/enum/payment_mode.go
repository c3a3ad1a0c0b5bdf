package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMode records how a payment was made. External confirmation (gateway,
// bank) is treated as an opaque event; the mode is informational only.
type PaymentMode int

const (
	PaymentModeCash         PaymentMode = 0
	PaymentModeCard         PaymentMode = 1
	PaymentModeUPI          PaymentMode = 2
	PaymentModeBankTransfer PaymentMode = 3
	PaymentModeCheque       PaymentMode = 4
	PaymentModeOnline       PaymentMode = 5
)

func (m PaymentMode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return [...]string{"cash", "card", "upi", "bank_transfer", "cheque", "online"}[m]
}

// Valid reports whether the value is a known payment mode
func (m PaymentMode) Valid() bool {
	return m >= PaymentModeCash && m <= PaymentModeOnline
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMode(i)
		return nil
	}
	switch str {
	case "cash":
		*m = PaymentModeCash
	case "card":
		*m = PaymentModeCard
	case "upi":
		*m = PaymentModeUPI
	case "bank_transfer":
		*m = PaymentModeBankTransfer
	case "cheque":
		*m = PaymentModeCheque
	case "online":
		*m = PaymentModeOnline
	}
	return nil
}

// ParsePaymentMode parses the lowercase wire form. Unknown strings are
// rejected so a typo never lands as a cash payment.
func ParsePaymentMode(s string) (PaymentMode, bool) {
	switch s {
	case "cash":
		return PaymentModeCash, true
	case "card":
		return PaymentModeCard, true
	case "upi":
		return PaymentModeUPI, true
	case "bank_transfer":
		return PaymentModeBankTransfer, true
	case "cheque":
		return PaymentModeCheque, true
	case "online":
		return PaymentModeOnline, true
	}
	return PaymentModeCash, false
}

func (m PaymentMode) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMode(v)
	case int:
		*m = PaymentMode(v)
	}
	return nil
}
