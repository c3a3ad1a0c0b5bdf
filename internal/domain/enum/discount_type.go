package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DiscountType determines how a scholarship's value is applied against the
// gross amount
type DiscountType int

const (
	DiscountTypePercentage      DiscountType = 0
	DiscountTypeFixedAmount     DiscountType = 1
	DiscountTypeComponentWaiver DiscountType = 2
)

func (t DiscountType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return [...]string{"percentage", "fixed_amount", "component_waiver"}[t]
}

// Valid reports whether the value is a known discount type
func (t DiscountType) Valid() bool {
	return t >= DiscountTypePercentage && t <= DiscountTypeComponentWaiver
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DiscountType(i)
		return nil
	}
	switch str {
	case "percentage":
		*t = DiscountTypePercentage
	case "fixed_amount":
		*t = DiscountTypeFixedAmount
	case "component_waiver":
		*t = DiscountTypeComponentWaiver
	}
	return nil
}

// ParseDiscountType parses the lowercase wire form
func ParseDiscountType(s string) (DiscountType, bool) {
	switch s {
	case "percentage":
		return DiscountTypePercentage, true
	case "fixed_amount":
		return DiscountTypeFixedAmount, true
	case "component_waiver":
		return DiscountTypeComponentWaiver, true
	}
	return DiscountTypePercentage, false
}

func (t DiscountType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountTypePercentage
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DiscountType(v)
	case int:
		*t = DiscountType(v)
	}
	return nil
}
