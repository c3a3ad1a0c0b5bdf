package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ComponentType tags a fee component line item
type ComponentType int

const (
	ComponentTypeTuition   ComponentType = 0
	ComponentTypeTransport ComponentType = 1
	ComponentTypeAdmission ComponentType = 2
	ComponentTypeExam      ComponentType = 3
	ComponentTypeOther     ComponentType = 4
)

func (t ComponentType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return [...]string{"tuition", "transport", "admission", "exam", "other"}[t]
}

// Valid reports whether the value is a known component type
func (t ComponentType) Valid() bool {
	return t >= ComponentTypeTuition && t <= ComponentTypeOther
}

func (t ComponentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ComponentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ComponentType(i)
		return nil
	}
	switch str {
	case "tuition":
		*t = ComponentTypeTuition
	case "transport":
		*t = ComponentTypeTransport
	case "admission":
		*t = ComponentTypeAdmission
	case "exam":
		*t = ComponentTypeExam
	default:
		*t = ComponentTypeOther
	}
	return nil
}

// ParseComponentType parses the lowercase wire form
func ParseComponentType(s string) (ComponentType, bool) {
	switch s {
	case "tuition":
		return ComponentTypeTuition, true
	case "transport":
		return ComponentTypeTransport, true
	case "admission":
		return ComponentTypeAdmission, true
	case "exam":
		return ComponentTypeExam, true
	case "other":
		return ComponentTypeOther, true
	}
	return ComponentTypeOther, false
}

func (t ComponentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ComponentType) Scan(value interface{}) error {
	if value == nil {
		*t = ComponentTypeOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ComponentType(v)
	case int:
		*t = ComponentType(v)
	}
	return nil
}
