package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// SplitEntry is one slice of an EMI plan: the percent of the net amount due,
// and the calendar-day offset of the due date from the plan's start date.
type SplitEntry struct {
	Percent          decimal.Decimal `json:"percent"`
	DueDaysFromStart int             `json:"due_days_from_start"`
}

// SplitConfig is the ordered list of split entries, stored as a JSON column.
// It is validated once at creation; reads trust the stored value.
type SplitConfig []SplitEntry

// Value implements driver.Valuer for JSON storage
func (c SplitConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSON storage
func (c *SplitConfig) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return errors.New("split config: unsupported column type")
}

// TotalPercent sums the percent of all entries
func (c SplitConfig) TotalPercent() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c {
		total = total.Add(e.Percent)
	}
	return total
}

// EMIPlanTemplate is a reusable percentage-split schedule (e.g. 40/30/30)
// with per-installment day offsets from a start date. Percents must sum to
// exactly 100 and offsets must be non-decreasing; both are enforced at
// creation. Templates referenced by installments are never edited, only
// deactivated.
type EMIPlanTemplate struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	InstallmentCount int            `gorm:"not null" json:"installment_count"`
	SplitConfig      SplitConfig    `gorm:"type:jsonb;not null" json:"split_config"`
	IsActive         bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new template
func (t *EMIPlanTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EMIPlanTemplate model
func (EMIPlanTemplate) TableName() string {
	return "emi_plan_templates"
}

// InstallmentDraft is one computed installment before persistence: 1-based
// number, amount in cents and concrete due date.
type InstallmentDraft struct {
	Number  int
	Amount  int64
	DueDate time.Time
}

// Expand computes the concrete installment set for a net amount (cents) and a
// start date. Each amount is round-half-up of net*percent/100; any rounding
// residual is absorbed by the LAST installment so the set always sums exactly
// to the net amount. The residual placement is fixed for reproducibility.
// Due dates are startDate + dueDaysFromStart calendar days.
func (t *EMIPlanTemplate) Expand(netAmount int64, startDate time.Time) []InstallmentDraft {
	if len(t.SplitConfig) == 0 {
		return nil
	}

	net := decimal.NewFromInt(netAmount)
	drafts := make([]InstallmentDraft, len(t.SplitConfig))
	var allocated int64

	for i, e := range t.SplitConfig {
		amount := net.Mul(e.Percent).Div(hundred).Round(0).IntPart()
		allocated += amount
		drafts[i] = InstallmentDraft{
			Number:  i + 1,
			Amount:  amount,
			DueDate: startDate.AddDate(0, 0, e.DueDaysFromStart),
		}
	}

	drafts[len(drafts)-1].Amount += netAmount - allocated
	return drafts
}
