package enum

import "encoding/json"

// InstallmentStatus is the derived state of an installment. It is never
// persisted; it is recomputed from (amount, paidAmount, dueDate, today) on
// every read so it cannot drift from its inputs.
type InstallmentStatus int

const (
	InstallmentStatusPending InstallmentStatus = 0
	InstallmentStatusPartial InstallmentStatus = 1
	InstallmentStatusPaid    InstallmentStatus = 2
	InstallmentStatusOverdue InstallmentStatus = 3
)

func (s InstallmentStatus) String() string {
	if s < InstallmentStatusPending || s > InstallmentStatusOverdue {
		return "unknown"
	}
	return [...]string{"pending", "partial", "paid", "overdue"}[s]
}

func (s InstallmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InstallmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "pending":
		*s = InstallmentStatusPending
	case "partial":
		*s = InstallmentStatusPartial
	case "paid":
		*s = InstallmentStatusPaid
	case "overdue":
		*s = InstallmentStatusOverdue
	}
	return nil
}

// Outstanding reports whether the installment still has a balance due
// (pending, partial or overdue).
func (s InstallmentStatus) Outstanding() bool {
	return s != InstallmentStatusPaid
}
