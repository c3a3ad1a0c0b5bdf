package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sritek/scoops-fees/internal/domain/enum"
)

func TestDeriveInstallmentStatus(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	past := today.AddDate(0, 0, -1)
	future := today.AddDate(0, 0, 30)

	tests := []struct {
		name    string
		amount  int64
		paid    int64
		dueDate time.Time
		want    enum.InstallmentStatus
	}{
		{"unpaid before due date", 300000, 0, future, enum.InstallmentStatusPending},
		{"unpaid on due date", 300000, 0, today, enum.InstallmentStatusPending},
		{"partially paid before due date", 300000, 100000, future, enum.InstallmentStatusPartial},
		{"partially paid on due date", 300000, 100000, today, enum.InstallmentStatusPartial},
		{"fully paid", 300000, 300000, future, enum.InstallmentStatusPaid},
		{"fully paid past due date", 300000, 300000, past, enum.InstallmentStatusPaid},
		{"unpaid past due date", 300000, 0, past, enum.InstallmentStatusOverdue},
		{"partially paid past due date", 300000, 299999, past, enum.InstallmentStatusOverdue},
		{"zero amount counts as paid", 0, 0, future, enum.InstallmentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveInstallmentStatus(tt.amount, tt.paid, tt.dueDate, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveInstallmentStatusIgnoresTimeOfDay(t *testing.T) {
	due := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 0, 1, 0, 0, time.UTC)

	// Same calendar day, so not overdue regardless of clock time.
	assert.Equal(t, enum.InstallmentStatusPending, DeriveInstallmentStatus(100, 0, due, today))
}

func TestRemaining(t *testing.T) {
	installment := &FeeInstallment{Amount: 300000, PaidAmount: 120000}
	assert.Equal(t, int64(180000), installment.Remaining())
}
