package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestExpandEvenSplit(t *testing.T) {
	template := &EMIPlanTemplate{
		InstallmentCount: 3,
		SplitConfig: SplitConfig{
			{Percent: pct("40"), DueDaysFromStart: 0},
			{Percent: pct("30"), DueDaysFromStart: 30},
			{Percent: pct("30"), DueDaysFromStart: 60},
		},
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	drafts := template.Expand(1000000, start)

	require.Len(t, drafts, 3)
	assert.Equal(t, int64(400000), drafts[0].Amount)
	assert.Equal(t, int64(300000), drafts[1].Amount)
	assert.Equal(t, int64(300000), drafts[2].Amount)

	assert.Equal(t, 1, drafts[0].Number)
	assert.Equal(t, 2, drafts[1].Number)
	assert.Equal(t, 3, drafts[2].Number)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), drafts[0].DueDate)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), drafts[1].DueDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), drafts[2].DueDate)
}

func TestExpandResidualGoesToLastInstallment(t *testing.T) {
	template := &EMIPlanTemplate{
		InstallmentCount: 3,
		SplitConfig: SplitConfig{
			{Percent: pct("33.33"), DueDaysFromStart: 0},
			{Percent: pct("33.33"), DueDaysFromStart: 30},
			{Percent: pct("33.34"), DueDaysFromStart: 60},
		},
	}

	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	// 100 cents cannot split evenly over three slices; the last installment
	// absorbs the rounding residual.
	drafts := template.Expand(100, start)
	require.Len(t, drafts, 3)
	assert.Equal(t, int64(33), drafts[0].Amount)
	assert.Equal(t, int64(33), drafts[1].Amount)
	assert.Equal(t, int64(34), drafts[2].Amount)
}

func TestExpandSumsToNetExactly(t *testing.T) {
	template := &EMIPlanTemplate{
		InstallmentCount: 3,
		SplitConfig: SplitConfig{
			{Percent: pct("33.33"), DueDaysFromStart: 0},
			{Percent: pct("33.33"), DueDaysFromStart: 30},
			{Percent: pct("33.34"), DueDaysFromStart: 60},
		},
	}

	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for _, net := range []int64{1, 99, 100, 101, 999999, 1000001, 123456789} {
		drafts := template.Expand(net, start)

		var sum int64
		for _, d := range drafts {
			sum += d.Amount
		}
		assert.Equal(t, net, sum, "net %d must split without loss", net)
	}
}

func TestExpandSameDayInstallments(t *testing.T) {
	template := &EMIPlanTemplate{
		InstallmentCount: 2,
		SplitConfig: SplitConfig{
			{Percent: pct("50"), DueDaysFromStart: 0},
			{Percent: pct("50"), DueDaysFromStart: 0},
		},
	}

	start := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	drafts := template.Expand(500000, start)

	require.Len(t, drafts, 2)
	assert.Equal(t, drafts[0].DueDate, drafts[1].DueDate)
}

func TestExpandEmptyConfig(t *testing.T) {
	template := &EMIPlanTemplate{}
	assert.Nil(t, template.Expand(100000, time.Now()))
}

func TestSplitConfigTotalPercent(t *testing.T) {
	config := SplitConfig{
		{Percent: pct("40")},
		{Percent: pct("30")},
		{Percent: pct("30")},
	}
	assert.True(t, config.TotalPercent().Equal(pct("100")))

	short := SplitConfig{
		{Percent: pct("33.33")},
		{Percent: pct("33.33")},
		{Percent: pct("33.33")},
	}
	assert.False(t, short.TotalPercent().Equal(pct("100")))
}
