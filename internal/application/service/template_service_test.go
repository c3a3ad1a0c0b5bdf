package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/pkg/apperror"
)

func splits(entries ...entity.SplitEntry) entity.SplitConfig {
	return entity.SplitConfig(entries)
}

func entry(percent string, days int) entity.SplitEntry {
	return entity.SplitEntry{
		Percent:          decimal.RequireFromString(percent),
		DueDaysFromStart: days,
	}
}

func TestTemplateCreate(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())

	template, err := svc.Create(context.Background(), "Quarterly 40/30/30",
		splits(entry("40", 0), entry("30", 90), entry("30", 180)))

	require.NoError(t, err)
	assert.Equal(t, 3, template.InstallmentCount)
	assert.True(t, template.IsActive)
	assert.NotEqual(t, "", template.ID.String())
}

func TestTemplateCreateRejectsBadConfigs(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		config entity.SplitConfig
	}{
		{"empty config", nil},
		{"sum below 100", splits(entry("50", 0), entry("49.99", 30))},
		{"sum above 100", splits(entry("50", 0), entry("50.01", 30))},
		{"zero percent entry", splits(entry("0", 0), entry("100", 30))},
		{"negative percent entry", splits(entry("-10", 0), entry("110", 30))},
		{"negative day offset", splits(entry("50", -1), entry("50", 30))},
		{"decreasing day offsets", splits(entry("50", 60), entry("50", 30))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "bad", tt.config)
			require.Error(t, err)
			assert.Equal(t, 422, apperror.GetAppError(err).Code)
		})
	}
}

func TestTemplateCreateAllowsSameDayOffsets(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())

	_, err := svc.Create(context.Background(), "Two on enrollment day",
		splits(entry("60", 0), entry("40", 0)))

	require.NoError(t, err)
}

func TestTemplateDeactivate(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	ctx := context.Background()

	template, err := svc.Create(ctx, "Halves", splits(entry("50", 0), entry("50", 180)))
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, template.ID))

	stored, err := svc.Get(ctx, template.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// Second deactivation is rejected rather than being a silent no-op.
	err = svc.Deactivate(ctx, template.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
