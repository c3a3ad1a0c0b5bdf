package request

import "github.com/google/uuid"

// SplitEntryRequest is one installment slot of an EMI template
type SplitEntryRequest struct {
	Percent          float64 `json:"percent" binding:"required,gt=0"`
	DueDaysFromStart int     `json:"due_days_from_start" binding:"min=0"`
}

// CreateTemplateRequest represents an EMI plan template creation request.
// The percents must sum to exactly 100.
type CreateTemplateRequest struct {
	Name   string              `json:"name" binding:"required,min=2,max=255"`
	Splits []SplitEntryRequest `json:"splits" binding:"required,min=1,dive"`
}

// TemplateFilterRequest represents template filter parameters
type TemplateFilterRequest struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}

// GenerateInstallmentsRequest represents an installment generation request.
// StartDate anchors the template's due day offsets, formatted YYYY-MM-DD.
type GenerateInstallmentsRequest struct {
	TemplateID uuid.UUID `json:"template_id" binding:"required"`
	StartDate  string    `json:"start_date" binding:"required"`
}
