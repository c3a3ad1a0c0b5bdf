package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/pkg/apperror"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// TemplateService manages EMI plan templates
type TemplateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new EMI template service
func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// Create validates the split config and persists the template. Malformed
// configs are rejected here, once, so reads can trust the stored value.
func (s *TemplateService) Create(ctx context.Context, name string, splitConfig entity.SplitConfig) (*entity.EMIPlanTemplate, error) {
	if fieldErrors := validateSplitConfig(splitConfig); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	template := &entity.EMIPlanTemplate{
		Name:             name,
		InstallmentCount: len(splitConfig),
		SplitConfig:      splitConfig,
		IsActive:         true,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// validateSplitConfig enforces the template invariants: at least one entry,
// positive percents summing to exactly 100, and non-decreasing day offsets
// (ties allowed for same-day installments).
func validateSplitConfig(config entity.SplitConfig) []apperror.FieldError {
	if len(config) == 0 {
		return []apperror.FieldError{
			{Field: "split_config", Message: "At least one split entry is required"},
		}
	}

	var fieldErrors []apperror.FieldError
	prevDays := 0

	for i, e := range config {
		field := fmt.Sprintf("split_config[%d]", i)
		if e.Percent.LessThanOrEqual(decimal.Zero) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: field + ".percent", Message: "Percent must be positive",
			})
		}
		if e.DueDaysFromStart < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: field + ".due_days_from_start", Message: "Day offset cannot be negative",
			})
		}
		if i > 0 && e.DueDaysFromStart < prevDays {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: field + ".due_days_from_start", Message: "Day offsets must be non-decreasing",
			})
		}
		prevDays = e.DueDaysFromStart
	}

	if total := config.TotalPercent(); !total.Equal(hundred) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "split_config",
			Message: fmt.Sprintf("Percents must sum to exactly 100, got %s", total.String()),
		})
	}

	return fieldErrors
}

// Get retrieves a template by ID
func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*entity.EMIPlanTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperror.NewNotFoundError("EMI plan template")
	}
	return template, nil
}

// List returns templates, active only by default
func (s *TemplateService) List(ctx context.Context, params *repository.TemplateFilterParams) (*pagination.PaginatedResult[entity.EMIPlanTemplate], error) {
	templates, total, err := s.templateRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(templates, pag), nil
}

// Deactivate soft-retires a template. Installment sets already generated
// from it are unaffected.
func (s *TemplateService) Deactivate(ctx context.Context, id uuid.UUID) error {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if template == nil {
		return apperror.NewNotFoundError("EMI plan template")
	}
	if !template.IsActive {
		return apperror.NewBadRequestError("EMI plan template is already inactive")
	}

	template.IsActive = false
	return s.templateRepo.Update(ctx, template)
}
