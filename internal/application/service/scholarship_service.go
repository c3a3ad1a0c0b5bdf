package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/pkg/apperror"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// ScholarshipService manages scholarships and their student assignments
type ScholarshipService struct {
	scholarshipRepo repository.ScholarshipRepository
	assignmentRepo  repository.StudentScholarshipRepository
	componentRepo   repository.ComponentRepository
}

// NewScholarshipService creates a new scholarship service
func NewScholarshipService(
	scholarshipRepo repository.ScholarshipRepository,
	assignmentRepo repository.StudentScholarshipRepository,
	componentRepo repository.ComponentRepository,
) *ScholarshipService {
	return &ScholarshipService{
		scholarshipRepo: scholarshipRepo,
		assignmentRepo:  assignmentRepo,
		componentRepo:   componentRepo,
	}
}

// CreateScholarshipInput represents the create scholarship input
type CreateScholarshipInput struct {
	Name             string
	DiscountType     enum.DiscountType
	DiscountValue    decimal.Decimal
	BasisComponentID *uuid.UUID
}

// Create validates and persists a scholarship definition
func (s *ScholarshipService) Create(ctx context.Context, input *CreateScholarshipInput) (*entity.Scholarship, error) {
	var fieldErrors []apperror.FieldError

	if !input.DiscountType.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_type", Message: "Unknown discount type"})
	}

	switch input.DiscountType {
	case enum.DiscountTypePercentage:
		if input.DiscountValue.LessThanOrEqual(decimal.Zero) || input.DiscountValue.GreaterThan(hundred) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_value", Message: "Percentage must be between 0 and 100"})
		}
	case enum.DiscountTypeFixedAmount:
		if input.DiscountValue.LessThanOrEqual(decimal.Zero) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_value", Message: "Fixed amount must be positive"})
		}
	case enum.DiscountTypeComponentWaiver:
		if input.BasisComponentID == nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "basis_component_id", Message: "Component waiver requires a basis component"})
		}
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.BasisComponentID != nil {
		component, err := s.componentRepo.GetByID(ctx, *input.BasisComponentID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			return nil, apperror.NewNotFoundError("Basis fee component")
		}
	}

	scholarship := &entity.Scholarship{
		Name:             input.Name,
		DiscountType:     input.DiscountType,
		DiscountValue:    input.DiscountValue,
		BasisComponentID: input.BasisComponentID,
		IsActive:         true,
	}
	if err := s.scholarshipRepo.Create(ctx, scholarship); err != nil {
		return nil, err
	}
	return scholarship, nil
}

// Deactivate soft-retires a scholarship. Existing structures keep the
// discount amounts resolved at build time.
func (s *ScholarshipService) Deactivate(ctx context.Context, id uuid.UUID) error {
	scholarship, err := s.scholarshipRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if scholarship == nil {
		return apperror.NewNotFoundError("Scholarship")
	}
	if !scholarship.IsActive {
		return apperror.NewBadRequestError("Scholarship is already inactive")
	}

	scholarship.IsActive = false
	return s.scholarshipRepo.Update(ctx, scholarship)
}

// List returns scholarships, active only by default
func (s *ScholarshipService) List(ctx context.Context, params *repository.ScholarshipFilterParams) (*pagination.PaginatedResult[entity.Scholarship], error) {
	scholarships, total, err := s.scholarshipRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(scholarships, pag), nil
}

// Assign grants a scholarship to a student for one academic session
func (s *ScholarshipService) Assign(ctx context.Context, studentID, scholarshipID, sessionID uuid.UUID) (*entity.StudentScholarship, error) {
	scholarship, err := s.scholarshipRepo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	if scholarship == nil {
		return nil, apperror.NewNotFoundError("Scholarship")
	}
	if !scholarship.IsActive {
		return nil, apperror.NewBadRequestError("Cannot assign an inactive scholarship")
	}

	assignment := &entity.StudentScholarship{
		StudentID:     studentID,
		ScholarshipID: scholarshipID,
		SessionID:     sessionID,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	assignment.Scholarship = *scholarship
	return assignment, nil
}

// Unassign removes a scholarship assignment. Structures already built keep
// their resolved discount until explicitly rebuilt.
func (s *ScholarshipService) Unassign(ctx context.Context, assignmentID uuid.UUID) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return apperror.NewNotFoundError("Scholarship assignment")
	}
	return s.assignmentRepo.Delete(ctx, assignmentID)
}

// ListForStudent returns a student's assignments for a session in assignment order
func (s *ScholarshipService) ListForStudent(ctx context.Context, studentID, sessionID uuid.UUID) ([]entity.StudentScholarship, error) {
	return s.assignmentRepo.ListActiveForStudent(ctx, studentID, sessionID)
}
