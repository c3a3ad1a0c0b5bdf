package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/pkg/apperror"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// ComponentService is the fee component registry
type ComponentService struct {
	componentRepo repository.ComponentRepository
}

// NewComponentService creates a new component service
func NewComponentService(componentRepo repository.ComponentRepository) *ComponentService {
	return &ComponentService{componentRepo: componentRepo}
}

// Create registers a new fee component. Two active components can never share
// a name; a deactivated component's name may be reused.
func (s *ComponentService) Create(ctx context.Context, name string, componentType enum.ComponentType) (*entity.FeeComponent, error) {
	if !componentType.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "type", Message: "Unknown component type"},
		})
	}

	existing, err := s.componentRepo.GetActiveByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("An active fee component with this name already exists")
	}

	component := &entity.FeeComponent{
		Name:     name,
		Type:     componentType,
		IsActive: true,
	}
	if err := s.componentRepo.Create(ctx, component); err != nil {
		return nil, err
	}
	return component, nil
}

// Deactivate soft-retires a component. Structures that already captured its
// amount are untouched.
func (s *ComponentService) Deactivate(ctx context.Context, id uuid.UUID) error {
	component, err := s.componentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if component == nil {
		return apperror.NewNotFoundError("Fee component")
	}
	if !component.IsActive {
		return apperror.NewBadRequestError("Fee component is already inactive")
	}

	component.IsActive = false
	return s.componentRepo.Update(ctx, component)
}

// List returns components for structure composition. Inactive components are
// included only on request, for historical structure views.
func (s *ComponentService) List(ctx context.Context, params *repository.ComponentFilterParams) (*pagination.PaginatedResult[entity.FeeComponent], error) {
	components, total, err := s.componentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(components, pag), nil
}

// Get retrieves a component by ID
func (s *ComponentService) Get(ctx context.Context, id uuid.UUID) (*entity.FeeComponent, error) {
	component, err := s.componentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, apperror.NewNotFoundError("Fee component")
	}
	return component, nil
}
