package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// TemplateRepository defines the interface for EMI plan template data operations
type TemplateRepository interface {
	Create(ctx context.Context, template *entity.EMIPlanTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EMIPlanTemplate, error)
	Update(ctx context.Context, template *entity.EMIPlanTemplate) error
	List(ctx context.Context, params *TemplateFilterParams) ([]entity.EMIPlanTemplate, int64, error)
}

// TemplateFilterParams contains filtering parameters for template queries
type TemplateFilterParams struct {
	Pagination      *pagination.PaginationParams
	Search          string
	IncludeInactive bool
}
