package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// ComponentRepository defines the interface for fee component data operations
type ComponentRepository interface {
	Create(ctx context.Context, component *entity.FeeComponent) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeComponent, error)
	// GetActiveByName returns the active component with the given name, or nil.
	GetActiveByName(ctx context.Context, name string) (*entity.FeeComponent, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.FeeComponent, error)
	Update(ctx context.Context, component *entity.FeeComponent) error
	List(ctx context.Context, params *ComponentFilterParams) ([]entity.FeeComponent, int64, error)
}

// ComponentFilterParams contains filtering parameters for component queries
type ComponentFilterParams struct {
	Pagination      *pagination.PaginationParams
	Search          string
	IncludeInactive bool
}
