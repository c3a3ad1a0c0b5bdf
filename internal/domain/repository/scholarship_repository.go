package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// ScholarshipRepository defines the interface for scholarship data operations
type ScholarshipRepository interface {
	Create(ctx context.Context, scholarship *entity.Scholarship) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Scholarship, error)
	Update(ctx context.Context, scholarship *entity.Scholarship) error
	List(ctx context.Context, params *ScholarshipFilterParams) ([]entity.Scholarship, int64, error)
}

// ScholarshipFilterParams contains filtering parameters for scholarship queries
type ScholarshipFilterParams struct {
	Pagination      *pagination.PaginationParams
	Search          string
	IncludeInactive bool
}

// StudentScholarshipRepository defines the interface for scholarship
// assignment data operations
type StudentScholarshipRepository interface {
	Create(ctx context.Context, assignment *entity.StudentScholarship) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StudentScholarship, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListActiveForStudent returns the student's assignments for a session in
	// assignment order (creation order), with the scholarship preloaded. Only
	// assignments whose scholarship is still active are returned.
	ListActiveForStudent(ctx context.Context, studentID, sessionID uuid.UUID) ([]entity.StudentScholarship, error)
}
