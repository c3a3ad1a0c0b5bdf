package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// ErrDuplicateStructure is returned by Create when an active structure
// already exists for the (student, session) pair. The partial unique index
// raises it even when two builds race.
var ErrDuplicateStructure = errors.New("fee structure already exists for student and session")

// FeeStructureRepository defines the interface for fee structure data operations
type FeeStructureRepository interface {
	// Create persists the structure together with its component snapshots in
	// one transaction. Returns ErrDuplicateStructure on a (student, session)
	// uniqueness violation.
	Create(ctx context.Context, structure *entity.FeeStructure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error)
	// GetActiveByStudentSession returns the active structure for the pair, or nil.
	GetActiveByStudentSession(ctx context.Context, studentID, sessionID uuid.UUID) (*entity.FeeStructure, error)
	// GetWithDetails loads the structure with component snapshots and installments.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, params *StructureFilterParams) ([]entity.FeeStructure, int64, error)
	// DeleteCascade soft-deletes the structure, its component snapshots and
	// its installments in one transaction. The caller checks for recorded
	// payments first.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// StructureFilterParams contains filtering parameters for structure queries
type StructureFilterParams struct {
	Pagination *pagination.PaginationParams
	SessionID  *uuid.UUID
	BatchID    *uuid.UUID
}
