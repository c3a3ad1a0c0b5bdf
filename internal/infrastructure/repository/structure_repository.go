package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	domainRepo "github.com/sritek/scoops-fees/internal/domain/repository"
	"gorm.io/gorm"
)

type feeStructureRepository struct {
	db *gorm.DB
}

// NewFeeStructureRepository creates a new fee structure repository
func NewFeeStructureRepository(db *gorm.DB) domainRepo.FeeStructureRepository {
	return &feeStructureRepository{db: db}
}

// Create persists the structure and its component snapshots in one
// transaction. The partial unique index on (student_id, session_id) turns a
// racing duplicate build into ErrDuplicateStructure instead of a second row.
func (r *feeStructureRepository) Create(ctx context.Context, structure *entity.FeeStructure) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(structure).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateStructure
	}
	return err
}

func (r *feeStructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	var structure entity.FeeStructure
	err := r.db.WithContext(ctx).First(&structure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &structure, err
}

func (r *feeStructureRepository) GetActiveByStudentSession(ctx context.Context, studentID, sessionID uuid.UUID) (*entity.FeeStructure, error) {
	var structure entity.FeeStructure
	err := r.db.WithContext(ctx).
		First(&structure, "student_id = ? AND session_id = ?", studentID, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &structure, err
}

func (r *feeStructureRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	var structure entity.FeeStructure
	err := r.db.WithContext(ctx).
		Preload("Components").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("fee_installments.installment_number ASC")
		}).
		First(&structure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &structure, err
}

func (r *feeStructureRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, params *domainRepo.StructureFilterParams) ([]entity.FeeStructure, int64, error) {
	var structures []entity.FeeStructure
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.FeeStructure{}).
		Where("student_id = ?", studentID)
	if params.SessionID != nil {
		query = query.Where("session_id = ?", *params.SessionID)
	}
	if params.BatchID != nil {
		query = query.Where("batch_id = ?", *params.BatchID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Components").
		Order("created_at DESC").
		Find(&structures).Error

	return structures, total, err
}

// DeleteCascade soft-deletes the structure with its snapshots and
// installments. Payments are append-only and never deleted; the service
// refuses the cascade when any exist.
func (r *feeStructureRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.FeeInstallment{}, "fee_structure_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.FeeStructureComponent{}, "fee_structure_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.FeeStructure{}, "id = ?", id).Error
	})
}
