package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	domainRepo "github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/pkg/pagination"
	"gorm.io/gorm"
)

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) domainRepo.InstallmentRepository {
	return &installmentRepository{db: db}
}

// CreateSet inserts the whole set atomically. The unique index on
// (fee_structure_id, installment_number) makes the second of two racing
// generations fail instead of double-creating.
func (r *installmentRepository) CreateSet(ctx context.Context, installments []entity.FeeInstallment) error {
	if len(installments) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.FeeInstallment{}).
			Where("fee_structure_id = ?", installments[0].FeeStructureID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainRepo.ErrInstallmentSetExists
		}
		return tx.Create(&installments).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrInstallmentSetExists
	}
	return err
}

func (r *installmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeInstallment, error) {
	var installment entity.FeeInstallment
	err := r.db.WithContext(ctx).First(&installment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &installment, err
}

func (r *installmentRepository) ListByStructure(ctx context.Context, structureID uuid.UUID) ([]entity.FeeInstallment, error) {
	var installments []entity.FeeInstallment
	err := r.db.WithContext(ctx).
		Where("fee_structure_id = ?", structureID).
		Order("installment_number ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) ListByStudent(ctx context.Context, studentID, sessionID uuid.UUID) ([]entity.FeeInstallment, error) {
	var installments []entity.FeeInstallment
	err := r.db.WithContext(ctx).
		Joins("JOIN fee_structures ON fee_structures.id = fee_installments.fee_structure_id").
		Where("fee_structures.student_id = ? AND fee_structures.session_id = ?", studentID, sessionID).
		Where("fee_structures.deleted_at IS NULL").
		Order("fee_installments.due_date ASC, fee_installments.installment_number ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) ListOutstandingByBatch(ctx context.Context, batchID, sessionID uuid.UUID, params *pagination.PaginationParams) ([]domainRepo.BatchInstallment, int64, error) {
	var rows []domainRepo.BatchInstallment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.FeeInstallment{}).
		Joins("JOIN fee_structures ON fee_structures.id = fee_installments.fee_structure_id").
		Where("fee_structures.batch_id = ? AND fee_structures.session_id = ?", batchID, sessionID).
		Where("fee_structures.deleted_at IS NULL").
		Where("fee_installments.paid_amount < fee_installments.amount")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.
		Select("fee_installments.*, fee_structures.student_id AS student_id").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("fee_installments.due_date ASC, fee_installments.installment_number ASC").
		Find(&rows).Error

	return rows, total, err
}

func (r *installmentRepository) CountByStructure(ctx context.Context, structureID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.FeeInstallment{}).
		Where("fee_structure_id = ?", structureID).
		Count(&count).Error
	return count, err
}

func (r *installmentRepository) HasPayments(ctx context.Context, structureID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.InstallmentPayment{}).
		Joins("JOIN fee_installments ON fee_installments.id = installment_payments.installment_id").
		Where("fee_installments.fee_structure_id = ?", structureID).
		Count(&count).Error
	return count > 0, err
}

func (r *installmentRepository) DeleteByStructure(ctx context.Context, structureID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.FeeInstallment{}, "fee_structure_id = ?", structureID).Error
}
