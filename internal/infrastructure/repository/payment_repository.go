package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	domainRepo "github.com/sritek/scoops-fees/internal/domain/repository"
	"gorm.io/gorm"
)

// errInstallmentMissing aborts the ApplyPayment transaction when the target
// installment does not exist; the caller sees (nil, nil).
var errInstallmentMissing = errors.New("installment missing")

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new installment payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

// ApplyPayment serializes the overpayment check with a conditional update:
// paid_amount only moves when paid_amount + amount still fits inside the
// installment amount. Concurrent payments against the same installment hit
// the same row guard, so the losing one fails instead of overshooting. The
// payment row commits in the same transaction as the balance update.
func (r *paymentRepository) ApplyPayment(ctx context.Context, payment *entity.InstallmentPayment) (*entity.FeeInstallment, error) {
	var installment entity.FeeInstallment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.FeeInstallment{}).
			Where("id = ? AND paid_amount + ? <= amount", payment.InstallmentID, payment.Amount).
			Update("paid_amount", gorm.Expr("paid_amount + ?", payment.Amount))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&entity.FeeInstallment{}).
				Where("id = ?", payment.InstallmentID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return errInstallmentMissing
			}
			return domainRepo.ErrOverpayment
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return tx.First(&installment, "id = ?", payment.InstallmentID).Error
	})

	if errors.Is(err, errInstallmentMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InstallmentPayment, error) {
	var payment entity.InstallmentPayment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) ListByInstallment(ctx context.Context, installmentID uuid.UUID) ([]entity.InstallmentPayment, error) {
	var payments []entity.InstallmentPayment
	err := r.db.WithContext(ctx).
		Where("installment_id = ?", installmentID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}
