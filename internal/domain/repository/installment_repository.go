package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// Sentinel errors for installment and payment operations. Repositories
// surface these; services map them to typed application errors.
var (
	// ErrInstallmentSetExists is returned by CreateSet when installments
	// already exist for the structure (including a concurrent generation that
	// won the race on the unique index).
	ErrInstallmentSetExists = errors.New("installments already exist for fee structure")
	// ErrOverpayment is returned by ApplyPayment when the conditional update
	// finds that paidAmount + amount would exceed the installment amount.
	ErrOverpayment = errors.New("payment exceeds installment balance")
)

// InstallmentRepository defines the interface for installment data operations
type InstallmentRepository interface {
	// CreateSet inserts the whole installment set in one transaction,
	// all-or-nothing. Returns ErrInstallmentSetExists if any installment for
	// the structure is already present.
	CreateSet(ctx context.Context, installments []entity.FeeInstallment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeInstallment, error)
	ListByStructure(ctx context.Context, structureID uuid.UUID) ([]entity.FeeInstallment, error)
	// ListByStudent returns installments across the student's active
	// structures for the session, ordered by due date.
	ListByStudent(ctx context.Context, studentID, sessionID uuid.UUID) ([]entity.FeeInstallment, error)
	// ListOutstandingByBatch returns installments with an unpaid balance
	// (paid_amount < amount) across all structures of a batch for the
	// session, with pagination. Outstanding covers exactly the pending,
	// partial and overdue statuses, so the date-dependent split is derived
	// afterwards.
	ListOutstandingByBatch(ctx context.Context, batchID, sessionID uuid.UUID, params *pagination.PaginationParams) ([]BatchInstallment, int64, error)
	CountByStructure(ctx context.Context, structureID uuid.UUID) (int64, error)
	// HasPayments reports whether any payment is recorded against any
	// installment of the structure.
	HasPayments(ctx context.Context, structureID uuid.UUID) (bool, error)
	// DeleteByStructure soft-deletes all installments of a structure.
	DeleteByStructure(ctx context.Context, structureID uuid.UUID) error
}

// BatchInstallment pairs an installment with the identity of the student it
// belongs to, for batch-level views.
type BatchInstallment struct {
	entity.FeeInstallment
	StudentID uuid.UUID `json:"student_id"`
}

// PaymentRepository defines the interface for installment payment data operations
type PaymentRepository interface {
	// ApplyPayment appends the payment and bumps the installment's
	// paid_amount in one transaction. The paid_amount update is a conditional
	// write (only when paid_amount + amount <= amount), so concurrent
	// payments against the same installment serialize the overpayment check.
	// Returns the updated installment, ErrOverpayment when the guard fails,
	// or (nil, nil) when the installment does not exist.
	ApplyPayment(ctx context.Context, payment *entity.InstallmentPayment) (*entity.FeeInstallment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InstallmentPayment, error)
	ListByInstallment(ctx context.Context, installmentID uuid.UUID) ([]entity.InstallmentPayment, error)
}
