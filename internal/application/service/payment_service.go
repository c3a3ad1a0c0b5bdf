package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/pkg/apperror"
	"github.com/sritek/scoops-fees/pkg/clock"
	"github.com/sritek/scoops-fees/pkg/pagination"
	"github.com/sritek/scoops-fees/pkg/receipt"
	"github.com/sritek/scoops-fees/pkg/utils"
)

// PaymentService records payments against installments and derives statuses
// and summaries.
type PaymentService struct {
	paymentRepo     repository.PaymentRepository
	installmentRepo repository.InstallmentRepository
	structureRepo   repository.FeeStructureRepository
	clk             clock.Clock
	receiptHeader   receipt.Header
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	installmentRepo repository.InstallmentRepository,
	structureRepo repository.FeeStructureRepository,
	clk clock.Clock,
	receiptHeader receipt.Header,
) *PaymentService {
	return &PaymentService{
		paymentRepo:     paymentRepo,
		installmentRepo: installmentRepo,
		structureRepo:   structureRepo,
		clk:             clk,
		receiptHeader:   receiptHeader,
	}
}

// RecordPaymentInput represents the record payment input. RecordedBy is the
// authenticated user recording the payment, kept for audit.
type RecordPaymentInput struct {
	InstallmentID uuid.UUID
	Amount        float64
	PaymentDate   time.Time
	PaymentMode   enum.PaymentMode
	TransactionID *string
	RecordedBy    *uuid.UUID
}

// RecordPaymentResult pairs the appended payment with the updated installment
type RecordPaymentResult struct {
	Payment     *entity.InstallmentPayment `json:"payment"`
	Installment InstallmentView            `json:"installment"`
}

// Record appends a payment to an installment. Partial payments are fine; a
// payment that would push the paid amount past the installment amount is
// rejected outright and leaves all state unchanged; the caller must split or
// reduce it.
func (s *PaymentService) Record(ctx context.Context, input *RecordPaymentInput) (*RecordPaymentResult, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "Payment amount must be positive"},
		})
	}
	if !input.PaymentMode.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_mode", Message: "Unknown payment mode"},
		})
	}

	payment := &entity.InstallmentPayment{
		InstallmentID: input.InstallmentID,
		Amount:        toCents(input.Amount),
		PaymentDate:   input.PaymentDate,
		PaymentMode:   input.PaymentMode,
		TransactionID: input.TransactionID,
		ReceiptNo:     utils.GenerateReceiptNo(),
		RecordedBy:    input.RecordedBy,
	}

	installment, err := s.paymentRepo.ApplyPayment(ctx, payment)
	if err != nil {
		if err == repository.ErrOverpayment {
			return nil, apperror.NewBusinessRuleError("Payment exceeds the installment balance; overpayment is not allowed")
		}
		return nil, err
	}
	if installment == nil {
		return nil, apperror.NewNotFoundError("Installment")
	}

	return &RecordPaymentResult{
		Payment: payment,
		Installment: InstallmentView{
			FeeInstallment: *installment,
			Status:         installment.Status(s.clk.Today()),
		},
	}, nil
}

// StudentFeeSummary aggregates a student's installments for a session
type StudentFeeSummary struct {
	StudentID     uuid.UUID `json:"student_id"`
	SessionID     uuid.UUID `json:"session_id"`
	TotalAmount   float64   `json:"total_amount"`
	PaidAmount    float64   `json:"paid_amount"`
	PendingAmount float64   `json:"pending_amount"`
	Installments  int       `json:"installments"`
	Paid          int       `json:"paid"`
	Partial       int       `json:"partial"`
	Pending       int       `json:"pending"`
	Overdue       int       `json:"overdue"`
}

// StudentSummary folds the student's installments across active structures
// into totals and per-status counts.
func (s *PaymentService) StudentSummary(ctx context.Context, studentID, sessionID uuid.UUID) (*StudentFeeSummary, error) {
	installments, err := s.installmentRepo.ListByStudent(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}

	today := s.clk.Today()
	summary := &StudentFeeSummary{
		StudentID:    studentID,
		SessionID:    sessionID,
		Installments: len(installments),
	}

	var totalCents, paidCents int64
	for _, installment := range installments {
		totalCents += installment.Amount
		paidCents += installment.PaidAmount

		switch installment.Status(today) {
		case enum.InstallmentStatusPaid:
			summary.Paid++
		case enum.InstallmentStatusPartial:
			summary.Partial++
		case enum.InstallmentStatusOverdue:
			summary.Overdue++
		default:
			summary.Pending++
		}
	}

	summary.TotalAmount = float64(totalCents) / 100
	summary.PaidAmount = float64(paidCents) / 100
	summary.PendingAmount = float64(totalCents-paidCents) / 100
	return summary, nil
}

// BatchInstallmentView is one outstanding installment in the batch view,
// tagged with the student it belongs to.
type BatchInstallmentView struct {
	entity.FeeInstallment
	StudentID uuid.UUID              `json:"student_id"`
	Status    enum.InstallmentStatus `json:"status"`
}

// MarshalJSON flattens the row with student and status; see InstallmentView.
func (v BatchInstallmentView) MarshalJSON() ([]byte, error) {
	type Alias entity.FeeInstallment
	return json.Marshal(&struct {
		Alias
		Amount     float64                `json:"amount"`
		PaidAmount float64                `json:"paid_amount"`
		StudentID  uuid.UUID              `json:"student_id"`
		Status     enum.InstallmentStatus `json:"status"`
	}{
		Alias:      Alias(v.FeeInstallment),
		Amount:     float64(v.Amount) / 100,
		PaidAmount: float64(v.PaidAmount) / 100,
		StudentID:  v.StudentID,
		Status:     v.Status,
	})
}

// BatchPendingInstallments lists installments with an outstanding balance
// across all students of a batch, with their derived statuses.
func (s *PaymentService) BatchPendingInstallments(ctx context.Context, batchID, sessionID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[BatchInstallmentView], error) {
	rows, total, err := s.installmentRepo.ListOutstandingByBatch(ctx, batchID, sessionID, params)
	if err != nil {
		return nil, err
	}

	today := s.clk.Today()
	views := make([]BatchInstallmentView, len(rows))
	for i, row := range rows {
		views[i] = BatchInstallmentView{
			FeeInstallment: row.FeeInstallment,
			StudentID:      row.StudentID,
			Status:         row.Status(today),
		}
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(views, pag), nil
}

// ReceiptForPayment composes the printable receipt for one recorded payment.
// The receipt is a read-only projection; dispatching it is the caller's job.
func (s *PaymentService) ReceiptForPayment(ctx context.Context, paymentID uuid.UUID) (*receipt.FeeReceipt, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	installment, err := s.installmentRepo.GetByID(ctx, payment.InstallmentID)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, apperror.NewNotFoundError("Installment")
	}

	count, err := s.installmentRepo.CountByStructure(ctx, installment.FeeStructureID)
	if err != nil {
		return nil, err
	}

	transactionID := ""
	if payment.TransactionID != nil {
		transactionID = *payment.TransactionID
	}

	return &receipt.FeeReceipt{
		Header:            s.receiptHeader,
		ReceiptNo:         payment.ReceiptNo,
		InstallmentNumber: installment.InstallmentNumber,
		InstallmentCount:  int(count),
		PaymentDate:       payment.PaymentDate,
		PaymentMode:       payment.PaymentMode.String(),
		TransactionID:     transactionID,
		AmountPaid:        float64(payment.Amount) / 100,
		InstallmentAmount: float64(installment.Amount) / 100,
		TotalPaid:         float64(installment.PaidAmount) / 100,
		Balance:           float64(installment.Remaining()) / 100,
	}, nil
}
