package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/pkg/apperror"
	"github.com/sritek/scoops-fees/pkg/clock"
	"github.com/sritek/scoops-fees/pkg/pagination"
	"github.com/sritek/scoops-fees/pkg/receipt"
)

type paymentFixture struct {
	svc             *PaymentService
	structureRepo   *fakeStructureRepo
	installmentRepo *fakeInstallmentRepo
	paymentRepo     *fakePaymentRepo

	structure    *entity.FeeStructure
	installments []entity.FeeInstallment
	batchID      uuid.UUID
	today        time.Time
}

// newPaymentFixture seeds one structure with three installments of 3000.00
// due at monthly intervals from today.
func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	structureRepo := newFakeStructureRepo()
	installmentRepo := newFakeInstallmentRepo(structureRepo)
	paymentRepo := newFakePaymentRepo(installmentRepo)
	today := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	ctx := context.Background()
	batchID := uuid.New()
	structure := &entity.FeeStructure{
		StudentID: uuid.New(),
		BatchID:   &batchID,
		SessionID: uuid.New(),
		NetAmount: 900000,
	}
	require.NoError(t, structureRepo.Create(ctx, structure))

	installments := make([]entity.FeeInstallment, 3)
	for i := range installments {
		installments[i] = entity.FeeInstallment{
			FeeStructureID:    structure.ID,
			InstallmentNumber: i + 1,
			DueDate:           today.AddDate(0, i, 0),
			Amount:            300000,
		}
	}
	require.NoError(t, installmentRepo.CreateSet(ctx, installments))
	listed, err := installmentRepo.ListByStructure(ctx, structure.ID)
	require.NoError(t, err)
	byNumber := make([]entity.FeeInstallment, 3)
	for _, inst := range listed {
		byNumber[inst.InstallmentNumber-1] = inst
	}

	svc := NewPaymentService(paymentRepo, installmentRepo, structureRepo, clock.Fixed{Date: today}, receipt.Header{
		SchoolName: "Test School",
	})

	return &paymentFixture{
		svc:             svc,
		structureRepo:   structureRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		structure:       structure,
		installments:    byNumber,
		batchID:         batchID,
		today:           today,
	}
}

func (f *paymentFixture) record(t *testing.T, installmentID uuid.UUID, amount float64) *RecordPaymentResult {
	t.Helper()
	result, err := f.svc.Record(context.Background(), &RecordPaymentInput{
		InstallmentID: installmentID,
		Amount:        amount,
		PaymentDate:   f.today,
		PaymentMode:   enum.PaymentModeUPI,
	})
	require.NoError(t, err)
	return result
}

func TestRecordPartialThenFullThenRejected(t *testing.T) {
	f := newPaymentFixture(t)
	installmentID := f.installments[0].ID

	first := f.record(t, installmentID, 1000)
	assert.Equal(t, enum.InstallmentStatusPartial, first.Installment.Status)
	assert.Equal(t, int64(100000), first.Installment.PaidAmount)
	assert.NotEmpty(t, first.Payment.ReceiptNo)

	f.record(t, installmentID, 1000)
	third := f.record(t, installmentID, 1000)
	assert.Equal(t, enum.InstallmentStatusPaid, third.Installment.Status)
	assert.Equal(t, int64(300000), third.Installment.PaidAmount)

	// The installment is settled; any further amount is an overpayment.
	_, err := f.svc.Record(context.Background(), &RecordPaymentInput{
		InstallmentID: installmentID,
		Amount:        1000,
		PaymentDate:   f.today,
		PaymentMode:   enum.PaymentModeUPI,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestRecordRejectsExcessEvenWhenPartiallyUnpaid(t *testing.T) {
	f := newPaymentFixture(t)
	installmentID := f.installments[0].ID

	f.record(t, installmentID, 2500)

	// 500.00 remains; 600.00 must be rejected outright, not clamped.
	_, err := f.svc.Record(context.Background(), &RecordPaymentInput{
		InstallmentID: installmentID,
		Amount:        600,
		PaymentDate:   f.today,
		PaymentMode:   enum.PaymentModeCash,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	installment, getErr := f.installmentRepo.GetByID(context.Background(), installmentID)
	require.NoError(t, getErr)
	assert.Equal(t, int64(250000), installment.PaidAmount)
}

func TestRecordValidation(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	_, err := f.svc.Record(ctx, &RecordPaymentInput{
		InstallmentID: f.installments[0].ID,
		Amount:        0,
		PaymentDate:   f.today,
		PaymentMode:   enum.PaymentModeCash,
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	_, err = f.svc.Record(ctx, &RecordPaymentInput{
		InstallmentID: uuid.New(),
		Amount:        100,
		PaymentDate:   f.today,
		PaymentMode:   enum.PaymentModeCash,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestRecordKeepsRecordingUserForAudit(t *testing.T) {
	f := newPaymentFixture(t)
	accountantID := uuid.New()

	result, err := f.svc.Record(context.Background(), &RecordPaymentInput{
		InstallmentID: f.installments[0].ID,
		Amount:        500,
		PaymentDate:   f.today,
		PaymentMode:   enum.PaymentModeCash,
		RecordedBy:    &accountantID,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Payment.RecordedBy)
	assert.Equal(t, accountantID, *result.Payment.RecordedBy)

	stored, err := f.paymentRepo.GetByID(context.Background(), result.Payment.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RecordedBy)
	assert.Equal(t, accountantID, *stored.RecordedBy)
}

func TestStudentSummary(t *testing.T) {
	f := newPaymentFixture(t)

	f.record(t, f.installments[0].ID, 3000) // paid
	f.record(t, f.installments[1].ID, 1000) // partial

	summary, err := f.svc.StudentSummary(context.Background(), f.structure.StudentID, f.structure.SessionID)

	require.NoError(t, err)
	assert.Equal(t, 9000.0, summary.TotalAmount)
	assert.Equal(t, 4000.0, summary.PaidAmount)
	assert.Equal(t, 5000.0, summary.PendingAmount)
	assert.Equal(t, 3, summary.Installments)
	assert.Equal(t, 1, summary.Paid)
	assert.Equal(t, 1, summary.Partial)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 0, summary.Overdue)
}

func TestBatchPendingInstallmentsExcludesSettled(t *testing.T) {
	f := newPaymentFixture(t)

	f.record(t, f.installments[0].ID, 3000) // settled, drops out of the view
	f.record(t, f.installments[1].ID, 500)

	result, err := f.svc.BatchPendingInstallments(context.Background(), f.batchID, f.structure.SessionID,
		&pagination.PaginationParams{Page: 1, PerPage: 15})

	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)

	for _, row := range result.Items {
		assert.Equal(t, f.structure.StudentID, row.StudentID)
		assert.True(t, row.Status.Outstanding())
	}
}

func TestReceiptForPayment(t *testing.T) {
	f := newPaymentFixture(t)

	result := f.record(t, f.installments[1].ID, 1200)

	feeReceipt, err := f.svc.ReceiptForPayment(context.Background(), result.Payment.ID)

	require.NoError(t, err)
	assert.Equal(t, "Test School", feeReceipt.Header.SchoolName)
	assert.Equal(t, result.Payment.ReceiptNo, feeReceipt.ReceiptNo)
	assert.Equal(t, 2, feeReceipt.InstallmentNumber)
	assert.Equal(t, 3, feeReceipt.InstallmentCount)
	assert.Equal(t, 1200.0, feeReceipt.AmountPaid)
	assert.Equal(t, 3000.0, feeReceipt.InstallmentAmount)
	assert.Equal(t, 1200.0, feeReceipt.TotalPaid)
	assert.Equal(t, 1800.0, feeReceipt.Balance)
	assert.Equal(t, "upi", feeReceipt.PaymentMode)
}

func TestReceiptForUnknownPayment(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.ReceiptForPayment(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
