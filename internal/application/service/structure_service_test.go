package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/pkg/apperror"
)

type structureFixture struct {
	svc             *StructureService
	componentRepo   *fakeComponentRepo
	scholarshipRepo *fakeScholarshipRepo
	assignmentRepo  *fakeAssignmentRepo
	structureRepo   *fakeStructureRepo
	installmentRepo *fakeInstallmentRepo

	tuition   *entity.FeeComponent
	transport *entity.FeeComponent
	sessionID uuid.UUID
}

func newStructureFixture(t *testing.T) *structureFixture {
	t.Helper()

	componentRepo := newFakeComponentRepo()
	scholarshipRepo := newFakeScholarshipRepo()
	assignmentRepo := newFakeAssignmentRepo(scholarshipRepo)
	structureRepo := newFakeStructureRepo()
	installmentRepo := newFakeInstallmentRepo(structureRepo)

	ctx := context.Background()
	tuition := &entity.FeeComponent{Name: "Tuition", Type: enum.ComponentTypeTuition, IsActive: true}
	transport := &entity.FeeComponent{Name: "Transport", Type: enum.ComponentTypeTransport, IsActive: true}
	require.NoError(t, componentRepo.Create(ctx, tuition))
	require.NoError(t, componentRepo.Create(ctx, transport))

	return &structureFixture{
		svc:             NewStructureService(structureRepo, componentRepo, assignmentRepo, installmentRepo),
		componentRepo:   componentRepo,
		scholarshipRepo: scholarshipRepo,
		assignmentRepo:  assignmentRepo,
		structureRepo:   structureRepo,
		installmentRepo: installmentRepo,
		tuition:         tuition,
		transport:       transport,
		sessionID:       uuid.New(),
	}
}

func (f *structureFixture) buildInput(studentID uuid.UUID) *BuildInput {
	return &BuildInput{
		StudentID: studentID,
		SessionID: f.sessionID,
		Components: []ComponentAmountInput{
			{ComponentID: f.tuition.ID, Amount: 7000},
			{ComponentID: f.transport.ID, Amount: 3000},
		},
	}
}

func (f *structureFixture) assign(t *testing.T, studentID uuid.UUID, s entity.Scholarship) {
	t.Helper()
	ctx := context.Background()
	s.IsActive = true
	require.NoError(t, f.scholarshipRepo.Create(ctx, &s))
	require.NoError(t, f.assignmentRepo.Create(ctx, &entity.StudentScholarship{
		StudentID:     studentID,
		ScholarshipID: s.ID,
		SessionID:     f.sessionID,
	}))
}

func TestBuildComputesAmounts(t *testing.T) {
	f := newStructureFixture(t)
	studentID := uuid.New()
	f.assign(t, studentID, entity.Scholarship{
		Name:          "Merit 10%",
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	})

	structure, err := f.svc.Build(context.Background(), f.buildInput(studentID))

	require.NoError(t, err)
	assert.Equal(t, int64(1000000), structure.GrossAmount)
	assert.Equal(t, int64(100000), structure.ScholarshipAmount)
	assert.Equal(t, int64(900000), structure.NetAmount)
	require.Len(t, structure.Components, 2)
	assert.Equal(t, "Tuition", structure.Components[0].Name)
	assert.Equal(t, int64(700000), structure.Components[0].Amount)
}

func TestBuildSnapshotsSurviveRegistryChanges(t *testing.T) {
	f := newStructureFixture(t)
	ctx := context.Background()

	structure, err := f.svc.Build(ctx, f.buildInput(uuid.New()))
	require.NoError(t, err)

	// Renaming the registry component later must not touch the snapshot.
	f.tuition.Name = "Tuition (revised)"
	require.NoError(t, f.componentRepo.Update(ctx, f.tuition))

	stored, err := f.svc.Get(ctx, structure.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tuition", stored.Components[0].Name)
}

func TestBuildNetNeverNegative(t *testing.T) {
	f := newStructureFixture(t)
	studentID := uuid.New()
	f.assign(t, studentID, entity.Scholarship{
		Name:          "Oversized aid",
		DiscountType:  enum.DiscountTypeFixedAmount,
		DiscountValue: decimal.NewFromInt(999999),
	})

	structure, err := f.svc.Build(context.Background(), f.buildInput(studentID))

	require.NoError(t, err)
	assert.Equal(t, int64(0), structure.NetAmount)
	assert.Equal(t, structure.GrossAmount, structure.ScholarshipAmount)
}

func TestBuildDuplicateRejectedWithoutOverwrite(t *testing.T) {
	f := newStructureFixture(t)
	ctx := context.Background()
	studentID := uuid.New()

	_, err := f.svc.Build(ctx, f.buildInput(studentID))
	require.NoError(t, err)

	_, err = f.svc.Build(ctx, f.buildInput(studentID))
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestBuildOverwriteReplacesStructure(t *testing.T) {
	f := newStructureFixture(t)
	ctx := context.Background()
	studentID := uuid.New()

	first, err := f.svc.Build(ctx, f.buildInput(studentID))
	require.NoError(t, err)

	input := f.buildInput(studentID)
	input.OverwriteExisting = true
	second, err := f.svc.Build(ctx, input)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	gone, err := f.structureRepo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestBuildOverwriteRefusedWithPayments(t *testing.T) {
	f := newStructureFixture(t)
	ctx := context.Background()
	studentID := uuid.New()

	structure, err := f.svc.Build(ctx, f.buildInput(studentID))
	require.NoError(t, err)

	installment := entity.FeeInstallment{
		FeeStructureID:    structure.ID,
		InstallmentNumber: 1,
		DueDate:           time.Now(),
		Amount:            900000,
	}
	require.NoError(t, f.installmentRepo.CreateSet(ctx, []entity.FeeInstallment{installment}))

	paymentRepo := newFakePaymentRepo(f.installmentRepo)
	var installmentID uuid.UUID
	for id := range f.installmentRepo.installments {
		installmentID = id
	}
	_, err = paymentRepo.ApplyPayment(ctx, &entity.InstallmentPayment{
		InstallmentID: installmentID,
		Amount:        100000,
	})
	require.NoError(t, err)

	input := f.buildInput(studentID)
	input.OverwriteExisting = true
	_, err = f.svc.Build(ctx, input)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestBuildValidation(t *testing.T) {
	f := newStructureFixture(t)
	ctx := context.Background()

	t.Run("unknown component", func(t *testing.T) {
		input := f.buildInput(uuid.New())
		input.Components[0].ComponentID = uuid.New()
		_, err := f.svc.Build(ctx, input)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("inactive component", func(t *testing.T) {
		f.transport.IsActive = false
		require.NoError(t, f.componentRepo.Update(ctx, f.transport))
		defer func() {
			f.transport.IsActive = true
			require.NoError(t, f.componentRepo.Update(ctx, f.transport))
		}()

		_, err := f.svc.Build(ctx, f.buildInput(uuid.New()))
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("component listed twice", func(t *testing.T) {
		input := f.buildInput(uuid.New())
		input.Components[1].ComponentID = f.tuition.ID
		_, err := f.svc.Build(ctx, input)
		require.Error(t, err)
		assert.Equal(t, 422, apperror.GetAppError(err).Code)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		input := f.buildInput(uuid.New())
		input.Components[0].Amount = 0
		_, err := f.svc.Build(ctx, input)
		require.Error(t, err)
		assert.Equal(t, 422, apperror.GetAppError(err).Code)
	})

	t.Run("no components", func(t *testing.T) {
		input := f.buildInput(uuid.New())
		input.Components = nil
		_, err := f.svc.Build(ctx, input)
		require.Error(t, err)
		assert.Equal(t, 422, apperror.GetAppError(err).Code)
	})
}

func TestApplyToBatchCountsOutcomes(t *testing.T) {
	f := newStructureFixture(t)
	ctx := context.Background()

	existing := uuid.New()
	fresh1 := uuid.New()
	fresh2 := uuid.New()

	_, err := f.svc.Build(ctx, f.buildInput(existing))
	require.NoError(t, err)

	batchID := uuid.New()
	result, err := f.svc.ApplyToBatch(ctx, &ApplyToBatchInput{
		BatchID:    batchID,
		SessionID:  f.sessionID,
		StudentIDs: []uuid.UUID{existing, fresh1, fresh2},
		Components: []ComponentAmountInput{
			{ComponentID: f.tuition.ID, Amount: 7000},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	assert.Contains(t, result.Reasons, existing)

	structure, err := f.structureRepo.GetActiveByStudentSession(ctx, fresh1, f.sessionID)
	require.NoError(t, err)
	require.NotNil(t, structure)
	require.NotNil(t, structure.BatchID)
	assert.Equal(t, batchID, *structure.BatchID)
}

func TestApplyToBatchRequiresStudents(t *testing.T) {
	f := newStructureFixture(t)

	_, err := f.svc.ApplyToBatch(context.Background(), &ApplyToBatchInput{
		BatchID:   uuid.New(),
		SessionID: f.sessionID,
	})

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}
