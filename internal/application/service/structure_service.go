package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/pkg/apperror"
)

// StructureService builds fee structures: component snapshots summed to a
// gross amount, scholarship discounts resolved against it, and the net
// payable amount derived.
type StructureService struct {
	structureRepo   repository.FeeStructureRepository
	componentRepo   repository.ComponentRepository
	assignmentRepo  repository.StudentScholarshipRepository
	installmentRepo repository.InstallmentRepository
}

// NewStructureService creates a new fee structure service
func NewStructureService(
	structureRepo repository.FeeStructureRepository,
	componentRepo repository.ComponentRepository,
	assignmentRepo repository.StudentScholarshipRepository,
	installmentRepo repository.InstallmentRepository,
) *StructureService {
	return &StructureService{
		structureRepo:   structureRepo,
		componentRepo:   componentRepo,
		assignmentRepo:  assignmentRepo,
		installmentRepo: installmentRepo,
	}
}

// ComponentAmountInput is one component line of a build: which registry
// component, and the amount charged for it in this structure.
type ComponentAmountInput struct {
	ComponentID uuid.UUID
	Amount      float64
}

// BuildInput represents the build fee structure input
type BuildInput struct {
	StudentID         uuid.UUID
	BatchID           *uuid.UUID
	SessionID         uuid.UUID
	Components        []ComponentAmountInput
	OverwriteExisting bool
}

// Build creates the fee structure for one (student, session) pair. An
// existing active structure fails the build unless OverwriteExisting is set,
// in which case the old structure and its installments are invalidated first;
// that cascade is refused once payments exist.
func (s *StructureService) Build(ctx context.Context, input *BuildInput) (*entity.FeeStructure, error) {
	snapshots, gross, err := s.snapshotComponents(ctx, input.Components)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListActiveForStudent(ctx, input.StudentID, input.SessionID)
	if err != nil {
		return nil, err
	}

	discount, _, err := resolveDiscount(snapshots, assignments)
	if err != nil {
		return nil, err
	}

	net := gross - discount
	if net < 0 {
		net = 0
	}

	existing, err := s.structureRepo.GetActiveByStudentSession(ctx, input.StudentID, input.SessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !input.OverwriteExisting {
			return nil, apperror.NewConflictError("A fee structure already exists for this student and session")
		}
		hasPayments, err := s.installmentRepo.HasPayments(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if hasPayments {
			return nil, apperror.NewConflictError("Cannot overwrite a fee structure with recorded payments")
		}
		if err := s.structureRepo.DeleteCascade(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	structure := &entity.FeeStructure{
		StudentID:         input.StudentID,
		BatchID:           input.BatchID,
		SessionID:         input.SessionID,
		GrossAmount:       gross,
		ScholarshipAmount: discount,
		NetAmount:         net,
		Components:        snapshots,
	}
	if err := s.structureRepo.Create(ctx, structure); err != nil {
		if errors.Is(err, repository.ErrDuplicateStructure) {
			// Lost a race against a concurrent build for the same pair.
			return nil, apperror.NewConflictError("A fee structure already exists for this student and session")
		}
		return nil, err
	}
	return structure, nil
}

// snapshotComponents validates the component lines and captures value
// snapshots, so later registry changes never alter this structure.
func (s *StructureService) snapshotComponents(ctx context.Context, inputs []ComponentAmountInput) ([]entity.FeeStructureComponent, int64, error) {
	if len(inputs) == 0 {
		return nil, 0, apperror.NewValidationError([]apperror.FieldError{
			{Field: "components", Message: "At least one component is required"},
		})
	}

	ids := make([]uuid.UUID, len(inputs))
	for i, in := range inputs {
		if in.Amount <= 0 {
			return nil, 0, apperror.NewValidationError([]apperror.FieldError{
				{Field: "components", Message: fmt.Sprintf("Component %s amount must be positive", in.ComponentID)},
			})
		}
		ids[i] = in.ComponentID
	}

	components, err := s.componentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	componentMap := make(map[uuid.UUID]*entity.FeeComponent, len(components))
	for i := range components {
		componentMap[components[i].ID] = &components[i]
	}

	snapshots := make([]entity.FeeStructureComponent, 0, len(inputs))
	seen := make(map[uuid.UUID]bool, len(inputs))
	var gross int64

	for _, in := range inputs {
		component, exists := componentMap[in.ComponentID]
		if !exists {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Fee component %s", in.ComponentID))
		}
		if !component.IsActive {
			return nil, 0, apperror.NewBadRequestError(fmt.Sprintf("Fee component %q is inactive", component.Name))
		}
		if seen[in.ComponentID] {
			return nil, 0, apperror.NewValidationError([]apperror.FieldError{
				{Field: "components", Message: fmt.Sprintf("Component %q listed twice", component.Name)},
			})
		}
		seen[in.ComponentID] = true

		amountCents := toCents(in.Amount)
		gross += amountCents
		snapshots = append(snapshots, entity.FeeStructureComponent{
			ComponentID: component.ID,
			Name:        component.Name,
			Type:        component.Type,
			Amount:      amountCents,
		})
	}

	return snapshots, gross, nil
}

// ApplyToBatchInput represents the bulk apply input: one component
// configuration applied to many students of a batch.
type ApplyToBatchInput struct {
	BatchID           uuid.UUID
	SessionID         uuid.UUID
	StudentIDs        []uuid.UUID
	Components        []ComponentAmountInput
	OverwriteExisting bool
}

// BatchApplyResult tallies a bulk apply. Skipped counts students who already
// had a structure (without overwrite); Failed counts students whose build
// errored for any other reason.
type BatchApplyResult struct {
	Applied int                  `json:"applied"`
	Skipped int                  `json:"skipped"`
	Failed  int                  `json:"failed"`
	Reasons map[uuid.UUID]string `json:"reasons,omitempty"`
}

// ApplyToBatch builds one structure per student as independent attempts.
// The operation is deliberately not transactional across students: a failure
// for one student is counted and the rest proceed, and re-running it is safe
// because each student's build is individually guarded by the duplicate
// check.
func (s *StructureService) ApplyToBatch(ctx context.Context, input *ApplyToBatchInput) (*BatchApplyResult, error) {
	if len(input.StudentIDs) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "student_ids", Message: "At least one student is required"},
		})
	}

	result := &BatchApplyResult{Reasons: make(map[uuid.UUID]string)}
	batchID := input.BatchID

	for _, studentID := range input.StudentIDs {
		_, err := s.Build(ctx, &BuildInput{
			StudentID:         studentID,
			BatchID:           &batchID,
			SessionID:         input.SessionID,
			Components:        input.Components,
			OverwriteExisting: input.OverwriteExisting,
		})
		if err == nil {
			result.Applied++
			continue
		}

		appErr := apperror.GetAppError(err)
		if appErr.Code == 409 {
			result.Skipped++
		} else {
			result.Failed++
		}
		result.Reasons[studentID] = appErr.Message
	}

	if len(result.Reasons) == 0 {
		result.Reasons = nil
	}
	return result, nil
}

// Get retrieves a structure with its component snapshots and installments
func (s *StructureService) Get(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	structure, err := s.structureRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, apperror.NewNotFoundError("Fee structure")
	}
	return structure, nil
}
