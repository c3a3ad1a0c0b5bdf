package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/pkg/apperror"
	"github.com/sritek/scoops-fees/pkg/clock"
)

// InstallmentService expands a structure's net amount through an EMI template
// into a persisted installment set.
type InstallmentService struct {
	installmentRepo repository.InstallmentRepository
	structureRepo   repository.FeeStructureRepository
	templateRepo    repository.TemplateRepository
	clk             clock.Clock
}

// NewInstallmentService creates a new installment service
func NewInstallmentService(
	installmentRepo repository.InstallmentRepository,
	structureRepo repository.FeeStructureRepository,
	templateRepo repository.TemplateRepository,
	clk clock.Clock,
) *InstallmentService {
	return &InstallmentService{
		installmentRepo: installmentRepo,
		structureRepo:   structureRepo,
		templateRepo:    templateRepo,
		clk:             clk,
	}
}

// InstallmentView is an installment with its derived status
type InstallmentView struct {
	entity.FeeInstallment
	Status enum.InstallmentStatus `json:"status"`
}

// MarshalJSON flattens the installment with its derived status and converts
// cents to decimals. The embedded entity's own marshaler would otherwise
// shadow the status field.
func (v InstallmentView) MarshalJSON() ([]byte, error) {
	type Alias entity.FeeInstallment
	return json.Marshal(&struct {
		Alias
		Amount     float64                `json:"amount"`
		PaidAmount float64                `json:"paid_amount"`
		Status     enum.InstallmentStatus `json:"status"`
	}{
		Alias:      Alias(v.FeeInstallment),
		Amount:     float64(v.Amount) / 100,
		PaidAmount: float64(v.PaidAmount) / 100,
		Status:     v.Status,
	})
}

// Generate expands the structure's net amount through the template and
// persists the set atomically. A structure that already has installments
// fails the call; deleting them first is a separate, explicit operation.
func (s *InstallmentService) Generate(ctx context.Context, structureID, templateID uuid.UUID, startDate time.Time) ([]InstallmentView, error) {
	structure, err := s.structureRepo.GetByID(ctx, structureID)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, apperror.NewNotFoundError("Fee structure")
	}

	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperror.NewNotFoundError("EMI plan template")
	}
	if !template.IsActive {
		return nil, apperror.NewBadRequestError("Cannot generate installments from an inactive template")
	}

	count, err := s.installmentRepo.CountByStructure(ctx, structureID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.NewConflictError("Installments already exist for this fee structure")
	}

	drafts := template.Expand(structure.NetAmount, startDate)
	installments := make([]entity.FeeInstallment, len(drafts))
	for i, d := range drafts {
		installments[i] = entity.FeeInstallment{
			FeeStructureID:    structureID,
			InstallmentNumber: d.Number,
			DueDate:           d.DueDate,
			Amount:            d.Amount,
		}
	}

	if err := s.installmentRepo.CreateSet(ctx, installments); err != nil {
		if errors.Is(err, repository.ErrInstallmentSetExists) {
			// Lost a race against a concurrent generation for this structure.
			return nil, apperror.NewConflictError("Installments already exist for this fee structure")
		}
		return nil, err
	}

	return s.withStatuses(installments), nil
}

// DeleteForStructure removes a structure's installment set so it can be
// regenerated. Refused once any payment has been recorded; payments are
// append-only and never silently discarded.
func (s *InstallmentService) DeleteForStructure(ctx context.Context, structureID uuid.UUID) error {
	structure, err := s.structureRepo.GetByID(ctx, structureID)
	if err != nil {
		return err
	}
	if structure == nil {
		return apperror.NewNotFoundError("Fee structure")
	}

	hasPayments, err := s.installmentRepo.HasPayments(ctx, structureID)
	if err != nil {
		return err
	}
	if hasPayments {
		return apperror.NewConflictError("Cannot delete installments with recorded payments")
	}

	return s.installmentRepo.DeleteByStructure(ctx, structureID)
}

// ListForStructure returns a structure's installments with derived statuses
func (s *InstallmentService) ListForStructure(ctx context.Context, structureID uuid.UUID) ([]InstallmentView, error) {
	structure, err := s.structureRepo.GetByID(ctx, structureID)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, apperror.NewNotFoundError("Fee structure")
	}

	installments, err := s.installmentRepo.ListByStructure(ctx, structureID)
	if err != nil {
		return nil, err
	}
	return s.withStatuses(installments), nil
}

// ListForStudent returns a student's installments for a session, ordered by
// due date, with derived statuses
func (s *InstallmentService) ListForStudent(ctx context.Context, studentID, sessionID uuid.UUID) ([]InstallmentView, error) {
	installments, err := s.installmentRepo.ListByStudent(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.withStatuses(installments), nil
}

func (s *InstallmentService) withStatuses(installments []entity.FeeInstallment) []InstallmentView {
	today := s.clk.Today()
	views := make([]InstallmentView, len(installments))
	for i, installment := range installments {
		views[i] = InstallmentView{
			FeeInstallment: installment,
			Status:         installment.Status(today),
		}
	}
	return views
}
