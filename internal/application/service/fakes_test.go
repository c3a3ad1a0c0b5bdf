package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	"github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// In-memory repository fakes. They implement the same sentinel-error
// contracts as the GORM implementations so services can be tested without a
// database.

type fakeComponentRepo struct {
	components map[uuid.UUID]*entity.FeeComponent
}

func newFakeComponentRepo() *fakeComponentRepo {
	return &fakeComponentRepo{components: make(map[uuid.UUID]*entity.FeeComponent)}
}

func (r *fakeComponentRepo) Create(_ context.Context, component *entity.FeeComponent) error {
	if component.ID == uuid.Nil {
		component.ID = uuid.New()
	}
	stored := *component
	r.components[component.ID] = &stored
	return nil
}

func (r *fakeComponentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.FeeComponent, error) {
	component, ok := r.components[id]
	if !ok {
		return nil, nil
	}
	copied := *component
	return &copied, nil
}

func (r *fakeComponentRepo) GetActiveByName(_ context.Context, name string) (*entity.FeeComponent, error) {
	for _, c := range r.components {
		if c.IsActive && strings.EqualFold(c.Name, name) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeComponentRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.FeeComponent, error) {
	var out []entity.FeeComponent
	for _, id := range ids {
		if c, ok := r.components[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeComponentRepo) Update(_ context.Context, component *entity.FeeComponent) error {
	stored := *component
	r.components[component.ID] = &stored
	return nil
}

func (r *fakeComponentRepo) List(_ context.Context, params *repository.ComponentFilterParams) ([]entity.FeeComponent, int64, error) {
	var out []entity.FeeComponent
	for _, c := range r.components {
		if !params.IncludeInactive && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeScholarshipRepo struct {
	scholarships map[uuid.UUID]*entity.Scholarship
}

func newFakeScholarshipRepo() *fakeScholarshipRepo {
	return &fakeScholarshipRepo{scholarships: make(map[uuid.UUID]*entity.Scholarship)}
}

func (r *fakeScholarshipRepo) Create(_ context.Context, scholarship *entity.Scholarship) error {
	if scholarship.ID == uuid.Nil {
		scholarship.ID = uuid.New()
	}
	stored := *scholarship
	r.scholarships[scholarship.ID] = &stored
	return nil
}

func (r *fakeScholarshipRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Scholarship, error) {
	s, ok := r.scholarships[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeScholarshipRepo) Update(_ context.Context, scholarship *entity.Scholarship) error {
	stored := *scholarship
	r.scholarships[scholarship.ID] = &stored
	return nil
}

func (r *fakeScholarshipRepo) List(_ context.Context, params *repository.ScholarshipFilterParams) ([]entity.Scholarship, int64, error) {
	var out []entity.Scholarship
	for _, s := range r.scholarships {
		if !params.IncludeInactive && !s.IsActive {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeAssignmentRepo struct {
	assignments []entity.StudentScholarship
	scholarships *fakeScholarshipRepo
}

func newFakeAssignmentRepo(scholarships *fakeScholarshipRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{scholarships: scholarships}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *entity.StudentScholarship) error {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	r.assignments = append(r.assignments, *assignment)
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.StudentScholarship, error) {
	for _, a := range r.assignments {
		if a.ID == id {
			copied := a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, a := range r.assignments {
		if a.ID == id {
			r.assignments = append(r.assignments[:i], r.assignments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeAssignmentRepo) ListActiveForStudent(_ context.Context, studentID, sessionID uuid.UUID) ([]entity.StudentScholarship, error) {
	var out []entity.StudentScholarship
	for _, a := range r.assignments {
		if a.StudentID != studentID || a.SessionID != sessionID {
			continue
		}
		if r.scholarships != nil {
			if s, ok := r.scholarships.scholarships[a.ScholarshipID]; ok {
				if !s.IsActive {
					continue
				}
				a.Scholarship = *s
			}
		}
		if !a.Scholarship.IsActive {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeStructureRepo struct {
	structures   map[uuid.UUID]*entity.FeeStructure
	installments *fakeInstallmentRepo
}

func newFakeStructureRepo() *fakeStructureRepo {
	return &fakeStructureRepo{structures: make(map[uuid.UUID]*entity.FeeStructure)}
}

func (r *fakeStructureRepo) Create(_ context.Context, structure *entity.FeeStructure) error {
	for _, existing := range r.structures {
		if existing.StudentID == structure.StudentID && existing.SessionID == structure.SessionID {
			return repository.ErrDuplicateStructure
		}
	}
	if structure.ID == uuid.Nil {
		structure.ID = uuid.New()
	}
	for i := range structure.Components {
		structure.Components[i].FeeStructureID = structure.ID
	}
	stored := *structure
	r.structures[structure.ID] = &stored
	return nil
}

func (r *fakeStructureRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	s, ok := r.structures[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeStructureRepo) GetActiveByStudentSession(_ context.Context, studentID, sessionID uuid.UUID) (*entity.FeeStructure, error) {
	for _, s := range r.structures {
		if s.StudentID == studentID && s.SessionID == sessionID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStructureRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeStructureRepo) ListByStudent(_ context.Context, studentID uuid.UUID, _ *repository.StructureFilterParams) ([]entity.FeeStructure, int64, error) {
	var out []entity.FeeStructure
	for _, s := range r.structures {
		if s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeStructureRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	delete(r.structures, id)
	if r.installments != nil {
		return r.installments.DeleteByStructure(ctx, id)
	}
	return nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*entity.EMIPlanTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]*entity.EMIPlanTemplate)}
}

func (r *fakeTemplateRepo) Create(_ context.Context, template *entity.EMIPlanTemplate) error {
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	stored := *template
	r.templates[template.ID] = &stored
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.EMIPlanTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, template *entity.EMIPlanTemplate) error {
	stored := *template
	r.templates[template.ID] = &stored
	return nil
}

func (r *fakeTemplateRepo) List(_ context.Context, params *repository.TemplateFilterParams) ([]entity.EMIPlanTemplate, int64, error) {
	var out []entity.EMIPlanTemplate
	for _, t := range r.templates {
		if !params.IncludeInactive && !t.IsActive {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

type fakeInstallmentRepo struct {
	installments map[uuid.UUID]*entity.FeeInstallment
	payments     []entity.InstallmentPayment
	structures   *fakeStructureRepo
}

func newFakeInstallmentRepo(structures *fakeStructureRepo) *fakeInstallmentRepo {
	r := &fakeInstallmentRepo{
		installments: make(map[uuid.UUID]*entity.FeeInstallment),
		structures:   structures,
	}
	if structures != nil {
		structures.installments = r
	}
	return r
}

func (r *fakeInstallmentRepo) CreateSet(_ context.Context, installments []entity.FeeInstallment) error {
	if len(installments) == 0 {
		return nil
	}
	for _, existing := range r.installments {
		if existing.FeeStructureID == installments[0].FeeStructureID {
			return repository.ErrInstallmentSetExists
		}
	}
	for i := range installments {
		if installments[i].ID == uuid.Nil {
			installments[i].ID = uuid.New()
		}
		stored := installments[i]
		r.installments[stored.ID] = &stored
	}
	return nil
}

func (r *fakeInstallmentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.FeeInstallment, error) {
	installment, ok := r.installments[id]
	if !ok {
		return nil, nil
	}
	copied := *installment
	return &copied, nil
}

func (r *fakeInstallmentRepo) ListByStructure(_ context.Context, structureID uuid.UUID) ([]entity.FeeInstallment, error) {
	return r.collect(func(i *entity.FeeInstallment) bool {
		return i.FeeStructureID == structureID
	}), nil
}

func (r *fakeInstallmentRepo) ListByStudent(_ context.Context, studentID, sessionID uuid.UUID) ([]entity.FeeInstallment, error) {
	return r.collect(func(i *entity.FeeInstallment) bool {
		s, ok := r.structures.structures[i.FeeStructureID]
		return ok && s.StudentID == studentID && s.SessionID == sessionID
	}), nil
}

func (r *fakeInstallmentRepo) ListOutstandingByBatch(_ context.Context, batchID, sessionID uuid.UUID, _ *pagination.PaginationParams) ([]repository.BatchInstallment, int64, error) {
	var out []repository.BatchInstallment
	for _, i := range r.installments {
		if i.PaidAmount >= i.Amount {
			continue
		}
		s, ok := r.structures.structures[i.FeeStructureID]
		if !ok || s.BatchID == nil || *s.BatchID != batchID || s.SessionID != sessionID {
			continue
		}
		out = append(out, repository.BatchInstallment{
			FeeInstallment: *i,
			StudentID:      s.StudentID,
		})
	}
	return out, int64(len(out)), nil
}

func (r *fakeInstallmentRepo) CountByStructure(_ context.Context, structureID uuid.UUID) (int64, error) {
	return int64(len(r.collect(func(i *entity.FeeInstallment) bool {
		return i.FeeStructureID == structureID
	}))), nil
}

func (r *fakeInstallmentRepo) HasPayments(_ context.Context, structureID uuid.UUID) (bool, error) {
	for _, p := range r.payments {
		installment, ok := r.installments[p.InstallmentID]
		if ok && installment.FeeStructureID == structureID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInstallmentRepo) DeleteByStructure(_ context.Context, structureID uuid.UUID) error {
	for id, i := range r.installments {
		if i.FeeStructureID == structureID {
			delete(r.installments, id)
		}
	}
	return nil
}

func (r *fakeInstallmentRepo) collect(match func(*entity.FeeInstallment) bool) []entity.FeeInstallment {
	var out []entity.FeeInstallment
	for _, i := range r.installments {
		if match(i) {
			out = append(out, *i)
		}
	}
	return out
}

type fakePaymentRepo struct {
	installments *fakeInstallmentRepo
}

func newFakePaymentRepo(installments *fakeInstallmentRepo) *fakePaymentRepo {
	return &fakePaymentRepo{installments: installments}
}

func (r *fakePaymentRepo) ApplyPayment(_ context.Context, payment *entity.InstallmentPayment) (*entity.FeeInstallment, error) {
	installment, ok := r.installments.installments[payment.InstallmentID]
	if !ok {
		return nil, nil
	}
	if installment.PaidAmount+payment.Amount > installment.Amount {
		return nil, repository.ErrOverpayment
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	installment.PaidAmount += payment.Amount
	r.installments.payments = append(r.installments.payments, *payment)
	copied := *installment
	return &copied, nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.InstallmentPayment, error) {
	for _, p := range r.installments.payments {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) ListByInstallment(_ context.Context, installmentID uuid.UUID) ([]entity.InstallmentPayment, error) {
	var out []entity.InstallmentPayment
	for _, p := range r.installments.payments {
		if p.InstallmentID == installmentID {
			out = append(out, p)
		}
	}
	return out, nil
}
