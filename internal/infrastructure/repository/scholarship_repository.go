package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	domainRepo "github.com/sritek/scoops-fees/internal/domain/repository"
	"gorm.io/gorm"
)

type scholarshipRepository struct {
	db *gorm.DB
}

// NewScholarshipRepository creates a new scholarship repository
func NewScholarshipRepository(db *gorm.DB) domainRepo.ScholarshipRepository {
	return &scholarshipRepository{db: db}
}

func (r *scholarshipRepository) Create(ctx context.Context, scholarship *entity.Scholarship) error {
	return r.db.WithContext(ctx).Create(scholarship).Error
}

func (r *scholarshipRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Scholarship, error) {
	var scholarship entity.Scholarship
	err := r.db.WithContext(ctx).
		Preload("BasisComponent").
		First(&scholarship, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &scholarship, err
}

func (r *scholarshipRepository) Update(ctx context.Context, scholarship *entity.Scholarship) error {
	return r.db.WithContext(ctx).Save(scholarship).Error
}

func (r *scholarshipRepository) List(ctx context.Context, params *domainRepo.ScholarshipFilterParams) ([]entity.Scholarship, int64, error) {
	var scholarships []entity.Scholarship
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Scholarship{})
	if !params.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("BasisComponent").
		Order("created_at ASC").
		Find(&scholarships).Error

	return scholarships, total, err
}

type studentScholarshipRepository struct {
	db *gorm.DB
}

// NewStudentScholarshipRepository creates a new scholarship assignment repository
func NewStudentScholarshipRepository(db *gorm.DB) domainRepo.StudentScholarshipRepository {
	return &studentScholarshipRepository{db: db}
}

func (r *studentScholarshipRepository) Create(ctx context.Context, assignment *entity.StudentScholarship) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *studentScholarshipRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StudentScholarship, error) {
	var assignment entity.StudentScholarship
	err := r.db.WithContext(ctx).
		Preload("Scholarship").
		First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &assignment, err
}

func (r *studentScholarshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StudentScholarship{}, "id = ?", id).Error
}

// ListActiveForStudent returns assignments in assignment (creation) order.
// The order matters: discounts are applied sequentially against the
// remaining gross.
func (r *studentScholarshipRepository) ListActiveForStudent(ctx context.Context, studentID, sessionID uuid.UUID) ([]entity.StudentScholarship, error) {
	var assignments []entity.StudentScholarship
	err := r.db.WithContext(ctx).
		Joins("JOIN scholarships ON scholarships.id = student_scholarships.scholarship_id").
		Where("student_scholarships.student_id = ? AND student_scholarships.session_id = ?", studentID, sessionID).
		Where("scholarships.is_active = ? AND scholarships.deleted_at IS NULL", true).
		Preload("Scholarship").
		Order("student_scholarships.created_at ASC, student_scholarships.id ASC").
		Find(&assignments).Error
	return assignments, err
}
