package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	domainRepo "github.com/sritek/scoops-fees/internal/domain/repository"
	"gorm.io/gorm"
)

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new EMI plan template repository
func NewTemplateRepository(db *gorm.DB) domainRepo.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, template *entity.EMIPlanTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EMIPlanTemplate, error) {
	var template entity.EMIPlanTemplate
	err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &template, err
}

func (r *templateRepository) Update(ctx context.Context, template *entity.EMIPlanTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *templateRepository) List(ctx context.Context, params *domainRepo.TemplateFilterParams) ([]entity.EMIPlanTemplate, int64, error) {
	var templates []entity.EMIPlanTemplate
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.EMIPlanTemplate{})
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
		Order("created_at ASC").
		Find(&templates).Error

	return templates, total, err
}
