package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/domain/entity"
	domainRepo "github.com/sritek/scoops-fees/internal/domain/repository"
	"gorm.io/gorm"
)

type componentRepository struct {
	db *gorm.DB
}

// NewComponentRepository creates a new fee component repository
func NewComponentRepository(db *gorm.DB) domainRepo.ComponentRepository {
	return &componentRepository{db: db}
}

func (r *componentRepository) Create(ctx context.Context, component *entity.FeeComponent) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *componentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeComponent, error) {
	var component entity.FeeComponent
	err := r.db.WithContext(ctx).First(&component, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &component, err
}

func (r *componentRepository) GetActiveByName(ctx context.Context, name string) (*entity.FeeComponent, error) {
	var component entity.FeeComponent
	err := r.db.WithContext(ctx).
		First(&component, "name = ? AND is_active = ?", name, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &component, err
}

func (r *componentRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.FeeComponent, error) {
	var components []entity.FeeComponent
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&components).Error
	return components, err
}

func (r *componentRepository) Update(ctx context.Context, component *entity.FeeComponent) error {
	return r.db.WithContext(ctx).Save(component).Error
}

func (r *componentRepository) List(ctx context.Context, params *domainRepo.ComponentFilterParams) ([]entity.FeeComponent, int64, error) {
	var components []entity.FeeComponent
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.FeeComponent{})
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
		Find(&components).Error

	return components, total, err
}
