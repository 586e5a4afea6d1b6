package implementation

import (
	"context"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/mapper"
	"github.com/nurfahmi/Agentic-Wa/internal/model"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"

	"gorm.io/gorm"
)

type EmployerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmployerMapper
}

func NewEmployerRepository(db *gorm.DB) contract.EmployerRepository {
	return &EmployerRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmployerMapper(),
	}
}

func (r *EmployerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EmployerRepositoryImpl) Create(ctx context.Context, employer *entity.GovernmentEmployer) error {
	m := r.mapper.ToModel(employer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*employer = *r.mapper.ToEntity(m)
	return nil
}

func (r *EmployerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GovernmentEmployer, error) {
	var models []*model.GovernmentEmployer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EmployerRepositoryImpl) SearchApproved(ctx context.Context, query string) ([]*entity.GovernmentEmployer, error) {
	var models []*model.GovernmentEmployer
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Where("name ILIKE ? OR ministry ILIKE ? OR code = ?", pattern, pattern, query).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
