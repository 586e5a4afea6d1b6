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

type DecisionLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DecisionLogMapper
}

func NewDecisionLogRepository(db *gorm.DB) contract.DecisionLogRepository {
	return &DecisionLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewDecisionLogMapper(),
	}
}

func (r *DecisionLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DecisionLogRepositoryImpl) Create(ctx context.Context, log *entity.DecisionLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *DecisionLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DecisionLog, error) {
	var models []*model.DecisionLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DecisionLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DecisionLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
