package mapper

import (
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/model"
)

type EmployerMapper struct{}

func NewEmployerMapper() *EmployerMapper {
	return &EmployerMapper{}
}

func (m *EmployerMapper) ToEntity(e *model.GovernmentEmployer) *entity.GovernmentEmployer {
	if e == nil {
		return nil
	}
	return &entity.GovernmentEmployer{
		Id:         e.Id,
		Name:       e.Name,
		Code:       e.Code,
		Ministry:   e.Ministry,
		Category:   e.Category,
		IsApproved: e.IsApproved,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *EmployerMapper) ToModel(e *entity.GovernmentEmployer) *model.GovernmentEmployer {
	if e == nil {
		return nil
	}
	return &model.GovernmentEmployer{
		Id:         e.Id,
		Name:       e.Name,
		Code:       e.Code,
		Ministry:   e.Ministry,
		Category:   e.Category,
		IsApproved: e.IsApproved,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *EmployerMapper) ToEntities(models []*model.GovernmentEmployer) []*entity.GovernmentEmployer {
	entities := make([]*entity.GovernmentEmployer, 0, len(models))
	for _, e := range models {
		entities = append(entities, m.ToEntity(e))
	}
	return entities
}
