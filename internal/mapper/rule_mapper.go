package mapper

import (
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/model"
)

type RuleMapper struct{}

func NewRuleMapper() *RuleMapper {
	return &RuleMapper{}
}

func (m *RuleMapper) ToEntity(r *model.KoperasiRule) *entity.Rule {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Rule{
		Id:        r.Id,
		RuleKey:   r.RuleKey,
		RuleValue: r.RuleValue,
		Label:     r.Label,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *RuleMapper) ToModel(r *entity.Rule) *model.KoperasiRule {
	if r == nil {
		return nil
	}

	mr := &model.KoperasiRule{
		Id:        r.Id,
		RuleKey:   r.RuleKey,
		RuleValue: r.RuleValue,
		Label:     r.Label,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
	if r.UpdatedAt != nil {
		mr.UpdatedAt = *r.UpdatedAt
	}
	return mr
}

func (m *RuleMapper) ToEntities(models []*model.KoperasiRule) []*entity.Rule {
	entities := make([]*entity.Rule, 0, len(models))
	for _, r := range models {
		entities = append(entities, m.ToEntity(r))
	}
	return entities
}
