package mapper

import (
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/model"
)

type EscalationMapper struct{}

func NewEscalationMapper() *EscalationMapper {
	return &EscalationMapper{}
}

func (m *EscalationMapper) ToEntity(e *model.Escalation) *entity.Escalation {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Escalation{
		Id:             e.Id,
		ConversationId: e.ConversationId,
		Reason:         e.Reason,
		Description:    e.Description,
		Status:         e.Status,
		AssignedToId:   e.AssignedToId,
		EscalatedById:  e.EscalatedById,
		ResolvedAt:     e.ResolvedAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *EscalationMapper) ToModel(e *entity.Escalation) *model.Escalation {
	if e == nil {
		return nil
	}

	me := &model.Escalation{
		Id:             e.Id,
		ConversationId: e.ConversationId,
		Reason:         e.Reason,
		Description:    e.Description,
		Status:         e.Status,
		AssignedToId:   e.AssignedToId,
		EscalatedById:  e.EscalatedById,
		ResolvedAt:     e.ResolvedAt,
		CreatedAt:      e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		me.UpdatedAt = *e.UpdatedAt
	}
	return me
}

func (m *EscalationMapper) ToEntities(models []*model.Escalation) []*entity.Escalation {
	entities := make([]*entity.Escalation, 0, len(models))
	for _, e := range models {
		entities = append(entities, m.ToEntity(e))
	}
	return entities
}
