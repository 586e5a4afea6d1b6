package mapper

import (
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Conversation{
		Id:              c.Id,
		WaId:            c.WaId,
		CustomerPhone:   c.CustomerPhone,
		CustomerName:    c.CustomerName,
		Status:          c.Status,
		Eligibility:     c.Eligibility,
		AiConfidence:    c.AiConfidence,
		AssignedAgentId: c.AssignedAgentId,
		LastMessageAt:   c.LastMessageAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	mc := &model.Conversation{
		Id:              c.Id,
		WaId:            c.WaId,
		CustomerPhone:   c.CustomerPhone,
		CustomerName:    c.CustomerName,
		Status:          c.Status,
		Eligibility:     c.Eligibility,
		AiConfidence:    c.AiConfidence,
		AssignedAgentId: c.AssignedAgentId,
		LastMessageAt:   c.LastMessageAt,
		CreatedAt:       c.CreatedAt,
	}
	if c.UpdatedAt != nil {
		mc.UpdatedAt = *c.UpdatedAt
	}
	return mc
}

func (m *ConversationMapper) ToEntities(models []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, 0, len(models))
	for _, mc := range models {
		entities = append(entities, m.ToEntity(mc))
	}
	return entities
}
