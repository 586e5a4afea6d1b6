package mapper

import (
	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/model"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		WaMessageId:    msg.WaMessageId,
		Direction:      msg.Direction,
		Type:           msg.Type,
		Content:        msg.Content,
		MediaId:        msg.MediaId,
		MediaType:      msg.MediaType,
		IsAiGenerated:  msg.IsAiGenerated,
		Timestamp:      msg.Timestamp,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		WaMessageId:    msg.WaMessageId,
		Direction:      msg.Direction,
		Type:           msg.Type,
		Content:        msg.Content,
		MediaId:        msg.MediaId,
		MediaType:      msg.MediaType,
		IsAiGenerated:  msg.IsAiGenerated,
		Timestamp:      msg.Timestamp,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(models []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, 0, len(models))
	for _, msg := range models {
		entities = append(entities, m.ToEntity(msg))
	}
	return entities
}
