package mapper

import (
	"encoding/json"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/model"

	"gorm.io/datatypes"
)

type DecisionLogMapper struct{}

func NewDecisionLogMapper() *DecisionLogMapper {
	return &DecisionLogMapper{}
}

func (m *DecisionLogMapper) ToEntity(l *model.DecisionLog) *entity.DecisionLog {
	if l == nil {
		return nil
	}

	var tools []string
	if len(l.ToolsCalled) > 0 {
		_ = json.Unmarshal(l.ToolsCalled, &tools)
	}

	var ragContext []entity.RetrievedChunk
	if len(l.RagContext) > 0 {
		_ = json.Unmarshal(l.RagContext, &ragContext)
	}

	return &entity.DecisionLog{
		Id:             l.Id,
		ConversationId: l.ConversationId,
		Intent:         l.Intent,
		Confidence:     l.Confidence,
		RequiredAction: l.RequiredAction,
		ToolsCalled:    tools,
		RagContext:     ragContext,
		RawInput:       l.RawInput,
		RawOutput:      l.RawOutput,
		OutputValid:    l.OutputValid,
		RetryCount:     l.RetryCount,
		ProcessingMs:   l.ProcessingMs,
		CreatedAt:      l.CreatedAt,
	}
}

func (m *DecisionLogMapper) ToModel(l *entity.DecisionLog) *model.DecisionLog {
	if l == nil {
		return nil
	}

	var tools datatypes.JSON
	if len(l.ToolsCalled) > 0 {
		b, _ := json.Marshal(l.ToolsCalled)
		tools = b
	}

	var ragContext datatypes.JSON
	if len(l.RagContext) > 0 {
		b, _ := json.Marshal(l.RagContext)
		ragContext = b
	}

	return &model.DecisionLog{
		Id:             l.Id,
		ConversationId: l.ConversationId,
		Intent:         l.Intent,
		Confidence:     l.Confidence,
		RequiredAction: l.RequiredAction,
		ToolsCalled:    tools,
		RagContext:     ragContext,
		RawInput:       l.RawInput,
		RawOutput:      l.RawOutput,
		OutputValid:    l.OutputValid,
		RetryCount:     l.RetryCount,
		ProcessingMs:   l.ProcessingMs,
		CreatedAt:      l.CreatedAt,
	}
}

func (m *DecisionLogMapper) ToEntities(models []*model.DecisionLog) []*entity.DecisionLog {
	entities := make([]*entity.DecisionLog, 0, len(models))
	for _, l := range models {
		entities = append(entities, m.ToEntity(l))
	}
	return entities
}
