package mapper

import (
	"encoding/json"
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var result *entity.SlipFields
	if len(d.OcrResult) > 0 {
		var fields entity.SlipFields
		if err := json.Unmarshal(d.OcrResult, &fields); err == nil {
			result = &fields
		}
	}

	return &entity.Document{
		Id:             d.Id,
		ConversationId: d.ConversationId,
		FilePath:       d.FilePath,
		MimeType:       d.MimeType,
		OcrStatus:      d.OcrStatus,
		OcrResult:      result,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	md := &model.Document{
		Id:             d.Id,
		ConversationId: d.ConversationId,
		FilePath:       d.FilePath,
		MimeType:       d.MimeType,
		OcrStatus:      d.OcrStatus,
		CreatedAt:      d.CreatedAt,
	}
	if d.OcrResult != nil {
		b, _ := json.Marshal(d.OcrResult)
		md.OcrResult = b
	}
	if d.UpdatedAt != nil {
		md.UpdatedAt = *d.UpdatedAt
	}
	return md
}

func (m *DocumentMapper) ToEntities(models []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, 0, len(models))
	for _, d := range models {
		entities = append(entities, m.ToEntity(d))
	}
	return entities
}
