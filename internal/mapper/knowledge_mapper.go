package mapper

import (
	"time"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) EntryToEntity(e *model.KnowledgeEntry) *entity.KnowledgeEntry {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeEntry{
		Id:        e.Id,
		Category:  e.Category,
		Title:     e.Title,
		Content:   e.Content,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *KnowledgeMapper) EntryToModel(e *entity.KnowledgeEntry) *model.KnowledgeEntry {
	if e == nil {
		return nil
	}

	me := &model.KnowledgeEntry{
		Id:        e.Id,
		Category:  e.Category,
		Title:     e.Title,
		Content:   e.Content,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		me.UpdatedAt = *e.UpdatedAt
	}
	return me
}

func (m *KnowledgeMapper) EntriesToEntities(models []*model.KnowledgeEntry) []*entity.KnowledgeEntry {
	entities := make([]*entity.KnowledgeEntry, 0, len(models))
	for _, e := range models {
		entities = append(entities, m.EntryToEntity(e))
	}
	return entities
}

func (m *KnowledgeMapper) ChunkToEntity(c *model.KnowledgeChunk) *entity.KnowledgeChunk {
	if c == nil {
		return nil
	}
	return &entity.KnowledgeChunk{
		Id:         c.Id,
		EntryId:    c.EntryId,
		ChunkIndex: c.ChunkIndex,
		Content:    c.Content,
		Embedding:  c.Embedding.Slice(),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *KnowledgeMapper) ChunkToModel(c *entity.KnowledgeChunk) *model.KnowledgeChunk {
	if c == nil {
		return nil
	}
	return &model.KnowledgeChunk{
		Id:         c.Id,
		EntryId:    c.EntryId,
		ChunkIndex: c.ChunkIndex,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(c.Embedding),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *KnowledgeMapper) ChunksToEntities(models []*model.KnowledgeChunk) []*entity.KnowledgeChunk {
	entities := make([]*entity.KnowledgeChunk, 0, len(models))
	for _, c := range models {
		entities = append(entities, m.ChunkToEntity(c))
	}
	return entities
}
