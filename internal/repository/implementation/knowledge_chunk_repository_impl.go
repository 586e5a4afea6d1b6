package implementation

import (
	"context"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/mapper"
	"github.com/nurfahmi/Agentic-Wa/internal/model"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.KnowledgeChunk) error {
	m := r.mapper.ChunkToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ChunkToEntity(m)
	return nil
}

func (r *KnowledgeChunkRepositoryImpl) DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("entry_id = ?", entryId).Delete(&model.KnowledgeChunk{}).Error
}

func (r *KnowledgeChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error) {
	var models []*model.KnowledgeChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ChunksToEntities(models), nil
}

type chunkWithEntryRow struct {
	Id            uuid.UUID
	EntryId       uuid.UUID
	ChunkIndex    int
	Content       string
	Embedding     pgvector.Vector
	EntryTitle    string
	EntryCategory string
	EntryActive   bool
}

func (r *KnowledgeChunkRepositoryImpl) FindAllWithEntry(ctx context.Context) ([]*contract.ChunkWithEntry, error) {
	var rows []chunkWithEntryRow
	err := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.id, knowledge_chunks.entry_id, knowledge_chunks.chunk_index, knowledge_chunks.content, knowledge_chunks.embedding, knowledge_entries.title AS entry_title, knowledge_entries.category AS entry_category, knowledge_entries.is_active AS entry_active").
		Joins("JOIN knowledge_entries ON knowledge_entries.id = knowledge_chunks.entry_id").
		Where("knowledge_entries.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*contract.ChunkWithEntry, 0, len(rows))
	for _, row := range rows {
		results = append(results, &contract.ChunkWithEntry{
			Chunk: &entity.KnowledgeChunk{
				Id:         row.Id,
				EntryId:    row.EntryId,
				ChunkIndex: row.ChunkIndex,
				Content:    row.Content,
				Embedding:  row.Embedding.Slice(),
			},
			EntryTitle:    row.EntryTitle,
			EntryCategory: row.EntryCategory,
			EntryActive:   row.EntryActive,
		})
	}
	return results, nil
}

func (r *KnowledgeChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.KnowledgeChunk{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
