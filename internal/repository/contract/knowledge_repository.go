package contract

import (
	"context"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeRepository interface {
	Create(ctx context.Context, entry *entity.KnowledgeEntry) error
	Update(ctx context.Context, entry *entity.KnowledgeEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

// ChunkWithEntry pairs a chunk with the title/category/activity of its
// parent entry, as needed by the retrieval scorer.
type ChunkWithEntry struct {
	Chunk         *entity.KnowledgeChunk
	EntryTitle    string
	EntryCategory string
	EntryActive   bool
}

type KnowledgeChunkRepository interface {
	Create(ctx context.Context, chunk *entity.KnowledgeChunk) error
	DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error)
	// FindAllWithEntry returns every chunk joined with its parent entry
	// metadata. Inactive entries are included; the caller filters.
	FindAllWithEntry(ctx context.Context) ([]*ChunkWithEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
