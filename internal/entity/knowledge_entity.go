package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeEntry is an operator-managed knowledge base article. Chunks are
// derived from it and cascade-deleted with it.
type KnowledgeEntry struct {
	Id        uuid.UUID
	Category  string // FAQ | DOCUMENTS | RULES | SOP
	Title     string
	Content   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// KnowledgeChunk is a sentence-bounded segment of an entry, the unit of
// embedding and retrieval. Chunks are deleted and regenerated whenever the
// parent entry changes; there is no partial update.
type KnowledgeChunk struct {
	Id         uuid.UUID
	EntryId    uuid.UUID
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}
