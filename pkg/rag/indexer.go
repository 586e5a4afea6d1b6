package rag

import (
	"context"
	"fmt"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"
	"github.com/nurfahmi/Agentic-Wa/pkg/embedding"
	"github.com/nurfahmi/Agentic-Wa/pkg/utils"

	"github.com/google/uuid"
)

// MaxChunkSize caps a chunk at roughly one embedding-friendly passage.
const MaxChunkSize = 500

// Indexer turns a knowledge entry into embedded chunks. Re-indexing is
// idempotent: old chunks are dropped before new ones are written.
type Indexer struct {
	chunks   contract.KnowledgeChunkRepository
	embedder embedding.EmbeddingProvider
	logger   logger.ILogger
}

func NewIndexer(chunks contract.KnowledgeChunkRepository, embedder embedding.EmbeddingProvider, log logger.ILogger) *Indexer {
	return &Indexer{
		chunks:   chunks,
		embedder: embedder,
		logger:   log,
	}
}

// Index splits the entry content, embeds every piece, and replaces the
// entry's stored chunks.
func (ix *Indexer) Index(ctx context.Context, entry *entity.KnowledgeEntry) error {
	if err := ix.chunks.DeleteByEntryId(ctx, entry.Id); err != nil {
		return fmt.Errorf("failed to clear old chunks: %w", err)
	}

	pieces := utils.SplitSentences(entry.Content, MaxChunkSize)
	for i, piece := range pieces {
		vec, err := ix.embedder.Generate(ctx, piece)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of entry %s: %w", i, entry.Id, err)
		}

		chunk := &entity.KnowledgeChunk{
			Id:         uuid.New(),
			EntryId:    entry.Id,
			ChunkIndex: i,
			Content:    piece,
			Embedding:  vec,
		}
		if err := ix.chunks.Create(ctx, chunk); err != nil {
			return fmt.Errorf("failed to store chunk %d of entry %s: %w", i, entry.Id, err)
		}
	}

	ix.logger.Info("rag", "indexed knowledge entry", map[string]interface{}{
		"entry_id": entry.Id.String(),
		"chunks":   len(pieces),
	})
	return nil
}
