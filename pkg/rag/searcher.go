package rag

import (
	"context"
	"math"
	"sort"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"
	"github.com/nurfahmi/Agentic-Wa/pkg/embedding"
)

const (
	// TopK is how many chunks the searcher returns at most.
	TopK = 5
	// MinScore drops weak matches; a chunk must strictly exceed it.
	MinScore = 0.3
)

// ChunkSource supplies the candidate chunks to score. Narrowed from the
// full repository so tests can feed chunks directly.
type ChunkSource interface {
	FindAllWithEntry(ctx context.Context) ([]*contract.ChunkWithEntry, error)
}

// Searcher ranks knowledge chunks against a query by cosine similarity.
// The corpus is small (hundreds of chunks) so a linear scan over all
// embeddings is fine; revisit if the knowledge base grows past that.
type Searcher struct {
	source   ChunkSource
	embedder embedding.EmbeddingProvider
	logger   logger.ILogger
}

func NewSearcher(source ChunkSource, embedder embedding.EmbeddingProvider, log logger.ILogger) *Searcher {
	return &Searcher{
		source:   source,
		embedder: embedder,
		logger:   log,
	}
}

// Search embeds the query and returns up to TopK active chunks scoring
// above MinScore, best first. Retrieval failures degrade to an empty
// result rather than failing the turn.
func (s *Searcher) Search(ctx context.Context, query string) []entity.RetrievedChunk {
	queryVec, err := s.embedder.Generate(ctx, query)
	if err != nil {
		s.logger.Warn("rag", "failed to embed query, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	chunks, err := s.source.FindAllWithEntry(ctx)
	if err != nil {
		s.logger.Warn("rag", "failed to load knowledge chunks, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	var results []entity.RetrievedChunk
	for _, c := range chunks {
		if !c.EntryActive {
			continue
		}
		score := CosineSimilarity(queryVec, c.Chunk.Embedding)
		if score <= MinScore {
			continue
		}
		results = append(results, entity.RetrievedChunk{
			ChunkId:  c.Chunk.Id,
			EntryId:  c.Chunk.EntryId,
			Title:    c.EntryTitle,
			Category: c.EntryCategory,
			Content:  c.Chunk.Content,
			Score:    score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > TopK {
		results = results[:TopK]
	}
	return results
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either has zero magnitude or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
