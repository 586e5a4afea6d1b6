package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/nurfahmi/Agentic-Wa/internal/entity"
	"github.com/nurfahmi/Agentic-Wa/internal/pkg/logger"
	"github.com/nurfahmi/Agentic-Wa/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubChunkSource struct {
	chunks []*contract.ChunkWithEntry
	err    error
}

func (s *stubChunkSource) FindAllWithEntry(ctx context.Context) ([]*contract.ChunkWithEntry, error) {
	return s.chunks, s.err
}

type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	return s.vec, s.err
}

func makeChunk(content string, vec []float32, active bool) *contract.ChunkWithEntry {
	return &contract.ChunkWithEntry{
		Chunk: &entity.KnowledgeChunk{
			Id:        uuid.New(),
			EntryId:   uuid.New(),
			Content:   content,
			Embedding: vec,
		},
		EntryTitle:    "Syarat Pembiayaan",
		EntryCategory: "RULES",
		EntryActive:   active,
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestSearch_RanksAndLimitsResults(t *testing.T) {
	source := &stubChunkSource{chunks: []*contract.ChunkWithEntry{
		makeChunk("exact", []float32{1, 0}, true),
		makeChunk("close", []float32{0.9, 0.1}, true),
		makeChunk("mid-a", []float32{0.7, 0.3}, true),
		makeChunk("mid-b", []float32{0.6, 0.4}, true),
		makeChunk("mid-c", []float32{0.5, 0.5}, true),
		makeChunk("far", []float32{0.4, 0.6}, true),
	}}
	searcher := NewSearcher(source, &stubEmbedder{vec: []float32{1, 0}}, logger.NewNoopLogger())

	results := searcher.Search(context.Background(), "syarat kelayakan")

	assert.Len(t, results, TopK)
	assert.Equal(t, "exact", results[0].Content)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearch_SkipsInactiveEntries(t *testing.T) {
	source := &stubChunkSource{chunks: []*contract.ChunkWithEntry{
		makeChunk("active", []float32{1, 0}, true),
		makeChunk("inactive", []float32{1, 0}, false),
	}}
	searcher := NewSearcher(source, &stubEmbedder{vec: []float32{1, 0}}, logger.NewNoopLogger())

	results := searcher.Search(context.Background(), "q")

	assert.Len(t, results, 1)
	assert.Equal(t, "active", results[0].Content)
}

func TestSearch_DropsScoresAtOrBelowThreshold(t *testing.T) {
	source := &stubChunkSource{chunks: []*contract.ChunkWithEntry{
		makeChunk("orthogonal", []float32{0, 1}, true),
	}}
	searcher := NewSearcher(source, &stubEmbedder{vec: []float32{1, 0}}, logger.NewNoopLogger())

	assert.Empty(t, searcher.Search(context.Background(), "q"))
}

func TestSearch_EmbeddingFailureReturnsEmpty(t *testing.T) {
	source := &stubChunkSource{chunks: []*contract.ChunkWithEntry{
		makeChunk("x", []float32{1, 0}, true),
	}}
	searcher := NewSearcher(source, &stubEmbedder{err: errors.New("api down")}, logger.NewNoopLogger())

	assert.Empty(t, searcher.Search(context.Background(), "q"))
}

func TestSearch_SourceFailureReturnsEmpty(t *testing.T) {
	source := &stubChunkSource{err: errors.New("db down")}
	searcher := NewSearcher(source, &stubEmbedder{vec: []float32{1, 0}}, logger.NewNoopLogger())

	assert.Empty(t, searcher.Search(context.Background(), "q"))
}
