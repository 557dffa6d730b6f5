package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanner-rag/internal/models"
)

func newMemoryStore(t *testing.T) *ChromemStore {
	t.Helper()
	s, err := NewChromemStore("", "test", true)
	require.NoError(t, err)
	return s
}

func chunk(content, source string) models.Chunk {
	return models.Chunk{Content: content, Source: source, PageNum: 1}
}

func TestChromemStore_SearchRanksNearestFirst(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	require.NoError(t, s.Upsert(ctx, chunk("A", "doc1.pdf"), []float32{1, 0, 0}))
	require.NoError(t, s.Upsert(ctx, chunk("B", "doc2.pdf"), []float32{0, 1, 0}))

	// query is nearest to A
	results := s.Search(ctx, []float32{0.8, 0.6, 0}, 5)

	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Content)
	assert.Equal(t, "doc1.pdf", results[0].Source)
	assert.Equal(t, "B", results[1].Content)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
}

func TestChromemStore_SearchEmptyCollection(t *testing.T) {
	s := newMemoryStore(t)
	assert.Empty(t, s.Search(context.Background(), []float32{1, 0, 0}, 5))
}

func TestChromemStore_TopKClampedToCount(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)
	require.NoError(t, s.Upsert(ctx, chunk("only", "doc.pdf"), []float32{1, 0, 0}))

	results := s.Search(ctx, []float32{1, 0, 0}, 10)
	assert.Len(t, results, 1)
}

func TestChromemStore_ReingestionAfterClearAll(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	require.NoError(t, s.Upsert(ctx, chunk("old content", "old.pdf"), []float32{1, 0, 0}))
	require.NoError(t, s.ClearAll(ctx))

	assert.Empty(t, s.Search(ctx, []float32{1, 0, 0}, 5))

	require.NoError(t, s.Upsert(ctx, chunk("new content", "new.pdf"), []float32{1, 0, 0}))
	results := s.Search(ctx, []float32{1, 0, 0}, 5)

	require.Len(t, results, 1)
	assert.Equal(t, "new content", results[0].Content)
	assert.Equal(t, "new.pdf", results[0].Source)
}

func TestChromemStore_RoundTripsProvenance(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	rowChunk := models.Chunk{
		Content:  "ScanJet | 600 dpi",
		Source:   "models.xlsx",
		Metadata: map[string]string{"row": "4"},
	}
	require.NoError(t, s.Upsert(ctx, rowChunk, []float32{0, 1, 0}))
	require.NoError(t, s.Upsert(ctx, chunk("page text", "manual.pdf"), []float32{1, 0, 0}))

	results := s.Search(ctx, []float32{0, 1, 0}, 1)
	require.Len(t, results, 1)
	assert.Equal(t, "models.xlsx", results[0].Source)
	assert.Zero(t, results[0].PageNum)
	assert.Equal(t, "4", results[0].Metadata["row"])

	results = s.Search(ctx, []float32{1, 0, 0}, 1)
	require.Len(t, results, 1)
	assert.Equal(t, "manual.pdf", results[0].Source)
	assert.Equal(t, 1, results[0].PageNum)
}
