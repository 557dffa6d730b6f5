// Package store persists chunk embeddings and serves similarity searches.
// Two backends exist: a Supabase/pgvector table and an embedded chromem-go
// collection for local runs and tests.
package store

import (
	"context"

	"scanner-rag/internal/models"
)

// VectorStore is the chunk persistence contract. Search never returns an
// error: any transport or store failure degrades to an empty result set,
// indistinguishable from "no relevant chunks", and is logged instead.
type VectorStore interface {
	Upsert(ctx context.Context, chunk models.Chunk, embedding []float32) error
	ClearAll(ctx context.Context) error
	Search(ctx context.Context, queryEmbedding []float32, topK int) []models.RetrievedChunk
	Close() error
}
