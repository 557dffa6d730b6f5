package store

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"scanner-rag/internal/config"
	"scanner-rag/internal/db"
	"scanner-rag/internal/models"
)

// SupabaseStore keeps chunks in a Postgres documents table with a pgvector
// embedding column.
type SupabaseStore struct {
	db *bun.DB
}

func NewSupabaseStore(cfg *config.DatabaseConfig) (*SupabaseStore, error) {
	sqldb, err := db.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	return &SupabaseStore{db: db.NewDB(sqldb, cfg.Debug)}, nil
}

func (s *SupabaseStore) Upsert(ctx context.Context, chunk models.Chunk, embedding []float32) error {
	doc := &db.Document{
		Content:   chunk.Content,
		Embedding: db.VectorLiteral(embedding),
		Source:    chunk.Source,
		PageNum:   chunk.PageNum,
		Metadata:  chunk.Metadata,
	}
	return db.StoreDocument(ctx, s.db, doc)
}

// ClearAll drops and recreates the documents table. Re-ingestion is
// idempotent only via this full clear, not by upsert key.
func (s *SupabaseStore) ClearAll(ctx context.Context) error {
	if err := db.DropDocuments(ctx, s.db); err != nil {
		return err
	}
	return db.InitDB(ctx, s.db)
}

func (s *SupabaseStore) Search(ctx context.Context, queryEmbedding []float32, topK int) []models.RetrievedChunk {
	docs, err := db.SearchDocuments(ctx, s.db, queryEmbedding, topK)
	if err != nil {
		log.Error().Err(err).Msg("Error searching documents")
		return nil
	}

	results := make([]models.RetrievedChunk, 0, len(docs))
	for _, doc := range docs {
		results = append(results, models.RetrievedChunk{
			Chunk: models.Chunk{
				Content:  doc.Content,
				Source:   doc.Source,
				PageNum:  doc.PageNum,
				Metadata: doc.Metadata,
			},
			Similarity: doc.Similarity,
		})
	}
	return results
}

func (s *SupabaseStore) Close() error {
	return s.db.Close()
}
