package store

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"scanner-rag/internal/helper"
	"scanner-rag/internal/models"
)

const chromemCompress = false

// ChromemStore keeps chunks in an embedded chromem-go collection, persisted
// under a directory or held fully in memory.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
}

func NewChromemStore(dbPath, collectionName string, inMemory bool) (*ChromemStore, error) {
	var cdb *chromem.DB
	var err error
	if inMemory {
		cdb = chromem.NewDB()
	} else {
		cdb, err = chromem.NewPersistentDB(dbPath, chromemCompress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	collection, err := cdb.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %w", err)
	}

	return &ChromemStore{db: cdb, collection: collection, name: collectionName}, nil
}

func (s *ChromemStore) Upsert(ctx context.Context, chunk models.Chunk, embedding []float32) error {
	id, err := helper.GenerateUUID()
	if err != nil {
		return err
	}

	metadata := map[string]string{"source": chunk.Source}
	if chunk.PageNum > 0 {
		metadata["page_num"] = strconv.Itoa(chunk.PageNum)
	}
	for k, v := range chunk.Metadata {
		metadata[k] = v
	}

	doc := chromem.Document{
		ID:        id,
		Content:   chunk.Content,
		Metadata:  metadata,
		Embedding: embedding,
	}
	if err := s.collection.AddDocuments(ctx, []chromem.Document{doc}, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}
	return nil
}

// ClearAll deletes and recreates the collection.
func (s *ChromemStore) ClearAll(ctx context.Context) error {
	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	collection, err := s.db.GetOrCreateCollection(s.name, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to recreate collection: %w", err)
	}
	s.collection = collection
	return nil
}

func (s *ChromemStore) Search(ctx context.Context, queryEmbedding []float32, topK int) []models.RetrievedChunk {
	count := s.collection.Count()
	if count == 0 {
		return nil
	}
	if topK > count {
		topK = count
	}

	res, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       topK,
	})
	if err != nil {
		log.Error().Err(err).Msg("Error querying collection")
		return nil
	}

	results := make([]models.RetrievedChunk, 0, len(res))
	for _, r := range res {
		chunk := models.Chunk{
			Content:  r.Content,
			Source:   r.Metadata["source"],
			Metadata: map[string]string{},
		}
		if page, ok := r.Metadata["page_num"]; ok {
			chunk.PageNum, _ = strconv.Atoi(page)
		}
		if row, ok := r.Metadata["row"]; ok {
			chunk.Metadata["row"] = row
		}
		results = append(results, models.RetrievedChunk{Chunk: chunk, Similarity: r.Similarity})
	}
	return results
}

func (s *ChromemStore) Close() error { return nil }
