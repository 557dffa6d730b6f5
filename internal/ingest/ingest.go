// Package ingest runs the offline write path: parse, chunk, embed, upsert.
// Best-effort per chunk; a failed upload is logged and skipped, never rolled
// back. Must not run concurrently with live queries since it starts with a
// full clear.
package ingest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"scanner-rag/internal/chunker"
	"scanner-rag/internal/embedding"
	"scanner-rag/internal/models"
	"scanner-rag/internal/parser"
	"scanner-rag/internal/store"
)

// Stats aggregates the outcome of one ingestion run.
type Stats struct {
	Files    int
	Uploaded int
	Failed   int
	Skipped  int
}

type Ingester struct {
	chunker  *chunker.Chunker
	embedder embedding.Embedder
	store    store.VectorStore
}

func New(c *chunker.Chunker, embedder embedding.Embedder, vs store.VectorStore) *Ingester {
	return &Ingester{chunker: c, embedder: embedder, store: vs}
}

// Run clears the store and re-ingests every supported file under the input
// directories. Idempotency comes from the full clear, not from upsert keys.
func (i *Ingester) Run(ctx context.Context, inputDirs []string) (Stats, error) {
	var stats Stats

	log.Info().Msg("Clearing existing documents")
	if err := i.store.ClearAll(ctx); err != nil {
		return stats, err
	}

	for _, dir := range inputDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Warn().Str("dir", dir).Err(err).Msg("Skipping input directory")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			i.ingestFile(ctx, path, &stats)
		}
	}

	log.Info().
		Int("files", stats.Files).
		Int("uploaded", stats.Uploaded).
		Int("failed", stats.Failed).
		Int("skipped", stats.Skipped).
		Msg("Document ingestion complete")
	return stats, nil
}

func (i *Ingester) ingestFile(ctx context.Context, path string, stats *Stats) {
	doc, err := parser.Parse(path)
	if err != nil {
		log.Warn().Str("file", path).Err(err).Msg("Skipping file")
		stats.Skipped++
		return
	}

	chunks := i.Chunks(doc)
	if len(chunks) == 0 {
		log.Info().Str("file", path).Msg("No content extracted")
		stats.Skipped++
		return
	}

	stats.Files++
	log.Info().Str("file", path).Int("chunks", len(chunks)).Msg("Embedding and uploading chunks")

	for _, chunk := range chunks {
		vec, err := i.embedder.EmbedQuery(ctx, chunk.Content)
		if err != nil {
			log.Error().Str("file", path).Err(err).Msg("Error embedding chunk")
			stats.Failed++
			continue
		}
		if err := i.store.Upsert(ctx, chunk, vec); err != nil {
			log.Error().Str("file", path).Err(err).Msg("Error uploading chunk")
			stats.Failed++
			continue
		}
		stats.Uploaded++
	}
}

// Chunks converts one parsed document into storable chunks: length-split
// pages, one chunk per spreadsheet row.
func (i *Ingester) Chunks(doc *parser.Document) []models.Chunk {
	var chunks []models.Chunk
	for _, page := range doc.Pages {
		chunks = append(chunks, i.chunker.Split(page.Text, doc.Source, page.PageNum)...)
	}
	for _, row := range doc.Rows {
		if chunk, ok := chunker.FromRow(row.Cells, doc.Source, row.Row); ok {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
