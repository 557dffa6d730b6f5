// Package rag wires the query path: embed, search, classify, compose,
// generate, sanitize. One strictly sequential pass per user turn.
package rag

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"scanner-rag/internal/config"
	"scanner-rag/internal/embedding"
	"scanner-rag/internal/llm"
	"scanner-rag/internal/models"
	"scanner-rag/internal/prompt"
	"scanner-rag/internal/sanitize"
	"scanner-rag/internal/session"
	"scanner-rag/internal/store"
)

// RAG holds the process-wide resources: embedder, vector store, and
// generator are constructed once and shared across requests.
type RAG struct {
	embedder  embedding.Embedder
	store     store.VectorStore
	generator llm.Generator
	cfg       *config.Config
}

func NewRAG(embedder embedding.Embedder, vs store.VectorStore, generator llm.Generator, cfg *config.Config) *RAG {
	return &RAG{embedder: embedder, store: vs, generator: generator, cfg: cfg}
}

// Ask answers one user query against the document store and appends both
// turns to the session history. Retrieval failures degrade to an empty
// context; generation failures surface as the assistant's visible reply.
func (r *RAG) Ask(ctx context.Context, sess *session.Session, query string) models.PromptResponse {
	sess.Append(models.ChatMessage{Role: models.RoleUser, Content: query})

	results := r.retrieve(ctx, sess, query)

	contents := make([]string, 0, len(results))
	for _, res := range results {
		contents = append(contents, res.Content)
	}
	contextText := prompt.BuildContext(contents)
	isComparison := prompt.IsComparison(query)

	p := prompt.Compose(contextText, query, isComparison)
	answer := r.generate(ctx, sess, p)
	answer = sanitize.Clean(answer)

	sources := FormatSources(results)
	sess.Append(models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: answer,
		Sources: sources,
		IsTable: isComparison,
	})

	return models.PromptResponse{
		Query:   query,
		Content: answer,
		Sources: sources,
		IsTable: isComparison,
	}
}

func (r *RAG) retrieve(ctx context.Context, sess *session.Session, query string) []models.RetrievedChunk {
	vec, ok := sess.CachedEmbedding(query)
	if !ok {
		var err error
		vec, err = r.embedder.EmbedQuery(ctx, query)
		if err != nil {
			log.Error().Err(err).Msg("Error embedding query")
			return nil
		}
		sess.CacheEmbedding(query, vec)
	}
	return r.store.Search(ctx, vec, r.cfg.RAG.TopK)
}

func (r *RAG) generate(ctx context.Context, sess *session.Session, p string) string {
	key := llm.CacheKey(p, r.generator.Model())
	if cached, ok := sess.CachedResponse(key); ok {
		return cached
	}
	answer, err := r.generator.Generate(ctx, p)
	if err != nil {
		// the tagged message becomes the visible reply but is not cached,
		// so a retry reaches the provider again
		log.Error().Err(err).Str("provider", r.generator.Provider()).Msg("Error generating response")
		return answer
	}
	sess.CacheResponse(key, answer)
	return answer
}

// FormatSources lists the distinct source filenames of the retrieved chunks
// in ranked order. Empty when nothing was retrieved.
func FormatSources(results []models.RetrievedChunk) string {
	seen := make(map[string]struct{}, len(results))
	var files []string
	for _, res := range results {
		if res.Source == "" {
			continue
		}
		if _, ok := seen[res.Source]; ok {
			continue
		}
		seen[res.Source] = struct{}{}
		files = append(files, res.Source)
	}
	if len(files) == 0 {
		return ""
	}
	return "Sources: " + strings.Join(files, ", ")
}
