package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"scanner-rag/internal/config"
)

// NewEmbedder builds the sentence embedder selected by the config. The same
// instance must serve both the ingestion and the query path so stored and
// query vectors share a model and a dimensionality.
func NewEmbedder(cfg *config.EmbeddingConfig) (*embeddings.EmbedderImpl, error) {
	switch cfg.Provider {
	case "ollama":
		return newOllamaEmbedder(cfg)
	case "openai", "":
		return newOpenAIEmbedder(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}

func newOpenAIEmbedder(cfg *config.EmbeddingConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithModel(cfg.Model),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding LLM: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

func newOllamaEmbedder(cfg *config.EmbeddingConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding LLM: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// Embedder is the slice of the langchaingo embedder the pipeline depends on.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
