package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	URL   string `yaml:"url"`
	Key   string `yaml:"key"`
	Debug bool   `yaml:"debug"`
}

type EmbeddingConfig struct {
	Provider   string `yaml:"provider"` // "openai" or "ollama"
	BaseURL    string `yaml:"base_url"`
	Key        string `yaml:"key"`
	Model      string `yaml:"model"`
	VectorSize int    `yaml:"vector_size"`
}

type LLMConfig struct {
	Provider     string   `yaml:"provider"` // "Groq" or "OpenAI"
	GroqKey      string   `yaml:"groq_key"`
	OpenAIKey    string   `yaml:"openai_key"`
	Model        string   `yaml:"model"`
	GroqModels   []string `yaml:"groq_models"`
	OpenAIModels []string `yaml:"openai_models"`
}

type RAGConfig struct {
	TopK           int `yaml:"top_k"`
	ChunkSize      int `yaml:"chunk_size"`
	ChunkOverlap   int `yaml:"chunk_overlap"`
	TimeoutSeconds int `yaml:"request_timeout_seconds"`
}

type StoreConfig struct {
	Backend    string `yaml:"backend"` // "supabase" or "chromem"
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
}

type IngestConfig struct {
	InputDirs []string `yaml:"input_dirs"`
}

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	RAG       RAGConfig       `yaml:"rag"`
	Store     StoreConfig     `yaml:"store"`
	Ingest    IngestConfig    `yaml:"ingest"`
}

const (
	defaultTopK         = 5
	defaultChunkSize    = 500
	defaultChunkOverlap = 50
	defaultTimeout      = 30
	defaultVectorSize   = 384
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RAG.TopK == 0 {
		c.RAG.TopK = defaultTopK
	}
	if c.RAG.ChunkSize == 0 {
		c.RAG.ChunkSize = defaultChunkSize
	}
	if c.RAG.ChunkOverlap == 0 {
		c.RAG.ChunkOverlap = defaultChunkOverlap
	}
	if c.RAG.TimeoutSeconds == 0 {
		c.RAG.TimeoutSeconds = defaultTimeout
	}
	if c.Embedding.VectorSize == 0 {
		c.Embedding.VectorSize = defaultVectorSize
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "chromem"
	}
	if c.Store.Collection == "" {
		c.Store.Collection = "documents"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "Groq"
	}
}

// applyEnv overrides credentials from the environment. A .env file is
// loaded first if present so local runs don't need exported variables.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("SUPABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("SUPABASE_KEY"); v != "" {
		c.Database.Key = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.LLM.GroqKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.OpenAIKey = v
	}
}

// APIKey returns the key matching the configured LLM provider.
func (l *LLMConfig) APIKey() string {
	if l.Provider == "OpenAI" {
		return l.OpenAIKey
	}
	return l.GroqKey
}
