package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scanner-rag/internal/config"
	"scanner-rag/internal/embedding"
	"scanner-rag/internal/llm"
	"scanner-rag/internal/models"
	"scanner-rag/internal/rag"
	"scanner-rag/internal/render"
	"scanner-rag/internal/session"
	"scanner-rag/internal/store"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	query := flag.String("query", "", "One-shot query; omit for interactive chat")
	provider := flag.String("provider", "", "LLM provider override (Groq or OpenAI)")
	model := flag.String("model", "", "LLM model override")
	asHTML := flag.Bool("html", false, "Render answers as HTML instead of plain text")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if *provider != "" {
		cfg.LLM.Provider = *provider
	}
	if *model != "" {
		cfg.LLM.Model = *model
	}
	log.Debug().Interface("config", cfg).Msg("Loaded config")

	vectorStore, err := store.FromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating vector store")
	}
	defer vectorStore.Close()

	embedder, err := embedding.NewEmbedder(&cfg.Embedding)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	generator := llm.NewClient(
		cfg.LLM.Provider,
		cfg.LLM.APIKey(),
		cfg.LLM.Model,
		time.Duration(cfg.RAG.TimeoutSeconds)*time.Second,
	)

	pipeline := rag.NewRAG(embedder, vectorStore, generator, cfg)
	sess := session.New()
	ctx := context.Background()

	if *query != "" {
		answer(ctx, pipeline, sess, *query, *asHTML)
		return
	}

	fmt.Println("Scanner Support Agent. Ask about scanners, troubleshooting, or comparisons. Ctrl-D to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		answer(ctx, pipeline, sess, input, *asHTML)
	}
}

func answer(ctx context.Context, pipeline *rag.RAG, sess *session.Session, query string, asHTML bool) {
	response := pipeline.Ask(ctx, sess, query)
	display(response, asHTML)
}

func display(response models.PromptResponse, asHTML bool) {
	switch {
	case asHTML:
		html, err := render.ToHTML(response.Content)
		if err != nil {
			log.Warn().Err(err).Msg("Error rendering HTML, falling back to plain text")
			html = response.Content
		}
		fmt.Printf("%s\n\n", html)
	case response.IsTable:
		if rows, ok := render.ParseTable(response.Content); ok {
			fmt.Printf("%s\n\n", render.FormatTable(rows))
		} else {
			fmt.Printf("%s\n\n", response.Content)
		}
	default:
		fmt.Printf("%s\n\n", response.Content)
	}
	if response.Sources != "" {
		fmt.Printf("%s\n\n", response.Sources)
	}
}
