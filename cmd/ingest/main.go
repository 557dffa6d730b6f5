package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scanner-rag/internal/chunker"
	"scanner-rag/internal/config"
	"scanner-rag/internal/embedding"
	"scanner-rag/internal/helper"
	"scanner-rag/internal/ingest"
	"scanner-rag/internal/store"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	inputDir := flag.String("dir", "", "Extra input directory to ingest")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	log.Debug().Interface("config", cfg).Msg("Loaded config")

	inputDirs := cfg.Ingest.InputDirs
	if *inputDir != "" {
		inputDirs = append(inputDirs, *inputDir)
	}
	if len(inputDirs) == 0 {
		log.Fatal().Msg("No input directories configured; set ingest.input_dirs or pass -dir")
	}

	vectorStore, err := store.FromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating vector store")
	}
	defer vectorStore.Close()

	embedder, err := embedding.NewEmbedder(&cfg.Embedding)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	ingester := ingest.New(chunker.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap), embedder, vectorStore)

	stats, err := ingester.Run(context.Background(), inputDirs)
	if err != nil {
		log.Fatal().Err(err).Msg("Error running ingestion")
	}

	helper.PrettyPrint(stats)
	if stats.Failed > 0 {
		log.Warn().Int("failed", stats.Failed).Msg("Some chunks were not uploaded")
	}
}
