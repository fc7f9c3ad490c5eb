// Command toolbox-api serves the generation endpoints the toolbox client calls.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuannvm/ai-toolbox/internal/config"
	"github.com/tuannvm/ai-toolbox/internal/generator"
	"github.com/tuannvm/ai-toolbox/internal/jira"
	"github.com/tuannvm/ai-toolbox/internal/llm"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/server"
	"github.com/tuannvm/ai-toolbox/internal/transcript"
)

func main() {
	cfg := config.NewConfig()
	if err := log.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	log.Infof("Using %s LLM provider with model %s", cfg.LLMProvider, cfg.LLMModel)

	src, err := transcript.NewSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create transcript source: %v", err)
	}
	defer src.Close()

	srv := server.New(cfg, server.Deps{
		Generator:   generator.NewService(llmClient),
		Transcripts: src.Fetcher,
		Details:     src.Details,
		Jira:        jira.NewClient(),
	})

	if err := srv.Run(ctx); err != nil {
		log.Errorf("Server error: %v", err)
		os.Exit(1)
	}
	log.Infof("Server shutdown complete")
}
