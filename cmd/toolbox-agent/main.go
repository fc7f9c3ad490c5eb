// Command toolbox-agent exposes the toolbox generators to other agents over A2A.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	liblog "trpc.group/trpc-go/trpc-a2a-go/log"

	"github.com/tuannvm/ai-toolbox/internal/agents"
	"github.com/tuannvm/ai-toolbox/internal/config"
	"github.com/tuannvm/ai-toolbox/internal/generator"
	"github.com/tuannvm/ai-toolbox/internal/llm"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/transcript"
)

func main() {
	cfg := config.NewConfig()
	if err := log.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer log.Sync()

	// Route tRPC-A2A-Go internal logs through our logger
	liblog.Default = log.Named("a2a")

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	src, err := transcript.NewSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create transcript source: %v", err)
	}
	defer src.Close()

	agent := agents.NewToolboxAgent(cfg, generator.NewService(llmClient), src.Fetcher, src.Details)
	log.Infof("Starting %s on port %d", cfg.AgentName, cfg.AgentPort)
	if err := agent.StartServer(ctx); err != nil {
		log.Errorf("Agent server error: %v", err)
		os.Exit(1)
	}
	log.Infof("Agent shutdown complete")
}
