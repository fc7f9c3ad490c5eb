package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"trpc.group/trpc-go/trpc-a2a-go/auth"
	"trpc.group/trpc-go/trpc-a2a-go/server"
	"trpc.group/trpc-go/trpc-a2a-go/taskmanager"

	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

// SetupServerOptions contains options for setting up an A2A server
type SetupServerOptions struct {
	AgentName    string
	AgentVersion string
	AgentURL     string
	Description  string
	AuthType     string
	JWTSecret    string
	APIKey       string
	Processor    taskmanager.TaskProcessor
	Skills       []server.AgentSkill
}

// NewAuthProvider returns the provider for authType, or nil when auth is disabled
func NewAuthProvider(authType, jwtSecret, apiKey string) (auth.Provider, error) {
	switch authType {
	case "":
		return nil, nil
	case "jwt":
		return auth.NewJWTAuthProvider([]byte(jwtSecret), "", "", 24*time.Hour), nil
	case "apikey":
		if apiKey == "" {
			return nil, errors.New("API_KEY is required when AUTH_TYPE is apikey")
		}
		return auth.NewAPIKeyAuthProvider(map[string]string{apiKey: "user"}, "X-API-Key"), nil
	default:
		return nil, fmt.Errorf("unsupported auth type: %s", authType)
	}
}

// SetupServer creates and configures an A2A server with common settings
func SetupServer(opts SetupServerOptions) (*server.A2AServer, error) {
	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("%s agent", opts.AgentName)
	}
	agentCard := server.AgentCard{
		Name:        opts.AgentName,
		Description: StringPtr(description),
		URL:         opts.AgentURL,
		Version:     opts.AgentVersion,
		Provider: &server.AgentProvider{
			Organization: "AI Toolbox",
		},
		DefaultInputModes:  []string{"text", "data"},
		DefaultOutputModes: []string{"text"},
		Skills:             opts.Skills,
	}

	taskManager, err := taskmanager.NewMemoryTaskManager(opts.Processor)
	if err != nil {
		return nil, fmt.Errorf("failed to create task manager: %w", err)
	}

	// JSON-RPC at root so A2AClient.SendTasks posts to "/".
	// LLM calls can take a while, hence the long timeouts.
	serverOpts := []server.Option{
		server.WithJSONRPCEndpoint("/"),
		server.WithReadTimeout(2 * time.Minute),
		server.WithWriteTimeout(2 * time.Minute),
	}

	provider, err := NewAuthProvider(opts.AuthType, opts.JWTSecret, opts.APIKey)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		log.Infof("Configuring %s authentication for %s", opts.AuthType, opts.AgentName)
		serverOpts = append(serverOpts, server.WithAuthProvider(provider))
	} else {
		log.Warnf("No authentication configured for %s, running unauthenticated", opts.AgentName)
	}

	srv, err := server.NewA2AServer(agentCard, taskManager, serverOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}

// StartServer runs the A2A server until ctx is cancelled
func StartServer(ctx context.Context, srv *server.A2AServer, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting A2A server on %s", addr)
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Infof("Shutting down A2A server...")
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
