// Package searchagent wires configuration, the agent, and the HTTP server
// into a runnable Open Floor search assistant.
package searchagent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openfloor-dev/searchagent/agent"
	"github.com/openfloor-dev/searchagent/internal/observability"
	"github.com/openfloor-dev/searchagent/internal/search"
	"github.com/openfloor-dev/searchagent/openfloor"
	"github.com/openfloor-dev/searchagent/pkg/config"
	obsmetrics "github.com/openfloor-dev/searchagent/pkg/observability"
	"github.com/openfloor-dev/searchagent/server"
)

// NewAgent builds an agent from configuration.
func NewAgent(cfg *config.Config) *agent.Agent {
	return agent.New(agent.Config{
		Identity: openfloor.Identification{
			SpeakerURI:         cfg.SpeakerURI,
			ServiceURL:         cfg.ServiceURL,
			Organization:       cfg.Organization,
			ConversationalName: cfg.ConversationalName,
			Synopsis:           cfg.Synopsis,
		},
		Provider:          search.NewClient(cfg.SearchBaseURL),
		MinSearchInterval: time.Duration(cfg.MinSearchInterval),
	})
}

// Run loads configuration, starts the HTTP server, and blocks until the
// process receives SIGINT/SIGTERM or the server fails. An empty configPath
// runs with defaults.
func Run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	obsmetrics.InitMetrics()
	if err := observability.InitFromEnv(); err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	srv := server.New(NewAgent(cfg), cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Search agent %q listening on :%d", cfg.ConversationalName, cfg.Server.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
		if err := observability.Shutdown(shutdownCtx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("Search agent stopped")
	return nil
}

// RunOrExit is a convenience wrapper for main packages.
func RunOrExit(configPath string) {
	if err := Run(configPath); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
