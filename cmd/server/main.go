// payrouter - fraud-scoring payment decision service
package main

import (
	"context"
	"os"

	"payrouter/internal/config"
	"payrouter/internal/logging"
	"payrouter/internal/security"
	"payrouter/internal/server"
	"payrouter/internal/traces"
)

// Build info - set by ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Create logger
	logger := logging.New("info", "text")

	logger.Info("starting payrouter",
		"version", Version,
		"commit", Commit,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"env", cfg.Env,
		"ledger_capacity", cfg.LedgerCapacity,
	)

	// A misconfigured explanation backend URL is a server-side request
	// forgery vector in production.
	if cfg.IsProduction() && cfg.OpenAIBaseURL != config.DefaultOpenAIBaseURL {
		if err := security.ValidateEndpointURL(cfg.OpenAIBaseURL); err != nil {
			logger.Error("unsafe OPENAI_BASE_URL", "error", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	// Tracing (no-op unless an OTLP endpoint is configured)
	shutdownTraces, err := traces.Init(ctx, cfg.OTLPEndpoint, logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTraces(context.Background()); err != nil {
			logger.Error("trace shutdown error", "error", err)
		}
	}()

	// Create and run server
	srv, err := server.New(cfg, server.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
