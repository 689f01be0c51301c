package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kryonis/lazysusan/internal/config"
	"github.com/kryonis/lazysusan/internal/history"
	"github.com/kryonis/lazysusan/internal/intel"
	"github.com/kryonis/lazysusan/internal/llm"
	"github.com/kryonis/lazysusan/internal/logging"
	"github.com/kryonis/lazysusan/internal/observability"
	"github.com/kryonis/lazysusan/internal/orchestrator"
	"github.com/kryonis/lazysusan/internal/roster"
	"github.com/kryonis/lazysusan/internal/web"
)

var rootCmd = &cobra.Command{
	Use:   "lazysusan",
	Short: "Multi-agent analysis council",
	Long: `Lazy Susan runs a council of seven AI experts against a single
question, then has a conductor merge their perspectives into one
synthesis.

With no arguments, starts the HTTP API server.

Core capabilities:
- Fans a question out to seven expert agents concurrently
- Survives individual agent failures and synthesizes what remains
- Attaches uploaded document text to the question
- Maintains a rolling news digest and a session history`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServer()
	}
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(versionCmd)
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	gateway, err := buildGateway(cfg)
	if err != nil {
		return err
	}
	if gateway == nil {
		log.Warn("OPENROUTER_API_KEY is not set, sessions will be rejected")
	}

	panel, err := buildRoster(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := observability.New(reg)

	orch := orchestrator.New(orchestrator.Config{
		Gateway:          gateway,
		Roster:           panel,
		ConductorModel:   cfg.Models.Conductor,
		AgentTimeout:     cfg.Timeouts.Agent,
		SynthesisTimeout: cfg.Timeouts.Synthesis,
		Metrics:          metrics,
		Logger:           log,
	})

	var feed *intel.Feed
	if gateway != nil {
		var store intel.Store = intel.NewMemoryStore()
		if cfg.Intel.RedisAddr != "" {
			store = intel.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.Intel.RedisAddr}))
			log.Info("using redis digest store", zap.String("addr", cfg.Intel.RedisAddr))
		}
		feed = intel.NewFeed(gateway, store, log, cfg.Models.Intel, cfg.Intel.TTL)
	}

	histPath := cfg.History.Path
	if histPath == "" {
		histPath = history.DefaultPath()
	}
	hist, err := history.Open(histPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer hist.Close()

	server := web.NewServer(web.Config{
		Orchestrator: orch,
		Feed:         feed,
		History:      hist,
		Gatherer:     reg,
		Logger:       log,
		Port:         cfg.Server.Port,
		AgentCount:   panel.Count(),
	})

	ctx, stop := signal.NotifyContext(rootCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx)
}

// buildGateway returns nil without error when no credential is
// configured; the orchestrator then rejects sessions instead of the
// process refusing to start.
func buildGateway(cfg *config.Config) (llm.Gateway, error) {
	if cfg.OpenRouter.APIKey == "" {
		return nil, nil
	}
	return llm.NewOpenRouter(llm.OpenRouterConfig{
		APIKey:  cfg.OpenRouter.APIKey,
		BaseURL: cfg.OpenRouter.BaseURL,
		Referer: cfg.OpenRouter.Referer,
		Title:   cfg.OpenRouter.Title,
	})
}

func buildRoster(cfg *config.Config) (*roster.Roster, error) {
	if cfg.Roster.Path == "" {
		return roster.Default(), nil
	}
	panel, err := roster.FromYAML(cfg.Roster.Path)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return panel, nil
}
