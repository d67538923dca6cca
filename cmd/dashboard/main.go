// Package main is the entry point for the card arbitrage dashboard
// engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Keytoexplore/pokemonarbdashboard/business/market/pricecharting"
	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/app"
	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/infra/console"
	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/infra/history"
	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/infra/telegram"
	"github.com/Keytoexplore/pokemonarbdashboard/business/scraping/cardrush"
	"github.com/Keytoexplore/pokemonarbdashboard/business/scraping/torecacamp"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/apm"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/config"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/health"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/logger"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/metrics"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	once := flag.Bool("once", false, "Run one refresh cycle and exit")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pokemonarbdashboard %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		cancel()
	}()

	if err := run(ctx, *configPath, *once); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, once bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)
	log.Info(ctx, "starting card arbitrage engine",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Initialize observability if enabled
	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		tracerKind := apm.ConsoleProvider
		if cfg.Telemetry.OTLPEndpoint != "" {
			tracerKind = apm.OTLPProvider
		}
		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(tracerKind, log))
		log.Info(ctx, "tracing initialized", "provider", string(tracerKind))

		if _, err := metrics.NewMetricProvider(ctx,
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithPrometheus(),
		); err != nil {
			return fmt.Errorf("failed to init metrics: %w", err)
		}

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go func() {
			if err := metrics.ServePrometheus(strconv.Itoa(port)); err != nil {
				log.Warn(ctx, "prometheus server stopped", "error", err)
			}
		}()
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	svc, cleanup, err := buildService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// Health server: liveness plus snapshot freshness
	healthServer := health.NewServer(cfg.App.HealthPort, version)
	healthServer.RegisterCheck("snapshot", func(ctx context.Context) (bool, string) {
		builtAt, ok := svc.LastBuiltAt()
		if !ok {
			return false, "no refresh completed yet"
		}
		age := time.Since(builtAt)
		if age > 3*cfg.Refresh.Interval {
			return false, fmt.Sprintf("snapshot stale: %s old", age.Round(time.Second))
		}
		return true, ""
	})
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", cfg.App.HealthPort)
	}
	defer healthServer.Stop(ctx)

	cards := trackedCards(cfg)
	if len(cards) == 0 {
		return fmt.Errorf("no cards configured: add a cards section to the config")
	}

	refresh := func() {
		doc, err := svc.Refresh(ctx, cards)
		if err != nil {
			log.Error(ctx, "refresh failed", "error", err)
			return
		}
		if err := doc.WriteFile(cfg.Refresh.SnapshotPath); err != nil {
			log.Error(ctx, "snapshot write failed", "path", cfg.Refresh.SnapshotPath, "error", err)
			return
		}
		// Next cycle starts from the refreshed quotes and market prices.
		cards = doc.Cards()
	}

	refresh()
	if once {
		log.Info(ctx, "single refresh complete")
		return nil
	}

	ticker := time.NewTicker(cfg.Refresh.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, "shutting down")
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}

// buildService wires the engine's collaborators from config.
func buildService(ctx context.Context, cfg *config.Config, log logger.LoggerInterface) (*app.Service, func(), error) {
	var providers []app.QuoteProvider
	var cleanups []func()
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	if cfg.Shops.CardRush.Enabled {
		p, err := cardrush.NewProvider(cardrush.ProviderConfig{
			BaseURL:            cfg.Shops.CardRush.BaseURL,
			MinRequestInterval: cfg.Shops.CardRush.MinRequestInterval,
		}, log)
		if err != nil {
			return nil, cleanup, fmt.Errorf("cardrush provider: %w", err)
		}
		providers = append(providers, p)
	}

	if cfg.Shops.TorecaCamp.Enabled {
		p, err := torecacamp.NewProvider(torecacamp.ProviderConfig{
			BaseURL:            cfg.Shops.TorecaCamp.BaseURL,
			MinRequestInterval: cfg.Shops.TorecaCamp.MinRequestInterval,
		}, log)
		if err != nil {
			return nil, cleanup, fmt.Errorf("torecacamp provider: %w", err)
		}
		providers = append(providers, p)
	}

	var market app.MarketPriceProvider
	if cfg.Market.APIKey != "" {
		client, err := pricecharting.NewClient(pricecharting.ClientConfig{
			BaseURL:            cfg.Market.BaseURL,
			APIKey:             cfg.Market.APIKey,
			MinRequestInterval: cfg.Market.MinRequestInterval,
		}, log)
		if err != nil {
			return nil, cleanup, fmt.Errorf("pricecharting client: %w", err)
		}
		market = client
	} else {
		log.Warn(ctx, "no market API key set, margins will not be computed")
	}

	reporters := []app.Reporter{console.NewReporter()}
	if cfg.Telegram.Enabled {
		notifier, err := telegram.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		if err != nil {
			return nil, cleanup, fmt.Errorf("telegram notifier: %w", err)
		}
		reporters = append(reporters, notifier)
	}

	var store app.HistoryStore
	if cfg.History.Enabled {
		s, err := history.NewStore(ctx, cfg.History.DSN)
		if err != nil {
			return nil, cleanup, fmt.Errorf("history store: %w", err)
		}
		store = s
		cleanups = append(cleanups, func() { s.Close() })
	}

	var engineMetrics *metrics.Engine
	if cfg.Telemetry.Enabled {
		m, err := metrics.NewEngine()
		if err != nil {
			return nil, cleanup, fmt.Errorf("engine metrics: %w", err)
		}
		engineMetrics = m
	}

	svc := app.NewService(app.ServiceConfig{
		Log:       log,
		Providers: providers,
		Market:    market,
		Reporters: reporters,
		History:   store,
		Metrics:   engineMetrics,
		Sources:   domain.NewSourceSet(cfg.Shops.Active...),
		Rate:      cfg.Refresh.JPYUSDRateDecimal(),
	})
	return svc, cleanup, nil
}

// trackedCards builds the card collection from config.
func trackedCards(cfg *config.Config) []domain.Card {
	cards := make([]domain.Card, 0, len(cfg.Cards))
	for _, c := range cfg.Cards {
		cards = append(cards, domain.NewCard(c.Set, c.Number, c.Rarity, c.Name))
	}
	return cards
}
