package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/kalshi-wrapped/config"
	"github.com/alejandrodnm/kalshi-wrapped/internal/adapters/kalshi"
	"github.com/alejandrodnm/kalshi-wrapped/internal/adapters/notify"
	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
	"github.com/alejandrodnm/kalshi-wrapped/internal/reconcile"
	"github.com/alejandrodnm/kalshi-wrapped/internal/wrapped"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	skipCharts := flag.Bool("skip-charts", false, "skip candle-backed highlights (faster, fewer API calls)")
	allTrades := flag.Bool("all-trades", false, "print the full reconstructed trade table")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	runID := uuid.New().String()
	log := slog.With("run_id", runID)

	log.Info("kalshi-wrapped starting",
		"config", *configPath,
		"base_url", cfg.API.BaseURL,
		"skip_charts", *skipCharts,
	)

	client, err := kalshi.NewClient(cfg.API.BaseURL, cfg.API.AccessKeyID, cfg.API.PrivateKeyPEM)
	if err != nil {
		log.Error("failed to build kalshi client", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Fills y settlements se piden en paralelo; el resto depende de ambos.
	var (
		fills       []domain.Fill
		settlements []domain.Settlement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fills, err = client.FetchAllFills(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		settlements, err = client.FetchAllSettlements(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to fetch portfolio activity", "err", err)
		os.Exit(1)
	}
	log.Info("portfolio fetched", "fills", len(fills), "settlements", len(settlements))

	trades, err := reconcile.BuildTrades(ctx, fills, settlements, client)
	if err != nil {
		log.Error("trade reconstruction failed", "err", err)
		os.Exit(1)
	}
	log.Info("trades reconstructed", "trades", len(trades))

	deps := wrapped.Deps{Events: client}
	if !*skipCharts {
		deps.Candles = client
	}
	summary, err := wrapped.Build(ctx, trades, fills, settlements, deps)
	if err != nil {
		log.Error("failed to build wrapped summary", "err", err)
		os.Exit(1)
	}

	results := make(map[string]domain.MarketResult, len(settlements))
	for _, s := range settlements {
		results[s.Ticker] = s.MarketResult
	}

	// La tabla completa se muestra en orden cronológico de cierre; el
	// reconciliador devuelve primero las ventas y después los settlements.
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].ClosedTime.Before(trades[j].ClosedTime)
	})

	console := notify.NewConsole(*allTrades)
	console.PrintSummary(summary)
	console.PrintTrades(trades, results)

	log.Info("kalshi-wrapped done")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
