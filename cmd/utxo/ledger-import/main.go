package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/service/importer"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Input         string        `long:"input" env:"LEDGER_IMPORT_INPUT" description:"JSON ledger document" required:"true"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"LEDGER_IMPORT_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Coin          model.Coin    `long:"coin" env:"LEDGER_IMPORT_COIN" description:"coin name" required:"true"`
	Network       model.Network `long:"network" env:"LEDGER_IMPORT_NETWORK" description:"network name" required:"true"`
	FlushSize     int           `long:"flush-size" env:"LEDGER_IMPORT_FLUSH_SIZE" description:"outputs per ClickHouse insert" default:"10000"`
	FlushInterval time.Duration `long:"flush-interval" env:"LEDGER_IMPORT_FLUSH_INTERVAL" description:"maximum time outputs wait before being flushed" default:"5s"`
	RPS           int           `long:"rps" env:"LEDGER_IMPORT_RPS" description:"maximum inserts per second" default:"10"`
	MetricsAddr   string        `long:"metrics-addr" env:"LEDGER_IMPORT_METRICS_ADDR" description:"address for metrics server, disabled when empty"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("ledger import failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.MetricsAddr != "" {
		shutdown := serveMetrics(cfg.MetricsAddr, logger)
		defer shutdown()
	}

	doc, err := chain.ReadDocumentFile(cfg.Input)
	if err != nil {
		return err
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close repository", zap.Error(err))
		}
	}()

	imp, err := importer.New(importer.Config{
		Coin:          cfg.Coin,
		Network:       cfg.Network,
		FlushSize:     cfg.FlushSize,
		FlushInterval: cfg.FlushInterval,
		RPS:           cfg.RPS,
	}, repo, metrics.NewLedgerImporter(cfg.Coin, cfg.Network), logger)
	if err != nil {
		return err
	}

	if _, err := imp.Import(ctx, doc.Ledger); err != nil {
		return fmt.Errorf("import %s: %w", cfg.Input, err)
	}
	return nil
}

// serveMetrics exposes /metrics on addr until the returned func is called.
func serveMetrics(addr string, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
		<-done
	}
}
