// Package importer loads ledger documents into the ledger store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/serializer"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/batcher"
	"go.uber.org/zap"
)

// Config tunes how ledger outputs are batched into the repository.
type Config struct {
	Coin          model.Coin
	Network       model.Network
	FlushSize     int
	FlushInterval time.Duration
	RPS           int
}

// Importer flattens ledger transactions into output rows and writes them in
// batches.
type Importer struct {
	cfg     Config
	repo    Repository
	metrics Metrics
	logger  *zap.Logger
}

// New constructs an Importer. Zero tuning values fall back to defaults.
func New(cfg Config, repo Repository, metrics Metrics, logger *zap.Logger) (*Importer, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Coin == "" || cfg.Network == "" {
		return nil, fmt.Errorf("coin and network are required, got %q/%q", cfg.Coin, cfg.Network)
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = defaultFlushSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	return &Importer{
		cfg:     cfg,
		repo:    repo,
		metrics: metrics,
		logger: logger.Named("importer").With(
			zap.String("coin", string(cfg.Coin)),
			zap.String("network", string(cfg.Network)),
		),
	}, nil
}

// Import writes every output of ledger and returns the number of rows queued.
// Transactions are processed in txid order. Rows queued before a failure are
// still flushed.
func (i *Importer) Import(ctx context.Context, ledger map[string]model.Transaction) (int, error) {
	b := batcher.New[model.LedgerOutput](
		i.logger.Named("batcher"),
		i.flush,
		i.cfg.FlushSize,
		i.cfg.FlushInterval,
		i.cfg.RPS,
	)
	b.Start(ctx)

	queued, err := i.enqueue(ctx, b, ledger)
	if stopErr := b.Stop(); stopErr != nil && err == nil {
		err = fmt.Errorf("flush ledger outputs: %w", stopErr)
	}
	if err != nil {
		return queued, err
	}

	i.logger.Info("ledger imported", zap.Int("transactions", len(ledger)), zap.Int("outputs", queued))
	return queued, nil
}

func (i *Importer) enqueue(ctx context.Context, b *batcher.Batcher[model.LedgerOutput], ledger map[string]model.Transaction) (int, error) {
	txids := make([]string, 0, len(ledger))
	for txid := range ledger {
		txids = append(txids, txid)
	}
	sort.Strings(txids)

	queued := 0
	for _, txid := range txids {
		tx := ledger[txid]
		rows, err := Flatten(i.cfg.Coin, i.cfg.Network, txid, tx)
		i.metrics.ObserveTransaction(err)
		if err != nil {
			i.logger.Error("flatten transaction failed", zap.String("txid", txid), zap.Error(err))
			return queued, err
		}
		i.checkTxID(txid, tx)

		for _, row := range rows {
			if err := b.Add(ctx, row); err != nil {
				return queued, fmt.Errorf("queue %s output %d: %w", txid, row.Index, err)
			}
			queued++
		}
	}
	return queued, nil
}

// checkTxID logs ledger keys that are not the hash of their transaction.
func (i *Importer) checkTxID(txid string, tx model.Transaction) {
	computed, err := serializer.TxID(tx)
	if err != nil || computed == txid {
		return
	}
	i.logger.Debug("ledger key differs from transaction id",
		zap.String("txid", txid),
		zap.String("computed", computed),
	)
}

func (i *Importer) flush(ctx context.Context, rows []model.LedgerOutput) (err error) {
	started := time.Now()
	defer func() {
		i.metrics.ObserveFlush(err, len(rows), started)
	}()

	if err = i.repo.InsertLedgerOutputs(ctx, rows); err != nil {
		return fmt.Errorf("insert %d ledger outputs: %w", len(rows), err)
	}
	return nil
}
