package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/repository/clickhouse"
	"go.uber.org/zap"
)

// inputs gathers the spending transaction and its ledger from the configured
// document, store and node.
type inputs struct {
	cfg       config
	logger    *zap.Logger
	doc       chain.Document
	rpc       *bitcoin.RPCSource
	rpcClient *rpcclient.Client
	repo      *clickhouse.Repository
}

func newInputs(ctx context.Context, cfg config, logger *zap.Logger) (*inputs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in := &inputs{cfg: cfg, logger: logger}

	if cfg.Input != "" {
		doc, err := chain.ReadDocumentFile(cfg.Input)
		if err != nil {
			return nil, err
		}
		in.doc = doc
	}

	if cfg.Source == "rpc" || cfg.TxID != "" {
		client, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
		if err != nil {
			return nil, fmt.Errorf("init utxo rpc client: %w", err)
		}
		in.rpcClient = client
		observed := bitcoin.NewRPCClient(client, metrics.NewRPCClient(cfg.Coin, cfg.Network))
		in.rpc = bitcoin.NewRPCSource(observed, logger)
	}

	if cfg.Source == "clickhouse" {
		if cfg.ClickhouseDSN == "" {
			in.close()
			return nil, errors.New("ClickHouse DSN is required for the clickhouse source")
		}
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			in.close()
			return nil, fmt.Errorf("init repository: %w", err)
		}
		in.repo = repo
	}
	return in, nil
}

func (in *inputs) transaction(ctx context.Context) (model.Transaction, error) {
	if in.cfg.TxID != "" {
		tx, found, err := in.rpc.Transaction(ctx, in.cfg.TxID)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("fetch transaction %s: %w", in.cfg.TxID, err)
		}
		if !found {
			return model.Transaction{}, fmt.Errorf("transaction %s not found", in.cfg.TxID)
		}
		return tx, nil
	}
	if in.doc.Transaction == nil {
		return model.Transaction{}, errors.New("no transaction: set --txid or provide one in the input document")
	}
	return *in.doc.Transaction, nil
}

func (in *inputs) ledger(ctx context.Context, tx model.Transaction) (chain.Ledger, error) {
	var source chain.Source
	switch in.cfg.Source {
	case "file":
		if in.doc.Ledger == nil {
			return nil, errors.New("the file source needs an input document with a ledger")
		}
		return in.doc.MemoryLedger(), nil
	case "clickhouse":
		source = clickhouse.NewLedgerSource(in.repo, in.cfg.Coin, in.cfg.Network)
	case "rpc":
		source = in.rpc
	default:
		return nil, fmt.Errorf("unknown source %q", in.cfg.Source)
	}

	ledger, err := chain.NewLedgerResolver(source).Resolve(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("resolve ledger: %w", err)
	}
	in.logger.Debug("ledger resolved", zap.String("source", in.cfg.Source), zap.Int("transactions", len(ledger)))
	return ledger, nil
}

func (in *inputs) close() {
	if in.repo != nil {
		if err := in.repo.Close(); err != nil {
			in.logger.Error("failed to close repository", zap.Error(err))
		}
	}
	if in.rpcClient != nil {
		in.rpcClient.Shutdown()
		in.rpcClient.WaitForShutdown()
	}
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	return rpcclient.New(cfg, nil)
}
