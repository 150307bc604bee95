package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"go.uber.org/zap"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 500 * time.Millisecond
)

// RPCSource fetches ledger transactions from a Bitcoin node. It implements
// chain.Source.
type RPCSource struct {
	rpc    NodeClient
	logger *zap.Logger
	retry  clock.Backoff
}

// NewRPCSource constructs an RPCSource over rpc.
func NewRPCSource(rpc NodeClient, logger *zap.Logger) *RPCSource {
	return &RPCSource{
		rpc:    rpc,
		logger: logger.Named("rpcSource"),
		retry: clock.Backoff{
			Attempts: defaultRetryAttempts,
			Step:     defaultRetryBackoff,
		},
	}
}

// Transactions returns the outputs of every txid the node knows. Unknown
// txids are left out of the result.
func (s *RPCSource) Transactions(ctx context.Context, txids []string) (map[string]model.Transaction, error) {
	out := make(map[string]model.Transaction, len(txids))
	for _, txid := range txids {
		msg, err := s.fetch(ctx, txid)
		if err != nil {
			return nil, err
		}
		if msg == nil {
			s.logger.Debug("transaction not found", zap.String("txid", txid))
			continue
		}
		tx, err := ConvertLedgerTransaction(msg)
		if err != nil {
			return nil, err
		}
		out[txid] = tx
	}
	return out, nil
}

// Transaction returns the full transaction txid. The boolean is false when
// the node does not know it.
func (s *RPCSource) Transaction(ctx context.Context, txid string) (model.Transaction, bool, error) {
	msg, err := s.fetch(ctx, txid)
	if err != nil || msg == nil {
		return model.Transaction{}, false, err
	}
	tx, err := ConvertTransaction(msg)
	if err != nil {
		return model.Transaction{}, false, err
	}
	return tx, true, nil
}

// fetch returns nil without error when the node reports the txid unknown.
// Other failures are retried with a linear backoff.
func (s *RPCSource) fetch(ctx context.Context, txid string) (*wire.MsgTx, error) {
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %q: %w", txid, err)
	}

	var msg *wire.MsgTx
	err = s.retry.Retry(ctx, func(_ context.Context, attempt int) error {
		tx, err := s.rpc.GetRawTransaction(hash)
		switch {
		case isNotFound(err):
			return nil
		case err != nil:
			s.logger.Warn("get raw transaction failed",
				zap.String("txid", txid),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		case tx == nil:
			return clock.Permanent(fmt.Errorf("node returned no transaction for %s", txid))
		}
		if got := tx.Hash(); !got.IsEqual(hash) {
			return clock.Permanent(fmt.Errorf("node returned transaction %s for %s", got, txid))
		}
		msg = tx.MsgTx()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	return msg, nil
}

func isNotFound(err error) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo
}
