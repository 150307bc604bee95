package validator

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/serializer"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/workerpool"
	"go.uber.org/zap"
)

const defaultWorkerCount = 4

// Validator validates inputs and records the outcome in logs and metrics.
type Validator struct {
	logger      *zap.Logger
	metrics     Metrics
	addresses   AddressDecoder
	workerCount int
}

// New constructs a Validator. addresses may be nil, in which case locking
// script addresses are not logged.
func New(logger *zap.Logger, metrics Metrics, addresses AddressDecoder, workerCount int) (*Validator, error) {
	if logger == nil {
		return nil, errors.New("validator logger is required")
	}
	if metrics == nil {
		return nil, errors.New("validator metrics is required")
	}
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	return &Validator{
		logger:      logger.Named("validator"),
		metrics:     metrics,
		addresses:   addresses,
		workerCount: workerCount,
	}, nil
}

// ValidateInput validates input inputIndex of tx. See the package level
// ValidateInput.
func (v *Validator) ValidateInput(tx model.Transaction, inputIndex int, ledger chain.Ledger) (Result, error) {
	started := time.Now()
	res, err := ValidateInput(tx, inputIndex, ledger)
	v.metrics.ObserveInput(res.Valid, err, started)

	logger := v.logger.With(zap.Int("input", inputIndex))
	if txid, idErr := serializer.TxID(tx); idErr == nil {
		logger = logger.With(zap.String("txid", txid))
	}
	logger = logger.With(v.addressFields(tx, inputIndex, ledger)...)

	switch {
	case err != nil:
		logger.Error("input could not be validated", zap.Error(err))
	case !res.Valid:
		logger.Warn("input failed validation", zap.Strings("stack", res.StackHex()))
	default:
		logger.Debug("input is valid")
	}
	return res, err
}

// ValidateTransaction validates the given inputs of tx concurrently, or every
// input when inputIndexes is empty. Results are returned in the order of
// inputIndexes. A per-input error is reported in Result.Err; the returned
// error is non-nil only when ctx ends first.
func (v *Validator) ValidateTransaction(ctx context.Context, tx model.Transaction, ledger chain.Ledger, inputIndexes ...int) ([]Result, error) {
	if len(inputIndexes) == 0 {
		inputIndexes = make([]int, len(tx.Inputs))
		for i := range inputIndexes {
			inputIndexes[i] = i
		}
	}

	return workerpool.Map(ctx, v.workerCount, inputIndexes, func(ctx context.Context, _ int, inputIndex int) (Result, error) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		res, err := v.ValidateInput(tx, inputIndex, ledger)
		res.Err = err
		return res, nil
	})
}

func (v *Validator) addressFields(tx model.Transaction, inputIndex int, ledger chain.Ledger) []zap.Field {
	if v.addresses == nil {
		return nil
	}
	_, prevOut, err := chain.PreviousOutput(ledger, tx, inputIndex)
	if err != nil {
		return nil
	}
	addrs, err := v.addresses.Addresses(prevOut.LockingScript)
	if err != nil || len(addrs) == 0 {
		return nil
	}
	return []zap.Field{zap.Strings("addresses", addrs)}
}
