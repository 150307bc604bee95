package chain

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
)

// ledgerResolverBatchSize controls how many txids are fetched in one source call.
// It is a var to allow overriding in tests.
var ledgerResolverBatchSize = 1000

// LedgerResolver populates a MemoryLedger with the previous transactions a set
// of transactions spend.
type LedgerResolver struct {
	source Source
}

// NewLedgerResolver constructs a LedgerResolver over source.
func NewLedgerResolver(source Source) *LedgerResolver {
	return &LedgerResolver{source: source}
}

// Resolve fetches every distinct previous txid referenced by txs. Ids the
// source does not know are left out of the ledger.
func (r *LedgerResolver) Resolve(ctx context.Context, txs ...model.Transaction) (MemoryLedger, error) {
	seen := make(map[string]struct{})
	missing := make([]string, 0)
	for _, tx := range txs {
		for _, in := range tx.Inputs {
			if _, dup := seen[in.PreviousTxID]; dup {
				continue
			}
			seen[in.PreviousTxID] = struct{}{}
			missing = append(missing, in.PreviousTxID)
		}
	}

	ledger := make(MemoryLedger, len(missing))
	size := ledgerResolverBatchSize
	if size <= 0 {
		size = 1000
	}
	for start := 0; start < len(missing); start += size {
		end := min(start+size, len(missing))

		fetched, err := r.source.Transactions(ctx, missing[start:end])
		if err != nil {
			return nil, fmt.Errorf("fetch previous transactions: %w", err)
		}
		for txid, tx := range fetched {
			ledger[txid] = tx
		}
	}
	return ledger, nil
}
