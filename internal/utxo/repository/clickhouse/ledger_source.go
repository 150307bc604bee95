package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
)

// LedgerSource serves ledger transactions of one coin and network from the
// repository. It implements chain.Source.
type LedgerSource struct {
	repo    *Repository
	coin    model.Coin
	network model.Network
}

func NewLedgerSource(repo *Repository, coin model.Coin, network model.Network) *LedgerSource {
	return &LedgerSource{repo: repo, coin: coin, network: network}
}

func (s *LedgerSource) Transactions(ctx context.Context, txids []string) (map[string]model.Transaction, error) {
	return s.repo.LedgerTransactionsByTxIDs(ctx, s.coin, s.network, txids)
}
