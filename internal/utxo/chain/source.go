package chain

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Source fetches previous transactions from an external store. Ids it does
// not know are omitted from the result.
type Source interface {
	Transactions(ctx context.Context, txids []string) (map[string]model.Transaction, error)
}
