package importer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertLedgerOutputs(ctx context.Context, outputs []model.LedgerOutput) error
	}
	Metrics interface {
		ObserveTransaction(err error)
		ObserveFlush(err error, rows int, started time.Time)
	}
)
