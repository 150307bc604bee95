package validator

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveInput(valid bool, err error, started time.Time)
	}
	AddressDecoder interface {
		Addresses(lockingScript []script.Element) ([]string, error)
	}
)
