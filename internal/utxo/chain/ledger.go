// Package chain resolves the previous outputs that transaction inputs spend.
package chain

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
)

// ErrReference reports an input index, previous transaction or previous
// output that cannot be resolved.
var ErrReference = errors.New("reference error")

// Ledger looks up previously known transactions by display-order txid. The
// engine only reads from it.
type Ledger interface {
	Lookup(txid string) (model.Transaction, bool)
}

// MemoryLedger is a Ledger backed by a map. It is safe for concurrent reads.
type MemoryLedger map[string]model.Transaction

// Lookup implements Ledger.
func (l MemoryLedger) Lookup(txid string) (model.Transaction, bool) {
	tx, ok := l[txid]
	return tx, ok
}

// PreviousOutput returns input inputIndex of tx and the output it spends.
func PreviousOutput(ledger Ledger, tx model.Transaction, inputIndex int) (model.Input, model.Output, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return model.Input{}, model.Output{}, fmt.Errorf("%w: input index %d out of range for %d inputs", ErrReference, inputIndex, len(tx.Inputs))
	}
	in := tx.Inputs[inputIndex]
	if ledger == nil {
		return model.Input{}, model.Output{}, fmt.Errorf("%w: no ledger to resolve %s", ErrReference, in.PreviousTxID)
	}
	prev, ok := ledger.Lookup(in.PreviousTxID)
	if !ok {
		return model.Input{}, model.Output{}, fmt.Errorf("%w: previous transaction %s not found", ErrReference, in.PreviousTxID)
	}
	if uint64(in.OutputIndex) >= uint64(len(prev.Outputs)) {
		return model.Input{}, model.Output{}, fmt.Errorf("%w: previous transaction %s has no output %d", ErrReference, in.PreviousTxID, in.OutputIndex)
	}
	return in, prev.Outputs[in.OutputIndex], nil
}
