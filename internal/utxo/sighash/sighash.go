// Package sighash builds the signing copy of a transaction and the digest a
// signature for one of its inputs commits to.
package sighash

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/serializer"
)

// Hash types carried in the final byte of a signature.
const (
	SigHashAll          uint8 = 0x01
	SigHashNone         uint8 = 0x02
	SigHashSingle       uint8 = 0x03
	SigHashAnyOneCanPay uint8 = 0x80
)

// BuildSigningCopy returns a copy of tx with every unlocking script cleared,
// except input inputIndex which carries the locking script of the output it
// spends. The copy has HashType set. tx itself is not modified.
func BuildSigningCopy(tx model.Transaction, inputIndex int, hashType uint8, ledger chain.Ledger) (model.Transaction, error) {
	_, prevOut, err := chain.PreviousOutput(ledger, tx, inputIndex)
	if err != nil {
		return model.Transaction{}, err
	}

	cp := tx.Clone()
	for i := range cp.Inputs {
		cp.Inputs[i].UnlockingScript = nil
	}
	cp.Inputs[inputIndex].UnlockingScript = append([]script.Element(nil), prevOut.LockingScript...)
	cp.HashType = &hashType
	return cp, nil
}

// Digest returns the raw-order double SHA-256 of the signing copy for input
// inputIndex.
func Digest(tx model.Transaction, inputIndex int, hashType uint8, ledger chain.Ledger) ([]byte, error) {
	cp, err := BuildSigningCopy(tx, inputIndex, hashType, ledger)
	if err != nil {
		return nil, err
	}
	digest, err := serializer.Digest(cp)
	if err != nil {
		return nil, fmt.Errorf("serialize signing copy for input %d: %w", inputIndex, err)
	}
	return digest, nil
}
