// Package serializer produces the canonical byte encoding of a transaction and
// reads it back.
package serializer

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/codec"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/safe"
)

// Every input is serialized with the final sequence number.
const inputSequence = wire.MaxTxInSequenceNum

// Serialize encodes tx. The trailing hash-type field is written only when tx
// is a signing copy.
func Serialize(tx model.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(codec.EncodeInt32LE(tx.Version))

	inputCount, err := safe.Uint8(len(tx.Inputs))
	if err != nil {
		return nil, fmt.Errorf("%w: input count: %v", codec.ErrEncoding, err)
	}
	buf.Write(codec.EncodeUint8(inputCount))
	for i, in := range tx.Inputs {
		prev, err := codec.EncodeHash256(in.PreviousTxID)
		if err != nil {
			return nil, fmt.Errorf("input %d previous txid: %w", i, err)
		}
		unlocking, err := script.Compile(in.UnlockingScript)
		if err != nil {
			return nil, fmt.Errorf("input %d unlocking script: %w", i, err)
		}
		buf.Write(prev)
		buf.Write(codec.EncodeUint32LE(in.OutputIndex))
		buf.Write(unlocking)
		buf.Write(codec.EncodeUint32LE(inputSequence))
	}

	outputCount, err := safe.Uint8(len(tx.Outputs))
	if err != nil {
		return nil, fmt.Errorf("%w: output count: %v", codec.ErrEncoding, err)
	}
	buf.Write(codec.EncodeUint8(outputCount))
	for i, out := range tx.Outputs {
		amount, err := codec.EncodeAmount(out.Amount)
		if err != nil {
			return nil, fmt.Errorf("output %d amount: %w", i, err)
		}
		locking, err := script.Compile(out.LockingScript)
		if err != nil {
			return nil, fmt.Errorf("output %d locking script: %w", i, err)
		}
		buf.Write(amount)
		buf.Write(locking)
	}

	buf.Write(codec.EncodeUint32LE(tx.LockTime))
	if tx.HashType != nil {
		buf.Write(codec.EncodeUint32LE(uint32(*tx.HashType)))
	}
	return buf.Bytes(), nil
}

// Digest returns the double SHA-256 of the serialized transaction.
func Digest(tx model.Transaction) ([]byte, error) {
	raw, err := Serialize(tx)
	if err != nil {
		return nil, err
	}
	return codec.DoubleSHA256(raw), nil
}

// TxID returns the display-order transaction id.
func TxID(tx model.Transaction) (string, error) {
	digest, err := Digest(tx)
	if err != nil {
		return "", err
	}
	return codec.ToDisplayHex(digest), nil
}
