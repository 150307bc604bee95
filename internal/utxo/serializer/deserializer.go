package serializer

import (
	"fmt"
	"math"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/codec"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
)

// Deserialize decodes a genuine transaction. Trailing bytes are an error.
func Deserialize(raw []byte) (model.Transaction, error) {
	r := codec.NewReader(raw)
	tx, err := readTransaction(r)
	if err != nil {
		return model.Transaction{}, err
	}
	if r.Len() != 0 {
		return model.Transaction{}, fmt.Errorf("%w: %d trailing bytes", codec.ErrEncoding, r.Len())
	}
	return tx, nil
}

// DeserializeSigningCopy decodes a signing copy, including its trailing
// 4-byte hash type.
func DeserializeSigningCopy(raw []byte) (model.Transaction, error) {
	r := codec.NewReader(raw)
	tx, err := readTransaction(r)
	if err != nil {
		return model.Transaction{}, err
	}
	field, err := r.ReadUint32LE()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("hash type: %w", err)
	}
	if field > math.MaxUint8 {
		return model.Transaction{}, fmt.Errorf("%w: hash type %#x exceeds one byte", codec.ErrEncoding, field)
	}
	if r.Len() != 0 {
		return model.Transaction{}, fmt.Errorf("%w: %d trailing bytes", codec.ErrEncoding, r.Len())
	}
	hashType := uint8(field)
	tx.HashType = &hashType
	return tx, nil
}

func readTransaction(r *codec.Reader) (model.Transaction, error) {
	var tx model.Transaction
	var err error
	if tx.Version, err = r.ReadInt32LE(); err != nil {
		return tx, fmt.Errorf("version: %w", err)
	}

	inputCount, err := r.ReadUint8()
	if err != nil {
		return tx, fmt.Errorf("input count: %w", err)
	}
	tx.Inputs = make([]model.Input, 0, inputCount)
	for i := 0; i < int(inputCount); i++ {
		var in model.Input
		if in.PreviousTxID, err = r.ReadHash256(); err != nil {
			return tx, fmt.Errorf("input %d previous txid: %w", i, err)
		}
		if in.OutputIndex, err = r.ReadUint32LE(); err != nil {
			return tx, fmt.Errorf("input %d output index: %w", i, err)
		}
		if in.UnlockingScript, err = readScript(r); err != nil {
			return tx, fmt.Errorf("input %d unlocking script: %w", i, err)
		}
		sequence, err := r.ReadUint32LE()
		if err != nil {
			return tx, fmt.Errorf("input %d sequence: %w", i, err)
		}
		if sequence != inputSequence {
			return tx, fmt.Errorf("%w: input %d sequence %#x, want %#x", codec.ErrEncoding, i, sequence, uint32(inputSequence))
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	outputCount, err := r.ReadUint8()
	if err != nil {
		return tx, fmt.Errorf("output count: %w", err)
	}
	tx.Outputs = make([]model.Output, 0, outputCount)
	for i := 0; i < int(outputCount); i++ {
		var out model.Output
		if out.Amount, err = r.ReadAmount(); err != nil {
			return tx, fmt.Errorf("output %d amount: %w", i, err)
		}
		if out.LockingScript, err = readScript(r); err != nil {
			return tx, fmt.Errorf("output %d locking script: %w", i, err)
		}
		tx.Outputs = append(tx.Outputs, out)
	}

	if tx.LockTime, err = r.ReadUint32LE(); err != nil {
		return tx, fmt.Errorf("lock time: %w", err)
	}
	return tx, nil
}

func readScript(r *codec.Reader) ([]script.Element, error) {
	size, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	body, err := r.ReadBytes(int(size))
	if err != nil {
		return nil, err
	}
	elements, err := script.Disassemble(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrEncoding, err)
	}
	return elements, nil
}
