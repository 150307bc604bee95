// Package bitcoin adapts Bitcoin node data to the validation model.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/codec"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/safe"
)

// ConvertTransaction maps a node transaction into the model. Scripts are
// disassembled with the model's opcode set, so scripts using other opcodes
// are rejected. Witness data and sequence numbers are dropped.
func ConvertTransaction(msg *wire.MsgTx) (model.Transaction, error) {
	txid := msg.TxHash().String()

	inputs := make([]model.Input, 0, len(msg.TxIn))
	for idx, in := range msg.TxIn {
		elements, err := script.Disassemble(in.SignatureScript)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s input %d script: %w", txid, idx, err)
		}
		inputs = append(inputs, model.Input{
			PreviousTxID:    in.PreviousOutPoint.Hash.String(),
			OutputIndex:     in.PreviousOutPoint.Index,
			UnlockingScript: elements,
		})
	}

	outputs, err := convertOutputs(txid, msg.TxOut)
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		Version:  msg.Version,
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: msg.LockTime,
	}, nil
}

// ConvertLedgerTransaction maps only the outputs of a node transaction. The
// result is sufficient as a ledger entry.
func ConvertLedgerTransaction(msg *wire.MsgTx) (model.Transaction, error) {
	outputs, err := convertOutputs(msg.TxHash().String(), msg.TxOut)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		Version:  msg.Version,
		Outputs:  outputs,
		LockTime: msg.LockTime,
	}, nil
}

func convertOutputs(txid string, txOut []*wire.TxOut) ([]model.Output, error) {
	outputs := make([]model.Output, 0, len(txOut))
	for idx, out := range txOut {
		value, err := safe.Uint64(out.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: tx %s output %d value %d: %v", codec.ErrEncoding, txid, idx, out.Value, err)
		}
		elements, err := script.Disassemble(out.PkScript)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d script: %w", txid, idx, err)
		}
		outputs = append(outputs, model.Output{
			Amount:        codec.Amount(value),
			LockingScript: elements,
		})
	}
	return outputs, nil
}
