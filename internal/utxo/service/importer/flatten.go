package importer

import (
	"encoding/hex"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/codec"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/safe"
)

// Flatten converts the outputs of ledger transaction txid into storage rows.
// Locking scripts are stored as raw script bytes without the length prefix,
// so an operand whose length equals an opcode value is rejected.
func Flatten(coin model.Coin, network model.Network, txid string, tx model.Transaction) ([]model.LedgerOutput, error) {
	rows := make([]model.LedgerOutput, 0, len(tx.Outputs))
	for i, out := range tx.Outputs {
		index, err := safe.Uint32(i)
		if err != nil {
			return nil, fmt.Errorf("%s output %d index: %w", txid, i, err)
		}
		value, err := codec.Satoshis(out.Amount)
		if err != nil {
			return nil, fmt.Errorf("%s output %d amount: %w", txid, i, err)
		}
		program, err := script.Assemble(out.LockingScript)
		if err != nil {
			return nil, fmt.Errorf("%s output %d script: %w", txid, i, err)
		}
		bytecode, err := program.Bytecode()
		if err != nil {
			return nil, fmt.Errorf("%s output %d script: %w", txid, i, err)
		}
		for idx, ins := range program {
			if ins.IsPush() && script.Opcode(len(ins.Data)).Known() {
				return nil, fmt.Errorf("%w: %s output %d operand %d is %d bytes and would be read back as %s",
					script.ErrScript, txid, i, idx, len(ins.Data), script.Opcode(len(ins.Data)))
			}
		}
		rows = append(rows, model.LedgerOutput{
			Coin:      coin,
			Network:   network,
			TxID:      txid,
			Index:     index,
			Value:     value,
			ScriptHex: hex.EncodeToString(bytecode[1:]),
		})
	}
	return rows, nil
}
