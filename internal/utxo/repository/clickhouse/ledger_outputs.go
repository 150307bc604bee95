package clickhouse

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/codec"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
)

// InsertLedgerOutputs stores ledger outputs in ClickHouse.
func (r *Repository) InsertLedgerOutputs(ctx context.Context, outputs []model.LedgerOutput) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_ledger_outputs", firstCoin(outputs), firstNetwork(outputs), len(outputs), err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	const query = `
INSERT INTO ledger_transaction_outputs (
    coin,
    network,
    txid,
    output_index,
    value,
    script_hex
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare ledger outputs batch: %w", err)
	}

	for _, output := range outputs {
		if err = batch.Append(
			string(output.Coin),
			string(output.Network),
			output.TxID,
			output.Index,
			output.Value,
			output.ScriptHex,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append ledger output %s:%d: %w", output.TxID, output.Index, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert ledger outputs: %w", err)
	}
	return nil
}

// LedgerTransactionsByTxIDs returns the stored transactions for txids as
// ledger entries carrying only outputs. Unknown txids are absent from the
// result. A stored transaction whose output indexes are not contiguous from
// zero is an error.
func (r *Repository) LedgerTransactionsByTxIDs(ctx context.Context, coin model.Coin, network model.Network, txids []string) (result map[string]model.Transaction, err error) {
	start := time.Now()
	var rowCount int
	defer func() {
		r.metrics.Observe("ledger_transactions_by_txids", coin, network, rowCount, err, start)
	}()

	if len(txids) == 0 {
		return map[string]model.Transaction{}, nil
	}

	const query = `
SELECT
    txid,
    output_index,
    anyLast(value) AS value,
    anyLast(script_hex) AS script_hex
FROM ledger_transaction_outputs
WHERE coin = ? AND network = ? AND txid IN ?
GROUP BY
    txid,
    output_index
ORDER BY output_index ASC
SETTINGS max_threads = 1`

	rows, err := r.conn.Query(ctx, query, string(coin), string(network), txids)
	if err != nil {
		return nil, fmt.Errorf("query ledger outputs by txids: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	grouped := make(map[string][]model.LedgerOutput, len(txids))
	for rows.Next() {
		output := model.LedgerOutput{Coin: coin, Network: network}
		if err = rows.Scan(
			&output.TxID,
			&output.Index,
			&output.Value,
			&output.ScriptHex,
		); err != nil {
			return nil, fmt.Errorf("scan ledger output: %w", err)
		}
		grouped[output.TxID] = append(grouped[output.TxID], output)
		rowCount++
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger outputs: %w", err)
	}

	result = make(map[string]model.Transaction, len(grouped))
	for txid, outputs := range grouped {
		tx, convErr := ledgerTransaction(outputs)
		if convErr != nil {
			err = fmt.Errorf("ledger transaction %s: %w", txid, convErr)
			return nil, err
		}
		result[txid] = tx
	}
	return result, nil
}

func ledgerTransaction(outputs []model.LedgerOutput) (model.Transaction, error) {
	sort.Slice(outputs, func(i, j int) bool { return outputs[i].Index < outputs[j].Index })

	tx := model.Transaction{Outputs: make([]model.Output, 0, len(outputs))}
	for i, output := range outputs {
		if uint64(output.Index) != uint64(i) {
			return model.Transaction{}, fmt.Errorf("output index %d stored where %d expected", output.Index, i)
		}
		raw, err := hex.DecodeString(output.ScriptHex)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("%w: output %d script hex: %v", codec.ErrEncoding, output.Index, err)
		}
		elements, err := script.Disassemble(raw)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("output %d script: %w", output.Index, err)
		}
		tx.Outputs = append(tx.Outputs, model.Output{
			Amount:        codec.Amount(output.Value),
			LockingScript: elements,
		})
	}
	return tx, nil
}

func firstCoin(outputs []model.LedgerOutput) model.Coin {
	if len(outputs) == 0 {
		return ""
	}
	return outputs[0].Coin
}

func firstNetwork(outputs []model.LedgerOutput) model.Network {
	if len(outputs) == 0 {
		return ""
	}
	return outputs[0].Network
}
