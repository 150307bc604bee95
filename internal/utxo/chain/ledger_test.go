package chain

import (
	"errors"
	"testing"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/testvectors"
)

func TestPreviousOutput(t *testing.T) {
	ledger := MemoryLedger(testvectors.HistoricalLedger())
	tx := testvectors.Historical()

	tests := []struct {
		name       string
		ledger     Ledger
		tx         model.Transaction
		inputIndex int
		wantAmount string
		wantErr    bool
	}{
		{name: "first input", ledger: ledger, tx: tx, inputIndex: 0, wantAmount: "0.09212969"},
		{name: "second input", ledger: ledger, tx: tx, inputIndex: 1, wantAmount: "0.1"},
		{name: "negative index", ledger: ledger, tx: tx, inputIndex: -1, wantErr: true},
		{name: "index past inputs", ledger: ledger, tx: tx, inputIndex: 2, wantErr: true},
		{name: "nil ledger", ledger: nil, tx: tx, inputIndex: 0, wantErr: true},
		{name: "unknown transaction", ledger: MemoryLedger{}, tx: tx, inputIndex: 0, wantErr: true},
		{
			name:   "output index past outputs",
			ledger: ledger,
			tx: model.Transaction{Inputs: []model.Input{{
				PreviousTxID: testvectors.PrevTxID0,
				OutputIndex:  2,
			}}},
			inputIndex: 0,
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out, err := PreviousOutput(tt.ledger, tt.tx, tt.inputIndex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PreviousOutput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrReference) {
					t.Fatalf("PreviousOutput() error = %v, want ErrReference", err)
				}
				return
			}
			if in.PreviousTxID != tt.tx.Inputs[tt.inputIndex].PreviousTxID {
				t.Fatalf("PreviousOutput() input = %+v", in)
			}
			if out.Amount.String() != tt.wantAmount {
				t.Fatalf("PreviousOutput() amount = %s, want %s", out.Amount, tt.wantAmount)
			}
		})
	}
}
