// Package testvectors provides literal transactions with known digests for
// tests across the utxo packages.
package testvectors

import (
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
	"github.com/shopspring/decimal"
)

const (
	// HistoricalTxID is the id of the two-input transaction returned by Historical.
	HistoricalTxID = "9e9f1efee35b84bf71a4b741c19e1acc6a003f51ef8a7302a3dcd428b99791e4"

	// HistoricalRaw is the serialization of Historical.
	HistoricalRaw = "0100000002c9505b10d283577977981f71e0837856d6f8fb617d45f2290dcfc13b1dc5e514010000006b4830450221009eb819743dc981250daaaab0ad51e37ba47f7fb4ace61f6a69111850d6f2990502206b6e59e1c002a4e35ba2be4d00366ea0f3e0b14c829907920705bce336ab294501210275e9b1369179c24935337d597a06df0e388b53e8ac3f10ee426431d1a90c1b6efffffffffbd1d7b072a36f9e0eaf91922e0607218df9d98805ce086464c9822edcee7a5b010000006b483045022035a9e444883acaaae166d2ee1389272424ec7885f4210aaf118fee58b5683445022100e40624a0df47943aa5ee63d8997dd36c5da44409ccc4dafcbfabc96a020d971c0121033b18e24fb031dae396297516a54f3e46cc9902adfd1b8edea0d6a01dab0e027dffffffff0219275500000000001976a9144753945f3b34d6ca3fedcf41bf499c13d20bfec488ac80969800000000001976a91481a9e7d0ab008005d36c61563a178ad20a3a522488ac00000000"

	// Raw signing digests of Historical's inputs under SIGHASH_ALL.
	HistoricalSigHash0 = "7864195f63e7b387b0e162c4afc0266a3b3fd204ba8821f71aafe551315fb622"
	HistoricalSigHash1 = "03bbdc03436501fadb9796d4a52b70a80432f0dba30af49ac29b9e0909123eb8"

	PrevTxID0 = "14e5c51d3bc1cf0d29f2457d61fbf8d6567883e0711f9877795783d2105b50c9"
	PrevTxID1 = "5b7aeedc2e82c9646408ce0588d9f98d2107062e9291af0e9e6fa372b0d7d1fb"

	Signature0  = "30450221009eb819743dc981250daaaab0ad51e37ba47f7fb4ace61f6a69111850d6f2990502206b6e59e1c002a4e35ba2be4d00366ea0f3e0b14c829907920705bce336ab2945" + "01"
	PubKey0     = "0275e9b1369179c24935337d597a06df0e388b53e8ac3f10ee426431d1a90c1b6e"
	PubKeyHash0 = "4586dd621917a93058ee904db1b7a43bfc05910a"

	Signature1  = "3045022035a9e444883acaaae166d2ee1389272424ec7885f4210aaf118fee58b5683445022100e40624a0df47943aa5ee63d8997dd36c5da44409ccc4dafcbfabc96a020d971c" + "01"
	PubKey1     = "033b18e24fb031dae396297516a54f3e46cc9902adfd1b8edea0d6a01dab0e027d"
	PubKeyHash1 = "a7bdc0093a1a21608e86ba7c902969dd201197b7"
)

// PayToPubKeyHash returns the standard locking script for a pubkey hash.
func PayToPubKeyHash(hash string) []script.Element {
	return []script.Element{
		script.Op(script.OpDup),
		script.Op(script.OpHash160),
		script.Data(hash),
		script.Op(script.OpEqualVerify),
		script.Op(script.OpCheckSig),
	}
}

// Historical returns a mainnet transaction spending output 1 of two earlier
// transactions.
func Historical() model.Transaction {
	return model.Transaction{
		Version: 1,
		Inputs: []model.Input{
			{
				PreviousTxID:    PrevTxID0,
				OutputIndex:     1,
				UnlockingScript: []script.Element{script.Data(Signature0), script.Data(PubKey0)},
			},
			{
				PreviousTxID:    PrevTxID1,
				OutputIndex:     1,
				UnlockingScript: []script.Element{script.Data(Signature1), script.Data(PubKey1)},
			},
		},
		Outputs: []model.Output{
			{
				Amount:        decimal.RequireFromString("0.05580569"),
				LockingScript: PayToPubKeyHash("4753945f3b34d6ca3fedcf41bf499c13d20bfec4"),
			},
			{
				Amount:        decimal.RequireFromString("0.1"),
				LockingScript: PayToPubKeyHash("81a9e7d0ab008005d36c61563a178ad20a3a5224"),
			},
		},
		LockTime: 0,
	}
}

// HistoricalLedger returns the previous transactions Historical spends. Only
// output 1 of each is meaningful; output 0 is a placeholder.
func HistoricalLedger() map[string]model.Transaction {
	placeholder := model.Output{Amount: decimal.Zero}
	return map[string]model.Transaction{
		PrevTxID0: {
			Version: 1,
			Outputs: []model.Output{
				placeholder,
				{Amount: decimal.RequireFromString("0.09212969"), LockingScript: PayToPubKeyHash(PubKeyHash0)},
			},
		},
		PrevTxID1: {
			Version: 1,
			Outputs: []model.Output{
				placeholder,
				{Amount: decimal.RequireFromString("0.1"), LockingScript: PayToPubKeyHash(PubKeyHash1)},
			},
		},
	}
}
