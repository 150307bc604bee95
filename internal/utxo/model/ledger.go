package model

// LedgerOutput is a stored transaction output, the row form of a ledger entry.
type LedgerOutput struct {
	Coin      Coin
	Network   Network
	TxID      string
	Index     uint32
	Value     uint64
	ScriptHex string
}
