// Package model defines the transaction records the validation engine operates on.
package model

import (
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
	"github.com/shopspring/decimal"
)

// Transaction is a UTXO transaction record.
type Transaction struct {
	Version  int32    `json:"version"`
	Inputs   []Input  `json:"inputs"`
	Outputs  []Output `json:"outputs"`
	LockTime uint32   `json:"lockTime"`
	// HashType is present only on a signing copy and is serialized as a
	// trailing 4-byte field.
	HashType *uint8 `json:"hashType,omitempty"`
}

// Input spends output OutputIndex of transaction PreviousTxID.
type Input struct {
	// PreviousTxID is the display-order (big-endian) hex transaction id.
	PreviousTxID    string           `json:"txid"`
	OutputIndex     uint32           `json:"index"`
	UnlockingScript []script.Element `json:"script"`
}

// Output locks Amount, in whole coins, behind LockingScript.
type Output struct {
	Amount        decimal.Decimal  `json:"amount"`
	LockingScript []script.Element `json:"script"`
}

// IsSigningCopy reports whether t carries a hash type.
func (t Transaction) IsSigningCopy() bool {
	return t.HashType != nil
}

// Clone returns a deep copy of t.
func (t Transaction) Clone() Transaction {
	out := Transaction{
		Version:  t.Version,
		LockTime: t.LockTime,
	}
	if t.Inputs != nil {
		out.Inputs = make([]Input, len(t.Inputs))
		for i, in := range t.Inputs {
			in.UnlockingScript = cloneElements(in.UnlockingScript)
			out.Inputs[i] = in
		}
	}
	if t.Outputs != nil {
		out.Outputs = make([]Output, len(t.Outputs))
		for i, o := range t.Outputs {
			o.LockingScript = cloneElements(o.LockingScript)
			out.Outputs[i] = o
		}
	}
	if t.HashType != nil {
		ht := *t.HashType
		out.HashType = &ht
	}
	return out
}

func cloneElements(elements []script.Element) []script.Element {
	if elements == nil {
		return nil
	}
	return append([]script.Element(nil), elements...)
}
