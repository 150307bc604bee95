package sighash

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
)

// SignInput signs the digest of input inputIndex with key and returns the DER
// signature followed by the hash type byte.
func SignInput(tx model.Transaction, inputIndex int, hashType uint8, ledger chain.Ledger, key *btcec.PrivateKey) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("sign input %d: nil private key", inputIndex)
	}
	digest, err := Digest(tx, inputIndex, hashType, ledger)
	if err != nil {
		return nil, err
	}
	sig := ecdsa.Sign(key, digest).Serialize()
	return append(sig, hashType), nil
}

// PayToPubKeyHash returns the locking script that pays to the HASH160 of pubKey.
func PayToPubKeyHash(pubKey []byte) []script.Element {
	return []script.Element{
		script.Op(script.OpDup),
		script.Op(script.OpHash160),
		script.PushBytes(btcutil.Hash160(pubKey)),
		script.Op(script.OpEqualVerify),
		script.Op(script.OpCheckSig),
	}
}

// SignatureScript returns the unlocking script for a PayToPubKeyHash output.
func SignatureScript(sig, pubKey []byte) []script.Element {
	return []script.Element{script.PushBytes(sig), script.PushBytes(pubKey)}
}
