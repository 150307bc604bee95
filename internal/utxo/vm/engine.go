// Package vm executes compiled authorization scripts for a single transaction
// input.
package vm

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/codec"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/sighash"
)

// ErrSignatureEncoding reports a CHECKSIG operand that is not a DER signature
// followed by a hash type byte, or a public key that does not parse.
var ErrSignatureEncoding = errors.New("signature encoding error")

// Engine runs scripts in the context of input inputIndex of tx. The ledger is
// only read.
type Engine struct {
	tx         model.Transaction
	inputIndex int
	ledger     chain.Ledger
}

// NewEngine returns an Engine for input inputIndex of tx.
func NewEngine(tx model.Transaction, inputIndex int, ledger chain.Ledger) *Engine {
	return &Engine{tx: tx, inputIndex: inputIndex, ledger: ledger}
}

// Run decodes length-prefixed bytecode and executes it against stack.
// Bytecode that ends inside a push or disagrees with its length prefix
// fails the script.
func (e *Engine) Run(bytecode []byte, stack *Stack) (bool, error) {
	program, err := script.Decode(bytecode)
	if err != nil {
		if errors.Is(err, script.ErrScript) {
			return false, nil
		}
		return false, err
	}
	return e.Execute(program, stack)
}

// Execute runs program against stack. It returns false as soon as an
// instruction fails and true when every instruction has run. A non-nil error
// is returned only for malformed signatures or unresolvable references.
func (e *Engine) Execute(program script.Program, stack *Stack) (bool, error) {
	for _, ins := range program {
		if ins.IsPush() {
			stack.Push(ins.Data)
			continue
		}
		ok, err := e.step(ins.Opcode, stack)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (e *Engine) step(op script.Opcode, stack *Stack) (bool, error) {
	switch op {
	case script.OpDup:
		top, ok := stack.Peek()
		if !ok {
			return false, nil
		}
		stack.Push(top)
		return true, nil

	case script.OpAdd:
		b, okB := stack.Pop()
		a, okA := stack.Pop()
		if !okA || !okB {
			return false, nil
		}
		x, okX := decodeInt32(a)
		y, okY := decodeInt32(b)
		if !okX || !okY {
			return false, nil
		}
		sum := int64(x) + int64(y)
		if sum > math.MaxInt32 || sum < math.MinInt32 {
			return false, nil
		}
		stack.Push(codec.EncodeInt32LE(int32(sum)))
		return true, nil

	case script.OpHash160:
		top, ok := stack.Pop()
		if !ok {
			return false, nil
		}
		stack.Push(btcutil.Hash160(top))
		return true, nil

	case script.OpEqualVerify:
		b, okB := stack.Pop()
		a, okA := stack.Pop()
		if !okA || !okB {
			return false, nil
		}
		return bytes.Equal(a, b), nil

	case script.OpCheckSig:
		pubKey, okP := stack.Pop()
		sig, okS := stack.Pop()
		if !okP || !okS {
			return false, nil
		}
		return e.checkSig(sig, pubKey)

	default:
		return false, nil
	}
}

func (e *Engine) checkSig(sig, pubKeyBytes []byte) (bool, error) {
	if len(sig) == 0 {
		return false, fmt.Errorf("%w: empty signature", ErrSignatureEncoding)
	}
	hashType := sig[len(sig)-1]
	signature, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSignatureEncoding, err)
	}
	pubKey, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false, fmt.Errorf("%w: public key: %v", ErrSignatureEncoding, err)
	}

	digest, err := sighash.Digest(e.tx, e.inputIndex, hashType, e.ledger)
	if err != nil {
		return false, fmt.Errorf("signing digest for input %d: %w", e.inputIndex, err)
	}
	return signature.Verify(digest, pubKey), nil
}

// decodeInt32 reads a numeric operand. Only 4-byte operands are numbers.
func decodeInt32(b []byte) (int32, bool) {
	if len(b) != 4 {
		return 0, false
	}
	n, err := codec.NewReader(b).ReadInt32LE()
	return n, err == nil
}
