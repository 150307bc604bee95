// Package validator checks that transaction inputs satisfy the locking
// scripts of the outputs they spend.
package validator

import (
	"encoding/hex"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/script"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/vm"
)

// Result is the verdict for one input.
type Result struct {
	InputIndex int
	Valid      bool
	// Stack is the value stack when execution stopped, bottom first.
	Stack [][]byte
	// Err is set by Validator.ValidateTransaction when the input could not
	// be evaluated.
	Err error
}

// StackHex renders Stack as hex strings.
func (r Result) StackHex() []string {
	out := make([]string, len(r.Stack))
	for i, item := range r.Stack {
		out[i] = hex.EncodeToString(item)
	}
	return out
}

// ValidateInput runs the unlocking script of input inputIndex followed by the
// locking script of the output it spends, over one shared stack. Valid is
// true only if both scripts succeed.
//
// A script that fails authorization yields Valid false and a nil error. An
// error is returned for an unresolvable reference, a script that does not
// compile, or a malformed signature.
func ValidateInput(tx model.Transaction, inputIndex int, ledger chain.Ledger) (Result, error) {
	res := Result{InputIndex: inputIndex}

	in, prevOut, err := chain.PreviousOutput(ledger, tx, inputIndex)
	if err != nil {
		return res, err
	}
	unlocking, err := assemble(in.UnlockingScript)
	if err != nil {
		return res, fmt.Errorf("compile unlocking script of input %d: %w", inputIndex, err)
	}
	locking, err := assemble(prevOut.LockingScript)
	if err != nil {
		return res, fmt.Errorf("compile locking script of %s:%d: %w", in.PreviousTxID, in.OutputIndex, err)
	}

	stack := vm.NewStack()
	engine := vm.NewEngine(tx, inputIndex, ledger)

	ok, err := engine.Execute(unlocking, stack)
	if err == nil && ok {
		ok, err = engine.Execute(locking, stack)
	}
	res.Valid = ok && err == nil
	res.Stack = stack.Items()
	if err != nil {
		return res, fmt.Errorf("input %d: %w", inputIndex, err)
	}
	return res, nil
}

// assemble builds the typed program for elements. The program is executed
// as assembled; its bytecode is produced only to enforce the length limits.
func assemble(elements []script.Element) (script.Program, error) {
	program, err := script.Assemble(elements)
	if err != nil {
		return nil, err
	}
	if _, err := program.Bytecode(); err != nil {
		return nil, err
	}
	return program, nil
}
