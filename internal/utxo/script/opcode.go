// Package script compiles declarative script element lists into length-prefixed
// bytecode and decodes bytecode into a typed instruction stream.
package script

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// Opcode is a single-byte script operation.
type Opcode byte

// The authorization opcode set. Byte values match Bitcoin script.
const (
	OpDup         Opcode = txscript.OP_DUP
	OpEqualVerify Opcode = txscript.OP_EQUALVERIFY
	OpAdd         Opcode = txscript.OP_ADD
	OpHash160     Opcode = txscript.OP_HASH160
	OpCheckSig    Opcode = txscript.OP_CHECKSIG
)

var opcodeNames = map[Opcode]string{
	OpDup:         "OP_DUP",
	OpEqualVerify: "OP_EQUALVERIFY",
	OpAdd:         "OP_ADD",
	OpHash160:     "OP_HASH160",
	OpCheckSig:    "OP_CHECKSIG",
}

// Known reports whether o is an opcode the interpreter executes. Any other
// byte in bytecode is read as a push length.
func (o Opcode) Known() bool {
	_, ok := opcodeNames[o]
	return ok
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OP_UNKNOWN_%#02x", byte(o))
}
