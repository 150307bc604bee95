package script

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/utxo/codec"
)

// ErrScript reports an operand or script that does not fit its one-byte
// length prefix, or bytecode that ends inside an instruction.
var ErrScript = errors.New("script error")

// Instruction is a decoded script step: an opcode or a data push.
type Instruction struct {
	Opcode Opcode
	Data   []byte
	push   bool
}

// Push returns a data push instruction.
func Push(data []byte) Instruction {
	return Instruction{Data: data, push: true}
}

// Operation returns an opcode instruction.
func Operation(o Opcode) Instruction {
	return Instruction{Opcode: o}
}

// IsPush reports whether i pushes data.
func (i Instruction) IsPush() bool {
	return i.push
}

func (i Instruction) String() string {
	if i.push {
		return fmt.Sprintf("PUSH(%x)", i.Data)
	}
	return i.Opcode.String()
}

// Program is a typed instruction stream.
type Program []Instruction

// Assemble converts declarative elements into a Program, decoding hex operands.
func Assemble(elements []Element) (Program, error) {
	program := make(Program, 0, len(elements))
	for idx, el := range elements {
		if !el.IsPush() {
			program = append(program, Operation(el.Opcode()))
			continue
		}
		data, err := hex.DecodeString(el.Operand())
		if err != nil {
			return nil, fmt.Errorf("%w: element %d operand %q: %v", codec.ErrEncoding, idx, el.Operand(), err)
		}
		program = append(program, Push(data))
	}
	return program, nil
}

// Compile assembles elements and returns their length-prefixed bytecode.
func Compile(elements []Element) ([]byte, error) {
	program, err := Assemble(elements)
	if err != nil {
		return nil, err
	}
	return program.Bytecode()
}

// Raw returns the script body without the total-length prefix. Operand
// lengths are not range checked.
func (p Program) Raw() []byte {
	var body []byte
	for _, ins := range p {
		if !ins.push {
			body = append(body, byte(ins.Opcode))
			continue
		}
		body = append(body, byte(len(ins.Data)))
		body = append(body, ins.Data...)
	}
	return body
}

// Bytecode returns the compiled form: a one-byte total length followed by
// each opcode byte or each length-prefixed operand.
func (p Program) Bytecode() ([]byte, error) {
	for idx, ins := range p {
		if ins.push && len(ins.Data) > math.MaxUint8 {
			return nil, fmt.Errorf("%w: operand %d is %d bytes, limit %d", ErrScript, idx, len(ins.Data), math.MaxUint8)
		}
	}
	body := p.Raw()
	if len(body) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: script is %d bytes, limit %d", ErrScript, len(body), math.MaxUint8)
	}
	return append([]byte{byte(len(body))}, body...), nil
}

// Elements converts the program back to declarative elements.
func (p Program) Elements() []Element {
	if len(p) == 0 {
		return nil
	}
	elements := make([]Element, 0, len(p))
	for _, ins := range p {
		if ins.push {
			elements = append(elements, PushBytes(ins.Data))
			continue
		}
		elements = append(elements, Op(ins.Opcode))
	}
	return elements
}

// Decode parses length-prefixed bytecode. A byte naming a known opcode is an
// opcode; any other byte is the length of the push that follows it.
func Decode(bytecode []byte) (Program, error) {
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%w: missing length prefix", ErrScript)
	}
	declared := int(bytecode[0])
	if declared != len(bytecode)-1 {
		return nil, fmt.Errorf("%w: declared length %d, have %d bytes", ErrScript, declared, len(bytecode)-1)
	}
	return decodeBody(bytecode[1:])
}

// Disassemble converts a raw script body, as stored on chain without the
// length prefix, into declarative elements.
func Disassemble(raw []byte) ([]Element, error) {
	program, err := decodeBody(raw)
	if err != nil {
		return nil, err
	}
	return program.Elements(), nil
}

func decodeBody(body []byte) (Program, error) {
	program := Program{}
	for ip := 0; ip < len(body); {
		code := Opcode(body[ip])
		ip++
		if code.Known() {
			program = append(program, Operation(code))
			continue
		}
		size := int(code)
		if ip+size > len(body) {
			return nil, fmt.Errorf("%w: push of %d bytes at offset %d runs past script end %d", ErrScript, size, ip-1, len(body))
		}
		data := make([]byte, size)
		copy(data, body[ip:ip+size])
		program = append(program, Push(data))
		ip += size
	}
	return program, nil
}
