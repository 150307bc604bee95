package script

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
)

// Element is one entry of a declarative script: an opcode or a hex operand
// to push.
type Element struct {
	opcode  Opcode
	operand string
	push    bool
}

// Op returns an opcode element.
func Op(o Opcode) Element {
	return Element{opcode: o}
}

// Data returns a push element for a hex-encoded operand. The hex is decoded
// when the script is compiled.
func Data(hexOperand string) Element {
	return Element{operand: hexOperand, push: true}
}

// PushBytes returns a push element for raw bytes.
func PushBytes(b []byte) Element {
	return Data(hex.EncodeToString(b))
}

// IsPush reports whether e pushes an operand.
func (e Element) IsPush() bool {
	return e.push
}

// Opcode returns the opcode of a non-push element.
func (e Element) Opcode() Opcode {
	return e.opcode
}

// Operand returns the hex operand of a push element.
func (e Element) Operand() string {
	return e.operand
}

func (e Element) String() string {
	if e.push {
		return e.operand
	}
	return e.opcode.String()
}

// MarshalJSON encodes an opcode as a JSON number and an operand as a JSON string.
func (e Element) MarshalJSON() ([]byte, error) {
	if e.push {
		return json.Marshal(e.operand)
	}
	return json.Marshal(uint8(e.opcode))
}

// UnmarshalJSON accepts a JSON number in [0, 255] as an opcode and a JSON
// string as a hex operand.
func (e *Element) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var operand string
		if err := json.Unmarshal(data, &operand); err != nil {
			return err
		}
		*e = Data(operand)
		return nil
	}

	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: null is neither opcode nor hex operand", ErrScript)
	}
	var code float64
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("%w: element %s is neither opcode nor hex operand", ErrScript, data)
	}
	if code < 0 || code > math.MaxUint8 || code != math.Trunc(code) {
		return fmt.Errorf("%w: opcode %s out of range", ErrScript, data)
	}
	*e = Op(Opcode(code))
	return nil
}
