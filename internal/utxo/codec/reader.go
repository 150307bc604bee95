package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/shopspring/decimal"
)

// Reader decodes the primitives written by the Encode functions.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// ReadBytes returns a copy of the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrEncoding, n, r.off, r.Len())
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint32LE() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadInt32LE() (int32, error) {
	v, err := r.ReadUint32LE()
	return int32(v), err
}

func (r *Reader) ReadUint64LE() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadAmount reads a 64-bit satoshi count and returns it in whole coins.
func (r *Reader) ReadAmount() (decimal.Decimal, error) {
	sat, err := r.ReadUint64LE()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return Amount(sat), nil
}

// ReadHash256 reads a wire-order digest and returns its display-order hex.
func (r *Reader) ReadHash256() (string, error) {
	b, err := r.ReadBytes(32)
	if err != nil {
		return "", err
	}
	return ToDisplayHex(b), nil
}
