// Package codec implements the fixed-width primitives every serialized
// transaction is assembled from.
package codec

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
)

// ErrEncoding reports malformed hex, an out-of-range numeric field or a
// truncated buffer.
var ErrEncoding = errors.New("encoding error")

var satoshisPerCoin = decimal.New(btcutil.SatoshiPerBitcoin, 0)

// EncodeUint8 encodes n as a single byte.
func EncodeUint8(n uint8) []byte {
	return []byte{n}
}

// EncodeUint32LE encodes n as 4 little-endian bytes.
func EncodeUint32LE(n uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, n)
	return buf
}

// EncodeInt32LE encodes n in two's complement as 4 little-endian bytes.
func EncodeInt32LE(n int32) []byte {
	return EncodeUint32LE(uint32(n))
}

// EncodeUint64LE encodes n as 8 little-endian bytes.
func EncodeUint64LE(n uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, n)
	return buf
}

// Satoshis converts a whole-coin amount to satoshis. The amount must be
// non-negative, a whole number of satoshis and fit in 64 bits.
func Satoshis(amount decimal.Decimal) (uint64, error) {
	sat := amount.Mul(satoshisPerCoin)
	if sat.IsNegative() {
		return 0, fmt.Errorf("%w: negative amount %s", ErrEncoding, amount)
	}
	if !sat.IsInteger() {
		return 0, fmt.Errorf("%w: amount %s is not a whole number of satoshis", ErrEncoding, amount)
	}
	value := sat.BigInt()
	if !value.IsUint64() {
		return 0, fmt.Errorf("%w: amount %s overflows 64 bits", ErrEncoding, amount)
	}
	return value.Uint64(), nil
}

// Amount converts satoshis back to a whole-coin amount.
func Amount(satoshis uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(satoshis), -8)
}

// EncodeAmount encodes a whole-coin amount as a 64-bit little-endian satoshi count.
func EncodeAmount(amount decimal.Decimal) ([]byte, error) {
	sat, err := Satoshis(amount)
	if err != nil {
		return nil, err
	}
	return EncodeUint64LE(sat), nil
}

// EncodeHash256 parses a 64 character display-order hex digest and returns its
// 32 bytes in wire order (least-significant byte first).
func EncodeHash256(hexString string) ([]byte, error) {
	if len(hexString) != chainhash.MaxHashStringSize {
		return nil, fmt.Errorf("%w: hash %q must be %d hex characters", ErrEncoding, hexString, chainhash.MaxHashStringSize)
	}
	hash, err := chainhash.NewHashFromStr(hexString)
	if err != nil {
		return nil, fmt.Errorf("%w: hash %q: %v", ErrEncoding, hexString, err)
	}
	return hash.CloneBytes(), nil
}

// ToDisplayHex renders b in reversed byte order as lowercase hex.
func ToDisplayHex(b []byte) string {
	reversed := make([]byte, len(b))
	for i, v := range b {
		reversed[len(b)-1-i] = v
	}
	return hex.EncodeToString(reversed)
}

// DoubleSHA256 returns sha256(sha256(b)).
func DoubleSHA256(b []byte) []byte {
	return chainhash.DoubleHashB(b)
}
