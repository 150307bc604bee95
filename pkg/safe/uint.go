// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Integer is the set of integer kinds the conversions accept.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Uint8 converts v to uint8 with range validation.
func Uint8[T Integer](v T) (uint8, error) {
	u, err := checkRange(v, math.MaxUint8, "uint8")
	return uint8(u), err
}

// Uint32 converts v to uint32 with range validation.
func Uint32[T Integer](v T) (uint32, error) {
	u, err := checkRange(v, math.MaxUint32, "uint32")
	return uint32(u), err
}

// Uint64 converts v to uint64 while guarding against negatives.
func Uint64[T Integer](v T) (uint64, error) {
	return checkRange(v, math.MaxUint64, "uint64")
}

func checkRange[T Integer](v T, limit uint64, kind string) (uint64, error) {
	// v < 0 is always false for unsigned kinds.
	if v < 0 {
		return 0, fmt.Errorf("value %d out of %s range", v, kind)
	}
	u := uint64(v)
	if u > limit {
		return 0, fmt.Errorf("value %d out of %s range", v, kind)
	}
	return u, nil
}
