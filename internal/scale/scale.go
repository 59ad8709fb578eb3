// Package scale implements the small slice of SCALE encoding the planner
// needs to assemble unsigned calls: compact integers, fixed-width little
// endian integers and raw byte runs. Decoding covers the fixed-width
// integers read back from storage queries.
package scale

import (
	"fmt"
	"math/big"
)

var (
	compactSingleMax = big.NewInt(1<<6 - 1)
	compactTwoMax    = big.NewInt(1<<14 - 1)
	compactFourMax   = big.NewInt(1<<30 - 1)
)

// EncodeCompact encodes a non-negative integer in SCALE compact form.
func EncodeCompact(v *big.Int) ([]byte, error) {
	if v == nil || v.Sign() < 0 {
		return nil, fmt.Errorf("compact encoding requires a non-negative integer")
	}
	switch {
	case v.Cmp(compactSingleMax) <= 0:
		return []byte{byte(v.Uint64() << 2)}, nil
	case v.Cmp(compactTwoMax) <= 0:
		n := v.Uint64()<<2 | 0b01
		return []byte{byte(n), byte(n >> 8)}, nil
	case v.Cmp(compactFourMax) <= 0:
		n := v.Uint64()<<2 | 0b10
		return []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}, nil
	default:
		raw := v.Bytes() // big endian
		if len(raw) > 67 {
			return nil, fmt.Errorf("integer too large for compact encoding")
		}
		out := make([]byte, 0, len(raw)+1)
		out = append(out, byte(len(raw)-4)<<2|0b11)
		for i := len(raw) - 1; i >= 0; i-- {
			out = append(out, raw[i])
		}
		return out, nil
	}
}

// EncodeCompactUint is a convenience wrapper for small values.
func EncodeCompactUint(v uint64) []byte {
	out, _ := EncodeCompact(new(big.Int).SetUint64(v))
	return out
}

func EncodeU8(v uint8) []byte {
	return []byte{v}
}

func EncodeU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func EncodeU64(v uint64) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}

// DecodeUint reads a fixed-width little endian unsigned integer of the given
// byte width, as stored by substrate runtimes (u32/u64/u128).
func DecodeUint(raw []byte, width int) (*big.Int, error) {
	if len(raw) < width {
		return nil, fmt.Errorf("short value: have %d bytes, want %d", len(raw), width)
	}
	be := make([]byte, width)
	for i := 0; i < width; i++ {
		be[width-1-i] = raw[i]
	}
	return new(big.Int).SetBytes(be), nil
}
