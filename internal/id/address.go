package id

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	clierr "github.com/ggonzalez94/yield-cli/internal/errors"
	"golang.org/x/crypto/blake2b"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// SS58 network identifiers are 14 bits wide. Identifiers up to 63 encode as
// a single prefix byte; larger ones use the two-byte prefix form.
const maxSS58Network = 0x3fff

var ss58Prefix = []byte("SS58PRE")

// DecodeSS58 decodes an SS58 address into its 32-byte account id, verifying
// the blake2b checksum. Both the one-byte and two-byte prefix forms are
// accepted.
func DecodeSS58(address string) ([32]byte, error) {
	var account [32]byte
	raw, err := base58Decode(strings.TrimSpace(address))
	if err != nil {
		return account, clierr.Wrap(clierr.CodeUsage, "decode address", err)
	}
	if len(raw) == 0 {
		return account, clierr.New(clierr.CodeUsage, "empty address")
	}
	prefixLen := 1
	switch {
	case raw[0] < 64:
	case raw[0] < 128:
		prefixLen = 2
	default:
		return account, clierr.New(clierr.CodeUsage, fmt.Sprintf("reserved ss58 prefix byte %#x", raw[0]))
	}
	// prefix + 32 account bytes + 2 checksum bytes.
	if len(raw) != prefixLen+34 {
		return account, clierr.New(clierr.CodeUsage, fmt.Sprintf("unexpected address length %d", len(raw)))
	}
	body := raw[:prefixLen+32]
	checksum := raw[prefixLen+32:]

	hasher, err := blake2b.New512(nil)
	if err != nil {
		return account, clierr.Wrap(clierr.CodeInternal, "init checksum hasher", err)
	}
	hasher.Write(ss58Prefix)
	hasher.Write(body)
	if !bytes.Equal(hasher.Sum(nil)[:2], checksum) {
		return account, clierr.New(clierr.CodeUsage, "address checksum mismatch")
	}
	copy(account[:], body[prefixLen:])
	return account, nil
}

// EncodeSS58 encodes a 32-byte account id for the given network identifier,
// picking the one- or two-byte prefix form as the identifier requires.
func EncodeSS58(account [32]byte, network uint16) (string, error) {
	if network > maxSS58Network {
		return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("ss58 network %d exceeds the 14-bit maximum", network))
	}
	var prefix []byte
	if network < 64 {
		prefix = []byte{byte(network)}
	} else {
		prefix = []byte{
			byte((network&0x00fc)>>2) | 0b0100_0000,
			byte(network>>8) | byte(network&0b11)<<6,
		}
	}
	body := append(prefix, account[:]...)
	hasher, err := blake2b.New512(nil)
	if err != nil {
		return "", clierr.Wrap(clierr.CodeInternal, "init checksum hasher", err)
	}
	hasher.Write(ss58Prefix)
	hasher.Write(body)
	raw := append(body, hasher.Sum(nil)[:2]...)
	return base58Encode(raw), nil
}

func base58Decode(input string) ([]byte, error) {
	if input == "" {
		return nil, fmt.Errorf("empty address")
	}
	value := new(big.Int)
	radix := big.NewInt(58)
	for _, r := range input {
		idx := strings.IndexRune(base58Alphabet, r)
		if idx < 0 {
			return nil, fmt.Errorf("invalid base58 character %q", r)
		}
		value.Mul(value, radix)
		value.Add(value, big.NewInt(int64(idx)))
	}
	out := value.Bytes()
	// Leading '1' characters encode leading zero bytes.
	for i := 0; i < len(input) && input[i] == '1'; i++ {
		out = append([]byte{0}, out...)
	}
	return out, nil
}

func base58Encode(input []byte) string {
	value := new(big.Int).SetBytes(input)
	radix := big.NewInt(58)
	mod := new(big.Int)
	var out []byte
	for value.Sign() > 0 {
		value.DivMod(value, radix, mod)
		out = append([]byte{base58Alphabet[mod.Int64()]}, out...)
	}
	for i := 0; i < len(input) && input[i] == 0; i++ {
		out = append([]byte{'1'}, out...)
	}
	return string(out)
}
