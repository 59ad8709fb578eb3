package chainrpc

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ggonzalez94/yield-cli/internal/id"
	"github.com/ggonzalez94/yield-cli/internal/registry"
	"github.com/ggonzalez94/yield-cli/internal/scale"
)

// UnsignedCall is a dispatchable call ready for signing: the two-byte call
// index followed by SCALE-encoded arguments.
type UnsignedCall struct {
	CallIndex registry.CallIndex `json:"call_index"`
	Args      []byte             `json:"-"`
}

// Encode returns the raw call bytes (index followed by arguments).
func (c UnsignedCall) Encode() []byte {
	out := make([]byte, 0, 2+len(c.Args))
	out = append(out, c.CallIndex[0], c.CallIndex[1])
	return append(out, c.Args...)
}

// CallHex returns the 0x-prefixed call bytes.
func (c UnsignedCall) CallHex() string {
	return hexutil.Encode(c.Encode())
}

// ExtrinsicHex wraps the call as a version-4 unsigned extrinsic, length
// prefixed, as expected by payment_queryInfo.
func (c UnsignedCall) ExtrinsicHex() string {
	call := c.Encode()
	body := make([]byte, 0, 1+len(call))
	body = append(body, 0x04) // extrinsic version 4, unsigned
	body = append(body, call...)
	full := append(scale.EncodeCompactUint(uint64(len(body))), body...)
	return hexutil.Encode(full)
}

// placeholderAccountID is the fixed, non-spendable account used for every
// planning-time fee query. Fee estimation must never depend on the real
// account's balance or nonce, so the planner always signs nothing and
// queries with this account; the materializer substitutes the real address.
var placeholderAccountID = [32]byte{
	0x59, 0x69, 0x65, 0x6c, 0x64, 0x50, 0x6c, 0x61,
	0x6e, 0x6e, 0x65, 0x72, 0x46, 0x65, 0x65, 0x50,
	0x72, 0x6f, 0x62, 0x65, 0x41, 0x63, 0x63, 0x6f,
	0x75, 0x6e, 0x74, 0x30, 0x30, 0x30, 0x30, 0x31,
}

// PlaceholderAddress returns the planning placeholder account encoded for
// the given SS58 network.
func PlaceholderAddress(network uint16) string {
	addr, err := id.EncodeSS58(placeholderAccountID, network)
	if err != nil {
		// The fixed account id always encodes.
		panic(err)
	}
	return addr
}

// PlaceholderAccountID exposes the raw placeholder account id for tests and
// for substituting the real account during materialization.
func PlaceholderAccountID() [32]byte {
	return placeholderAccountID
}
