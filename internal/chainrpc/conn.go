package chainrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
)

// Conn is a JSON-RPC connection to a substrate node. The underlying client
// is safe for concurrent use.
type Conn struct {
	chain  string
	client *rpc.Client
}

// Dial connects to the node serving chain at url.
func Dial(ctx context.Context, url, chain string) (*Conn, error) {
	client, err := rpc.DialContext(ctx, strings.TrimSpace(url))
	if err != nil {
		return nil, clierrors.Wrap(clierrors.CodeUnavailable, fmt.Sprintf("connect rpc for chain %s", chain), err)
	}
	return &Conn{chain: chain, client: client}, nil
}

func (c *Conn) Chain() string { return c.chain }

func (c *Conn) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// QueryStorage reads a raw storage value by its full hex key. A missing key
// returns ok=false with no error.
func (c *Conn) QueryStorage(ctx context.Context, keyHex string) (string, bool, error) {
	var raw *string
	if err := c.client.CallContext(ctx, &raw, "state_getStorage", keyHex); err != nil {
		return "", false, clierrors.Wrap(clierrors.CodeUnavailable, fmt.Sprintf("query storage on %s", c.chain), err)
	}
	if raw == nil {
		return "", false, nil
	}
	return *raw, true, nil
}

// runtimeDispatchInfo mirrors the payment_queryInfo response. partialFee
// arrives as a decimal string, a hex string, or a bare number depending on
// the node version.
type runtimeDispatchInfo struct {
	Class      string          `json:"class"`
	PartialFee json.RawMessage `json:"partialFee"`
}

// EstimateDispatchFee asks the node what the given call would cost when
// submitted by address. A failed query is fatal to the current planning
// call; callers never retry it.
func (c *Conn) EstimateDispatchFee(ctx context.Context, call UnsignedCall, address string) (*big.Int, error) {
	var info runtimeDispatchInfo
	if err := c.client.CallContext(ctx, &info, "payment_queryInfo", call.ExtrinsicHex(), address); err != nil {
		return nil, clierrors.Wrap(clierrors.CodeFeeUnavailable, fmt.Sprintf("query dispatch fee on %s", c.chain), err)
	}
	fee, err := parsePartialFee(info.PartialFee)
	if err != nil {
		return nil, clierrors.Wrap(clierrors.CodeFeeUnavailable, fmt.Sprintf("decode dispatch fee on %s", c.chain), err)
	}
	return fee, nil
}

func parsePartialFee(raw json.RawMessage) (*big.Int, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing partialFee")
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		text = strings.TrimSpace(s)
	}
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		value, err := hexutil.DecodeBig(strings.ToLower(text))
		if err != nil {
			return nil, err
		}
		return value, nil
	}
	value, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("invalid partialFee %q", text)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("negative partialFee %q", text)
	}
	return value, nil
}
