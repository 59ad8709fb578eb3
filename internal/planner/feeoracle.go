package planner

import (
	"context"
	"math/big"

	"github.com/ggonzalez94/yield-cli/internal/chainrpc"
	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/registry"
)

// ChainClient is the node capability the planner needs: fee quotes for
// prospective calls. Implemented by *chainrpc.Conn.
type ChainClient interface {
	EstimateDispatchFee(ctx context.Context, call chainrpc.UnsignedCall, payer string) (*big.Int, error)
}

// Dialer hands out a client per chain. Connections may be pooled or fresh;
// the planner does not manage their lifecycle.
type Dialer interface {
	Client(ctx context.Context, chain string) (ChainClient, error)
}

// FeeOracle estimates dispatch fees for prospective calls. Every estimate is
// made against the fixed planning placeholder address, never the real user
// account, so results do not depend on account state. A failed query is
// fatal to the planning call: the oracle never defaults to zero.
type FeeOracle struct {
	reg  *registry.Registry
	dial Dialer
}

func NewFeeOracle(reg *registry.Registry, dial Dialer) *FeeOracle {
	return &FeeOracle{reg: reg, dial: dial}
}

// EstimateFee quotes the dispatch fee of call on chain, denominated in the
// chain's native fee asset.
func (o *FeeOracle) EstimateFee(ctx context.Context, chain string, call chainrpc.UnsignedCall) (*big.Int, error) {
	chainInfo, err := o.reg.Chain(chain)
	if err != nil {
		return nil, err
	}
	client, err := o.dial.Client(ctx, chain)
	if err != nil {
		return nil, err
	}
	fee, err := client.EstimateDispatchFee(ctx, call, chainrpc.PlaceholderAddress(chainInfo.SS58Network))
	if err != nil {
		if _, ok := clierrors.As(err); ok {
			return nil, err
		}
		return nil, clierrors.Wrap(clierrors.CodeFeeUnavailable, "estimate dispatch fee", err)
	}
	return fee, nil
}

// ConvertFee approximates a fee quoted in the designated fee asset as if it
// were paid in a different asset, using the pool's fixed conversion ratio.
// The default ratio is 1/1: amounts carry over unscaled.
func ConvertFee(fee *big.Int, ratio registry.Ratio) *big.Int {
	if fee == nil {
		return big.NewInt(0)
	}
	if ratio.Num == 0 || ratio.Den == 0 {
		return new(big.Int).Set(fee)
	}
	out := new(big.Int).Mul(fee, new(big.Int).SetUint64(ratio.Num))
	return out.Div(out, new(big.Int).SetUint64(ratio.Den))
}
