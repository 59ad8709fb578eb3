package planner

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ggonzalez94/yield-cli/internal/chainrpc"
	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/registry"
	"github.com/ggonzalez94/yield-cli/internal/scale"
)

// vtokenStrategy plans liquid staking through a voucher-token pallet. The
// mint call names the locked currency explicitly, so the encoded arguments
// carry the pool's currency index ahead of the amount.
type vtokenStrategy struct {
	base
}

func newVtokenStrategy(pool registry.Pool, reg *registry.Registry, oracle *FeeOracle) (*vtokenStrategy, error) {
	s := &vtokenStrategy{base: base{pool: pool, reg: reg, oracle: oracle}}
	if _, err := s.callIndex("mint"); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *vtokenStrategy) mintCall(amount *big.Int) (chainrpc.UnsignedCall, error) {
	idx, err := s.callIndex("mint")
	if err != nil {
		return chainrpc.UnsignedCall{}, err
	}
	compactAmount, err := scale.EncodeCompact(amount)
	if err != nil {
		return chainrpc.UnsignedCall{}, clierrors.Wrap(clierrors.CodeInternal, "encode mint amount", err)
	}
	args := append(scale.EncodeU32(s.pool.CurrencyIndex), compactAmount...)
	return chainrpc.UnsignedCall{CallIndex: idx, Args: args}, nil
}

func (s *vtokenStrategy) GeneratePath(ctx context.Context, req Request) (Path, error) {
	call, err := s.mintCall(req.Amount)
	if err != nil {
		return Path{}, err
	}
	return s.generate(ctx, req, []terminalStep{{
		name: fmt.Sprintf("Mint %s", s.derivativeSymbol()),
		typ:  StepMintDerivative,
		call: call,
	}})
}

func (s *vtokenStrategy) Materialize(path Path, stepIndex int, address string, input SubmitInput) (ExecutionDescriptor, error) {
	step, err := s.stepAt(path, stepIndex)
	if err != nil {
		return ExecutionDescriptor{}, err
	}
	switch step.Type {
	case StepCrossChainTransfer:
		return s.materializeTransfer(step, address, input)
	case StepMintDerivative:
		amount, err := parseSubmittedAmount(input)
		if err != nil {
			return ExecutionDescriptor{}, err
		}
		call, err := s.mintCall(amount)
		if err != nil {
			return ExecutionDescriptor{}, err
		}
		return s.terminalDescriptor(OpMintDerivative, call), nil
	default:
		return ExecutionDescriptor{}, clierrors.New(clierrors.CodeUsage, fmt.Sprintf("step %d (%s) carries no submittable call", step.ID, step.Type))
	}
}
