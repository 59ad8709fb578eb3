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

// lendingStrategy plans a deposit into an on-chain money market: a single
// deposit call that supplies the input asset and issues the interest-bearing
// voucher.
type lendingStrategy struct {
	base
}

func newLendingStrategy(pool registry.Pool, reg *registry.Registry, oracle *FeeOracle) (*lendingStrategy, error) {
	s := &lendingStrategy{base: base{pool: pool, reg: reg, oracle: oracle}}
	if _, err := s.callIndex("deposit"); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *lendingStrategy) depositCall(amount *big.Int) (chainrpc.UnsignedCall, error) {
	idx, err := s.callIndex("deposit")
	if err != nil {
		return chainrpc.UnsignedCall{}, err
	}
	compactAmount, err := scale.EncodeCompact(amount)
	if err != nil {
		return chainrpc.UnsignedCall{}, clierrors.Wrap(clierrors.CodeInternal, "encode deposit amount", err)
	}
	args := append(scale.EncodeU32(s.pool.CurrencyIndex), compactAmount...)
	return chainrpc.UnsignedCall{CallIndex: idx, Args: args}, nil
}

func (s *lendingStrategy) GeneratePath(ctx context.Context, req Request) (Path, error) {
	call, err := s.depositCall(req.Amount)
	if err != nil {
		return Path{}, err
	}
	inputSymbol := s.pool.PrimaryInput()
	if asset, err := s.reg.Asset(inputSymbol); err == nil {
		inputSymbol = asset.Symbol
	}
	return s.generate(ctx, req, []terminalStep{{
		name: fmt.Sprintf("Deposit %s into lending market", inputSymbol),
		typ:  StepLendDeposit,
		call: call,
	}})
}

func (s *lendingStrategy) Materialize(path Path, stepIndex int, address string, input SubmitInput) (ExecutionDescriptor, error) {
	step, err := s.stepAt(path, stepIndex)
	if err != nil {
		return ExecutionDescriptor{}, err
	}
	switch step.Type {
	case StepCrossChainTransfer:
		return s.materializeTransfer(step, address, input)
	case StepLendDeposit:
		amount, err := parseSubmittedAmount(input)
		if err != nil {
			return ExecutionDescriptor{}, err
		}
		call, err := s.depositCall(amount)
		if err != nil {
			return ExecutionDescriptor{}, err
		}
		return s.terminalDescriptor(OpLendDeposit, call), nil
	default:
		return ExecutionDescriptor{}, clierrors.New(clierrors.CodeUsage, fmt.Sprintf("step %d (%s) carries no submittable call", step.ID, step.Type))
	}
}
