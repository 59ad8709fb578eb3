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

// nominationPoolsStrategy plans native staking: bond the stake, then join a
// nomination pool. Two terminal steps, each with its own fee record.
type nominationPoolsStrategy struct {
	base
}

func newNominationPoolsStrategy(pool registry.Pool, reg *registry.Registry, oracle *FeeOracle) (*nominationPoolsStrategy, error) {
	s := &nominationPoolsStrategy{base: base{pool: pool, reg: reg, oracle: oracle}}
	for _, name := range []string{"bond", "join"} {
		if _, err := s.callIndex(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *nominationPoolsStrategy) bondCall(amount *big.Int) (chainrpc.UnsignedCall, error) {
	idx, err := s.callIndex("bond")
	if err != nil {
		return chainrpc.UnsignedCall{}, err
	}
	compactAmount, err := scale.EncodeCompact(amount)
	if err != nil {
		return chainrpc.UnsignedCall{}, clierrors.Wrap(clierrors.CodeInternal, "encode bond amount", err)
	}
	// Payee variant 0: rewards restaked.
	args := append(compactAmount, scale.EncodeU8(0)...)
	return chainrpc.UnsignedCall{CallIndex: idx, Args: args}, nil
}

func (s *nominationPoolsStrategy) joinCall(amount *big.Int, poolID uint32) (chainrpc.UnsignedCall, error) {
	idx, err := s.callIndex("join")
	if err != nil {
		return chainrpc.UnsignedCall{}, err
	}
	compactAmount, err := scale.EncodeCompact(amount)
	if err != nil {
		return chainrpc.UnsignedCall{}, clierrors.Wrap(clierrors.CodeInternal, "encode join amount", err)
	}
	args := append(compactAmount, scale.EncodeU32(poolID)...)
	return chainrpc.UnsignedCall{CallIndex: idx, Args: args}, nil
}

func (s *nominationPoolsStrategy) GeneratePath(ctx context.Context, req Request) (Path, error) {
	bond, err := s.bondCall(req.Amount)
	if err != nil {
		return Path{}, err
	}
	// Planning quotes the join against pool id 0; the real pool id arrives
	// with the submitted input and does not change the fee.
	join, err := s.joinCall(req.Amount, 0)
	if err != nil {
		return Path{}, err
	}
	inputSymbol := s.pool.PrimaryInput()
	if asset, err := s.reg.Asset(inputSymbol); err == nil {
		inputSymbol = asset.Symbol
	}
	return s.generate(ctx, req, []terminalStep{
		{name: fmt.Sprintf("Bond %s", inputSymbol), typ: StepNativeBond, call: bond},
		{name: "Join nomination pool", typ: StepNativeJoinPool, call: join},
	})
}

func (s *nominationPoolsStrategy) Materialize(path Path, stepIndex int, address string, input SubmitInput) (ExecutionDescriptor, error) {
	step, err := s.stepAt(path, stepIndex)
	if err != nil {
		return ExecutionDescriptor{}, err
	}
	switch step.Type {
	case StepCrossChainTransfer:
		return s.materializeTransfer(step, address, input)
	case StepNativeBond:
		amount, err := parseSubmittedAmount(input)
		if err != nil {
			return ExecutionDescriptor{}, err
		}
		call, err := s.bondCall(amount)
		if err != nil {
			return ExecutionDescriptor{}, err
		}
		return s.terminalDescriptor(OpNativeBond, call), nil
	case StepNativeJoinPool:
		amount, err := parseSubmittedAmount(input)
		if err != nil {
			return ExecutionDescriptor{}, err
		}
		call, err := s.joinCall(amount, input.PoolID)
		if err != nil {
			return ExecutionDescriptor{}, err
		}
		return s.terminalDescriptor(OpNativeJoinPool, call), nil
	default:
		return ExecutionDescriptor{}, clierrors.New(clierrors.CodeUsage, fmt.Sprintf("step %d (%s) carries no submittable call", step.ID, step.Type))
	}
}
