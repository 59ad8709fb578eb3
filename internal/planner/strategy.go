package planner

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ggonzalez94/yield-cli/internal/chainrpc"
	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/id"
	"github.com/ggonzalez94/yield-cli/internal/registry"
	"github.com/ggonzalez94/yield-cli/internal/scale"
)

// Request carries one planning call's inputs. Balances is a one-shot
// snapshot; the planner never mutates or caches it.
type Request struct {
	Amount   *big.Int
	Balances BalanceSnapshot
}

// SubmitInput is the live user input consumed at materialization time.
type SubmitInput struct {
	Amount string `json:"amount"`
	// PoolID selects the nomination pool for native staking joins; ignored
	// by the other strategies.
	PoolID uint32 `json:"pool_id,omitempty"`
}

type OperationKind string

const (
	OpTransferXCM    OperationKind = "transfer_xcm"
	OpMintDerivative OperationKind = "mint_derivative"
	OpNativeBond     OperationKind = "native_bond"
	OpNativeJoinPool OperationKind = "native_join_pool"
	OpLendDeposit    OperationKind = "lend_deposit"
)

// RoutingData accompanies a cross-chain transfer descriptor.
type RoutingData struct {
	OriginNetwork      string `json:"origin_network"`
	DestinationNetwork string `json:"destination_network"`
	From               string `json:"from"`
	To                 string `json:"to"`
	Value              string `json:"value"`
	TokenSlug          string `json:"token_slug"`
}

// ExecutionDescriptor is one materialized step: an unsigned call plus the
// chain it must be submitted on. Broadcasting is the caller's concern.
type ExecutionDescriptor struct {
	TargetChain string               `json:"target_chain"`
	Kind        OperationKind        `json:"operation"`
	CallIndex   registry.CallIndex   `json:"call_index"`
	CallHex     string               `json:"call_hex"`
	Routing     *RoutingData         `json:"routing,omitempty"`
	call        chainrpc.UnsignedCall
}

// Call returns the raw unsigned call for signing.
func (d ExecutionDescriptor) Call() chainrpc.UnsignedCall { return d.call }

// Strategy produces and materializes paths for one pool. One strategy
// instance is bound to one pool at configuration-load time.
type Strategy interface {
	Pool() registry.Pool
	GeneratePath(ctx context.Context, req Request) (Path, error)
	Materialize(path Path, stepIndex int, address string, input SubmitInput) (ExecutionDescriptor, error)
}

// terminalStep describes one protocol-specific closing step together with
// the prospective call used for its fee quote.
type terminalStep struct {
	name string
	typ  StepType
	call chainrpc.UnsignedCall
}

// base carries the skeleton shared by every strategy: shortfall detection,
// the optional cross-chain transfer prepend, and the two-asset fee policy.
type base struct {
	pool   registry.Pool
	reg    *registry.Registry
	oracle *FeeOracle
}

func (b *base) Pool() registry.Pool { return b.pool }

func (b *base) generate(ctx context.Context, req Request, terminals []terminalStep) (Path, error) {
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return Path{}, clierrors.New(clierrors.CodeUsage, "amount must be positive")
	}

	steps := []Step{bootstrapStep()}
	fees := []FeeRecord{}

	inputSlug := b.pool.PrimaryInput()
	if inputSlug == "" {
		return Path{}, clierrors.New(clierrors.CodeUnsupported, fmt.Sprintf("pool %s declares no input asset", b.pool.Slug))
	}
	inputBalance, err := req.Balances.Free(inputSlug)
	if err != nil {
		return Path{}, err
	}

	// Only the first declared input and alt-input asset are considered;
	// multi-asset pools are a known limitation.
	if inputBalance.Cmp(req.Amount) < 0 {
		shortfall := new(big.Int).Sub(req.Amount, inputBalance)
		altSlug := b.pool.PrimaryAltInput()
		if altSlug == "" {
			return Path{}, clierrors.New(clierrors.CodeLiquidity,
				fmt.Sprintf("balance of %s is short by %s and pool %s has no alternate input asset", inputSlug, shortfall, b.pool.Slug))
		}
		altBalance, err := req.Balances.Free(altSlug)
		if err != nil {
			return Path{}, err
		}
		if altBalance.Sign() <= 0 {
			return Path{}, clierrors.New(clierrors.CodeLiquidity,
				fmt.Sprintf("balance of %s is short by %s and alternate asset %s is empty", inputSlug, shortfall, altSlug))
		}

		altAsset, err := b.reg.Asset(altSlug)
		if err != nil {
			return Path{}, err
		}
		inputAsset, err := b.reg.Asset(inputSlug)
		if err != nil {
			return Path{}, err
		}
		originChain, err := b.reg.Chain(altAsset.OriginChain)
		if err != nil {
			return Path{}, err
		}

		transfer := Step{
			ID:   len(steps),
			Name: fmt.Sprintf("Transfer %s from %s", altAsset.Symbol, originChain.Name),
			Type: StepCrossChainTransfer,
			Metadata: &TransferMeta{
				SendingValue:     shortfall.String(),
				OriginAsset:      altSlug,
				DestinationAsset: inputSlug,
			},
		}
		steps = append(steps, transfer)

		transferCall, err := b.transferCall(originChain, inputAsset, chainrpc.PlaceholderAccountID(), shortfall)
		if err != nil {
			return Path{}, err
		}
		transferFee, err := b.oracle.EstimateFee(ctx, originChain.Slug, transferCall)
		if err != nil {
			return Path{}, err
		}
		fees = append(fees, FeeRecord{StepID: transfer.ID, Slug: altSlug, Amount: transferFee.String()})
	}

	feeAssetSlug := b.pool.DefaultFeeAsset()
	feeAssetBalance, err := req.Balances.Free(feeAssetSlug)
	if err != nil {
		return Path{}, err
	}
	canPayFeeWithInput := b.pool.AcceptsFeeAsset(inputSlug)

	for _, t := range terminals {
		step := Step{ID: len(steps), Name: t.name, Type: t.typ}
		steps = append(steps, step)

		fee, err := b.oracle.EstimateFee(ctx, b.pool.Chain, t.call)
		if err != nil {
			return Path{}, err
		}
		switch {
		case feeAssetBalance.Sign() >= 0:
			fees = append(fees, FeeRecord{StepID: step.ID, Slug: feeAssetSlug, Amount: fee.String()})
		case canPayFeeWithInput:
			converted := ConvertFee(fee, b.pool.AltFeeRatio)
			fees = append(fees, FeeRecord{StepID: step.ID, Slug: inputSlug, Amount: converted.String()})
		// No viable fee asset: the path carries no record for this step and
		// validation surfaces the gap.
		}
	}

	return NewPath(b.pool.Slug, steps, fees)
}

// transferCall builds the cross-chain transfer dispatchable on the origin
// chain: recipient account, destination parachain, compact amount.
func (b *base) transferCall(origin registry.Chain, destAsset registry.Asset, recipient [32]byte, amount *big.Int) (chainrpc.UnsignedCall, error) {
	destChain, err := b.reg.Chain(destAsset.OriginChain)
	if err != nil {
		return chainrpc.UnsignedCall{}, err
	}
	compactAmount, err := scale.EncodeCompact(amount)
	if err != nil {
		return chainrpc.UnsignedCall{}, clierrors.Wrap(clierrors.CodeInternal, "encode transfer amount", err)
	}
	args := make([]byte, 0, 32+4+len(compactAmount))
	args = append(args, recipient[:]...)
	args = append(args, scale.EncodeU32(destChain.ParaID)...)
	args = append(args, compactAmount...)
	return chainrpc.UnsignedCall{CallIndex: origin.TransferCallIndex, Args: args}, nil
}

// materializeTransfer builds the real transfer call for a validated path's
// cross-chain step, substituting the user's address for the planning
// placeholder.
func (b *base) materializeTransfer(step Step, address string, input SubmitInput) (ExecutionDescriptor, error) {
	if step.Type != StepCrossChainTransfer {
		return ExecutionDescriptor{}, clierrors.New(clierrors.CodeInternal, "step is not a cross-chain transfer")
	}
	altSlug := b.pool.PrimaryAltInput()
	if altSlug == "" {
		return ExecutionDescriptor{}, clierrors.New(clierrors.CodeUnsupported, fmt.Sprintf("pool %s has no alternate input asset", b.pool.Slug))
	}
	altAsset, err := b.reg.Asset(altSlug)
	if err != nil {
		return ExecutionDescriptor{}, err
	}
	inputAsset, err := b.reg.Asset(b.pool.PrimaryInput())
	if err != nil {
		return ExecutionDescriptor{}, err
	}
	originChain, err := b.reg.Chain(altAsset.OriginChain)
	if err != nil {
		return ExecutionDescriptor{}, err
	}
	account, err := id.DecodeSS58(address)
	if err != nil {
		return ExecutionDescriptor{}, clierrors.Wrap(clierrors.CodeUsage, "decode user address", err)
	}
	amount, err := id.ParseBaseUnits(input.Amount)
	if err != nil {
		return ExecutionDescriptor{}, clierrors.Wrap(clierrors.CodeUsage, "parse submitted amount", err)
	}
	call, err := b.transferCall(originChain, inputAsset, account, amount)
	if err != nil {
		return ExecutionDescriptor{}, err
	}
	return ExecutionDescriptor{
		TargetChain: originChain.Slug,
		Kind:        OpTransferXCM,
		CallIndex:   call.CallIndex,
		CallHex:     call.CallHex(),
		Routing: &RoutingData{
			OriginNetwork:      originChain.Slug,
			DestinationNetwork: inputAsset.OriginChain,
			From:               address,
			To:                 address,
			Value:              input.Amount,
			TokenSlug:          altSlug,
		},
		call: call,
	}, nil
}

// terminalDescriptor wraps a protocol call as an execution descriptor on the
// pool's chain.
func (b *base) terminalDescriptor(kind OperationKind, call chainrpc.UnsignedCall) ExecutionDescriptor {
	return ExecutionDescriptor{
		TargetChain: b.pool.Chain,
		Kind:        kind,
		CallIndex:   call.CallIndex,
		CallHex:     call.CallHex(),
		call:        call,
	}
}

func (b *base) derivativeSymbol() string {
	if len(b.pool.DerivativeAssets) > 0 {
		if asset, err := b.reg.Asset(b.pool.DerivativeAssets[0]); err == nil {
			return asset.Symbol
		}
	}
	return "derivative"
}

func (b *base) callIndex(name string) (registry.CallIndex, error) {
	idx, ok := b.pool.CallIndexes[name]
	if !ok {
		return registry.CallIndex{}, clierrors.New(clierrors.CodeUnsupported, fmt.Sprintf("pool %s has no %s call configured", b.pool.Slug, name))
	}
	return idx, nil
}

func (b *base) stepAt(path Path, stepIndex int) (Step, error) {
	if stepIndex < 0 || stepIndex >= len(path.Steps) {
		return Step{}, clierrors.New(clierrors.CodeUsage, fmt.Sprintf("step index %d out of range", stepIndex))
	}
	return path.Steps[stepIndex], nil
}

func parseSubmittedAmount(input SubmitInput) (*big.Int, error) {
	amount, err := id.ParseBaseUnits(input.Amount)
	if err != nil {
		return nil, clierrors.Wrap(clierrors.CodeUsage, "parse submitted amount", err)
	}
	return amount, nil
}
