package planner

import (
	"fmt"
	"math/big"

	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/id"
)

// StepType is the closed set of plan step kinds.
type StepType string

const (
	// StepJoinPoolInfo is the bootstrap step every path begins with: the
	// user acknowledges the pool they are joining. It never carries a fee.
	StepJoinPoolInfo       StepType = "join_pool_info"
	StepCrossChainTransfer StepType = "cross_chain_transfer"
	StepMintDerivative     StepType = "mint_derivative"
	StepNativeBond         StepType = "native_bond"
	StepNativeJoinPool     StepType = "native_join_pool"
	StepLendDeposit        StepType = "lend_deposit"
)

// TransferMeta annotates a cross-chain transfer step with its routing
// endpoints. Amounts are base-unit decimal strings.
type TransferMeta struct {
	SendingValue     string `json:"sending_value"`
	OriginAsset      string `json:"origin_asset"`
	DestinationAsset string `json:"destination_asset"`
}

// Step is one unit of an execution plan. ID always equals the step's index
// in the path.
type Step struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Type     StepType      `json:"type"`
	Metadata *TransferMeta `json:"metadata,omitempty"`
}

// FeeRecord pairs one step with one fee amount in one asset. A step's total
// cost never spans more than two candidate assets: the pool's designated fee
// asset, or the input asset as fallback.
type FeeRecord struct {
	StepID int    `json:"step_id"`
	Slug   string `json:"slug"`
	Amount string `json:"amount"`
}

// Path is the ordered step sequence plus its fee records. Constructed fully
// by a single strategy call and immutable afterwards.
type Path struct {
	Pool  string      `json:"pool"`
	Steps []Step      `json:"steps"`
	Fees  []FeeRecord `json:"total_fee"`
}

// NewPath validates the path shape: non-empty, bootstrap first, and step ids
// contiguous from zero.
func NewPath(pool string, steps []Step, fees []FeeRecord) (Path, error) {
	if len(steps) == 0 {
		return Path{}, clierrors.New(clierrors.CodeInternal, "path has no steps")
	}
	if steps[0].Type != StepJoinPoolInfo {
		return Path{}, clierrors.New(clierrors.CodeInternal, fmt.Sprintf("path must begin with %s, got %s", StepJoinPoolInfo, steps[0].Type))
	}
	for i, s := range steps {
		if s.ID != i {
			return Path{}, clierrors.New(clierrors.CodeInternal, fmt.Sprintf("step id %d at position %d", s.ID, i))
		}
	}
	for _, f := range fees {
		if f.StepID < 0 || f.StepID >= len(steps) {
			return Path{}, clierrors.New(clierrors.CodeInternal, fmt.Sprintf("fee record for unknown step %d", f.StepID))
		}
	}
	return Path{Pool: pool, Steps: steps, Fees: fees}, nil
}

// FeeForStep returns the first fee record charged against the given step.
func (p Path) FeeForStep(stepID int) (FeeRecord, bool) {
	for _, f := range p.Fees {
		if f.StepID == stepID {
			return f, true
		}
	}
	return FeeRecord{}, false
}

// FirstExecutable returns the first step after the bootstrap.
func (p Path) FirstExecutable() (Step, bool) {
	if len(p.Steps) < 2 {
		return Step{}, false
	}
	return p.Steps[1], true
}

// SubmitStep returns the first executable step that is not a cross-chain
// transfer: the step that actually joins the pool.
func (p Path) SubmitStep() (Step, bool) {
	for _, s := range p.Steps[1:] {
		if s.Type != StepCrossChainTransfer {
			return s, true
		}
	}
	return Step{}, false
}

func bootstrapStep() Step {
	return Step{ID: 0, Name: "Fill information", Type: StepJoinPoolInfo}
}

// BalanceSnapshot maps asset slugs to free balances in base units. Missing
// entries read as zero; the planner never mutates a snapshot.
type BalanceSnapshot map[string]string

// Free returns the snapshot balance for slug, defaulting to zero when the
// asset is absent.
func (b BalanceSnapshot) Free(slug string) (*big.Int, error) {
	raw, ok := b[slug]
	if !ok || raw == "" {
		return big.NewInt(0), nil
	}
	value, err := id.ParseBaseUnits(raw)
	if err != nil {
		return nil, clierrors.Wrap(clierrors.CodeUsage, fmt.Sprintf("balance for %s", slug), err)
	}
	return value, nil
}
