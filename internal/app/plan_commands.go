package app

import (
	"context"
	"encoding/json"
	"math/big"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	clierr "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/id"
	"github.com/ggonzalez94/yield-cli/internal/model"
	"github.com/ggonzalez94/yield-cli/internal/planner"
	"github.com/ggonzalez94/yield-cli/internal/registry"
)

// planResult is the plan-command payload: the generated path plus its
// validation verdict, emitted together so agents never act on an unchecked
// path.
type planResult struct {
	Path       planner.Path             `json:"path"`
	Validation planner.ValidationResult `json:"validation"`
	Amount     model.AmountInfo         `json:"amount"`
}

func (s *runtimeState) newPlanCommand() *cobra.Command {
	var poolArg, amountBase, amountDecimal, balancesPath string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and validate an execution path into a pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := s.registry.Pool(poolArg)
			if err != nil {
				return err
			}
			amount, amountInfo, err := s.resolveAmount(pool, amountBase, amountDecimal)
			if err != nil {
				return err
			}
			balances, err := loadBalances(balancesPath)
			if err != nil {
				return err
			}
			strategy, err := s.planner.Strategy(pool.Slug)
			if err != nil {
				return err
			}

			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{
				"pool":     pool.Slug,
				"amount":   amountInfo.AmountBaseUnits,
				"balances": balances,
			})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, 30*time.Second, func(ctx context.Context) (any, []model.ChainStatus, []string, bool, error) {
				start := time.Now()
				path, err := strategy.GeneratePath(ctx, planner.Request{Amount: amount, Balances: balances})
				chains := s.pathChains(pool, path, err, time.Since(start))
				if err != nil {
					return nil, chains, nil, false, err
				}
				validation, err := planner.Validate(path, amount, balances, pool, s.registry)
				if err != nil {
					return nil, chains, nil, false, err
				}
				var warnings []string
				if !validation.OK {
					warnings = append(warnings, "path failed validation; adjust amount or balances and re-plan")
				}
				return planResult{Path: path, Validation: validation, Amount: amountInfo}, chains, warnings, false, nil
			})
		},
	}
	cmd.Flags().StringVar(&poolArg, "pool", "", "Pool slug (see `yield pools list`)")
	cmd.Flags().StringVar(&amountBase, "amount", "", "Amount in base units")
	cmd.Flags().StringVar(&amountDecimal, "amount-decimal", "", "Amount in decimal units")
	cmd.Flags().StringVar(&balancesPath, "balances", "", "YAML file mapping asset slugs to free balances in base units")
	_ = cmd.MarkFlagRequired("pool")
	_ = cmd.MarkFlagRequired("balances")
	return cmd
}

func (s *runtimeState) newValidateCommand() *cobra.Command {
	var poolArg, amountBase, amountDecimal, balancesPath, pathFile string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Re-validate a previously generated path against fresh balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := s.registry.Pool(poolArg)
			if err != nil {
				return err
			}
			amount, _, err := s.resolveAmount(pool, amountBase, amountDecimal)
			if err != nil {
				return err
			}
			balances, err := loadBalances(balancesPath)
			if err != nil {
				return err
			}
			path, err := loadPathFile(pathFile, pool.Slug)
			if err != nil {
				return err
			}
			validation, err := planner.Validate(path, amount, balances, pool, s.registry)
			if err != nil {
				return err
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), validation, nil, cacheMetaBypass(), nil, false)
		},
	}
	cmd.Flags().StringVar(&poolArg, "pool", "", "Pool slug")
	cmd.Flags().StringVar(&amountBase, "amount", "", "Amount in base units")
	cmd.Flags().StringVar(&amountDecimal, "amount-decimal", "", "Amount in decimal units")
	cmd.Flags().StringVar(&balancesPath, "balances", "", "YAML balances file")
	cmd.Flags().StringVar(&pathFile, "path", "", "JSON file holding the path emitted by `yield plan`")
	_ = cmd.MarkFlagRequired("pool")
	_ = cmd.MarkFlagRequired("balances")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func (s *runtimeState) newMaterializeCommand() *cobra.Command {
	var poolArg, amountBase, amountDecimal, balancesPath, addressArg string
	var stepIndex int
	var joinPoolID uint32
	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Build the signable call for one step of a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := s.registry.Pool(poolArg)
			if err != nil {
				return err
			}
			amount, amountInfo, err := s.resolveAmount(pool, amountBase, amountDecimal)
			if err != nil {
				return err
			}
			balances, err := loadBalances(balancesPath)
			if err != nil {
				return err
			}
			if _, err := id.DecodeSS58(addressArg); err != nil {
				return err
			}
			strategy, err := s.planner.Strategy(pool.Slug)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), s.settings.Timeout)
			defer cancel()
			start := time.Now()
			path, err := strategy.GeneratePath(ctx, planner.Request{Amount: amount, Balances: balances})
			chains := s.pathChains(pool, path, err, time.Since(start))
			s.captureCommandDiagnostics(nil, chains, false)
			if err != nil {
				return err
			}
			input := planner.SubmitInput{Amount: amountInfo.AmountBaseUnits, PoolID: joinPoolID}
			if fee, ok := path.FeeForStep(stepIndex); ok && fee.Slug == pool.PrimaryInput() && fee.Slug != pool.DefaultFeeAsset() {
				// Fee comes out of the deposited asset itself; submit the
				// amount net of fee so the account can still cover it.
				net, err := netOfFee(amountInfo.AmountBaseUnits, fee.Amount)
				if err == nil {
					input.Amount = net
				}
			}
			descriptor, err := strategy.Materialize(path, stepIndex, addressArg, input)
			if err != nil {
				return err
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), descriptor, nil, cacheMetaBypass(), chains, false)
		},
	}
	cmd.Flags().StringVar(&poolArg, "pool", "", "Pool slug")
	cmd.Flags().StringVar(&amountBase, "amount", "", "Amount in base units")
	cmd.Flags().StringVar(&amountDecimal, "amount-decimal", "", "Amount in decimal units")
	cmd.Flags().StringVar(&balancesPath, "balances", "", "YAML balances file")
	cmd.Flags().IntVar(&stepIndex, "step", 1, "Path step index to materialize")
	cmd.Flags().StringVar(&addressArg, "address", "", "SS58 address submitting the step")
	cmd.Flags().Uint32Var(&joinPoolID, "pool-id", 0, "On-chain nomination pool id (join step only)")
	_ = cmd.MarkFlagRequired("pool")
	_ = cmd.MarkFlagRequired("balances")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

// resolveAmount turns --amount/--amount-decimal into base units using the
// pool's primary input asset decimals.
func (s *runtimeState) resolveAmount(pool registry.Pool, amountBase, amountDecimal string) (*big.Int, model.AmountInfo, error) {
	asset, err := s.registry.Asset(pool.PrimaryInput())
	if err != nil {
		return nil, model.AmountInfo{}, err
	}
	base, decimal, err := id.NormalizeAmount(amountBase, amountDecimal, asset.Decimals)
	if err != nil {
		return nil, model.AmountInfo{}, err
	}
	amount, err := id.ParseBaseUnits(base)
	if err != nil {
		return nil, model.AmountInfo{}, err
	}
	info := model.AmountInfo{AmountBaseUnits: base, AmountDecimal: decimal, Decimals: asset.Decimals}
	return amount, info, nil
}

// pathChains reports which chains were touched while planning: the pool's
// own chain always, plus the transfer-origin chain when the path tops up.
func (s *runtimeState) pathChains(pool registry.Pool, path planner.Path, err error, latency time.Duration) []model.ChainStatus {
	status := statusFromErr(err)
	chains := []model.ChainStatus{{Chain: pool.Chain, Status: status, LatencyMS: latency.Milliseconds()}}
	for _, step := range path.Steps {
		if step.Type != planner.StepCrossChainTransfer || step.Metadata == nil {
			continue
		}
		origin, assetErr := s.registry.Asset(step.Metadata.OriginAsset)
		if assetErr != nil || origin.OriginChain == pool.Chain {
			continue
		}
		chains = append(chains, model.ChainStatus{Chain: origin.OriginChain, Status: status, LatencyMS: latency.Milliseconds()})
	}
	return chains
}

func loadBalances(path string) (planner.BalanceSnapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeUsage, "read balances file", err)
	}
	var snapshot planner.BalanceSnapshot
	if err := yaml.Unmarshal(raw, &snapshot); err != nil {
		return nil, clierr.Wrap(clierr.CodeUsage, "parse balances file", err)
	}
	return snapshot, nil
}

func loadPathFile(file, poolSlug string) (planner.Path, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return planner.Path{}, clierr.Wrap(clierr.CodeUsage, "read path file", err)
	}
	var stored planner.Path
	if err := json.Unmarshal(raw, &stored); err != nil {
		return planner.Path{}, clierr.Wrap(clierr.CodeUsage, "parse path file", err)
	}
	if stored.Pool != poolSlug {
		return planner.Path{}, clierr.New(clierr.CodeUsage, "path file was generated for a different pool")
	}
	// Re-run the shape checks so a hand-edited file cannot smuggle in
	// gapped or misordered steps.
	return planner.NewPath(stored.Pool, stored.Steps, stored.Fees)
}

func netOfFee(amount, fee string) (string, error) {
	a, err := id.ParseBaseUnits(amount)
	if err != nil {
		return "", err
	}
	f, err := id.ParseBaseUnits(fee)
	if err != nil {
		return "", err
	}
	net := new(big.Int).Sub(a, f)
	if net.Sign() <= 0 {
		return "", clierr.New(clierr.CodeUsage, "fee exceeds the submitted amount")
	}
	return net.String(), nil
}
