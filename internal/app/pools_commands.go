package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	clierr "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/id"
	"github.com/ggonzalez94/yield-cli/internal/model"
	"github.com/ggonzalez94/yield-cli/internal/registry"
	"github.com/ggonzalez94/yield-cli/internal/stats"
)

func (s *runtimeState) newPoolsCommand() *cobra.Command {
	root := &cobra.Command{Use: "pools", Short: "Pool registry and statistics"}

	var chainFilter, typeFilter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []model.PoolSummary
			for _, pool := range s.registry.Pools() {
				if chainFilter != "" && pool.Chain != chainFilter {
					continue
				}
				if typeFilter != "" && string(pool.Type) != typeFilter {
					continue
				}
				rows = append(rows, poolSummary(pool))
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), rows, nil, cacheMetaBypass(), nil, false)
		},
	}
	listCmd.Flags().StringVar(&chainFilter, "chain", "", "Filter by chain slug")
	listCmd.Flags().StringVar(&typeFilter, "type", "", "Filter by pool type (native_staking|liquid_staking|lending)")

	var poolArg string
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Refresh one pool's statistics from chain state",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := s.registry.Pool(poolArg)
			if err != nil {
				return err
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{"pool": pool.Slug})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, 5*time.Minute, func(ctx context.Context) (any, []model.ChainStatus, []string, bool, error) {
				start := time.Now()
				conn, err := s.dialer.conn(ctx, pool.Chain)
				if err != nil {
					return nil, []model.ChainStatus{{Chain: pool.Chain, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}, nil, false, err
				}

				// One-shot refresh: take the immediate publish and tear the
				// subscription down before the first tick.
				var snapshot registry.PoolStats
				stop, err := stats.Subscribe(ctx, conn, pool, s.settings.StatsInterval, func(ps registry.PoolStats) {
					snapshot = ps
				})
				chains := []model.ChainStatus{{Chain: pool.Chain, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				if err != nil {
					return nil, chains, nil, false, err
				}
				stop()
				_ = s.registry.SetPoolStats(pool.Slug, snapshot)

				row := poolSummary(pool)
				row.TotalAPR = snapshot.TotalAPR
				row.TVL = snapshot.TVL
				row.MinJoinPool = snapshot.MinJoinPool
				return row, chains, nil, false, nil
			})
		},
	}
	statsCmd.Flags().StringVar(&poolArg, "pool", "", "Pool slug")
	_ = statsCmd.MarkFlagRequired("pool")

	root.AddCommand(listCmd)
	root.AddCommand(statsCmd)
	return root
}

func (s *runtimeState) newRewardsCommand() *cobra.Command {
	root := &cobra.Command{Use: "rewards", Short: "Reward projections"}

	var poolArg, periodArg, amountDecimal string
	var aprArg float64
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Project APR into APY and yearly reward for an amount",
		RunE: func(cmd *cobra.Command, args []string) error {
			apr := aprArg
			poolSlug := ""
			if poolArg != "" {
				pool, err := s.registry.Pool(poolArg)
				if err != nil {
					return err
				}
				poolSlug = pool.Slug
				if pool.Stats != nil {
					apr = pool.Stats.TotalAPR
				}
			}
			if apr < 0 {
				return clierr.New(clierr.CodeUsage, "--apr must not be negative")
			}
			period, err := stats.ParsePeriod(periodArg)
			if err != nil {
				return err
			}
			amount, err := strconv.ParseFloat(strings.TrimSpace(amountDecimal), 64)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "parse --amount-decimal", err)
			}
			reward, err := stats.CalculateReward(apr, amount, period)
			if err != nil {
				return err
			}
			projection := model.RewardProjection{
				Pool:              poolSlug,
				APR:               apr,
				CompoundingPeriod: string(period),
				APY:               reward.APY,
				Amount:            amount,
				RewardInToken:     reward.RewardInToken,
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), projection, nil, cacheMetaBypass(), nil, false)
		},
	}
	projectCmd.Flags().StringVar(&poolArg, "pool", "", "Pool slug (uses the pool's published APR)")
	projectCmd.Flags().Float64Var(&aprArg, "apr", 0, "Annual percentage rate, ignored when --pool is set")
	projectCmd.Flags().StringVar(&amountDecimal, "amount-decimal", "", "Principal amount in decimal units")
	projectCmd.Flags().StringVar(&periodArg, "period", "yearly", "Compounding cadence (daily|weekly|monthly|yearly)")
	_ = projectCmd.MarkFlagRequired("amount-decimal")

	root.AddCommand(projectCmd)
	return root
}

func (s *runtimeState) newHistoryCommand() *cobra.Command {
	root := &cobra.Command{Use: "history", Short: "Indexed account history"}

	makeCmd := func(use, short, kind string) *cobra.Command {
		var chainArg, addressArg string
		var page int
		cmd := &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				chain, err := s.registry.Chain(chainArg)
				if err != nil {
					return err
				}
				if _, err := id.DecodeSS58(addressArg); err != nil {
					return err
				}
				key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{
					"chain":   chain.Slug,
					"address": addressArg,
					"page":    page,
					"kind":    kind,
				})
				return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, 60*time.Second, func(ctx context.Context) (any, []model.ChainStatus, []string, bool, error) {
					start := time.Now()
					data, err := s.queue.Do(ctx, func(ctx context.Context) (model.HistoryPage, error) {
						if kind == "transfer" {
							return s.indexer.TransfersList(ctx, chain.Slug, addressArg, page)
						}
						return s.indexer.ExtrinsicsList(ctx, chain.Slug, addressArg, page)
					})
					chains := []model.ChainStatus{{Chain: chain.Slug, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
					if err != nil {
						return nil, chains, nil, false, err
					}
					return data, chains, nil, false, nil
				})
			},
		}
		cmd.Flags().StringVar(&chainArg, "chain", "", "Chain slug")
		cmd.Flags().StringVar(&addressArg, "address", "", "SS58 account address")
		cmd.Flags().IntVar(&page, "page", 0, "Result page, starting at 0")
		_ = cmd.MarkFlagRequired("chain")
		_ = cmd.MarkFlagRequired("address")
		return cmd
	}

	root.AddCommand(makeCmd("extrinsics", "List extrinsics submitted by an account", "extrinsic"))
	root.AddCommand(makeCmd("transfers", "List balance transfers touching an account", "transfer"))
	return root
}

func poolSummary(pool registry.Pool) model.PoolSummary {
	row := model.PoolSummary{
		Slug:        pool.Slug,
		Name:        pool.Name,
		Chain:       pool.Chain,
		Type:        string(pool.Type),
		InputAssets: pool.InputAssets,
		FeeAssets:   pool.FeeAssets,
	}
	if pool.Stats != nil {
		row.TotalAPR = pool.Stats.TotalAPR
		row.TVL = pool.Stats.TVL
		row.MinJoinPool = pool.Stats.MinJoinPool
	}
	return row
}
