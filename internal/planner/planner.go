package planner

import (
	"fmt"
	"sort"

	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/registry"
)

// Planner owns one strategy per registered pool. Strategies are resolved
// once at construction, so an unsupported pool configuration fails at load
// time instead of at planning time.
type Planner struct {
	strategies map[string]Strategy
}

func New(reg *registry.Registry, dial Dialer) (*Planner, error) {
	oracle := NewFeeOracle(reg, dial)
	strategies := make(map[string]Strategy)
	for _, pool := range reg.Pools() {
		strategy, err := strategyFor(pool, reg, oracle)
		if err != nil {
			return nil, err
		}
		strategies[pool.Slug] = strategy
	}
	return &Planner{strategies: strategies}, nil
}

func strategyFor(pool registry.Pool, reg *registry.Registry, oracle *FeeOracle) (Strategy, error) {
	switch {
	case pool.Type == registry.PoolTypeNativeStaking && pool.Protocol == "nomination_pools":
		return newNominationPoolsStrategy(pool, reg, oracle)
	case pool.Type == registry.PoolTypeLiquidStaking && pool.Protocol == "homa":
		return newHomaStrategy(pool, reg, oracle)
	case pool.Type == registry.PoolTypeLiquidStaking && pool.Protocol == "vtoken_minting":
		return newVtokenStrategy(pool, reg, oracle)
	case pool.Type == registry.PoolTypeLending && pool.Protocol == "loans":
		return newLendingStrategy(pool, reg, oracle)
	default:
		return nil, clierrors.New(clierrors.CodeUnsupported,
			fmt.Sprintf("pool %s: unsupported type/protocol %s/%s", pool.Slug, pool.Type, pool.Protocol))
	}
}

// Strategy returns the typed handle for a pool slug.
func (p *Planner) Strategy(slug string) (Strategy, error) {
	s, ok := p.strategies[slug]
	if !ok {
		return nil, clierrors.New(clierrors.CodeUnsupported, fmt.Sprintf("no strategy for pool %q", slug))
	}
	return s, nil
}

// Pools lists the pools with a resolved strategy, ordered by slug.
func (p *Planner) Pools() []registry.Pool {
	out := make([]registry.Pool, 0, len(p.strategies))
	for _, s := range p.strategies {
		out = append(out, s.Pool())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
