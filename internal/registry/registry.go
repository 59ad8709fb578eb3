package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/id"
)

// Registry resolves chain, asset and pool slugs against the compiled-in
// tables, optionally extended by a YAML overlay file.
type Registry struct {
	chains map[string]Chain
	assets map[string]Asset
	pools  map[string]Pool
}

// overlay mirrors the shape of a registry YAML file. Entries replace
// compiled-in rows with the same slug and add new rows otherwise.
type overlay struct {
	Chains []Chain `yaml:"chains"`
	Assets []Asset `yaml:"assets"`
	Pools  []Pool  `yaml:"pools"`
}

// Default returns a registry backed by the compiled-in tables.
func Default() *Registry {
	r := &Registry{
		chains: map[string]Chain{},
		assets: map[string]Asset{},
		pools:  map[string]Pool{},
	}
	for _, c := range defaultChains() {
		r.chains[c.Slug] = c
	}
	for _, a := range defaultAssets() {
		r.assets[a.Slug] = a
	}
	for _, p := range defaultPools() {
		r.pools[p.Slug] = p
	}
	return r
}

// Load returns the default registry merged with the overlay file at path.
// An empty path returns the default registry unchanged.
func Load(path string) (*Registry, error) {
	r := Default()
	if path == "" {
		return r, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, clierrors.Wrap(clierrors.CodeUsage, fmt.Sprintf("read registry file %s", path), err)
	}
	var o overlay
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return nil, clierrors.Wrap(clierrors.CodeUsage, fmt.Sprintf("parse registry file %s", path), err)
	}
	for _, c := range o.Chains {
		slug, err := id.ValidateChainSlug(c.Slug)
		if err != nil {
			return nil, clierrors.Wrap(clierrors.CodeUsage, "registry overlay: chain entry", err)
		}
		c.Slug = slug
		r.chains[slug] = c
	}
	for _, a := range o.Assets {
		if _, err := id.ParseAssetSlug(a.Slug); err != nil {
			return nil, clierrors.Wrap(clierrors.CodeUsage, "registry overlay: asset entry", err)
		}
		r.assets[a.Slug] = a
	}
	for _, p := range o.Pools {
		slug, err := id.ValidatePoolSlug(p.Slug)
		if err != nil {
			return nil, clierrors.Wrap(clierrors.CodeUsage, "registry overlay: pool entry", err)
		}
		r.pools[slug] = p
	}
	return r, nil
}

func (r *Registry) Chain(slug string) (Chain, error) {
	c, ok := r.chains[slug]
	if !ok {
		return Chain{}, clierrors.New(clierrors.CodeUsage, fmt.Sprintf("unknown chain %q", slug))
	}
	return c, nil
}

func (r *Registry) Asset(slug string) (Asset, error) {
	a, ok := r.assets[slug]
	if !ok {
		return Asset{}, clierrors.New(clierrors.CodeUsage, fmt.Sprintf("unknown asset %q", slug))
	}
	return a, nil
}

func (r *Registry) Pool(slug string) (Pool, error) {
	p, ok := r.pools[slug]
	if !ok {
		return Pool{}, clierrors.New(clierrors.CodeUsage, fmt.Sprintf("unknown pool %q", slug))
	}
	return p, nil
}

// AddPool registers a pool, replacing any existing entry with the same slug.
func (r *Registry) AddPool(p Pool) error {
	if p.Slug == "" {
		return clierrors.New(clierrors.CodeUsage, "pool entry missing slug")
	}
	r.pools[p.Slug] = p
	return nil
}

// SetPoolStats replaces the stats block of a known pool. Used by the stats
// refresher so that subsequent lookups observe the latest figures.
func (r *Registry) SetPoolStats(slug string, stats PoolStats) error {
	p, ok := r.pools[slug]
	if !ok {
		return clierrors.New(clierrors.CodeUsage, fmt.Sprintf("unknown pool %q", slug))
	}
	p.Stats = &stats
	r.pools[slug] = p
	return nil
}

// Pools returns all registered pools ordered by slug.
func (r *Registry) Pools() []Pool {
	out := make([]Pool, 0, len(r.pools))
	for _, p := range r.pools {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Chains returns all registered chains ordered by slug.
func (r *Registry) Chains() []Chain {
	out := make([]Chain, 0, len(r.chains))
	for _, c := range r.chains {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// NativeAsset resolves the native asset of a chain.
func (r *Registry) NativeAsset(chainSlug string) (Asset, error) {
	c, err := r.Chain(chainSlug)
	if err != nil {
		return Asset{}, err
	}
	return r.Asset(c.NativeAsset)
}
