package registry

// Chain describes one reachable network. SS58Network is the 14-bit address
// format identifier used when re-encoding account ids for the chain;
// identifiers above 63 take the two-byte SS58 prefix form.
type Chain struct {
	Slug        string `yaml:"slug" json:"slug"`
	Name        string `yaml:"name" json:"name"`
	ParaID      uint32 `yaml:"para_id" json:"para_id"`
	SS58Network uint16 `yaml:"ss58_network" json:"ss58_network"`
	NativeAsset string `yaml:"native_asset" json:"native_asset"`
	// Call index of the cross-chain transfer dispatchable on this chain
	// (xcmPallet on the relay, xTokens on parachains).
	TransferCallIndex CallIndex `yaml:"transfer_call_index" json:"transfer_call_index"`
}

// Asset is immutable reference data. MinAmount is the existential deposit in
// base units; accounts dropping below it are reaped by the chain.
type Asset struct {
	Slug        string `yaml:"slug" json:"slug"`
	Symbol      string `yaml:"symbol" json:"symbol"`
	OriginChain string `yaml:"origin_chain" json:"origin_chain"`
	Decimals    int    `yaml:"decimals" json:"decimals"`
	MinAmount   string `yaml:"min_amount" json:"min_amount"`
}

type PoolType string

const (
	PoolTypeNativeStaking PoolType = "native_staking"
	PoolTypeLiquidStaking PoolType = "liquid_staking"
	PoolTypeLending       PoolType = "lending"
)

// CallIndex is the two-byte (pallet, call) pair identifying a dispatchable.
type CallIndex [2]byte

// Ratio is the fixed conversion policy used when a dispatch fee estimated in
// the designated fee asset must be approximated in the input asset instead.
// The default is 1/1: fee amounts carry over unscaled.
type Ratio struct {
	Num uint64 `yaml:"num" json:"num"`
	Den uint64 `yaml:"den" json:"den"`
}

type AssetEarning struct {
	Slug string  `yaml:"slug" json:"slug"`
	APR  float64 `yaml:"apr" json:"apr"`
}

// PoolStats is the live portion of a pool's metadata, refreshed periodically
// by the stats subscription. Amount fields are base-unit decimal strings.
type PoolStats struct {
	TotalAPR      float64        `yaml:"total_apr" json:"total_apr"`
	TVL           string         `yaml:"tvl" json:"tvl"`
	MinJoinPool   string         `yaml:"min_join_pool" json:"min_join_pool"`
	MinWithdrawal string         `yaml:"min_withdrawal" json:"min_withdrawal"`
	AssetEarning  []AssetEarning `yaml:"asset_earning" json:"asset_earning"`
}

// Pool identifies one yield-bearing product bound to a single chain and
// protocol type. Asset lists hold asset slugs; only the first entry of
// InputAssets and AltInputAssets is consulted by the planner.
type Pool struct {
	Slug  string   `yaml:"slug" json:"slug"`
	Name  string   `yaml:"name" json:"name"`
	Chain string   `yaml:"chain" json:"chain"`
	Type  PoolType `yaml:"type" json:"type"`
	// Protocol names the on-chain pallet family driving this pool
	// (nomination_pools, homa, vtoken_minting, loans). Together with Type it
	// selects the strategy at load time.
	Protocol         string               `yaml:"protocol" json:"protocol"`
	InputAssets      []string             `yaml:"input_assets" json:"input_assets"`
	AltInputAssets   []string             `yaml:"alt_input_assets" json:"alt_input_assets,omitempty"`
	DerivativeAssets []string             `yaml:"derivative_assets" json:"derivative_assets,omitempty"`
	FeeAssets        []string             `yaml:"fee_assets" json:"fee_assets"`
	CallIndexes      map[string]CallIndex `yaml:"call_indexes" json:"-"`
	// CurrencyIndex is the numeric currency id passed to calls that take an
	// explicit asset argument (vtoken minting, lending markets).
	CurrencyIndex uint32 `yaml:"currency_index" json:"-"`
	AltFeeRatio   Ratio  `yaml:"alt_fee_ratio" json:"alt_fee_ratio"`
	// Hex storage keys polled by the stats subscription, keyed by stat name.
	StatKeys map[string]string `yaml:"stat_keys" json:"-"`
	Stats    *PoolStats        `yaml:"stats" json:"stats,omitempty"`
}

// PrimaryInput returns the pool's first declared input asset slug.
func (p Pool) PrimaryInput() string {
	if len(p.InputAssets) == 0 {
		return ""
	}
	return p.InputAssets[0]
}

// PrimaryAltInput returns the pool's first alternate input asset slug, or ""
// when the pool declares none.
func (p Pool) PrimaryAltInput() string {
	if len(p.AltInputAssets) == 0 {
		return ""
	}
	return p.AltInputAssets[0]
}

// DefaultFeeAsset returns the pool's designated fee asset slug.
func (p Pool) DefaultFeeAsset() string {
	if len(p.FeeAssets) == 0 {
		return ""
	}
	return p.FeeAssets[0]
}

// AcceptsFeeAsset reports whether slug is in the pool's fee-asset list.
func (p Pool) AcceptsFeeAsset(slug string) bool {
	for _, fa := range p.FeeAssets {
		if fa == slug {
			return true
		}
	}
	return false
}

// MinJoin returns the pool's declared minimum join amount as a base-unit
// string, defaulting to "0" when stats are absent.
func (p Pool) MinJoin() string {
	if p.Stats == nil || p.Stats.MinJoinPool == "" {
		return "0"
	}
	return p.Stats.MinJoinPool
}
