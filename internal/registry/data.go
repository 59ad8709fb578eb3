package registry

// Compiled-in reference data. A config file can extend or override these
// tables; the CLI never needs network access to resolve a slug.

func defaultChains() []Chain {
	return []Chain{
		{
			Slug:              "polkadot",
			Name:              "Polkadot",
			ParaID:            0,
			SS58Network:       0,
			NativeAsset:       "polkadot-NATIVE-DOT",
			TransferCallIndex: CallIndex{0x63, 0x08}, // xcmPallet.limitedReserveTransferAssets
		},
		{
			Slug:              "acala",
			Name:              "Acala",
			ParaID:            2000,
			SS58Network:       10,
			NativeAsset:       "acala-NATIVE-ACA",
			TransferCallIndex: CallIndex{0x36, 0x00}, // xTokens.transfer
		},
		{
			Slug:              "bifrost_polkadot",
			Name:              "Bifrost Polkadot",
			ParaID:            2030,
			SS58Network:       6,
			NativeAsset:       "bifrost_polkadot-NATIVE-BNC",
			TransferCallIndex: CallIndex{0x46, 0x00}, // xTokens.transfer
		},
		{
			Slug:              "interlay",
			Name:              "Interlay",
			ParaID:            2032,
			SS58Network:       2032,
			NativeAsset:       "interlay-NATIVE-INTR",
			TransferCallIndex: CallIndex{0x5d, 0x00}, // xTokens.transfer
		},
	}
}

func defaultAssets() []Asset {
	return []Asset{
		{Slug: "polkadot-NATIVE-DOT", Symbol: "DOT", OriginChain: "polkadot", Decimals: 10, MinAmount: "10000000000"},
		{Slug: "acala-NATIVE-ACA", Symbol: "ACA", OriginChain: "acala", Decimals: 12, MinAmount: "100000000000"},
		{Slug: "acala-LOCAL-DOT", Symbol: "DOT", OriginChain: "acala", Decimals: 10, MinAmount: "1000000000"},
		{Slug: "acala-LOCAL-LDOT", Symbol: "LDOT", OriginChain: "acala", Decimals: 10, MinAmount: "5000000000"},
		{Slug: "bifrost_polkadot-NATIVE-BNC", Symbol: "BNC", OriginChain: "bifrost_polkadot", Decimals: 12, MinAmount: "10000000000"},
		{Slug: "bifrost_polkadot-LOCAL-DOT", Symbol: "DOT", OriginChain: "bifrost_polkadot", Decimals: 10, MinAmount: "1000000"},
		{Slug: "bifrost_polkadot-LOCAL-vDOT", Symbol: "vDOT", OriginChain: "bifrost_polkadot", Decimals: 10, MinAmount: "1000000"},
		{Slug: "interlay-NATIVE-INTR", Symbol: "INTR", OriginChain: "interlay", Decimals: 10, MinAmount: "0"},
		{Slug: "interlay-LOCAL-DOT", Symbol: "DOT", OriginChain: "interlay", Decimals: 10, MinAmount: "0"},
		{Slug: "interlay-LOCAL-qDOT", Symbol: "qDOT", OriginChain: "interlay", Decimals: 10, MinAmount: "0"},
	}
}

func defaultPools() []Pool {
	return []Pool{
		{
			Slug:        "DOT___native_staking",
			Name:        "DOT Nomination Pools",
			Chain:       "polkadot",
			Type:        PoolTypeNativeStaking,
			Protocol:    "nomination_pools",
			InputAssets: []string{"polkadot-NATIVE-DOT"},
			FeeAssets:   []string{"polkadot-NATIVE-DOT"},
			CallIndexes: map[string]CallIndex{
				"bond": {0x07, 0x00}, // staking.bond
				"join": {0x27, 0x00}, // nominationPools.join
			},
			AltFeeRatio: Ratio{Num: 1, Den: 1},
			StatKeys: map[string]string{
				"total_staked": "0x5f3e4907f716ac89b6347d15ececedcab49a2738eeb30896aacb8b3fb2471e74",
			},
			Stats: &PoolStats{
				TotalAPR:    15.82,
				TVL:         "6890000000000000000",
				MinJoinPool: "10000000000",
				AssetEarning: []AssetEarning{
					{Slug: "polkadot-NATIVE-DOT", APR: 15.82},
				},
			},
		},
		{
			Slug:             "LDOT___acala_liquid_staking",
			Name:             "Acala Liquid Staking",
			Chain:            "acala",
			Type:             PoolTypeLiquidStaking,
			Protocol:         "homa",
			InputAssets:      []string{"acala-LOCAL-DOT"},
			AltInputAssets:   []string{"polkadot-NATIVE-DOT"},
			DerivativeAssets: []string{"acala-LOCAL-LDOT"},
			FeeAssets:        []string{"acala-NATIVE-ACA", "acala-LOCAL-DOT"},
			CallIndexes: map[string]CallIndex{
				"mint": {0x74, 0x00}, // homa.mint
			},
			AltFeeRatio: Ratio{Num: 1, Den: 1},
			StatKeys: map[string]string{
				"to_bond_pool":        "0x5710539987cc7e3e72083cf1576b9a44d8a6b2de0d26c858905d461ee996b9db",
				"total_void_liquid":   "0x5710539987cc7e3e72083cf1576b9a44b55ff9f73493c1ea3bbd5f8b7dfb1f79",
				"estimated_reward_rate": "0x5710539987cc7e3e72083cf1576b9a44e82adbd2efa2e38f4cbeb93a5028ca4b",
			},
			Stats: &PoolStats{
				TotalAPR:    18.38,
				TVL:         "2930000000000000",
				MinJoinPool: "10000000000",
				AssetEarning: []AssetEarning{
					{Slug: "acala-LOCAL-LDOT", APR: 18.38},
				},
			},
		},
		{
			Slug:             "vDOT___bifrost_liquid_staking",
			Name:             "Bifrost Liquid Staking",
			Chain:            "bifrost_polkadot",
			Type:             PoolTypeLiquidStaking,
			Protocol:         "vtoken_minting",
			InputAssets:      []string{"bifrost_polkadot-LOCAL-DOT"},
			AltInputAssets:   []string{"polkadot-NATIVE-DOT"},
			DerivativeAssets: []string{"bifrost_polkadot-LOCAL-vDOT"},
			FeeAssets:        []string{"bifrost_polkadot-NATIVE-BNC", "bifrost_polkadot-LOCAL-DOT"},
			CallIndexes: map[string]CallIndex{
				"mint": {0x7c, 0x00}, // vtokenMinting.mint
			},
			CurrencyIndex: 0, // Token2(0) = DOT
			AltFeeRatio: Ratio{Num: 1, Den: 1},
			StatKeys: map[string]string{
				"token_pool": "0x2b1e2b6bd1a4b1d3e09c26aa1a2b06ac3c85e22d0ba4a031dcbf899e1e1ce92b",
			},
			Stats: &PoolStats{
				TotalAPR:    16.90,
				TVL:         "1450000000000000",
				MinJoinPool: "5000000000",
				AssetEarning: []AssetEarning{
					{Slug: "bifrost_polkadot-LOCAL-vDOT", APR: 16.90},
				},
			},
		},
		{
			Slug:             "qDOT___interlay_lending",
			Name:             "Interlay Lending",
			Chain:            "interlay",
			Type:             PoolTypeLending,
			Protocol:         "loans",
			InputAssets:      []string{"interlay-LOCAL-DOT"},
			AltInputAssets:   []string{"polkadot-NATIVE-DOT"},
			DerivativeAssets: []string{"interlay-LOCAL-qDOT"},
			FeeAssets:        []string{"interlay-NATIVE-INTR", "interlay-LOCAL-DOT"},
			CallIndexes: map[string]CallIndex{
				"deposit": {0x68, 0x00}, // loans.mint
			},
			CurrencyIndex: 2, // lending market for DOT
			AltFeeRatio: Ratio{Num: 1, Den: 1},
			StatKeys: map[string]string{
				"total_supply": "0x54f8ddd4e5a8a0fe45c4f4c7a4e4bd0cd1c3e4f1f55b8d6d9f3b9e1a0c7d2e3f",
			},
			Stats: &PoolStats{
				TotalAPR:    9.40,
				TVL:         "820000000000000",
				MinJoinPool: "1000000000",
				AssetEarning: []AssetEarning{
					{Slug: "interlay-LOCAL-qDOT", APR: 9.40},
				},
			},
		},
	}
}
