package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLookups(t *testing.T) {
	r := Default()

	chain, err := r.Chain("acala")
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	if chain.ParaID != 2000 {
		t.Fatalf("acala para id = %d, want 2000", chain.ParaID)
	}

	asset, err := r.Asset("polkadot-NATIVE-DOT")
	if err != nil {
		t.Fatalf("Asset() error = %v", err)
	}
	if asset.Decimals != 10 {
		t.Fatalf("DOT decimals = %d, want 10", asset.Decimals)
	}
	if asset.MinAmount != "10000000000" {
		t.Fatalf("DOT min amount = %s, want 10000000000", asset.MinAmount)
	}

	pool, err := r.Pool("LDOT___acala_liquid_staking")
	if err != nil {
		t.Fatalf("Pool() error = %v", err)
	}
	if pool.PrimaryInput() != "acala-LOCAL-DOT" {
		t.Fatalf("primary input = %s", pool.PrimaryInput())
	}
	if pool.PrimaryAltInput() != "polkadot-NATIVE-DOT" {
		t.Fatalf("alt input = %s", pool.PrimaryAltInput())
	}
	if pool.DefaultFeeAsset() != "acala-NATIVE-ACA" {
		t.Fatalf("fee asset = %s", pool.DefaultFeeAsset())
	}
	if !pool.AcceptsFeeAsset("acala-LOCAL-DOT") {
		t.Fatal("expected acala-LOCAL-DOT accepted as fee asset")
	}
	if pool.MinJoin() != "10000000000" {
		t.Fatalf("min join = %s", pool.MinJoin())
	}

	if _, err := r.Pool("nope"); err == nil {
		t.Fatal("expected error for unknown pool")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.yaml")
	overlayYAML := `
assets:
  - slug: polkadot-NATIVE-DOT
    symbol: DOT
    origin_chain: polkadot
    decimals: 10
    min_amount: "20000000000"
pools:
  - slug: TEST___pool
    name: Test Pool
    chain: polkadot
    type: native_staking
    input_assets: [polkadot-NATIVE-DOT]
    fee_assets: [polkadot-NATIVE-DOT]
`
	if err := os.WriteFile(path, []byte(overlayYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	asset, err := r.Asset("polkadot-NATIVE-DOT")
	if err != nil {
		t.Fatal(err)
	}
	if asset.MinAmount != "20000000000" {
		t.Fatalf("overlay did not replace min amount, got %s", asset.MinAmount)
	}
	if _, err := r.Pool("TEST___pool"); err != nil {
		t.Fatalf("overlay pool missing: %v", err)
	}
	// Compiled-in pools survive the merge.
	if _, err := r.Pool("DOT___native_staking"); err != nil {
		t.Fatalf("default pool missing after overlay: %v", err)
	}
}

func TestLoadOverlayRejectsMalformedSlugs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.yaml")
	overlayYAML := `
pools:
  - slug: not a pool slug
    name: Broken
    chain: polkadot
`
	if err := os.WriteFile(path, []byte(overlayYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected malformed pool slug to be rejected")
	}
}

func TestSetPoolStats(t *testing.T) {
	r := Default()
	err := r.SetPoolStats("DOT___native_staking", PoolStats{TotalAPR: 12.5, MinJoinPool: "5000000000"})
	if err != nil {
		t.Fatal(err)
	}
	pool, err := r.Pool("DOT___native_staking")
	if err != nil {
		t.Fatal(err)
	}
	if pool.Stats.TotalAPR != 12.5 || pool.MinJoin() != "5000000000" {
		t.Fatalf("stats not replaced: %+v", pool.Stats)
	}
}

func TestResolveRPCURL(t *testing.T) {
	if got, err := ResolveRPCURL("  https://example.org ", "acala"); err != nil || got != "https://example.org" {
		t.Fatalf("override: got %q, %v", got, err)
	}
	if got, err := ResolveRPCURL("", "polkadot"); err != nil || got == "" {
		t.Fatalf("default: got %q, %v", got, err)
	}
	if _, err := ResolveRPCURL("", "unknown-chain"); err == nil {
		t.Fatal("expected error for chain without default rpc")
	}
}
