package app

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ggonzalez94/yield-cli/internal/cache"
	"github.com/ggonzalez94/yield-cli/internal/config"
	clierr "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/model"
)

func TestTrimRootPath(t *testing.T) {
	if got := trimRootPath("yield pools list"); got != "pools list" {
		t.Fatalf("unexpected trim result: %s", got)
	}
}

func TestShouldOpenCache(t *testing.T) {
	if shouldOpenCache("pools list") {
		t.Fatal("registry-only commands must not open the cache")
	}
	if !shouldOpenCache("plan") {
		t.Fatal("plan must open the cache")
	}
	if shouldOpenCache("version") || shouldOpenCache("schema") {
		t.Fatal("version/schema must not open the cache")
	}
}

func TestShouldOpenIndexer(t *testing.T) {
	if !shouldOpenIndexer("history extrinsics") || !shouldOpenIndexer("history transfers") {
		t.Fatal("history commands need the indexer")
	}
	if shouldOpenIndexer("plan") || shouldOpenIndexer("pools stats") {
		t.Fatal("non-history commands must not spin up the indexer queue")
	}
}

func TestRunCachedCommandDropsCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	store, err := cache.Open(filepath.Join(dir, "cache.db"), filepath.Join(dir, "cache.lock"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var stdout, stderr bytes.Buffer
	s := &runtimeState{runner: NewRunnerWithWriters(&stdout, &stderr)}
	s.settings = config.Settings{OutputMode: "json", CacheEnabled: true, Timeout: time.Second, MaxStale: time.Minute}
	s.cache = store

	key := cacheKey("pools stats", map[string]any{"pool": "LDOT___acala_liquid_staking"})
	if err := store.Set(key, []byte("{corrupt"), time.Minute); err != nil {
		t.Fatal(err)
	}

	// The corrupt entry must not satisfy the command, and a failed fetch
	// must not leave it behind to shadow the next attempt.
	fetchErr := clierr.New(clierr.CodeUnavailable, "node down")
	err = s.runCachedCommand("pools stats", key, time.Minute, func(ctx context.Context) (any, []model.ChainStatus, []string, bool, error) {
		return nil, nil, nil, false, fetchErr
	})
	if err == nil {
		t.Fatal("expected the fetch error to surface")
	}

	res, err := store.Get(key, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if res.Hit {
		t.Fatal("corrupt entry should have been invalidated")
	}
}

func TestRunnerPoolsList(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"pools", "list", "--results-only"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%s", code, stderr.String())
	}
	var rows []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &rows); err != nil {
		t.Fatalf("failed to parse output json: %v output=%s", err, stdout.String())
	}
	if len(rows) < 4 {
		t.Fatalf("expected the compiled-in pools, got %d rows", len(rows))
	}
}

func TestRunnerPoolsListChainFilter(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"pools", "list", "--chain", "acala", "--results-only"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%s", code, stderr.String())
	}
	var rows []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &rows); err != nil {
		t.Fatalf("failed to parse output json: %v", err)
	}
	for _, row := range rows {
		if row["chain"] != "acala" {
			t.Fatalf("filter leaked pool from chain %v", row["chain"])
		}
	}
}

func TestRunnerRewardsProject(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"rewards", "project", "--apr", "18.38", "--amount-decimal", "1000", "--period", "yearly", "--results-only"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%s", code, stderr.String())
	}
	var projection map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &projection); err != nil {
		t.Fatalf("failed to parse output json: %v output=%s", err, stdout.String())
	}
	apy, _ := projection["apy"].(float64)
	if math.Abs(apy-0.1838) > 1e-9 {
		t.Fatalf("apy = %v, want 0.1838", apy)
	}
	reward, _ := projection["reward_in_token"].(float64)
	if math.Abs(reward-183.8) > 1e-6 {
		t.Fatalf("reward = %v, want 183.8", reward)
	}
}

func TestRunnerErrorEnvelopeIgnoresResultsOnly(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"pools", "list", "--enable-commands", "plan", "--results-only"})
	if code != 16 {
		t.Fatalf("expected exit 16, got %d stderr=%s", code, stderr.String())
	}
	var env map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse error envelope: %v output=%s", err, stderr.String())
	}
	if env["success"] != false {
		t.Fatalf("expected success=false, got %v", env["success"])
	}
}

func TestRunnerUnknownPoolIsUsageError(t *testing.T) {
	dir := t.TempDir()
	balances := filepath.Join(dir, "balances.yaml")
	if err := os.WriteFile(balances, []byte("polkadot-NATIVE-DOT: \"100000000000\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"plan", "--pool", "NOPE___pool", "--amount", "1", "--balances", balances, "--no-cache"})
	if code != 2 {
		t.Fatalf("expected usage exit 2, got %d stderr=%s", code, stderr.String())
	}
	var env map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse error envelope: %v output=%s", err, stderr.String())
	}
	errBody, _ := env["error"].(map[string]any)
	if errBody == nil || errBody["type"] != "usage_error" {
		t.Fatalf("unexpected error body: %v", env["error"])
	}
}

func TestRunnerSchemaListsCommands(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"schema", "--results-only"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"plan", "validate", "materialize", "pools", "rewards", "history"} {
		if !bytes.Contains(stdout.Bytes(), []byte(want)) {
			t.Fatalf("schema output missing %q: %s", want, out)
		}
	}
}

func TestLoadBalancesRejectsMissingFile(t *testing.T) {
	if _, err := loadBalances(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing balances file must error")
	}
}

func TestLoadPathFileRejectsPoolMismatch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "path.json")
	payload := `{"pool":"LDOT___acala_liquid_staking","steps":[{"id":0,"name":"Fill information","type":"join_pool_info"}],"total_fee":[]}`
	if err := os.WriteFile(file, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadPathFile(file, "DOT___native_staking"); err == nil {
		t.Fatal("pool mismatch must be rejected")
	}
	if _, err := loadPathFile(file, "LDOT___acala_liquid_staking"); err != nil {
		t.Fatalf("matching pool should load: %v", err)
	}
}

func TestNetOfFee(t *testing.T) {
	net, err := netOfFee("100", "30")
	if err != nil || net != "70" {
		t.Fatalf("net = %s err = %v, want 70", net, err)
	}
	if _, err := netOfFee("10", "30"); err == nil {
		t.Fatal("fee larger than amount must error")
	}
}
