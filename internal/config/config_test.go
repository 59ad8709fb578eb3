package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPrecedenceFlagsOverEnvOverFile(t *testing.T) {
	tmp := t.TempDir()
	configPath := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(configPath, []byte("output: plain\nretries: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("YIELD_OUTPUT", "json")
	flags := GlobalFlags{ConfigPath: configPath, Plain: true, Retries: 5}
	settings, err := Load(flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.OutputMode != "plain" {
		t.Fatalf("expected flag to win, got output=%s", settings.OutputMode)
	}
	if settings.Retries != 5 {
		t.Fatalf("expected retries from flags, got %d", settings.Retries)
	}
}

func TestLoadMutuallyExclusiveOutputFlags(t *testing.T) {
	_, err := Load(GlobalFlags{JSON: true, Plain: true})
	if err == nil {
		t.Fatal("expected error with --json and --plain")
	}
}

func TestLoadIndexerAndRPCSections(t *testing.T) {
	tmp := t.TempDir()
	configPath := filepath.Join(tmp, "config.yaml")
	cfg := `
rpc:
  acala: https://acala.example.org
indexer:
  endpoint: https://indexer.example.org
  workers: 4
  max_retry: 3
stats:
  interval: 5m
`
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	settings, err := Load(GlobalFlags{ConfigPath: configPath, Retries: -1})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.ResolveRPCOverride("acala") != "https://acala.example.org" {
		t.Fatalf("rpc override = %q", settings.ResolveRPCOverride("acala"))
	}
	if settings.ResolveRPCOverride("polkadot") != "" {
		t.Fatalf("unexpected override for polkadot: %q", settings.ResolveRPCOverride("polkadot"))
	}
	if settings.IndexerEndpoint != "https://indexer.example.org" {
		t.Fatalf("indexer endpoint = %s", settings.IndexerEndpoint)
	}
	if settings.IndexerWorkers != 4 || settings.IndexerMaxRetry != 3 {
		t.Fatalf("indexer workers/retry = %d/%d", settings.IndexerWorkers, settings.IndexerMaxRetry)
	}
	if settings.StatsInterval != 5*time.Minute {
		t.Fatalf("stats interval = %s", settings.StatsInterval)
	}
}

func TestGlobalRPCURLBeatsPerChainOverride(t *testing.T) {
	tmp := t.TempDir()
	configPath := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(configPath, []byte("rpc:\n  acala: https://acala.example.org\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	settings, err := Load(GlobalFlags{ConfigPath: configPath, RPCURL: "https://global.example.org", Retries: -1})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.ResolveRPCOverride("acala") != "https://global.example.org" {
		t.Fatalf("expected --rpc-url to win, got %q", settings.ResolveRPCOverride("acala"))
	}
}
