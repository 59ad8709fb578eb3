package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type GlobalFlags struct {
	ConfigPath     string
	JSON           bool
	Plain          bool
	Select         string
	ResultsOnly    bool
	EnableCommands string
	Timeout        string
	Retries        int
	MaxStale       string
	NoStale        bool
	NoCache        bool
	RPCURL         string
	RegistryPath   string
}

type Settings struct {
	OutputMode     string
	SelectFields   []string
	ResultsOnly    bool
	EnableCommands []string
	Timeout        time.Duration
	Retries        int
	MaxStale       time.Duration
	NoStale        bool
	CacheEnabled   bool
	CachePath      string
	CacheLockPath  string
	RegistryPath   string
	// RPCURL overrides every chain endpoint when set; RPCOverrides override
	// one chain at a time.
	RPCURL       string
	RPCOverrides map[string]string

	IndexerEndpoint   string
	IndexerWorkers    int
	IndexerMaxRetry   int
	IndexerPageSize   int
	StatsInterval     time.Duration
}

type fileConfig struct {
	Output  string `yaml:"output"`
	Timeout string `yaml:"timeout"`
	Retries *int   `yaml:"retries"`
	Cache   struct {
		Enabled  *bool  `yaml:"enabled"`
		MaxStale string `yaml:"max_stale"`
		Path     string `yaml:"path"`
		LockPath string `yaml:"lock_path"`
	} `yaml:"cache"`
	Registry string            `yaml:"registry"`
	RPC      map[string]string `yaml:"rpc"`
	Indexer  struct {
		Endpoint string `yaml:"endpoint"`
		Workers  *int   `yaml:"workers"`
		MaxRetry *int   `yaml:"max_retry"`
		PageSize *int   `yaml:"page_size"`
	} `yaml:"indexer"`
	Stats struct {
		Interval string `yaml:"interval"`
	} `yaml:"stats"`
}

func Load(flags GlobalFlags) (Settings, error) {
	settings, err := defaultSettings()
	if err != nil {
		return Settings{}, err
	}

	cfgPath, err := resolveConfigPath(flags.ConfigPath)
	if err != nil {
		return Settings{}, err
	}

	if err := applyFileConfig(cfgPath, &settings); err != nil {
		return Settings{}, err
	}

	applyEnv(&settings)

	if err := applyFlags(flags, &settings); err != nil {
		return Settings{}, err
	}

	if settings.OutputMode == "" {
		settings.OutputMode = "json"
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 10 * time.Second
	}
	if settings.Retries < 0 {
		settings.Retries = 0
	}
	if settings.MaxStale < 0 {
		settings.MaxStale = 5 * time.Minute
	}
	if settings.IndexerWorkers <= 0 {
		settings.IndexerWorkers = 2
	}
	if settings.IndexerMaxRetry < 0 {
		settings.IndexerMaxRetry = 0
	}
	if settings.IndexerPageSize <= 0 {
		settings.IndexerPageSize = 100
	}
	if settings.StatsInterval <= 0 {
		settings.StatsInterval = 30 * time.Minute
	}

	return settings, nil
}

func defaultSettings() (Settings, error) {
	cachePath, lockPath, err := defaultCachePaths()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		OutputMode:      "json",
		Timeout:         10 * time.Second,
		Retries:         2,
		MaxStale:        5 * time.Minute,
		CacheEnabled:    true,
		CachePath:       cachePath,
		CacheLockPath:   lockPath,
		RPCOverrides:    map[string]string{},
		IndexerEndpoint: "https://{chain}.api.subscan.io",
		IndexerWorkers:  2,
		IndexerMaxRetry: 9,
		IndexerPageSize: 100,
		StatsInterval:   30 * time.Minute,
	}, nil
}

func resolveConfigPath(input string) (string, error) {
	if strings.TrimSpace(input) != "" {
		return input, nil
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "yield", "config.yaml"), nil
}

func defaultCachePaths() (string, string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "yield")
	return filepath.Join(dir, "cache.db"), filepath.Join(dir, "cache.lock"), nil
}

func applyFileConfig(path string, settings *Settings) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}

	if cfg.Output != "" {
		settings.OutputMode = strings.ToLower(cfg.Output)
	}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		settings.Timeout = d
	}
	if cfg.Retries != nil {
		settings.Retries = *cfg.Retries
	}
	if cfg.Cache.Enabled != nil {
		settings.CacheEnabled = *cfg.Cache.Enabled
	}
	if cfg.Cache.MaxStale != "" {
		d, err := time.ParseDuration(cfg.Cache.MaxStale)
		if err != nil {
			return fmt.Errorf("config cache.max_stale: %w", err)
		}
		settings.MaxStale = d
	}
	if cfg.Cache.Path != "" {
		settings.CachePath = cfg.Cache.Path
	}
	if cfg.Cache.LockPath != "" {
		settings.CacheLockPath = cfg.Cache.LockPath
	}
	if cfg.Registry != "" {
		settings.RegistryPath = cfg.Registry
	}
	for chain, url := range cfg.RPC {
		if strings.TrimSpace(url) != "" {
			settings.RPCOverrides[chain] = strings.TrimSpace(url)
		}
	}
	if cfg.Indexer.Endpoint != "" {
		settings.IndexerEndpoint = cfg.Indexer.Endpoint
	}
	if cfg.Indexer.Workers != nil {
		settings.IndexerWorkers = *cfg.Indexer.Workers
	}
	if cfg.Indexer.MaxRetry != nil {
		settings.IndexerMaxRetry = *cfg.Indexer.MaxRetry
	}
	if cfg.Indexer.PageSize != nil {
		settings.IndexerPageSize = *cfg.Indexer.PageSize
	}
	if cfg.Stats.Interval != "" {
		d, err := time.ParseDuration(cfg.Stats.Interval)
		if err != nil {
			return fmt.Errorf("config stats.interval: %w", err)
		}
		settings.StatsInterval = d
	}

	return nil
}

func applyEnv(settings *Settings) {
	if v := os.Getenv("YIELD_OUTPUT"); v != "" {
		settings.OutputMode = strings.ToLower(v)
	}
	if v := os.Getenv("YIELD_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			settings.Timeout = d
		}
	}
	if v := os.Getenv("YIELD_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			settings.Retries = n
		}
	}
	if v := os.Getenv("YIELD_MAX_STALE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			settings.MaxStale = d
		}
	}
	if v := os.Getenv("YIELD_NO_STALE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			settings.NoStale = b
		}
	}
	if v := os.Getenv("YIELD_NO_CACHE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			settings.CacheEnabled = !b
		}
	}
	if v := os.Getenv("YIELD_CACHE_PATH"); v != "" {
		settings.CachePath = v
	}
	if v := os.Getenv("YIELD_CACHE_LOCK_PATH"); v != "" {
		settings.CacheLockPath = v
	}
	if v := os.Getenv("YIELD_REGISTRY"); v != "" {
		settings.RegistryPath = v
	}
	if v := os.Getenv("YIELD_RPC_URL"); v != "" {
		settings.RPCURL = v
	}
	if v := os.Getenv("YIELD_INDEXER_ENDPOINT"); v != "" {
		settings.IndexerEndpoint = v
	}
	if v := os.Getenv("YIELD_INDEXER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			settings.IndexerWorkers = n
		}
	}
	if v := os.Getenv("YIELD_INDEXER_MAX_RETRY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			settings.IndexerMaxRetry = n
		}
	}
	if v := os.Getenv("YIELD_STATS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			settings.StatsInterval = d
		}
	}
}

func applyFlags(flags GlobalFlags, settings *Settings) error {
	if flags.JSON && flags.Plain {
		return fmt.Errorf("cannot use --json and --plain together")
	}
	if flags.JSON {
		settings.OutputMode = "json"
	}
	if flags.Plain {
		settings.OutputMode = "plain"
	}
	if strings.TrimSpace(flags.Select) != "" {
		parts := strings.Split(flags.Select, ",")
		fields := make([]string, 0, len(parts))
		for _, part := range parts {
			f := strings.TrimSpace(part)
			if f != "" {
				fields = append(fields, f)
			}
		}
		settings.SelectFields = fields
	}
	settings.ResultsOnly = flags.ResultsOnly

	if strings.TrimSpace(flags.EnableCommands) != "" {
		parts := strings.Split(flags.EnableCommands, ",")
		allowed := make([]string, 0, len(parts))
		for _, part := range parts {
			v := strings.TrimSpace(part)
			if v != "" {
				allowed = append(allowed, v)
			}
		}
		settings.EnableCommands = allowed
	}

	if flags.Timeout != "" {
		d, err := time.ParseDuration(flags.Timeout)
		if err != nil {
			return fmt.Errorf("parse --timeout: %w", err)
		}
		settings.Timeout = d
	}
	if flags.Retries >= 0 {
		settings.Retries = flags.Retries
	}
	if flags.MaxStale != "" {
		d, err := time.ParseDuration(flags.MaxStale)
		if err != nil {
			return fmt.Errorf("parse --max-stale: %w", err)
		}
		settings.MaxStale = d
	}
	if flags.NoStale {
		settings.NoStale = true
	}
	if flags.NoCache {
		settings.CacheEnabled = false
	}
	if strings.TrimSpace(flags.RPCURL) != "" {
		settings.RPCURL = strings.TrimSpace(flags.RPCURL)
	}
	if strings.TrimSpace(flags.RegistryPath) != "" {
		settings.RegistryPath = strings.TrimSpace(flags.RegistryPath)
	}

	if settings.OutputMode != "json" && settings.OutputMode != "plain" {
		return fmt.Errorf("output must be json or plain")
	}

	return nil
}

// ResolveRPCOverride returns the endpoint override for chain, preferring the
// global --rpc-url over per-chain config entries. Empty when neither is set.
func (s Settings) ResolveRPCOverride(chain string) string {
	if s.RPCURL != "" {
		return s.RPCURL
	}
	return s.RPCOverrides[chain]
}
