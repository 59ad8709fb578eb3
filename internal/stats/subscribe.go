package stats

import (
	"context"
	"encoding/hex"
	"math/big"
	"sort"
	"strings"
	"sync"
	"time"

	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/registry"
)

// StorageReader reads raw chain state by storage key. *chainrpc.Conn
// satisfies it; tests substitute an in-memory map.
type StorageReader interface {
	QueryStorage(ctx context.Context, keyHex string) (string, bool, error)
}

// Unsubscribe stops a running subscription. Safe to call more than once.
type Unsubscribe func()

// FetchStats reads the pool's configured storage keys and folds them into a
// fresh stats snapshot. The configured figures (APR, minimums) are carried
// over; TVL is recomputed as the sum of the on-chain balances behind the
// pool's stat keys. Missing keys are skipped, transport errors abort.
func FetchStats(ctx context.Context, reader StorageReader, pool registry.Pool) (registry.PoolStats, error) {
	var snapshot registry.PoolStats
	if pool.Stats != nil {
		snapshot = *pool.Stats
	}
	if len(pool.StatKeys) == 0 {
		return snapshot, nil
	}

	names := make([]string, 0, len(pool.StatKeys))
	for name := range pool.StatKeys {
		names = append(names, name)
	}
	sort.Strings(names)

	total := new(big.Int)
	hits := 0
	for _, name := range names {
		value, ok, err := reader.QueryStorage(ctx, pool.StatKeys[name])
		if err != nil {
			return registry.PoolStats{}, err
		}
		if !ok {
			continue
		}
		balance, err := decodeLittleEndian(value)
		if err != nil {
			return registry.PoolStats{}, clierrors.Wrap(clierrors.CodeInternal,
				"decode storage value for "+name, err)
		}
		total.Add(total, balance)
		hits++
	}
	if hits > 0 {
		snapshot.TVL = total.String()
	}
	return snapshot, nil
}

// Subscribe publishes a stats snapshot immediately, then again on every
// tick until the returned function is called or ctx is cancelled. Refresh
// failures after the first publish are skipped; the next tick retries.
func Subscribe(ctx context.Context, reader StorageReader, pool registry.Pool, interval time.Duration, cb func(registry.PoolStats)) (Unsubscribe, error) {
	if interval <= 0 {
		return nil, clierrors.New(clierrors.CodeUsage, "stats interval must be positive")
	}
	if cb == nil {
		return nil, clierrors.New(clierrors.CodeUsage, "stats subscription requires a callback")
	}

	snapshot, err := FetchStats(ctx, reader, pool)
	if err != nil {
		return nil, err
	}
	cb(snapshot)

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				snapshot, err := FetchStats(ctx, reader, pool)
				if err != nil {
					continue
				}
				cb(snapshot)
			}
		}
	}()
	return stop, nil
}

// decodeLittleEndian parses a SCALE-encoded unsigned integer stored as a
// little-endian hex blob.
func decodeLittleEndian(value string) (*big.Int, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(raw)-1; i < j; i, j = i+1, j-1 {
		raw[i], raw[j] = raw[j], raw[i]
	}
	return new(big.Int).SetBytes(raw), nil
}
