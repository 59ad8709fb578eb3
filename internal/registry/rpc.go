package registry

import (
	"fmt"
	"strings"
)

// Canonical default RPC endpoints by chain slug.
// These values are used whenever a command does not pass --rpc-url and the
// config file carries no per-chain override.
var defaultRPCByChain = map[string]string{
	"polkadot":         "https://polkadot-rpc.dwellir.com",
	"acala":            "https://acala-rpc.dwellir.com",
	"bifrost_polkadot": "https://bifrost-polkadot-rpc.dwellir.com",
	"interlay":         "https://interlay-rpc.dwellir.com",
}

func DefaultRPCURL(chain string) (string, bool) {
	value, ok := defaultRPCByChain[chain]
	return value, ok
}

func ResolveRPCURL(override string, chain string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return strings.TrimSpace(override), nil
	}
	if value, ok := DefaultRPCURL(chain); ok {
		return value, nil
	}
	return "", fmt.Errorf("no default rpc configured for chain %q; provide --rpc-url", chain)
}
