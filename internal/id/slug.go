package id

import (
	"fmt"
	"regexp"
	"strings"

	clierr "github.com/ggonzalez94/yield-cli/internal/errors"
)

// Asset slugs follow the <chain>-<kind>-<symbol> convention, e.g.
// "polkadot-NATIVE-DOT" or "acala-LOCAL-LDOT". Pool slugs follow the
// <symbol>___<pool name> convention, e.g. "DOT___acala_liquid_staking".

var (
	assetSlugPattern = regexp.MustCompile(`^[a-z0-9_]+-(NATIVE|LOCAL)-[A-Za-z0-9]+$`)
	poolSlugPattern  = regexp.MustCompile(`^[A-Za-z0-9]+___[a-z0-9_]+$`)
	chainSlugPattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

const (
	AssetKindNative = "NATIVE"
	AssetKindLocal  = "LOCAL"
)

type AssetSlug struct {
	Chain  string
	Kind   string
	Symbol string
}

func (s AssetSlug) String() string {
	return fmt.Sprintf("%s-%s-%s", s.Chain, s.Kind, s.Symbol)
}

func MakeAssetSlug(chain, kind, symbol string) string {
	return AssetSlug{Chain: chain, Kind: kind, Symbol: symbol}.String()
}

func ParseAssetSlug(input string) (AssetSlug, error) {
	raw := strings.TrimSpace(input)
	if !assetSlugPattern.MatchString(raw) {
		return AssetSlug{}, clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid asset slug: %q (want <chain>-<NATIVE|LOCAL>-<symbol>)", input))
	}
	parts := strings.SplitN(raw, "-", 3)
	return AssetSlug{Chain: parts[0], Kind: parts[1], Symbol: parts[2]}, nil
}

func ValidatePoolSlug(input string) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", clierr.New(clierr.CodeUsage, "pool slug is required")
	}
	if !poolSlugPattern.MatchString(raw) {
		return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid pool slug: %q (want <SYMBOL>___<pool_name>)", input))
	}
	return raw, nil
}

func ValidateChainSlug(input string) (string, error) {
	raw := strings.ToLower(strings.TrimSpace(input))
	if raw == "" {
		return "", clierr.New(clierr.CodeUsage, "chain is required")
	}
	if !chainSlugPattern.MatchString(raw) {
		return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid chain slug: %q", input))
	}
	return raw, nil
}
