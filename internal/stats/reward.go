package stats

import (
	"fmt"
	"math"

	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
)

// CompoundingPeriod selects how often earned rewards are assumed to be
// restaked when projecting an APR into an APY.
type CompoundingPeriod string

const (
	PeriodDaily   CompoundingPeriod = "daily"
	PeriodWeekly  CompoundingPeriod = "weekly"
	PeriodMonthly CompoundingPeriod = "monthly"
	PeriodYearly  CompoundingPeriod = "yearly"
)

// ParsePeriod maps a user-supplied period name onto the closed set.
func ParsePeriod(input string) (CompoundingPeriod, error) {
	switch CompoundingPeriod(input) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return CompoundingPeriod(input), nil
	default:
		return "", clierrors.New(clierrors.CodeUsage,
			fmt.Sprintf("unknown compounding period %q (daily|weekly|monthly|yearly)", input))
	}
}

func (p CompoundingPeriod) periodsPerYear() (float64, error) {
	switch p {
	case PeriodDaily:
		return 365, nil
	case PeriodWeekly:
		return 52, nil
	case PeriodMonthly:
		return 12, nil
	case PeriodYearly:
		return 1, nil
	default:
		return 0, clierrors.New(clierrors.CodeUsage, fmt.Sprintf("unknown compounding period %q", p))
	}
}

// Reward is a projected yield for a principal amount over one year.
type Reward struct {
	APY           float64 `json:"apy"`
	RewardInToken float64 `json:"reward_in_token"`
}

// CalculateReward projects an annual percentage rate into an effective APY
// under the given compounding cadence and sizes the yearly reward for the
// principal. A zero or non-finite APR yields an empty projection rather
// than an error, matching how pools without published rates are displayed.
func CalculateReward(apr float64, amount float64, period CompoundingPeriod) (Reward, error) {
	if apr == 0 || math.IsNaN(apr) || math.IsInf(apr, 0) {
		return Reward{}, nil
	}
	n, err := period.periodsPerYear()
	if err != nil {
		return Reward{}, err
	}
	apy := math.Pow(1+apr/100/n, n) - 1
	return Reward{APY: apy, RewardInToken: apy * amount}, nil
}
