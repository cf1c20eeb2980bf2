// Package rewards turns reward emission rates, token prices and participation
// tables into APR figures and USD reward totals.
package rewards

import (
	"math"

	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

const (
	SecondsPerYear = 31_536_000
	DaysPerYear    = 365
	// RewardEpochDays is the period covered by one reward distributor transfer.
	RewardEpochDays = 7
)

// Prices maps a canonical token address to its USD price.
type Prices map[types.Address]float64

func (p Prices) Of(token types.Address) float64 {
	if p == nil {
		return 0
	}
	return p[types.NewAddress(string(token))]
}

// StakingApr is the annualised USD value of all active emissions divided by
// the USD value of the staked pool. It is a fraction (0.25 = 25%).
func StakingApr(rates []types.RewardRate, prices Prices, totalStaked, stakedTokenPriceUsd float64) float64 {
	stakedUsd := totalStaked * stakedTokenPriceUsd
	if !positive(stakedUsd) {
		return 0
	}
	return AnnualRewardsUsd(rates, prices) / stakedUsd
}

// AnnualRewardsUsd sums rate * price * seconds-per-year over every pool.
func AnnualRewardsUsd(rates []types.RewardRate, prices Prices) float64 {
	total := 0.0
	for _, r := range rates {
		rate := amount.ToFloat(r.Rate)
		price := prices.Of(r.TokenAddress)
		if !positive(rate) || !positive(price) {
			continue
		}
		total += rate * price * SecondsPerYear
	}
	return total
}

// UserApr applies a boost multiplier to a base APR.
func UserApr(baseApr, boost float64) float64 {
	if !finite(baseApr) || !finite(boost) {
		return 0
	}
	return baseApr * boost
}

// AggregateRewardsUsd values a set of reward balances at the given prices.
func AggregateRewardsUsd(rewards []types.RewardAmount, prices Prices) float64 {
	total := 0.0
	for _, r := range rewards {
		total += amount.ToFloat(r.Amount) * prices.Of(r.TokenAddress)
	}
	if !finite(total) {
		return 0
	}
	return total
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
