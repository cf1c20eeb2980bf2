package rewards

// VaultApr estimates the minting incentive APR (fraction) for a vault
// program paying dailyRewardUsd across totalDebtUsd of minted HAI.
func VaultApr(dailyRewardUsd, totalDebtUsd float64) float64 {
	if !positive(totalDebtUsd) || !positive(dailyRewardUsd) {
		return 0
	}
	return dailyRewardUsd * DaysPerYear / totalDebtUsd
}

// VelodromePoolApr estimates a Velodrome gauge APR (fraction) from its
// per-second emissions and the USD liquidity staked in the gauge.
func VelodromePoolApr(rewardRatePerSecond, rewardPriceUsd, stakedTvlUsd float64) float64 {
	if !positive(stakedTvlUsd) || !positive(rewardRatePerSecond) || !positive(rewardPriceUsd) {
		return 0
	}
	return rewardRatePerSecond * rewardPriceUsd * SecondsPerYear / stakedTvlUsd
}

// CurvePoolApr adds a Curve pool's base trading APY to the gauge reward APR.
// Both values are fractions.
func CurvePoolApr(baseApy, rewardRatePerSecond, rewardPriceUsd, gaugeTvlUsd float64) float64 {
	base := 0.0
	if positive(baseApy) {
		base = baseApy
	}
	return base + VelodromePoolApr(rewardRatePerSecond, rewardPriceUsd, gaugeTvlUsd)
}
