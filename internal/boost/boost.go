// Package boost computes reward multipliers from a user's share of the KITE
// staking pool relative to their share of a secondary program (LP liquidity,
// haiVELO deposits or vault debt).
//
// All math is float64. Division by zero is guarded explicitly and every
// result lies in [MinBoost, MaxBoost].
package boost

import "math"

const (
	MinBoost = 1.0
	MaxBoost = 2.0
)

// Input is the generic boost input: a staking position against a secondary
// participation metric.
type Input struct {
	UserStakingAmount  float64
	TotalStakingAmount float64
	UserMetric         float64
	TotalMetric        float64
}

// Result holds the user's staking share and the resulting boost.
type Result struct {
	KiteRatio float64 `json:"kiteRatio"`
	Boost     float64 `json:"boost"`
}

// Calculate applies boost = min(kiteRatio/secondaryRatio + 1, 2).
func Calculate(in Input) Result {
	if !isFinite(in.TotalStakingAmount) || in.TotalStakingAmount == 0 ||
		!isFinite(in.UserStakingAmount) || in.UserStakingAmount <= 0 {
		return Result{KiteRatio: 0, Boost: MinBoost}
	}

	kiteRatio := in.UserStakingAmount / in.TotalStakingAmount

	secondaryRatio := 0.0
	if isFinite(in.TotalMetric) && in.TotalMetric != 0 && isFinite(in.UserMetric) {
		secondaryRatio = in.UserMetric / in.TotalMetric
	}

	raw := MinBoost
	if secondaryRatio != 0 {
		raw = kiteRatio/secondaryRatio + 1
	}

	return Result{KiteRatio: kiteRatio, Boost: clamp(raw)}
}

// LPInput weighs the KITE stake against an LP position in the HAI pool.
type LPInput struct {
	UserStakingAmount  float64
	TotalStakingAmount float64
	UserLPPosition     float64
	TotalPoolLiquidity float64
}

// LPResult is the staking share and the resulting LP boost.
type LPResult struct {
	KiteRatio float64 `json:"kiteRatio"`
	LPBoost   float64 `json:"lpBoost"`
}

// CalculateLPBoost boosts LP rewards by the stake relative to pool liquidity.
func CalculateLPBoost(in LPInput) LPResult {
	r := Calculate(Input{
		UserStakingAmount:  in.UserStakingAmount,
		TotalStakingAmount: in.TotalStakingAmount,
		UserMetric:         in.UserLPPosition,
		TotalMetric:        in.TotalPoolLiquidity,
	})
	return LPResult{KiteRatio: r.KiteRatio, LPBoost: r.Boost}
}

// HaiVeloInput weighs the KITE stake against haiVELO deposits.
type HaiVeloInput struct {
	UserStakingAmount  float64
	TotalStakingAmount float64
	UserDeposited      float64
	TotalDeposited     float64
}

// HaiVeloResult is the staking share and the resulting haiVELO boost.
type HaiVeloResult struct {
	KiteRatio    float64 `json:"kiteRatio"`
	HaiVeloBoost float64 `json:"haiVeloBoost"`
}

// CalculateHaiVeloBoost boosts haiVELO rewards by the stake relative to deposits.
func CalculateHaiVeloBoost(in HaiVeloInput) HaiVeloResult {
	r := Calculate(Input{
		UserStakingAmount:  in.UserStakingAmount,
		TotalStakingAmount: in.TotalStakingAmount,
		UserMetric:         in.UserDeposited,
		TotalMetric:        in.TotalDeposited,
	})
	return HaiVeloResult{KiteRatio: r.KiteRatio, HaiVeloBoost: r.Boost}
}

// VaultInput weighs the KITE stake against vault debt.
type VaultInput struct {
	UserStakingAmount  float64
	TotalStakingAmount float64
	UserDebt           float64
	TotalDebt          float64
}

// VaultResult is the staking share and the resulting HAI minting boost.
type VaultResult struct {
	KiteRatio       float64 `json:"kiteRatio"`
	HaiMintingBoost float64 `json:"haiMintingBoost"`
}

// CalculateVaultBoost boosts HAI minting rewards by the stake relative to debt.
func CalculateVaultBoost(in VaultInput) VaultResult {
	r := Calculate(Input{
		UserStakingAmount:  in.UserStakingAmount,
		TotalStakingAmount: in.TotalStakingAmount,
		UserMetric:         in.UserDebt,
		TotalMetric:        in.TotalDebt,
	})
	return VaultResult{KiteRatio: r.KiteRatio, HaiMintingBoost: r.Boost}
}

// CombineInput pairs two boosts with the USD value of the position each applies to.
type CombineInput struct {
	HaiVeloBoost            float64
	HaiMintingBoost         float64
	HaiVeloPositionValue    float64
	HaiMintingPositionValue float64
}

// CombineResult holds the weight given to each boost and their weighted net.
type CombineResult struct {
	HaiVeloWeight    float64 `json:"haiVeloWeight"`
	HaiMintingWeight float64 `json:"haiMintingWeight"`
	NetBoost         float64 `json:"netBoost"`
}

// CombineBoostValues returns the position-value weighted average of two
// boosts, weighting 50/50 when there is no position value at all.
func CombineBoostValues(in CombineInput) CombineResult {
	veloValue := nonNegative(in.HaiVeloPositionValue)
	mintingValue := nonNegative(in.HaiMintingPositionValue)
	total := veloValue + mintingValue

	veloWeight, mintingWeight := 0.5, 0.5
	if total > 0 {
		veloWeight = veloValue / total
		mintingWeight = mintingValue / total
	}

	net := in.HaiVeloBoost*veloWeight + in.HaiMintingBoost*mintingWeight
	return CombineResult{
		HaiVeloWeight:    veloWeight,
		HaiMintingWeight: mintingWeight,
		NetBoost:         clamp(net),
	}
}

func clamp(v float64) float64 {
	if !isFinite(v) {
		return MinBoost
	}
	return math.Max(MinBoost, math.Min(v, MaxBoost))
}

func nonNegative(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
