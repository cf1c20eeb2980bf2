package rewards

import (
	"sort"

	"github.com/hai-on-op/hai-staking-service/internal/types"
)

// Participation is an address-keyed table of quantities or multipliers.
// Keys are always canonical lower-case addresses.
type Participation map[types.Address]float64

// NewParticipation canonicalises raw, possibly mixed-case keys. Entries that
// collide after lower-casing are summed.
func NewParticipation[K ~string](raw map[K]float64) Participation {
	out := make(Participation, len(raw))
	for k, v := range raw {
		out[types.NewAddress(string(k))] += v
	}
	return out
}

// Addresses returns the table keys in ascending order.
func (p Participation) Addresses() []types.Address {
	keys := make([]types.Address, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// BoostOf returns the multiplier for addr, defaulting to 1x.
func (p Participation) BoostOf(addr types.Address) float64 {
	if b, ok := p[types.NewAddress(string(addr))]; ok && positive(b) {
		return b
	}
	return 1
}

type BoostAprInput struct {
	Mapping              Participation
	BoostMap             Participation
	HaiVeloPriceUsd      float64
	HaiPriceUsd          float64
	LatestTransferAmount float64
	UserAddress          types.Address
}

type BoostAprTotals struct {
	BoostedQuantity float64 `json:"boostedQuantity"`
	BoostedValueUsd float64 `json:"boostedValueUsd"`
	DailyRewardsUsd float64 `json:"dailyRewardsUsd"`
}

type BoostAprResult struct {
	Totals          BoostAprTotals `json:"totals"`
	BaseAprPct      float64        `json:"baseAprPct"`
	MyBoost         float64        `json:"myBoost"`
	MyBoostedAprPct float64        `json:"myBoostedAprPct"`
}

// ComputeHaiVeloBoostApr spreads the latest weekly reward transfer across the
// boost-weighted haiVELO deposits. The base APR annualises the daily reward
// per boosted USD; the caller's APR is the base scaled by their own boost.
func ComputeHaiVeloBoostApr(in BoostAprInput) BoostAprResult {
	boostedQty := 0.0
	for _, addr := range in.Mapping.Addresses() {
		qty := in.Mapping[addr]
		if !positive(qty) {
			continue
		}
		boostedQty += qty * in.BoostMap.BoostOf(addr)
	}

	boostedUsd := boostedQty * in.HaiVeloPriceUsd
	dailyUsd := 0.0
	if positive(in.LatestTransferAmount) && positive(in.HaiPriceUsd) {
		dailyUsd = in.LatestTransferAmount * in.HaiPriceUsd / RewardEpochDays
	}

	baseAprPct := 0.0
	if positive(boostedUsd) {
		baseAprPct = dailyUsd / boostedUsd * DaysPerYear
	}

	myBoost := in.BoostMap.BoostOf(in.UserAddress)
	return BoostAprResult{
		Totals: BoostAprTotals{
			BoostedQuantity: boostedQty,
			BoostedValueUsd: boostedUsd,
			DailyRewardsUsd: dailyUsd,
		},
		BaseAprPct:      baseAprPct,
		MyBoost:         myBoost,
		MyBoostedAprPct: baseAprPct * myBoost,
	}
}
