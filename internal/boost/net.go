package boost

// NetInput is everything needed to compute the combined haiVELO + vault boost.
type NetInput struct {
	UserStakingAmount  float64
	TotalStakingAmount float64

	UserHaiVeloDeposited  float64
	TotalHaiVeloDeposited float64
	HaiVeloPositionValue  float64

	UserDebt                float64
	TotalDebt               float64
	HaiMintingPositionValue float64
}

type NetResult struct {
	KiteRatio       float64 `json:"kiteRatio"`
	HaiVeloBoost    float64 `json:"haiVeloBoost"`
	HaiMintingBoost float64 `json:"haiMintingBoost"`
	NetBoost        float64 `json:"netBoost"`
}

func CalculateNetBoost(in NetInput) NetResult {
	velo := CalculateHaiVeloBoost(HaiVeloInput{
		UserStakingAmount:  in.UserStakingAmount,
		TotalStakingAmount: in.TotalStakingAmount,
		UserDeposited:      in.UserHaiVeloDeposited,
		TotalDeposited:     in.TotalHaiVeloDeposited,
	})
	vault := CalculateVaultBoost(VaultInput{
		UserStakingAmount:  in.UserStakingAmount,
		TotalStakingAmount: in.TotalStakingAmount,
		UserDebt:           in.UserDebt,
		TotalDebt:          in.TotalDebt,
	})
	combined := CombineBoostValues(CombineInput{
		HaiVeloBoost:            velo.HaiVeloBoost,
		HaiMintingBoost:         vault.HaiMintingBoost,
		HaiVeloPositionValue:    in.HaiVeloPositionValue,
		HaiMintingPositionValue: in.HaiMintingPositionValue,
	})

	return NetResult{
		KiteRatio:       velo.KiteRatio,
		HaiVeloBoost:    velo.HaiVeloBoost,
		HaiMintingBoost: vault.HaiMintingBoost,
		NetBoost:        combined.NetBoost,
	}
}

// SimulateNetBoost previews the net boost as if a stake of stakeDelta and an
// unstake of unstakeDelta had already settled. The user's hypothetical stake
// and the pool total are floored at zero.
func SimulateNetBoost(current NetInput, stakeDelta, unstakeDelta float64) NetResult {
	delta := nonNegative(stakeDelta) - nonNegative(unstakeDelta)

	simulated := current
	simulated.UserStakingAmount = nonNegative(current.UserStakingAmount + delta)
	simulated.TotalStakingAmount = nonNegative(current.TotalStakingAmount + delta)

	return CalculateNetBoost(simulated)
}
