package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/boost"
	"github.com/hai-on-op/hai-staking-service/internal/rewards"
	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

type AprSummary struct {
	StakingAprPct float64                `json:"stakingAprPct"`
	MyBoost       float64                `json:"myBoost,omitempty"`
	MyAprPct      float64                `json:"myAprPct,omitempty"`
	HaiVelo       rewards.BoostAprResult `json:"haiVelo"`
}

// GetApr returns the base staking APR and the haiVELO boosted APR. When
// account is set the caller's own boosted figures are filled in.
func (s *Service) GetApr(ctx context.Context, account types.Address) (*AprSummary, error) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := s.reader.GetRewardRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward rates: %w", err)
	}
	prices, symbolPrices := s.tokenPrices(ctx)
	totalStaked := amount.ToFloat(stats.TotalStaked)

	out := &AprSummary{
		StakingAprPct: rewards.StakingApr(rates, prices, totalStaked, symbolPrices[stakingTokenSymbol]) * 100,
	}
	out.HaiVelo = s.haiVeloApr(ctx, account, totalStaked, symbolPrices)

	if account != "" {
		summary, err := s.BuildSummary(ctx, account, "", "")
		if err != nil {
			return nil, err
		}
		out.MyBoost = summary.Boost.NetBoost
		out.MyAprPct = rewards.UserApr(out.StakingAprPct, out.MyBoost)
	}
	return out, nil
}

// haiVeloApr derives every depositor's haiVELO boost from their stake and
// spreads the latest reward transfer over the boosted deposits.
func (s *Service) haiVeloApr(
	ctx context.Context, account types.Address, totalStaked float64, symbolPrices map[string]float64,
) rewards.BoostAprResult {
	participation, err := s.subgraph.GetHaiVeloParticipation(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("haiVELO participation unavailable")
		return rewards.ComputeHaiVeloBoostApr(rewards.BoostAprInput{UserAddress: account})
	}

	mapping := rewards.NewParticipation(participation.Deposits)
	staked := rewards.NewParticipation(participation.Staked)
	totalDeposited := 0.0
	for _, qty := range mapping {
		totalDeposited += qty
	}

	boostMap := make(rewards.Participation, len(mapping))
	for _, addr := range mapping.Addresses() {
		boostMap[addr] = boost.CalculateHaiVeloBoost(boost.HaiVeloInput{
			UserStakingAmount:  staked[addr],
			TotalStakingAmount: totalStaked,
			UserDeposited:      mapping[addr],
			TotalDeposited:     totalDeposited,
		}).HaiVeloBoost
	}

	return rewards.ComputeHaiVeloBoostApr(rewards.BoostAprInput{
		Mapping:              mapping,
		BoostMap:             boostMap,
		HaiVeloPriceUsd:      symbolPrices[haiVeloSymbol],
		HaiPriceUsd:          symbolPrices[haiSymbol],
		LatestTransferAmount: participation.LatestTransferAmount,
		UserAddress:          account,
	})
}
