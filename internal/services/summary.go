package services

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/boost"
	"github.com/hai-on-op/hai-staking-service/internal/clients/subgraphclient"
	"github.com/hai-on-op/hai-staking-service/internal/rewards"
	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

const (
	stakingTokenSymbol = "KITE"
	haiSymbol          = "HAI"
	haiVeloSymbol      = "HAIVELO"
)

type RewardSummary struct {
	TokenAddress types.Address `json:"tokenAddress"`
	Amount       string        `json:"amount"`
	ValueUsd     string        `json:"valueUsd"`
}

type BoostSummary struct {
	boost.NetResult
	NetBoostFormatted string `json:"netBoostFormatted"`
}

type SimulatedValues struct {
	TotalStakedAfterTx string  `json:"totalStakedAfterTx"`
	StakedAfterTx      string  `json:"stakedAfterTx"`
	SharePctAfterTx    string  `json:"sharePctAfterTx"`
	NetBoostAfterTx    float64 `json:"netBoostAfterTx"`
	NetBoostFormatted  string  `json:"netBoostFormatted"`
}

// StakingSummary is the display-ready staking view of one account.
type StakingSummary struct {
	Account              types.Address            `json:"account"`
	StakedBalance        string                   `json:"stakedBalance"`
	EffectiveBalance     string                   `json:"effectiveBalance"`
	StakedFormatted      string                   `json:"stakedFormatted"`
	StakedValueUsd       string                   `json:"stakedValueUsd"`
	TotalStaked          string                   `json:"totalStaked"`
	TotalStakedFormatted string                   `json:"totalStakedFormatted"`
	TotalStakedUsd       string                   `json:"totalStakedUsd"`
	SharePct             string                   `json:"sharePct"`
	PendingWithdrawal    *types.PendingWithdrawal `json:"pendingWithdrawal"`
	CooldownSeconds      int64                    `json:"cooldownSeconds"`
	WithdrawableAt       int64                    `json:"withdrawableAt,omitempty"`
	Rewards              []RewardSummary          `json:"rewards"`
	TotalRewardsUsd      string                   `json:"totalRewardsUsd"`
	Boost                BoostSummary             `json:"boost"`
	StakingAprPct        string                   `json:"stakingAprPct"`
	BoostedAprPct        string                   `json:"boostedAprPct"`
	Simulation           *SimulatedValues         `json:"simulation,omitempty"`

	// inputs kept for CalculateSimulatedValues
	effective   float64
	totalStaked float64
	boostInput  boost.NetInput
}

// BuildSummary merges cached staking state, boost inputs and prices into a
// StakingSummary. stake and unstake, when non-empty, add a simulation of that
// hypothetical transaction. Off-chain inputs that fail to load count as zero.
func (s *Service) BuildSummary(ctx context.Context, account types.Address, stake, unstake string) (*StakingSummary, error) {
	state, err := s.GetAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	stats, err := s.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := s.reader.GetRewardRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward rates: %w", err)
	}

	prices, symbolPrices := s.tokenPrices(ctx)
	inputs := s.boostInputs(ctx, account)

	summary := newSummary(account, state, stats, rates, prices, symbolPrices[stakingTokenSymbol], inputs)
	if stake != "" || unstake != "" {
		sim, err := summary.CalculateSimulatedValues(stake, unstake)
		if err != nil {
			return nil, err
		}
		summary.Simulation = sim
	}
	return summary, nil
}

func newSummary(
	account types.Address,
	state *types.StakedAccountState,
	stats *types.StakingStats,
	rates []types.RewardRate,
	prices rewards.Prices,
	kitePrice float64,
	inputs subgraphclient.BoostInputs,
) *StakingSummary {
	effective := effectiveBalance(state)
	effectiveF := amount.ToFloat(effective)
	totalF := amount.ToFloat(stats.TotalStaked)

	boostInput := boost.NetInput{
		UserStakingAmount:       effectiveF,
		TotalStakingAmount:      totalF,
		UserHaiVeloDeposited:    inputs.UserHaiVeloDeposited,
		TotalHaiVeloDeposited:   inputs.TotalHaiVeloDeposited,
		HaiVeloPositionValue:    inputs.HaiVeloPositionValueUsd,
		UserDebt:                inputs.UserDebt,
		TotalDebt:               inputs.TotalDebt,
		HaiMintingPositionValue: inputs.MintingPositionValueUsd,
	}
	net := boost.CalculateNetBoost(boostInput)

	rewardSummaries := make([]RewardSummary, 0, len(state.Rewards))
	for _, r := range state.Rewards {
		rewardSummaries = append(rewardSummaries, RewardSummary{
			TokenAddress: r.TokenAddress,
			Amount:       r.Amount,
			ValueUsd:     formatUsd(amount.ToFloat(r.Amount) * prices.Of(r.TokenAddress)),
		})
	}

	baseApr := rewards.StakingApr(rates, prices, totalF, kitePrice)

	summary := &StakingSummary{
		Account:              account,
		StakedBalance:        state.StakedBalance,
		EffectiveBalance:     effective,
		StakedFormatted:      formatAmount(effectiveF),
		StakedValueUsd:       formatUsd(effectiveF * kitePrice),
		TotalStaked:          stats.TotalStaked,
		TotalStakedFormatted: formatAmount(totalF),
		TotalStakedUsd:       formatUsd(totalF * kitePrice),
		SharePct:             formatPct(sharePct(effectiveF, totalF)),
		PendingWithdrawal:    state.PendingWithdrawal,
		CooldownSeconds:      state.CooldownSeconds,
		Rewards:              rewardSummaries,
		TotalRewardsUsd:      formatUsd(rewards.AggregateRewardsUsd(state.Rewards, prices)),
		Boost:                BoostSummary{NetResult: net, NetBoostFormatted: formatBoost(net.NetBoost)},
		StakingAprPct:        formatPct(baseApr * 100),
		BoostedAprPct:        formatPct(rewards.UserApr(baseApr, net.NetBoost) * 100),
		effective:            effectiveF,
		totalStaked:          totalF,
		boostInput:           boostInput,
	}
	if state.PendingWithdrawal != nil {
		summary.WithdrawableAt = state.PendingWithdrawal.Timestamp + state.CooldownSeconds
	}
	return summary
}

// CalculateSimulatedValues projects the account after a simultaneous stake
// and unstake of the given decimal amounts. Empty amounts count as zero.
func (sum *StakingSummary) CalculateSimulatedValues(stake, unstake string) (*SimulatedValues, error) {
	stakeF, err := simulationAmount(stake)
	if err != nil {
		return nil, err
	}
	unstakeF, err := simulationAmount(unstake)
	if err != nil {
		return nil, err
	}

	totalAfter := math.Max(sum.totalStaked+stakeF-unstakeF, 0)
	stakedAfter := math.Max(sum.effective+stakeF-unstakeF, 0)
	net := boost.SimulateNetBoost(sum.boostInput, stakeF, unstakeF)

	return &SimulatedValues{
		TotalStakedAfterTx: formatAmount(totalAfter),
		StakedAfterTx:      formatAmount(stakedAfter),
		SharePctAfterTx:    formatPct(sharePct(stakedAfter, totalAfter)),
		NetBoostAfterTx:    net.NetBoost,
		NetBoostFormatted:  formatBoost(net.NetBoost),
	}, nil
}

func simulationAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := amount.Parse(s)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative simulation amount %q", amount.ErrInvalidAmount, s)
	}
	return amount.ToFloat(amount.Format(d)), nil
}

// effectiveBalance is the staked balance minus any pending withdrawal,
// floored at zero.
func effectiveBalance(state *types.StakedAccountState) string {
	if state.PendingWithdrawal == nil {
		return amount.Format(amount.ParseOrZero(state.StakedBalance))
	}
	v, err := amount.ClampSub(state.StakedBalance, state.PendingWithdrawal.Amount)
	if err != nil {
		return "0"
	}
	return v
}

// tokenPrices returns USD prices keyed by token address and by symbol.
func (s *Service) tokenPrices(ctx context.Context) (rewards.Prices, map[string]float64) {
	symbolPrices, err := s.subgraph.GetPrices(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("token prices unavailable")
		return rewards.Prices{}, map[string]float64{}
	}

	prices := rewards.Prices{}
	if s.cfg.Chain.StakingToken != "" {
		prices[types.NewAddress(s.cfg.Chain.StakingToken)] = symbolPrices[stakingTokenSymbol]
	}
	if s.cfg.Claims != nil {
		for symbol, addr := range s.cfg.Claims.TokenSymbols() {
			if p, ok := symbolPrices[symbol]; ok {
				prices[types.NewAddress(addr)] = p
			}
		}
	}
	return prices, symbolPrices
}

func (s *Service) boostInputs(ctx context.Context, account types.Address) subgraphclient.BoostInputs {
	inputs, err := s.subgraph.GetBoostInputs(ctx, account)
	if err != nil || inputs == nil {
		log.Ctx(ctx).Warn().Err(err).Str("account", account.String()).Msg("boost inputs unavailable")
		return subgraphclient.BoostInputs{}
	}
	return *inputs
}

func sharePct(user, total float64) float64 {
	if total <= 0 || user <= 0 {
		return 0
	}
	return user / total * 100
}

func formatAmount(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func formatUsd(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return "$" + humanize.CommafWithDigits(v, 2)
}

func formatPct(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return humanize.CommafWithDigits(v, 2) + "%"
}

func formatBoost(v float64) string {
	return humanize.CommafWithDigits(v, 2) + "x"
}
