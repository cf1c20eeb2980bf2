package stakingclient

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sourcegraph/conc/pool"

	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

// EarnedData is one entry of the earned() batch, indexed by reward type id.
type EarnedData struct {
	RewardToken  common.Address `json:"rewardToken"`
	RewardAmount *big.Int       `json:"rewardAmount"`
}

// RewardType mirrors the rewardTypes(id) getter of the staking manager.
type RewardType struct {
	ID             uint64
	RewardToken    common.Address
	RewardPool     common.Address
	IsActive       bool
	RewardIntegral *big.Int
}

func (c *Client) GetTotalStaked(ctx context.Context) (string, error) {
	v, err := c.callBigInt(ctx, c.manager, "totalStaked")
	if err != nil {
		return "", err
	}
	return amount.FromWei(v), nil
}

func (c *Client) GetStakedBalance(ctx context.Context, user types.Address) (string, error) {
	v, err := c.callBigInt(ctx, c.manager, "stakedBalances", user.Common())
	if err != nil {
		return "", err
	}
	return amount.FromWei(v), nil
}

func (c *Client) GetCooldownPeriod(ctx context.Context) (int64, error) {
	v, err := c.callBigInt(ctx, c.manager, "cooldownPeriod")
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, fmt.Errorf("cooldown period %s overflows int64", v)
	}
	return v.Int64(), nil
}

func (c *Client) GetPendingWithdrawal(ctx context.Context, user types.Address) (*types.PendingWithdrawal, error) {
	out, err := c.call(ctx, c.manager, "pendingWithdrawals", user.Common())
	if err != nil {
		return nil, err
	}
	amt, err := bigIntAt(out, 0, "pendingWithdrawals")
	if err != nil {
		return nil, err
	}
	ts, err := bigIntAt(out, 1, "pendingWithdrawals")
	if err != nil {
		return nil, err
	}
	if amt.Sign() == 0 {
		return nil, nil
	}
	return &types.PendingWithdrawal{
		Amount:    amount.FromWei(amt),
		Timestamp: ts.Int64(),
	}, nil
}

// GetRewardTypes reads every reward type registered on the staking manager.
func (c *Client) GetRewardTypes(ctx context.Context) ([]RewardType, error) {
	count, err := c.callBigInt(ctx, c.manager, "rewardTypesCount")
	if err != nil {
		return nil, err
	}
	if !count.IsUint64() {
		return nil, fmt.Errorf("reward types count %s overflows uint64", count)
	}

	n := count.Uint64()
	rewardTypes := make([]RewardType, 0, n)
	for id := uint64(0); id < n; id++ {
		out, err := c.call(ctx, c.manager, "rewardTypes", new(big.Int).SetUint64(id))
		if err != nil {
			return nil, err
		}
		rt, err := unpackRewardType(id, out)
		if err != nil {
			return nil, err
		}
		rewardTypes = append(rewardTypes, rt)
	}
	return rewardTypes, nil
}

func unpackRewardType(id uint64, out []interface{}) (RewardType, error) {
	if len(out) != 4 {
		return RewardType{}, fmt.Errorf("rewardTypes(%d) returned %d values, expected 4", id, len(out))
	}
	token, ok1 := out[0].(common.Address)
	poolAddr, ok2 := out[1].(common.Address)
	active, ok3 := out[2].(bool)
	integral, ok4 := out[3].(*big.Int)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return RewardType{}, fmt.Errorf("rewardTypes(%d) returned unexpected types", id)
	}
	return RewardType{
		ID:             id,
		RewardToken:    token,
		RewardPool:     poolAddr,
		IsActive:       active,
		RewardIntegral: integral,
	}, nil
}

func (c *Client) GetRewardRates(ctx context.Context) ([]types.RewardRate, error) {
	rewardTypes, err := c.GetRewardTypes(ctx)
	if err != nil {
		return nil, err
	}

	rates := make([]types.RewardRate, 0, len(rewardTypes))
	for _, rt := range rewardTypes {
		if !rt.IsActive {
			continue
		}
		rate, err := c.callBigInt(ctx, c.bindPool(rt.RewardPool), "rewardRate")
		if err != nil {
			return nil, fmt.Errorf("reward pool %s: %w", rt.RewardPool.Hex(), err)
		}
		rates = append(rates, types.RewardRate{
			ID:           rt.ID,
			TokenAddress: types.AddressFromCommon(rt.RewardToken),
			Rate:         amount.FromWei(rate),
		})
	}
	return rates, nil
}

func (c *Client) GetUserRewards(ctx context.Context, user types.Address) ([]types.RewardAmount, error) {
	rewardTypes, err := c.GetRewardTypes(ctx)
	if err != nil {
		return nil, err
	}

	out, err := c.call(ctx, c.manager, "earned", user.Common())
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("earned returned %d values, expected 1", len(out))
	}
	earned, ok := abi.ConvertType(out[0], new([]EarnedData)).(*[]EarnedData)
	if !ok {
		return nil, fmt.Errorf("earned returned unexpected type %T", out[0])
	}

	return AggregateEarned(rewardTypes, *earned), nil
}

// AggregateEarned sums earned amounts of active reward types per lower-cased
// token address. earned is indexed by reward type id. Tokens that sum to zero
// are dropped. Output order follows the first appearance of each token.
func AggregateEarned(rewardTypes []RewardType, earned []EarnedData) []types.RewardAmount {
	totals := make(map[types.Address]*big.Int)
	var order []types.Address

	for _, rt := range rewardTypes {
		if !rt.IsActive || rt.ID >= uint64(len(earned)) {
			continue
		}
		e := earned[rt.ID]
		if e.RewardAmount == nil {
			continue
		}
		token := types.AddressFromCommon(e.RewardToken)
		sum, ok := totals[token]
		if !ok {
			sum = new(big.Int)
			totals[token] = sum
			order = append(order, token)
		}
		sum.Add(sum, e.RewardAmount)
	}

	rewards := make([]types.RewardAmount, 0, len(order))
	for _, token := range order {
		if totals[token].Sign() <= 0 {
			continue
		}
		rewards = append(rewards, types.RewardAmount{
			TokenAddress: token,
			Amount:       amount.FromWei(totals[token]),
		})
	}
	return rewards
}

// GetAccount reads everything cached per account concurrently.
func (c *Client) GetAccount(ctx context.Context, user types.Address) (*types.StakedAccountState, error) {
	state := &types.StakedAccountState{}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		balance, err := c.GetStakedBalance(ctx, user)
		state.StakedBalance = balance
		return err
	})
	p.Go(func(ctx context.Context) error {
		pending, err := c.GetPendingWithdrawal(ctx, user)
		state.PendingWithdrawal = pending
		return err
	})
	p.Go(func(ctx context.Context) error {
		rewards, err := c.GetUserRewards(ctx, user)
		state.Rewards = rewards
		return err
	})
	p.Go(func(ctx context.Context) error {
		cooldown, err := c.GetCooldownPeriod(ctx)
		state.CooldownSeconds = cooldown
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("failed to read account %s: %w", user, err)
	}

	return state, nil
}
