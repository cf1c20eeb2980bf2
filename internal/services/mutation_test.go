package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hai-on-op/hai-staking-service/internal/clients/stakingclient"
	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

var errReverted = errors.New("execution reverted")

func TestStake_OptimisticUpdateThenRollback(t *testing.T) {
	d := newTestService(t)
	d.seed(&types.StakedAccountState{StakedBalance: "1"}, &types.StakingStats{TotalStaked: "100"})

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("Stake", mock.Anything, "2").
		Run(func(args mock.Arguments) {
			// the optimistic values are visible before the transaction resolves
			assert.Equal(t, "3", d.cachedAccount(t).StakedBalance)
			assert.Nil(t, d.cachedAccount(t).PendingWithdrawal)
			assert.Equal(t, "102", d.cachedStats(t).TotalStaked)
		}).
		Return(nil, errReverted)

	_, err := d.svc.Stake(context.Background(), "2")
	require.ErrorIs(t, err, errReverted)

	assert.Equal(t, &types.StakedAccountState{StakedBalance: "1"}, d.cachedAccount(t))
	assert.Equal(t, &types.StakingStats{TotalStaked: "100"}, d.cachedStats(t))
}

func TestStake_SuccessInvalidatesEntries(t *testing.T) {
	ctx := context.Background()
	d := newTestService(t)
	d.seed(&types.StakedAccountState{StakedBalance: "1"}, &types.StakingStats{TotalStaked: "100"})

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("Stake", mock.Anything, "2").Return(&gethtypes.Receipt{Status: gethtypes.ReceiptStatusSuccessful}, nil)

	receipt, err := d.svc.Stake(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, receipt)

	// stale entries are reloaded from chain on the next read
	d.reader.On("GetAccount", mock.Anything, testUser).
		Return(&types.StakedAccountState{StakedBalance: "3.0001"}, nil).Once()
	d.reader.On("GetTotalStaked", mock.Anything).Return("102.5", nil).Once()

	state, err := d.svc.GetAccount(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "3.0001", state.StakedBalance)

	stats, err := d.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "102.5", stats.TotalStaked)
}

func TestInitiateWithdrawal_Optimistic(t *testing.T) {
	d := newTestService(t)
	d.seed(&types.StakedAccountState{StakedBalance: "5"}, &types.StakingStats{TotalStaked: "100"})

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("InitiateWithdrawal", mock.Anything, "2").
		Run(func(args mock.Arguments) {
			state := d.cachedAccount(t)
			assert.Equal(t, "3", state.StakedBalance)
			assert.Equal(t, &types.PendingWithdrawal{Amount: "2", Timestamp: 1_700_000_000}, state.PendingWithdrawal)
			assert.Equal(t, "98", d.cachedStats(t).TotalStaked)
		}).
		Return(nil, errReverted)

	_, err := d.svc.InitiateWithdrawal(context.Background(), "2")
	require.ErrorIs(t, err, errReverted)
	assert.Equal(t, "5", d.cachedAccount(t).StakedBalance)
	assert.Nil(t, d.cachedAccount(t).PendingWithdrawal)
}

func TestWithdraw_RefetchesPendingWithdrawalAndAccount(t *testing.T) {
	d := newTestService(t)
	d.seed(&types.StakedAccountState{
		StakedBalance:     "3",
		PendingWithdrawal: &types.PendingWithdrawal{Amount: "2", Timestamp: 1},
	}, &types.StakingStats{TotalStaked: "98"})

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("Withdraw", mock.Anything).
		Run(func(args mock.Arguments) {
			assert.Nil(t, d.cachedAccount(t).PendingWithdrawal)
			assert.Equal(t, "3", d.cachedAccount(t).StakedBalance)
			assert.Equal(t, "98", d.cachedStats(t).TotalStaked)
		}).
		Return(&gethtypes.Receipt{Status: gethtypes.ReceiptStatusSuccessful}, nil)

	d.reader.On("GetPendingWithdrawal", mock.Anything, testUser).
		Return(nil, nil).Once()
	d.reader.On("GetAccount", mock.Anything, testUser).
		Return(&types.StakedAccountState{StakedBalance: "3"}, nil).Once()

	_, err := d.svc.Withdraw(context.Background())
	require.NoError(t, err)

	// both refetches happened without any read
	d.reader.AssertNumberOfCalls(t, "GetPendingWithdrawal", 1)
	d.reader.AssertNumberOfCalls(t, "GetAccount", 1)
	assert.Equal(t, &types.StakedAccountState{StakedBalance: "3"}, d.cachedAccount(t))
}

func TestCancelWithdrawal_Optimistic(t *testing.T) {
	d := newTestService(t)
	d.seed(&types.StakedAccountState{
		StakedBalance:     "3",
		PendingWithdrawal: &types.PendingWithdrawal{Amount: "2", Timestamp: 1},
	}, &types.StakingStats{TotalStaked: "98"})

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("CancelWithdrawal", mock.Anything).
		Run(func(args mock.Arguments) {
			assert.Equal(t, "5", d.cachedAccount(t).StakedBalance)
			assert.Nil(t, d.cachedAccount(t).PendingWithdrawal)
			assert.Equal(t, "100", d.cachedStats(t).TotalStaked)
		}).
		Return(nil, errReverted)

	_, err := d.svc.CancelWithdrawal(context.Background())
	require.ErrorIs(t, err, errReverted)
	assert.Equal(t, "3", d.cachedAccount(t).StakedBalance)
	assert.NotNil(t, d.cachedAccount(t).PendingWithdrawal)
	assert.Equal(t, "98", d.cachedStats(t).TotalStaked)
}

func TestClaimRewards_ClearsRewards(t *testing.T) {
	d := newTestService(t)
	rewards := []types.RewardAmount{{TokenAddress: kiteAddr, Amount: "4"}}
	d.seed(&types.StakedAccountState{StakedBalance: "3", Rewards: rewards}, &types.StakingStats{TotalStaked: "98"})

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("ClaimRewards", mock.Anything).
		Run(func(args mock.Arguments) {
			assert.Empty(t, d.cachedAccount(t).Rewards)
			assert.NotNil(t, d.cachedAccount(t).Rewards)
		}).
		Return(nil, errReverted)

	_, err := d.svc.ClaimRewards(context.Background())
	require.ErrorIs(t, err, errReverted)
	assert.Equal(t, rewards, d.cachedAccount(t).Rewards)
}

func TestMutation_RejectedBeforeNetwork(t *testing.T) {
	ctx := context.Background()

	t.Run("missing signer", func(t *testing.T) {
		d := newTestService(t)
		d.writer.On("SignerAddress").Return(types.Address(""), stakingclient.ErrMissingSigner)

		_, err := d.svc.Stake(ctx, "1")
		require.ErrorIs(t, err, stakingclient.ErrMissingSigner)
		d.writer.AssertNotCalled(t, "Stake", mock.Anything, mock.Anything)
	})

	t.Run("non positive amount", func(t *testing.T) {
		d := newTestService(t)
		d.writer.On("SignerAddress").Return(testUser, nil)

		_, err := d.svc.Stake(ctx, "0")
		require.ErrorIs(t, err, amount.ErrInvalidAmount)
		_, err = d.svc.InitiateWithdrawal(ctx, "-1")
		require.ErrorIs(t, err, amount.ErrInvalidAmount)
	})
}

func TestMutation_ColdCacheSkipsOptimisticPhase(t *testing.T) {
	d := newTestService(t)
	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("Stake", mock.Anything, "1").Return(nil, errReverted)

	_, err := d.svc.Stake(context.Background(), "1")
	require.ErrorIs(t, err, errReverted)
	assert.Nil(t, d.cachedAccount(t))
	assert.Nil(t, d.cachedStats(t))
}

func TestMutation_RollbackKeepsForeignStatsWrite(t *testing.T) {
	ctx := context.Background()
	d := newTestService(t)
	d.seed(&types.StakedAccountState{StakedBalance: "1"}, &types.StakingStats{TotalStaked: "100"})

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("Stake", mock.Anything, "2").
		Run(func(args mock.Arguments) {
			// another account's optimistic write lands on the shared stats entry
			d.svc.cache.Set(d.svc.statsKey(), &types.StakingStats{TotalStaked: "110"})
		}).
		Return(nil, errReverted)

	_, err := d.svc.Stake(ctx, "2")
	require.ErrorIs(t, err, errReverted)
	assert.Equal(t, "110", d.cachedStats(t).TotalStaked)

	// the entry is stale and converges on the next read
	d.reader.On("GetTotalStaked", mock.Anything).Return("108", nil).Once()
	stats, err := d.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "108", stats.TotalStaked)
}

func TestOptimisticAccount_InitiateClampsAtBalance(t *testing.T) {
	prev := &types.StakedAccountState{StakedBalance: "1"}
	next, delta, err := optimisticAccount(types.MutationInitiateWithdrawal, prev, "3", 42)
	require.NoError(t, err)
	assert.Equal(t, "0", next.StakedBalance)
	assert.Equal(t, "1", next.PendingWithdrawal.Amount)
	assert.Equal(t, "-1", amount.Format(delta))
	// snapshot is untouched
	assert.Equal(t, "1", prev.StakedBalance)
	assert.Nil(t, prev.PendingWithdrawal)
}

func TestStake_PollerTickKeepsOptimisticStats(t *testing.T) {
	ctx := context.Background()
	d := newTestService(t)
	d.seed(&types.StakedAccountState{StakedBalance: "1"}, &types.StakingStats{TotalStaked: "100"})

	// chain still reports the pre-transaction total while the stake is pending
	d.reader.On("GetTotalStaked", mock.Anything).Return("100", nil).Once()

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("Stake", mock.Anything, "2").
		Run(func(args mock.Arguments) {
			require.NoError(t, d.svc.refreshStats(ctx))
			assert.Equal(t, "102", d.cachedStats(t).TotalStaked)
		}).
		Return(&gethtypes.Receipt{Status: gethtypes.ReceiptStatusSuccessful}, nil)

	_, err := d.svc.Stake(ctx, "2")
	require.NoError(t, err)
	d.reader.AssertNumberOfCalls(t, "GetTotalStaked", 1)

	// once mined, the next read loads the new total
	d.reader.On("GetTotalStaked", mock.Anything).Return("102", nil).Once()
	stats, err := d.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "102", stats.TotalStaked)
}

func TestStake_UnconfirmedInvalidatesEntries(t *testing.T) {
	d := newTestService(t)
	d.seed(&types.StakedAccountState{StakedBalance: "1"}, &types.StakingStats{TotalStaked: "100"})

	ctx, cancel := context.WithCancel(context.Background())
	unconfirmed := fmt.Errorf("%w: stake 0xabc: %w", stakingclient.ErrTxUnconfirmed, context.Canceled)

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.writer.On("Stake", mock.Anything, "2").
		Run(func(args mock.Arguments) { cancel() }).
		Return(nil, unconfirmed)

	_, err := d.svc.Stake(ctx, "2")
	require.ErrorIs(t, err, stakingclient.ErrTxUnconfirmed)

	// neither the snapshot nor the optimistic value is served, chain state is
	d.reader.On("GetAccount", mock.Anything, testUser).
		Return(&types.StakedAccountState{StakedBalance: "3"}, nil).Once()
	d.reader.On("GetTotalStaked", mock.Anything).Return("102", nil).Once()

	state, err := d.svc.GetAccount(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, "3", state.StakedBalance)

	stats, err := d.svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "102", stats.TotalStaked)
}
