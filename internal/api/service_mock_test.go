package api

import (
	"context"

	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/hai-on-op/hai-staking-service/internal/services"
	"github.com/hai-on-op/hai-staking-service/internal/types"
)

type mockService struct {
	mock.Mock
}

func receiptOf(args mock.Arguments) (*gethtypes.Receipt, error) {
	r, _ := args.Get(0).(*gethtypes.Receipt)
	return r, args.Error(1)
}

func (m *mockService) GetStats(ctx context.Context) (*types.StakingStats, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(*types.StakingStats)
	return v, args.Error(1)
}

func (m *mockService) GetAccount(ctx context.Context, account types.Address) (*types.StakedAccountState, error) {
	args := m.Called(ctx, account)
	v, _ := args.Get(0).(*types.StakedAccountState)
	return v, args.Error(1)
}

func (m *mockService) BuildSummary(
	ctx context.Context, account types.Address, stake, unstake string,
) (*services.StakingSummary, error) {
	args := m.Called(ctx, account, stake, unstake)
	v, _ := args.Get(0).(*services.StakingSummary)
	return v, args.Error(1)
}

func (m *mockService) GetApr(ctx context.Context, account types.Address) (*services.AprSummary, error) {
	args := m.Called(ctx, account)
	v, _ := args.Get(0).(*services.AprSummary)
	return v, args.Error(1)
}

func (m *mockService) Stake(ctx context.Context, amt string) (*gethtypes.Receipt, error) {
	return receiptOf(m.Called(ctx, amt))
}

func (m *mockService) InitiateWithdrawal(ctx context.Context, amt string) (*gethtypes.Receipt, error) {
	return receiptOf(m.Called(ctx, amt))
}

func (m *mockService) Withdraw(ctx context.Context) (*gethtypes.Receipt, error) {
	return receiptOf(m.Called(ctx))
}

func (m *mockService) CancelWithdrawal(ctx context.Context) (*gethtypes.Receipt, error) {
	return receiptOf(m.Called(ctx))
}

func (m *mockService) ClaimRewards(ctx context.Context) (*gethtypes.Receipt, error) {
	return receiptOf(m.Called(ctx))
}

func (m *mockService) GetClaimData(ctx context.Context, account types.Address) ([]services.IncentiveClaim, error) {
	args := m.Called(ctx, account)
	v, _ := args.Get(0).([]services.IncentiveClaim)
	return v, args.Error(1)
}

func (m *mockService) Claim(ctx context.Context, symbol string) (*gethtypes.Receipt, error) {
	return receiptOf(m.Called(ctx, symbol))
}

func (m *mockService) ClaimAll(ctx context.Context) (*gethtypes.Receipt, error) {
	return receiptOf(m.Called(ctx))
}
