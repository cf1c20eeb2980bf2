package stakingclient

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/hai-on-op/hai-staking-service/internal/types"
)

// StakingReader reads staking manager state. Amounts leave as decimal
// strings. Failures are returned as is, without retries.
//
//go:generate mockery --name=StakingReader --output=../../../tests/mocks --outpkg=mocks --filename=mock_staking_reader.go
type StakingReader interface {
	GetTotalStaked(ctx context.Context) (string, error)
	GetStakedBalance(ctx context.Context, user types.Address) (string, error)
	GetCooldownPeriod(ctx context.Context) (int64, error)
	// GetPendingWithdrawal returns nil when the account has nothing pending.
	GetPendingWithdrawal(ctx context.Context, user types.Address) (*types.PendingWithdrawal, error)
	GetRewardRates(ctx context.Context) ([]types.RewardRate, error)
	GetUserRewards(ctx context.Context, user types.Address) ([]types.RewardAmount, error)
	GetAccount(ctx context.Context, user types.Address) (*types.StakedAccountState, error)
}

// StakingWriter submits staking transactions from the configured signer and
// blocks until they are mined.
//
//go:generate mockery --name=StakingWriter --output=../../../tests/mocks --outpkg=mocks --filename=mock_staking_writer.go
type StakingWriter interface {
	SignerAddress() (types.Address, error)
	Stake(ctx context.Context, amount string) (*gethtypes.Receipt, error)
	InitiateWithdrawal(ctx context.Context, amount string) (*gethtypes.Receipt, error)
	Withdraw(ctx context.Context) (*gethtypes.Receipt, error)
	CancelWithdrawal(ctx context.Context) (*gethtypes.Receipt, error)
	ClaimRewards(ctx context.Context) (*gethtypes.Receipt, error)
}

// Distributor talks to the Merkle reward distributor.
//
//go:generate mockery --name=Distributor --output=../../../tests/mocks --outpkg=mocks --filename=mock_distributor.go
type Distributor interface {
	IsClaimed(ctx context.Context, root common.Hash, account types.Address) (bool, error)
	Claim(ctx context.Context, token types.Address, amount *big.Int, proof []common.Hash) (*gethtypes.Receipt, error)
	ClaimMultiple(ctx context.Context, tokens []types.Address, amounts []*big.Int, proofs [][]common.Hash) (*gethtypes.Receipt, error)
}
