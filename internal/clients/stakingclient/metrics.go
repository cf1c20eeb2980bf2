package stakingclient

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/hai-on-op/hai-staking-service/internal/observability/metrics"
	"github.com/hai-on-op/hai-staking-service/internal/types"
)

type readerWithMetrics struct {
	reader StakingReader
}

func NewReaderWithMetrics(reader StakingReader) StakingReader {
	return &readerWithMetrics{reader: reader}
}

func (r *readerWithMetrics) GetTotalStaked(ctx context.Context) (string, error) {
	return runStakingClientMethodWithMetrics("GetTotalStaked", func() (string, error) {
		return r.reader.GetTotalStaked(ctx)
	})
}

func (r *readerWithMetrics) GetStakedBalance(ctx context.Context, user types.Address) (string, error) {
	return runStakingClientMethodWithMetrics("GetStakedBalance", func() (string, error) {
		return r.reader.GetStakedBalance(ctx, user)
	})
}

func (r *readerWithMetrics) GetCooldownPeriod(ctx context.Context) (int64, error) {
	return runStakingClientMethodWithMetrics("GetCooldownPeriod", func() (int64, error) {
		return r.reader.GetCooldownPeriod(ctx)
	})
}

func (r *readerWithMetrics) GetPendingWithdrawal(ctx context.Context, user types.Address) (*types.PendingWithdrawal, error) {
	return runStakingClientMethodWithMetrics("GetPendingWithdrawal", func() (*types.PendingWithdrawal, error) {
		return r.reader.GetPendingWithdrawal(ctx, user)
	})
}

func (r *readerWithMetrics) GetRewardRates(ctx context.Context) ([]types.RewardRate, error) {
	return runStakingClientMethodWithMetrics("GetRewardRates", func() ([]types.RewardRate, error) {
		return r.reader.GetRewardRates(ctx)
	})
}

func (r *readerWithMetrics) GetUserRewards(ctx context.Context, user types.Address) ([]types.RewardAmount, error) {
	return runStakingClientMethodWithMetrics("GetUserRewards", func() ([]types.RewardAmount, error) {
		return r.reader.GetUserRewards(ctx, user)
	})
}

func (r *readerWithMetrics) GetAccount(ctx context.Context, user types.Address) (*types.StakedAccountState, error) {
	return runStakingClientMethodWithMetrics("GetAccount", func() (*types.StakedAccountState, error) {
		return r.reader.GetAccount(ctx, user)
	})
}

type writerWithMetrics struct {
	writer StakingWriter
}

func NewWriterWithMetrics(writer StakingWriter) StakingWriter {
	return &writerWithMetrics{writer: writer}
}

func (w *writerWithMetrics) SignerAddress() (types.Address, error) {
	return w.writer.SignerAddress()
}

func (w *writerWithMetrics) Stake(ctx context.Context, amount string) (*gethtypes.Receipt, error) {
	return runStakingClientMethodWithMetrics("Stake", func() (*gethtypes.Receipt, error) {
		return w.writer.Stake(ctx, amount)
	})
}

func (w *writerWithMetrics) InitiateWithdrawal(ctx context.Context, amount string) (*gethtypes.Receipt, error) {
	return runStakingClientMethodWithMetrics("InitiateWithdrawal", func() (*gethtypes.Receipt, error) {
		return w.writer.InitiateWithdrawal(ctx, amount)
	})
}

func (w *writerWithMetrics) Withdraw(ctx context.Context) (*gethtypes.Receipt, error) {
	return runStakingClientMethodWithMetrics("Withdraw", func() (*gethtypes.Receipt, error) {
		return w.writer.Withdraw(ctx)
	})
}

func (w *writerWithMetrics) CancelWithdrawal(ctx context.Context) (*gethtypes.Receipt, error) {
	return runStakingClientMethodWithMetrics("CancelWithdrawal", func() (*gethtypes.Receipt, error) {
		return w.writer.CancelWithdrawal(ctx)
	})
}

func (w *writerWithMetrics) ClaimRewards(ctx context.Context) (*gethtypes.Receipt, error) {
	return runStakingClientMethodWithMetrics("ClaimRewards", func() (*gethtypes.Receipt, error) {
		return w.writer.ClaimRewards(ctx)
	})
}

type distributorWithMetrics struct {
	distributor Distributor
}

func NewDistributorWithMetrics(distributor Distributor) Distributor {
	return &distributorWithMetrics{distributor: distributor}
}

func (d *distributorWithMetrics) IsClaimed(ctx context.Context, root common.Hash, account types.Address) (bool, error) {
	return runStakingClientMethodWithMetrics("IsClaimed", func() (bool, error) {
		return d.distributor.IsClaimed(ctx, root, account)
	})
}

func (d *distributorWithMetrics) Claim(ctx context.Context, token types.Address, amount *big.Int, proof []common.Hash) (*gethtypes.Receipt, error) {
	return runStakingClientMethodWithMetrics("Claim", func() (*gethtypes.Receipt, error) {
		return d.distributor.Claim(ctx, token, amount, proof)
	})
}

func (d *distributorWithMetrics) ClaimMultiple(ctx context.Context, tokens []types.Address, amounts []*big.Int, proofs [][]common.Hash) (*gethtypes.Receipt, error) {
	return runStakingClientMethodWithMetrics("ClaimMultiple", func() (*gethtypes.Receipt, error) {
		return d.distributor.ClaimMultiple(ctx, tokens, amounts, proofs)
	})
}

func runStakingClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordStakingClientLatency(duration, method, err != nil)
	return v, err
}
