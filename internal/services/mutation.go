package services

import (
	"context"
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/clients/stakingclient"
	"github.com/hai-on-op/hai-staking-service/internal/observability/metrics"
	"github.com/hai-on-op/hai-staking-service/internal/querycache"
	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

// ErrNoCachedState means the account or stats entry was not cached when a
// mutation started, so no optimistic value was written.
var ErrNoCachedState = errors.New("no cached staking state")

// mutationContext carries the snapshot of one mutation from its optimistic
// phase to its resolution.
type mutationContext struct {
	kind    types.MutationKind
	account types.Address
	amount  string

	prevAccount *types.StakedAccountState
	prevStats   *types.StakingStats

	// optimistic values written to the cache, nil when nothing was written
	nextAccount *types.StakedAccountState
	nextStats   *types.StakingStats

	// release ends the hold that keeps fetches from overwriting the
	// optimistic values
	release func()
}

func (mc *mutationContext) applied() bool {
	return mc.nextAccount != nil
}

func (mc *mutationContext) releaseHold() {
	if mc.release != nil {
		mc.release()
	}
}

// Stake stakes amount from the signer account.
func (s *Service) Stake(ctx context.Context, amt string) (*gethtypes.Receipt, error) {
	return s.mutate(ctx, types.MutationStake, amt, func(ctx context.Context) (*gethtypes.Receipt, error) {
		return s.writer.Stake(ctx, amt)
	})
}

// InitiateWithdrawal starts the cooldown of amount of the signer's stake.
func (s *Service) InitiateWithdrawal(ctx context.Context, amt string) (*gethtypes.Receipt, error) {
	return s.mutate(ctx, types.MutationInitiateWithdrawal, amt, func(ctx context.Context) (*gethtypes.Receipt, error) {
		return s.writer.InitiateWithdrawal(ctx, amt)
	})
}

func (s *Service) Withdraw(ctx context.Context) (*gethtypes.Receipt, error) {
	return s.mutate(ctx, types.MutationWithdraw, "", s.writer.Withdraw)
}

func (s *Service) CancelWithdrawal(ctx context.Context) (*gethtypes.Receipt, error) {
	return s.mutate(ctx, types.MutationCancelWithdrawal, "", s.writer.CancelWithdrawal)
}

func (s *Service) ClaimRewards(ctx context.Context) (*gethtypes.Receipt, error) {
	return s.mutate(ctx, types.MutationClaimRewards, "", s.writer.ClaimRewards)
}

// mutate runs one staking mutation through its three phases: optimistic
// cache write, transaction, then refetch on success or rollback on error.
// Mutations of the same account run one at a time.
func (s *Service) mutate(
	ctx context.Context,
	kind types.MutationKind,
	amt string,
	send func(ctx context.Context) (*gethtypes.Receipt, error),
) (*gethtypes.Receipt, error) {
	account, err := s.writer.SignerAddress()
	if err != nil {
		return nil, err
	}
	if kind == types.MutationStake || kind == types.MutationInitiateWithdrawal {
		if !amount.IsPositive(amt) {
			return nil, fmt.Errorf("%w: %s amount must be positive, got %q", amount.ErrInvalidAmount, kind, amt)
		}
	}

	ctx = log.Ctx(ctx).With().
		Str("mutation", kind.String()).
		Str("account", account.String()).
		Logger().WithContext(ctx)

	unlock := s.cache.Lock(s.accountKey(account))
	defer unlock()

	mc, err := s.applyOptimistic(kind, account, amt)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("skipping optimistic update")
	} else {
		log.Ctx(ctx).Debug().
			Str("staked_balance", mc.nextAccount.StakedBalance).
			Str("total_staked", mc.nextStats.TotalStaked).
			Msg("optimistic update applied")
	}

	receipt, err := send(ctx)
	mc.releaseHold()

	// a sent transaction resolves on chain whether or not the caller is
	// still waiting, so the cache is resolved regardless too
	ctx = context.WithoutCancel(ctx)

	switch {
	case err == nil:
		s.settle(ctx, mc)
		metrics.RecordMutation(kind.String(), metrics.MutationCommitted)
		return receipt, nil
	case errors.Is(err, stakingclient.ErrTxUnconfirmed):
		s.abandon(ctx, mc)
		metrics.RecordMutation(kind.String(), metrics.MutationUnconfirmed)
		return receipt, err
	default:
		s.rollback(ctx, mc)
		metrics.RecordMutation(kind.String(), metrics.MutationRolledBack)
		return receipt, err
	}
}

// applyOptimistic snapshots the account and stats entries and, when both are
// cached, writes the expected post-mutation values.
func (s *Service) applyOptimistic(kind types.MutationKind, account types.Address, amt string) (*mutationContext, error) {
	mc := &mutationContext{kind: kind, account: account, amount: amt}

	prevAccount, okAccount := querycache.GetAs[*types.StakedAccountState](s.cache, s.accountKey(account))
	prevStats, okStats := querycache.GetAs[*types.StakingStats](s.cache, s.statsKey())
	if !okAccount || !okStats || prevAccount == nil || prevStats == nil {
		return mc, ErrNoCachedState
	}
	mc.prevAccount = prevAccount
	mc.prevStats = prevStats

	nextAccount, delta, err := optimisticAccount(kind, prevAccount, amt, s.now().Unix())
	if err != nil {
		return mc, err
	}
	nextStats := prevStats.Clone()
	if !delta.IsZero() {
		nextStats.TotalStaked = amount.Format(amount.ParseOrZero(prevStats.TotalStaked).Add(delta))
	}

	mc.nextAccount = nextAccount
	mc.nextStats = nextStats
	mc.release = s.cache.Hold(s.accountKey(account), s.statsKey())
	s.cache.Set(s.accountKey(account), nextAccount)
	s.cache.Set(s.statsKey(), nextStats)

	return mc, nil
}

// optimisticAccount returns the expected account state after the mutation and
// the change of the account's staked balance, which totalStaked follows.
func optimisticAccount(
	kind types.MutationKind, prev *types.StakedAccountState, amt string, now int64,
) (*types.StakedAccountState, sdkmath.LegacyDec, error) {
	next := prev.Clone()
	balance := amount.ParseOrZero(prev.StakedBalance)
	delta := sdkmath.LegacyZeroDec()

	switch kind {
	case types.MutationStake:
		v, err := amount.Parse(amt)
		if err != nil {
			return nil, delta, err
		}
		delta = v

	case types.MutationInitiateWithdrawal:
		v, err := amount.Parse(amt)
		if err != nil {
			return nil, delta, err
		}
		// staked balance never goes below zero
		if v.GT(balance) {
			v = balance
		}
		delta = v.Neg()
		next.PendingWithdrawal = &types.PendingWithdrawal{Amount: amount.Format(v), Timestamp: now}

	case types.MutationWithdraw:
		next.PendingWithdrawal = nil

	case types.MutationCancelWithdrawal:
		if prev.PendingWithdrawal != nil {
			delta = amount.ParseOrZero(prev.PendingWithdrawal.Amount)
		}
		next.PendingWithdrawal = nil

	case types.MutationClaimRewards:
		next.Rewards = []types.RewardAmount{}

	default:
		return nil, delta, fmt.Errorf("unknown mutation kind %q", kind)
	}

	next.StakedBalance = amount.Format(balance.Add(delta))
	return next, delta, nil
}

// rollback restores the snapshot. The stats entry is shared by all accounts:
// when it no longer holds this mutation's value it is invalidated instead,
// so the next read converges on chain state.
func (s *Service) rollback(ctx context.Context, mc *mutationContext) {
	if !mc.applied() {
		return
	}

	s.cache.Set(s.accountKey(mc.account), mc.prevAccount)
	if !s.cache.CompareAndSet(s.statsKey(), mc.nextStats, mc.prevStats) {
		s.cache.Invalidate(s.statsKey())
	}

	log.Ctx(ctx).Warn().
		Str("staked_balance", mc.prevAccount.StakedBalance).
		Str("total_staked", mc.prevStats.TotalStaked).
		Msg("mutation failed, optimistic update rolled back")
}

// abandon handles a transaction whose outcome is unknown: neither the
// optimistic values nor the snapshot can be trusted, so every touched entry
// is reloaded on its next read.
func (s *Service) abandon(ctx context.Context, mc *mutationContext) {
	s.cache.Invalidate(s.accountKey(mc.account))
	s.cache.Invalidate(s.pendingWithdrawalKey(mc.account))
	s.cache.Invalidate(s.statsKey())

	log.Ctx(ctx).Warn().Msg("transaction outcome unknown, staking entries invalidated")
}

// settle marks the touched entries stale. Mutations that change the pending
// withdrawal also refetch the pending-withdrawal and account queries at once.
func (s *Service) settle(ctx context.Context, mc *mutationContext) {
	s.cache.Invalidate(s.accountKey(mc.account))
	s.cache.Invalidate(s.statsKey())

	switch mc.kind {
	case types.MutationInitiateWithdrawal, types.MutationWithdraw, types.MutationCancelWithdrawal:
		pendingKey := s.pendingWithdrawalKey(mc.account)
		s.cache.Invalidate(pendingKey)
		for _, key := range []querycache.Key{pendingKey, s.accountKey(mc.account)} {
			if _, err := s.cache.Refetch(ctx, key); err != nil {
				// the transaction is mined, a failed refetch is retried on next read
				log.Ctx(ctx).Warn().Err(err).Str("key", key.String()).Msg("failed to refetch after mutation")
			}
		}
	}

	log.Ctx(ctx).Debug().Msg("mutation settled, cache invalidated")
}
