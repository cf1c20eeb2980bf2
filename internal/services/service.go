package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hai-on-op/hai-staking-service/internal/clients/claimsclient"
	"github.com/hai-on-op/hai-staking-service/internal/clients/stakingclient"
	"github.com/hai-on-op/hai-staking-service/internal/clients/subgraphclient"
	"github.com/hai-on-op/hai-staking-service/internal/config"
	"github.com/hai-on-op/hai-staking-service/internal/querycache"
	"github.com/hai-on-op/hai-staking-service/internal/types"
)

type Service struct {
	cfg         *config.Config
	cache       *querycache.Cache
	reader      stakingclient.StakingReader
	writer      stakingclient.StakingWriter
	distributor stakingclient.Distributor
	claims      claimsclient.ClaimsInterface
	subgraph    subgraphclient.SubgraphInterface
	namespace   string
	now         func() time.Time
}

// NewService wires the service and registers the cache fetchers of the
// staking namespace. distributor and claims may be nil, in which case
// incentive claims are reported empty.
func NewService(
	cfg *config.Config,
	cache *querycache.Cache,
	reader stakingclient.StakingReader,
	writer stakingclient.StakingWriter,
	distributor stakingclient.Distributor,
	claims claimsclient.ClaimsInterface,
	subgraph subgraphclient.SubgraphInterface,
) *Service {
	s := &Service{
		cfg:         cfg,
		cache:       cache,
		reader:      reader,
		writer:      writer,
		distributor: distributor,
		claims:      claims,
		subgraph:    subgraph,
		namespace:   cfg.Cache.Namespace,
		now:         time.Now,
	}

	cache.Register(s.namespace, s.fetchStakingQuery)
	cache.Register(querycache.PendingWithdrawalKey(s.namespace, "").Namespace, s.fetchPendingWithdrawal)

	return s
}

func (s *Service) fetchStakingQuery(ctx context.Context, key querycache.Key) (any, error) {
	if key == querycache.StatsKey(s.namespace) {
		total, err := s.reader.GetTotalStaked(ctx)
		if err != nil {
			return nil, err
		}
		return &types.StakingStats{TotalStaked: total}, nil
	}

	account, err := types.ParseAddress(key.Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid account key %s: %w", key, err)
	}
	return s.reader.GetAccount(ctx, account)
}

func (s *Service) fetchPendingWithdrawal(ctx context.Context, key querycache.Key) (any, error) {
	account, err := types.ParseAddress(key.Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid account key %s: %w", key, err)
	}
	return s.reader.GetPendingWithdrawal(ctx, account)
}

func (s *Service) accountKey(account types.Address) querycache.Key {
	return querycache.AccountKey(s.namespace, account)
}

func (s *Service) pendingWithdrawalKey(account types.Address) querycache.Key {
	return querycache.PendingWithdrawalKey(s.namespace, account)
}

func (s *Service) statsKey() querycache.Key {
	return querycache.StatsKey(s.namespace)
}

// GetStats returns the cached staking stats, loading them when stale.
func (s *Service) GetStats(ctx context.Context) (*types.StakingStats, error) {
	stats, err := querycache.FetchAs[*types.StakingStats](ctx, s.cache, s.statsKey())
	if err != nil {
		return nil, fmt.Errorf("failed to get staking stats: %w", err)
	}
	return stats.Clone(), nil
}

// GetAccount returns the cached state of an account, loading it when stale.
func (s *Service) GetAccount(ctx context.Context, account types.Address) (*types.StakedAccountState, error) {
	state, err := querycache.FetchAs[*types.StakedAccountState](ctx, s.cache, s.accountKey(account))
	if err != nil {
		return nil, fmt.Errorf("failed to get staking account %s: %w", account, err)
	}
	return state.Clone(), nil
}

// GetPendingWithdrawal returns nil when nothing is pending.
func (s *Service) GetPendingWithdrawal(ctx context.Context, account types.Address) (*types.PendingWithdrawal, error) {
	pending, err := querycache.FetchAs[*types.PendingWithdrawal](ctx, s.cache, s.pendingWithdrawalKey(account))
	if err != nil {
		return nil, fmt.Errorf("failed to get pending withdrawal of %s: %w", account, err)
	}
	if pending == nil {
		return nil, nil
	}
	out := *pending
	return &out, nil
}

// SignerAddress is the account every write is sent from.
func (s *Service) SignerAddress() (types.Address, error) {
	return s.writer.SignerAddress()
}
