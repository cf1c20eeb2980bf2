package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/observability/metrics"
	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/internal/utils/poller"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

// StartStatsPoller warms the stats cache entry and keeps it fresh.
func (s *Service) StartStatsPoller(ctx context.Context) *poller.Poller {
	statsPoller := poller.NewPoller(
		"stats",
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("stats", s.refreshStats),
		poller.WithRunOnStart(),
	)
	go statsPoller.Start(ctx)
	return statsPoller
}

// refreshStats refetches total staked and records it as a gauge.
func (s *Service) refreshStats(ctx context.Context) error {
	v, err := s.cache.Refetch(ctx, s.statsKey())
	if err != nil {
		return fmt.Errorf("failed to refresh staking stats: %w", err)
	}
	stats, ok := v.(*types.StakingStats)
	if !ok {
		return fmt.Errorf("unexpected stats type %T", v)
	}

	metrics.RecordTotalStaked(amount.ToFloat(stats.TotalStaked))
	log.Ctx(ctx).Debug().Str("total_staked", stats.TotalStaked).Msg("refreshed staking stats")
	return nil
}
