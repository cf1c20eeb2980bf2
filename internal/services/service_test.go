package services

import (
	"testing"
	"time"

	"github.com/hai-on-op/hai-staking-service/internal/config"
	"github.com/hai-on-op/hai-staking-service/internal/querycache"
	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/tests/mocks"
)

const (
	testUser  = types.Address("0x00000000000000000000000000000000000000aa")
	otherUser = types.Address("0x00000000000000000000000000000000000000bb")
	kiteAddr  = "0x00000000000000000000000000000000000000c1"
	opAddr    = "0x00000000000000000000000000000000000000c2"
)

type testDeps struct {
	svc         *Service
	cache       *querycache.Cache
	reader      *mocks.StakingReader
	writer      *mocks.StakingWriter
	distributor *mocks.Distributor
	claims      *mocks.ClaimsInterface
	subgraph    *mocks.SubgraphInterface
}

func newTestService(t *testing.T) *testDeps {
	t.Helper()

	cfg := &config.Config{
		Chain: config.ChainConfig{StakingToken: kiteAddr},
		Claims: &config.ClaimsConfig{
			Tokens: map[string]string{"kite": kiteAddr, "op": opAddr},
		},
		Cache:  config.CacheConfig{StaleTime: time.Hour, Namespace: "staking"},
		Poller: config.PollerConfig{StatsPollingInterval: time.Hour},
	}

	d := &testDeps{
		cache:       querycache.New(cfg.Cache.StaleTime),
		reader:      mocks.NewStakingReader(t),
		writer:      mocks.NewStakingWriter(t),
		distributor: mocks.NewDistributor(t),
		claims:      mocks.NewClaimsInterface(t),
		subgraph:    mocks.NewSubgraphInterface(t),
	}
	d.svc = NewService(cfg, d.cache, d.reader, d.writer, d.distributor, d.claims, d.subgraph)
	d.svc.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return d
}

func (d *testDeps) seed(state *types.StakedAccountState, stats *types.StakingStats) {
	d.cache.Set(querycache.AccountKey("staking", testUser), state)
	d.cache.Set(querycache.StatsKey("staking"), stats)
}

func (d *testDeps) cachedAccount(t *testing.T) *types.StakedAccountState {
	t.Helper()
	v, _ := querycache.GetAs[*types.StakedAccountState](d.cache, querycache.AccountKey("staking", testUser))
	return v
}

func (d *testDeps) cachedStats(t *testing.T) *types.StakingStats {
	t.Helper()
	v, _ := querycache.GetAs[*types.StakingStats](d.cache, querycache.StatsKey("staking"))
	return v
}
