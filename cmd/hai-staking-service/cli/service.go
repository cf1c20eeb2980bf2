package cli

import (
	"context"
	"fmt"

	"github.com/hai-on-op/hai-staking-service/internal/clients/claimsclient"
	"github.com/hai-on-op/hai-staking-service/internal/clients/stakingclient"
	"github.com/hai-on-op/hai-staking-service/internal/clients/subgraphclient"
	"github.com/hai-on-op/hai-staking-service/internal/config"
	"github.com/hai-on-op/hai-staking-service/internal/querycache"
	"github.com/hai-on-op/hai-staking-service/internal/services"
)

// newService dials the chain and wires every client into a Service.
func newService(ctx context.Context, cfg *config.Config) (*services.Service, error) {
	stakingClient, err := stakingclient.Dial(ctx, &cfg.Chain)
	if err != nil {
		return nil, fmt.Errorf("error while creating staking client: %w", err)
	}

	var distributor stakingclient.Distributor
	if cfg.Chain.RewardDistributor != "" {
		distributor = stakingclient.NewDistributorWithMetrics(stakingClient)
	}

	var claims claimsclient.ClaimsInterface
	if cfg.Claims != nil {
		claims = claimsclient.NewClient(cfg.Claims)
	}

	return services.NewService(
		cfg,
		querycache.New(cfg.Cache.StaleTime),
		stakingclient.NewReaderWithMetrics(stakingClient),
		stakingclient.NewWriterWithMetrics(stakingClient),
		distributor,
		claims,
		subgraphclient.NewClient(&cfg.Subgraph),
	), nil
}
