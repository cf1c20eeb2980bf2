package subgraphclient

import (
	"context"

	"github.com/hai-on-op/hai-staking-service/internal/types"
)

//go:generate mockery --name=SubgraphInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_subgraph_client.go
type SubgraphInterface interface {
	// GetPrices returns USD prices keyed by upper-case token symbol. HAI is
	// priced at the current redemption price.
	GetPrices(ctx context.Context) (map[string]float64, error)
	GetBoostInputs(ctx context.Context, user types.Address) (*BoostInputs, error)
	GetHaiVeloParticipation(ctx context.Context) (*HaiVeloParticipation, error)
}

// BoostInputs are the secondary participation metrics of one user.
type BoostInputs struct {
	UserDebt                float64
	TotalDebt               float64
	UserHaiVeloDeposited    float64
	TotalHaiVeloDeposited   float64
	HaiVeloPositionValueUsd float64
	MintingPositionValueUsd float64
}

// HaiVeloParticipation is the input of the haiVELO boosted APR.
type HaiVeloParticipation struct {
	// Deposits maps depositor to haiVELO collateral.
	Deposits map[types.Address]float64
	// Staked maps staker to staked KITE.
	Staked map[types.Address]float64
	// LatestTransferAmount is the HAI amount of the latest weekly reward transfer.
	LatestTransferAmount float64
}
