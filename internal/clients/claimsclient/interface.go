package claimsclient

import (
	"context"

	"github.com/hai-on-op/hai-staking-service/internal/merkle"
)

//go:generate mockery --name=ClaimsInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_claims_client.go
type ClaimsInterface interface {
	// GetDistributions returns the published Merkle tree of every reward
	// token, keyed by upper-case token symbol.
	GetDistributions(ctx context.Context) (map[string]merkle.Dump, error)
}
