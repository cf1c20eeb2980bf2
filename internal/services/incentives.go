package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/hai-on-op/hai-staking-service/internal/merkle"
	"github.com/hai-on-op/hai-staking-service/internal/observability/metrics"
	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

var ErrNothingToClaim = errors.New("nothing to claim")

// IncentiveClaim is the claim state of one reward token for one account.
type IncentiveClaim struct {
	Symbol       string        `json:"symbol"`
	Token        types.Address `json:"token"`
	AmountWei    string        `json:"amountWei"`
	Amount       string        `json:"amount"`
	IsClaimed    bool          `json:"isClaimed"`
	HasClaimable bool          `json:"hasClaimable"`
	Root         common.Hash   `json:"root"`
	Proof        []common.Hash `json:"proof,omitempty"`

	amountWei *big.Int
}

// GetClaimData resolves the Merkle claim of account for every configured
// reward token. An unavailable claims blob yields an empty result.
func (s *Service) GetClaimData(ctx context.Context, account types.Address) ([]IncentiveClaim, error) {
	if s.claims == nil || s.distributor == nil || s.cfg.Claims == nil {
		return []IncentiveClaim{}, nil
	}

	dists, err := s.claims.GetDistributions(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("claims distributions unavailable, reporting nothing claimable")
		metrics.IncClaimsDegraded()
		return []IncentiveClaim{}, nil
	}

	tokens := s.cfg.Claims.TokenSymbols()
	symbols := make([]string, 0, len(tokens))
	for symbol := range tokens {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	claims := make([]IncentiveClaim, len(symbols))
	p := pool.New().WithContext(ctx)
	for i, symbol := range symbols {
		claims[i] = IncentiveClaim{
			Symbol:    symbol,
			Token:     types.NewAddress(tokens[symbol]),
			AmountWei: "0",
			Amount:    "0",
			amountWei: new(big.Int),
		}

		dump, ok := dists[symbol]
		if !ok {
			continue
		}
		tree, err := merkle.Load(dump)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("symbol", symbol).Msg("invalid claims tree, skipping token")
			continue
		}
		leaf, ok := tree.Leaf(account)
		if !ok || leaf.Amount.Sign() <= 0 {
			continue
		}
		proof, err := tree.Proof(account)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s proof: %w", symbol, err)
		}

		claim := &claims[i]
		claim.Root = tree.Root()
		claim.Proof = proof
		claim.amountWei = leaf.Amount
		claim.AmountWei = leaf.Amount.String()
		claim.Amount = amount.FromWei(leaf.Amount)

		p.Go(func(ctx context.Context) error {
			claimed, err := s.distributor.IsClaimed(ctx, claim.Root, account)
			if err != nil {
				return fmt.Errorf("failed to check %s claim: %w", claim.Symbol, err)
			}
			claim.IsClaimed = claimed
			claim.HasClaimable = !claimed
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return claims, nil
}

// Claim submits the claim of one token for the signer account.
func (s *Service) Claim(ctx context.Context, symbol string) (*gethtypes.Receipt, error) {
	claimable, err := s.signerClaimables(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range claimable {
		if c.Symbol == strings.ToUpper(symbol) {
			return s.distributor.Claim(ctx, c.Token, c.amountWei, c.Proof)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNothingToClaim, symbol)
}

// ClaimAll claims every claimable token of the signer in one transaction.
func (s *Service) ClaimAll(ctx context.Context) (*gethtypes.Receipt, error) {
	claimable, err := s.signerClaimables(ctx)
	if err != nil {
		return nil, err
	}
	if len(claimable) == 0 {
		return nil, ErrNothingToClaim
	}

	tokens := make([]types.Address, len(claimable))
	amounts := make([]*big.Int, len(claimable))
	proofs := make([][]common.Hash, len(claimable))
	for i, c := range claimable {
		tokens[i] = c.Token
		amounts[i] = c.amountWei
		proofs[i] = c.Proof
	}

	log.Ctx(ctx).Info().Int("tokens", len(tokens)).Msg("claiming all incentives")
	return s.distributor.ClaimMultiple(ctx, tokens, amounts, proofs)
}

func (s *Service) signerClaimables(ctx context.Context) ([]IncentiveClaim, error) {
	account, err := s.writer.SignerAddress()
	if err != nil {
		return nil, err
	}
	claims, err := s.GetClaimData(ctx, account)
	if err != nil {
		return nil, err
	}

	var claimable []IncentiveClaim
	for _, c := range claims {
		if c.HasClaimable {
			claimable = append(claimable, c)
		}
	}
	return claimable, nil
}
