package stakingclient

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/hai-on-op/hai-staking-service/internal/types"
)

var errNoDistributor = errors.New("reward distributor not configured")

func (c *Client) IsClaimed(ctx context.Context, root common.Hash, account types.Address) (bool, error) {
	if c.distributor == nil {
		return false, errNoDistributor
	}
	out, err := c.call(ctx, c.distributor, "isClaimed", [32]byte(root), account.Common())
	if err != nil {
		return false, err
	}
	if len(out) != 1 {
		return false, fmt.Errorf("isClaimed returned %d values, expected 1", len(out))
	}
	claimed, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("isClaimed returned unexpected type %T", out[0])
	}
	return claimed, nil
}

func (c *Client) Claim(ctx context.Context, token types.Address, amt *big.Int, proof []common.Hash) (*gethtypes.Receipt, error) {
	if c.distributor == nil {
		return nil, errNoDistributor
	}
	return c.transact(ctx, c.distributor, "claim", token.Common(), amt, toBytes32(proof))
}

func (c *Client) ClaimMultiple(ctx context.Context, tokens []types.Address, amounts []*big.Int, proofs [][]common.Hash) (*gethtypes.Receipt, error) {
	if c.distributor == nil {
		return nil, errNoDistributor
	}
	if len(tokens) != len(amounts) || len(tokens) != len(proofs) {
		return nil, fmt.Errorf("claimMultiple: %d tokens, %d amounts, %d proofs", len(tokens), len(amounts), len(proofs))
	}

	addrs := make([]common.Address, len(tokens))
	for i, t := range tokens {
		addrs[i] = t.Common()
	}
	packed := make([][][32]byte, len(proofs))
	for i, p := range proofs {
		packed[i] = toBytes32(p)
	}
	return c.transact(ctx, c.distributor, "claimMultiple", addrs, amounts, packed)
}

func toBytes32(hashes []common.Hash) [][32]byte {
	out := make([][32]byte, len(hashes))
	for i, h := range hashes {
		out[i] = h
	}
	return out
}
