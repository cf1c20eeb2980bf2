package merkle

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hai-on-op/hai-staking-service/internal/types"
)

// Build produces a standard-v1 dump for the given entitlements. Leaves are
// sorted by hash and stored right-to-left at the end of the node array.
func Build(entitlements map[types.Address]*big.Int) (Dump, error) {
	if len(entitlements) == 0 {
		return Dump{}, fmt.Errorf("%w: no leaves", ErrInvalidTree)
	}

	type hashedLeaf struct {
		account types.Address
		amount  *big.Int
		hash    common.Hash
	}
	leaves := make([]hashedLeaf, 0, len(entitlements))
	for account, amount := range entitlements {
		h, err := LeafHash(account, amount)
		if err != nil {
			return Dump{}, err
		}
		leaves = append(leaves, hashedLeaf{account: account, amount: amount, hash: h})
	}
	sort.Slice(leaves, func(i, j int) bool {
		return bytes.Compare(leaves[i].hash.Bytes(), leaves[j].hash.Bytes()) < 0
	})

	size := 2*len(leaves) - 1
	nodes := make([]common.Hash, size)
	values := make([]DumpValue, len(leaves))
	for i, l := range leaves {
		idx := size - 1 - i
		nodes[idx] = l.hash
		values[i] = DumpValue{Value: []string{l.account.String(), l.amount.String()}, TreeIndex: idx}
	}
	for i := size - 1 - len(leaves); i >= 0; i-- {
		nodes[i] = hashPair(nodes[2*i+1], nodes[2*i+2])
	}

	tree := make([]string, size)
	for i, n := range nodes {
		tree[i] = n.Hex()
	}
	return Dump{
		Format:       standardFormat,
		Tree:         tree,
		Values:       values,
		LeafEncoding: []string{"address", "uint256"},
	}, nil
}
