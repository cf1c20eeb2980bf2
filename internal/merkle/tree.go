// Package merkle reads standard Merkle tree exports (format "standard-v1") of
// (address, uint256) leaves and produces and verifies inclusion proofs.
package merkle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hai-on-op/hai-staking-service/internal/types"
)

const standardFormat = "standard-v1"

var (
	ErrInvalidTree  = errors.New("invalid merkle tree")
	ErrLeafNotFound = errors.New("leaf not found")
)

var leafArguments = func() abi.Arguments {
	addressType, err := abi.NewType("address", "", nil)
	if err != nil {
		panic(err)
	}
	uintType, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: addressType}, {Type: uintType}}
}()

// Dump is the JSON export of a tree.
type Dump struct {
	Format       string      `json:"format"`
	Tree         []string    `json:"tree"`
	Values       []DumpValue `json:"values"`
	LeafEncoding []string    `json:"leafEncoding"`
}

type DumpValue struct {
	Value     []string `json:"value"`
	TreeIndex int      `json:"treeIndex"`
}

// Leaf is one (account, amount) entitlement.
type Leaf struct {
	Account   types.Address
	Amount    *big.Int
	TreeIndex int
}

// Tree is a loaded, validated tree.
type Tree struct {
	nodes  []common.Hash
	leaves map[types.Address]Leaf
}

// Load validates a dump and indexes its leaves by account.
func Load(d Dump) (*Tree, error) {
	if d.Format != "" && d.Format != standardFormat {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidTree, d.Format)
	}
	if len(d.Tree) == 0 {
		return nil, fmt.Errorf("%w: empty tree", ErrInvalidTree)
	}

	nodes := make([]common.Hash, len(d.Tree))
	for i, h := range d.Tree {
		b := common.FromHex(h)
		if len(b) != common.HashLength {
			return nil, fmt.Errorf("%w: node %d is not a 32 byte hash", ErrInvalidTree, i)
		}
		nodes[i] = common.BytesToHash(b)
	}

	t := &Tree{nodes: nodes, leaves: make(map[types.Address]Leaf, len(d.Values))}
	for _, v := range d.Values {
		if len(v.Value) != 2 {
			return nil, fmt.Errorf("%w: leaf at %d has %d fields", ErrInvalidTree, v.TreeIndex, len(v.Value))
		}
		if v.TreeIndex < 0 || v.TreeIndex >= len(nodes) {
			return nil, fmt.Errorf("%w: leaf index %d out of range", ErrInvalidTree, v.TreeIndex)
		}
		account, err := types.ParseAddress(v.Value[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTree, err)
		}
		amount, ok := new(big.Int).SetString(v.Value[1], 0)
		if !ok || amount.Sign() < 0 {
			return nil, fmt.Errorf("%w: bad amount %q", ErrInvalidTree, v.Value[1])
		}
		leaf := Leaf{Account: account, Amount: amount, TreeIndex: v.TreeIndex}
		hash, err := LeafHash(leaf.Account, leaf.Amount)
		if err != nil {
			return nil, err
		}
		if hash != nodes[v.TreeIndex] {
			return nil, fmt.Errorf("%w: leaf hash mismatch at %d", ErrInvalidTree, v.TreeIndex)
		}
		t.leaves[account] = leaf
	}

	return t, nil
}

// Parse decodes and loads a JSON dump.
func Parse(raw []byte) (*Tree, error) {
	var d Dump
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTree, err)
	}
	return Load(d)
}

func (t *Tree) Root() common.Hash {
	return t.nodes[0]
}

// Leaf returns the entitlement of account, if any.
func (t *Tree) Leaf(account types.Address) (Leaf, bool) {
	l, ok := t.leaves[types.NewAddress(string(account))]
	return l, ok
}

// Proof returns the sibling path from account's leaf to the root.
func (t *Tree) Proof(account types.Address) ([]common.Hash, error) {
	leaf, ok := t.Leaf(account)
	if !ok {
		return nil, ErrLeafNotFound
	}

	var proof []common.Hash
	for i := leaf.TreeIndex; i > 0; i = (i - 1) / 2 {
		sibling := i - 1
		if i%2 == 1 {
			sibling = i + 1
		}
		if sibling >= len(t.nodes) {
			return nil, fmt.Errorf("%w: missing sibling of node %d", ErrInvalidTree, i)
		}
		proof = append(proof, t.nodes[sibling])
	}
	return proof, nil
}

// LeafHash is keccak256(keccak256(abi.encode(account, amount))).
func LeafHash(account types.Address, amount *big.Int) (common.Hash, error) {
	encoded, err := leafArguments.Pack(account.Common(), amount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encode leaf: %w", err)
	}
	return crypto.Keccak256Hash(crypto.Keccak256(encoded)), nil
}

// Verify folds proof over leaf with sorted-pair hashing and compares to root.
func Verify(root, leaf common.Hash, proof []common.Hash) bool {
	computed := leaf
	for _, p := range proof {
		computed = hashPair(computed, p)
	}
	return computed == root
}

func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash(a.Bytes(), b.Bytes())
}
