package services

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hai-on-op/hai-staking-service/internal/merkle"
	"github.com/hai-on-op/hai-staking-service/internal/types"
)

func buildDump(t *testing.T, entitlements map[types.Address]*big.Int) (merkle.Dump, *merkle.Tree) {
	t.Helper()
	dump, err := merkle.Build(entitlements)
	require.NoError(t, err)
	tree, err := merkle.Load(dump)
	require.NoError(t, err)
	return dump, tree
}

func fiveKite() *big.Int {
	v, _ := new(big.Int).SetString("5000000000000000000", 10)
	return v
}

func TestGetClaimData(t *testing.T) {
	ctx := context.Background()
	d := newTestService(t)

	kiteDump, kiteTree := buildDump(t, map[types.Address]*big.Int{
		testUser:  fiveKite(),
		otherUser: big.NewInt(1),
	})
	opDump, _ := buildDump(t, map[types.Address]*big.Int{otherUser: big.NewInt(7)})

	d.claims.On("GetDistributions", mock.Anything).
		Return(map[string]merkle.Dump{"KITE": kiteDump, "OP": opDump}, nil)
	d.distributor.On("IsClaimed", mock.Anything, kiteTree.Root(), testUser).Return(false, nil)

	claims, err := d.svc.GetClaimData(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, claims, 2)

	kite := claims[0]
	assert.Equal(t, "KITE", kite.Symbol)
	assert.Equal(t, types.Address(kiteAddr), kite.Token)
	assert.Equal(t, "5", kite.Amount)
	assert.Equal(t, "5000000000000000000", kite.AmountWei)
	assert.True(t, kite.HasClaimable)
	assert.False(t, kite.IsClaimed)

	leaf, err := merkle.LeafHash(testUser, fiveKite())
	require.NoError(t, err)
	assert.True(t, merkle.Verify(kite.Root, leaf, kite.Proof))

	op := claims[1]
	assert.Equal(t, "OP", op.Symbol)
	assert.Equal(t, "0", op.Amount)
	assert.False(t, op.HasClaimable)
}

func TestGetClaimData_AlreadyClaimed(t *testing.T) {
	d := newTestService(t)
	kiteDump, kiteTree := buildDump(t, map[types.Address]*big.Int{testUser: fiveKite()})

	d.claims.On("GetDistributions", mock.Anything).Return(map[string]merkle.Dump{"KITE": kiteDump}, nil)
	d.distributor.On("IsClaimed", mock.Anything, kiteTree.Root(), testUser).Return(true, nil)

	claims, err := d.svc.GetClaimData(context.Background(), testUser)
	require.NoError(t, err)
	assert.True(t, claims[0].IsClaimed)
	assert.False(t, claims[0].HasClaimable)
}

func TestGetClaimData_BlobUnavailable(t *testing.T) {
	d := newTestService(t)
	d.claims.On("GetDistributions", mock.Anything).Return(nil, errors.New("502 bad gateway"))

	claims, err := d.svc.GetClaimData(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestGetClaimData_OnChainFailurePropagates(t *testing.T) {
	d := newTestService(t)
	kiteDump, _ := buildDump(t, map[types.Address]*big.Int{testUser: fiveKite()})
	rpcErr := errors.New("rpc down")

	d.claims.On("GetDistributions", mock.Anything).Return(map[string]merkle.Dump{"KITE": kiteDump}, nil)
	d.distributor.On("IsClaimed", mock.Anything, mock.Anything, testUser).Return(false, rpcErr)

	_, err := d.svc.GetClaimData(context.Background(), testUser)
	require.ErrorIs(t, err, rpcErr)
}

func TestClaimAll(t *testing.T) {
	ctx := context.Background()

	t.Run("claims every claimable token at once", func(t *testing.T) {
		d := newTestService(t)
		kiteDump, kiteTree := buildDump(t, map[types.Address]*big.Int{testUser: fiveKite(), otherUser: big.NewInt(3)})
		opDump, opTree := buildDump(t, map[types.Address]*big.Int{testUser: big.NewInt(9), otherUser: big.NewInt(3)})
		kiteProof, err := kiteTree.Proof(testUser)
		require.NoError(t, err)
		opProof, err := opTree.Proof(testUser)
		require.NoError(t, err)

		d.writer.On("SignerAddress").Return(testUser, nil)
		d.claims.On("GetDistributions", mock.Anything).
			Return(map[string]merkle.Dump{"KITE": kiteDump, "OP": opDump}, nil)
		d.distributor.On("IsClaimed", mock.Anything, mock.Anything, testUser).Return(false, nil)
		d.distributor.On("ClaimMultiple", mock.Anything,
			[]types.Address{kiteAddr, opAddr},
			[]*big.Int{fiveKite(), big.NewInt(9)},
			[][]common.Hash{kiteProof, opProof},
		).Return(&gethtypes.Receipt{Status: gethtypes.ReceiptStatusSuccessful}, nil)

		receipt, err := d.svc.ClaimAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, receipt)
	})

	t.Run("nothing claimable", func(t *testing.T) {
		d := newTestService(t)
		d.writer.On("SignerAddress").Return(testUser, nil)
		d.claims.On("GetDistributions", mock.Anything).Return(map[string]merkle.Dump{}, nil)

		_, err := d.svc.ClaimAll(ctx)
		require.ErrorIs(t, err, ErrNothingToClaim)
	})
}

func TestClaim_SingleToken(t *testing.T) {
	ctx := context.Background()
	d := newTestService(t)
	kiteDump, kiteTree := buildDump(t, map[types.Address]*big.Int{testUser: fiveKite()})
	proof, err := kiteTree.Proof(testUser)
	require.NoError(t, err)

	d.writer.On("SignerAddress").Return(testUser, nil)
	d.claims.On("GetDistributions", mock.Anything).Return(map[string]merkle.Dump{"KITE": kiteDump}, nil)
	d.distributor.On("IsClaimed", mock.Anything, kiteTree.Root(), testUser).Return(false, nil)
	d.distributor.On("Claim", mock.Anything, types.Address(kiteAddr), fiveKite(), proof).
		Return(&gethtypes.Receipt{Status: gethtypes.ReceiptStatusSuccessful}, nil).Once()

	_, err = d.svc.Claim(ctx, "kite")
	require.NoError(t, err)

	_, err = d.svc.Claim(ctx, "OP")
	require.ErrorIs(t, err, ErrNothingToClaim)
}
