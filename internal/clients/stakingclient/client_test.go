package stakingclient

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hai-on-op/hai-staking-service/internal/types"
)

type sentTx struct {
	method string
	params []interface{}
}

// fakeContract answers view calls from a table and records transactions.
type fakeContract struct {
	calls map[string]func(params []interface{}) ([]interface{}, error)
	sent  []sentTx
	nonce uint64
}

func newFakeContract() *fakeContract {
	return &fakeContract{calls: make(map[string]func([]interface{}) ([]interface{}, error))}
}

func (f *fakeContract) returns(method string, out ...interface{}) {
	f.calls[method] = func([]interface{}) ([]interface{}, error) { return out, nil }
}

func (f *fakeContract) Call(_ *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error {
	fn, ok := f.calls[method]
	if !ok {
		return errors.New("unexpected call " + method)
	}
	out, err := fn(params)
	if err != nil {
		return err
	}
	*results = out
	return nil
}

func (f *fakeContract) Transact(_ *bind.TransactOpts, method string, params ...interface{}) (*gethtypes.Transaction, error) {
	f.sent = append(f.sent, sentTx{method: method, params: params})
	f.nonce++
	return gethtypes.NewTx(&gethtypes.LegacyTx{Nonce: f.nonce}), nil
}

var (
	tokenA = common.HexToAddress("0x000000000000000000000000000000000000000A")
	tokenB = common.HexToAddress("0x000000000000000000000000000000000000000B")
	poolA  = common.HexToAddress("0x00000000000000000000000000000000000000F1")
	poolB  = common.HexToAddress("0x00000000000000000000000000000000000000F2")
	user   = types.Address("0x00000000000000000000000000000000000000aa")
)

func wei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return v
}

func newTestClient(t *testing.T, manager *fakeContract, status uint64) *Client {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer, err := signerFromKey(key, big.NewInt(10))
	require.NoError(t, err)

	pools := map[common.Address]*fakeContract{}
	return &Client{
		manager:     manager,
		distributor: newFakeContract(),
		bindPool: func(addr common.Address) contract {
			if p, ok := pools[addr]; ok {
				return p
			}
			p := newFakeContract()
			p.returns("rewardRate", wei("500000000000000000"))
			pools[addr] = p
			return p
		},
		waitMined: func(ctx context.Context, tx *gethtypes.Transaction) (*gethtypes.Receipt, error) {
			return &gethtypes.Receipt{Status: status, TxHash: tx.Hash(), BlockNumber: big.NewInt(1)}, nil
		},
		signer: signer,
	}
}

func withRewardTypes(m *fakeContract) {
	m.returns("rewardTypesCount", big.NewInt(3))
	m.calls["rewardTypes"] = func(params []interface{}) ([]interface{}, error) {
		switch params[0].(*big.Int).Int64() {
		case 0:
			return []interface{}{tokenA, poolA, true, big.NewInt(0)}, nil
		case 1:
			return []interface{}{tokenB, poolB, false, big.NewInt(0)}, nil
		default:
			return []interface{}{tokenA, poolB, true, big.NewInt(0)}, nil
		}
	}
}

func TestClient_Reads(t *testing.T) {
	ctx := context.Background()
	m := newFakeContract()
	m.returns("totalStaked", wei("100000000000000000000"))
	m.returns("stakedBalances", wei("1500000000000000000"))
	m.returns("cooldownPeriod", big.NewInt(1_814_400))
	m.returns("pendingWithdrawals", wei("250000000000000000"), big.NewInt(1_700_000_000))
	c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)

	total, err := c.GetTotalStaked(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", total)

	balance, err := c.GetStakedBalance(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "1.5", balance)

	cooldown, err := c.GetCooldownPeriod(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1_814_400), cooldown)

	pending, err := c.GetPendingWithdrawal(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, &types.PendingWithdrawal{Amount: "0.25", Timestamp: 1_700_000_000}, pending)

	m.returns("pendingWithdrawals", big.NewInt(0), big.NewInt(0))
	pending, err = c.GetPendingWithdrawal(ctx, user)
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestClient_ReadFailurePropagates(t *testing.T) {
	m := newFakeContract()
	rpcErr := errors.New("connection refused")
	m.calls["totalStaked"] = func([]interface{}) ([]interface{}, error) { return nil, rpcErr }
	c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)

	_, err := c.GetTotalStaked(context.Background())
	require.ErrorIs(t, err, rpcErr)
}

func TestClient_GetRewardRatesSkipsInactive(t *testing.T) {
	m := newFakeContract()
	withRewardTypes(m)
	c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)

	rates, err := c.GetRewardRates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, uint64(0), rates[0].ID)
	assert.Equal(t, uint64(2), rates[1].ID)
	assert.Equal(t, types.AddressFromCommon(tokenA), rates[0].TokenAddress)
	assert.Equal(t, "0.5", rates[0].Rate)
}

func TestClient_GetUserRewards(t *testing.T) {
	m := newFakeContract()
	withRewardTypes(m)
	m.returns("earned", []EarnedData{
		{RewardToken: tokenA, RewardAmount: wei("1000000000000000000")},
		{RewardToken: tokenB, RewardAmount: wei("9000000000000000000")},
		{RewardToken: tokenA, RewardAmount: wei("500000000000000000")},
	})
	c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)

	rewards, err := c.GetUserRewards(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, []types.RewardAmount{
		{TokenAddress: types.AddressFromCommon(tokenA), Amount: "1.5"},
	}, rewards)
}

func TestAggregateEarned(t *testing.T) {
	rewardTypes := []RewardType{
		{ID: 0, IsActive: true},
		{ID: 1, IsActive: false},
		{ID: 2, IsActive: true},
		{ID: 3, IsActive: true},
		{ID: 9, IsActive: true},
	}
	earned := []EarnedData{
		{RewardToken: tokenA, RewardAmount: wei("1")},
		{RewardToken: tokenB, RewardAmount: wei("7")},
		{RewardToken: tokenA, RewardAmount: wei("2")},
		{RewardToken: tokenB, RewardAmount: big.NewInt(0)},
	}

	got := AggregateEarned(rewardTypes, earned)
	require.Len(t, got, 1)
	assert.Equal(t, types.AddressFromCommon(tokenA), got[0].TokenAddress)
	assert.Equal(t, "0.000000000000000003", got[0].Amount)

	assert.Empty(t, AggregateEarned(nil, earned))
}

func TestClient_GetAccount(t *testing.T) {
	m := newFakeContract()
	withRewardTypes(m)
	m.returns("stakedBalances", wei("3000000000000000000"))
	m.returns("cooldownPeriod", big.NewInt(60))
	m.returns("pendingWithdrawals", big.NewInt(0), big.NewInt(0))
	m.returns("earned", []EarnedData{
		{RewardToken: tokenA, RewardAmount: wei("2000000000000000000")},
		{RewardToken: tokenB, RewardAmount: big.NewInt(0)},
		{RewardToken: tokenA, RewardAmount: big.NewInt(0)},
	})
	c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)

	state, err := c.GetAccount(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "3", state.StakedBalance)
	assert.Nil(t, state.PendingWithdrawal)
	assert.Equal(t, int64(60), state.CooldownSeconds)
	assert.Equal(t, []types.RewardAmount{{TokenAddress: types.AddressFromCommon(tokenA), Amount: "2"}}, state.Rewards)
}

func TestClient_Writes(t *testing.T) {
	ctx := context.Background()
	m := newFakeContract()
	c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)

	_, err := c.Stake(ctx, "2")
	require.NoError(t, err)
	_, err = c.InitiateWithdrawal(ctx, "0.5")
	require.NoError(t, err)
	_, err = c.Withdraw(ctx)
	require.NoError(t, err)
	_, err = c.CancelWithdrawal(ctx)
	require.NoError(t, err)
	_, err = c.ClaimRewards(ctx)
	require.NoError(t, err)

	require.Len(t, m.sent, 5)
	assert.Equal(t, "stake", m.sent[0].method)
	assert.Equal(t, wei("2000000000000000000"), m.sent[0].params[0])
	assert.Equal(t, "initiateWithdrawal", m.sent[1].method)
	assert.Equal(t, wei("500000000000000000"), m.sent[1].params[0])
	assert.Equal(t, "withdraw", m.sent[2].method)
	assert.Equal(t, "cancelWithdrawal", m.sent[3].method)
	assert.Equal(t, "getReward", m.sent[4].method)
	assert.Equal(t, c.signer.From, m.sent[4].params[0])

	signer, err := c.SignerAddress()
	require.NoError(t, err)
	assert.Equal(t, types.AddressFromCommon(c.signer.From), signer)
}

func TestClient_WriteErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing signer", func(t *testing.T) {
		m := newFakeContract()
		c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)
		c.signer = nil

		_, err := c.Stake(ctx, "1")
		require.ErrorIs(t, err, ErrMissingSigner)
		_, err = c.ClaimRewards(ctx)
		require.ErrorIs(t, err, ErrMissingSigner)
		_, err = c.SignerAddress()
		require.ErrorIs(t, err, ErrMissingSigner)
		assert.Empty(t, m.sent)
	})

	t.Run("reverted", func(t *testing.T) {
		c := newTestClient(t, newFakeContract(), gethtypes.ReceiptStatusFailed)
		receipt, err := c.Withdraw(ctx)
		require.ErrorIs(t, err, ErrTxReverted)
		require.NotNil(t, receipt)
	})

	t.Run("caller cancelled while waiting to be mined", func(t *testing.T) {
		m := newFakeContract()
		c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)
		c.mineTimeout = time.Second

		callerCtx, cancel := context.WithCancel(ctx)
		c.waitMined = func(ctx context.Context, tx *gethtypes.Transaction) (*gethtypes.Receipt, error) {
			cancel()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(20 * time.Millisecond):
				return &gethtypes.Receipt{Status: gethtypes.ReceiptStatusSuccessful, TxHash: tx.Hash()}, nil
			}
		}

		receipt, err := c.Stake(callerCtx, "1")
		require.NoError(t, err)
		require.NotNil(t, receipt)
		assert.Len(t, m.sent, 1)
	})

	t.Run("receipt not obtained within mine timeout", func(t *testing.T) {
		m := newFakeContract()
		c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)
		c.mineTimeout = 10 * time.Millisecond
		c.waitMined = func(ctx context.Context, tx *gethtypes.Transaction) (*gethtypes.Receipt, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}

		receipt, err := c.Stake(ctx, "1")
		require.ErrorIs(t, err, ErrTxUnconfirmed)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Nil(t, receipt)
		assert.Len(t, m.sent, 1)
	})

	t.Run("invalid amount", func(t *testing.T) {
		m := newFakeContract()
		c := newTestClient(t, m, gethtypes.ReceiptStatusSuccessful)
		_, err := c.Stake(ctx, "abc")
		require.Error(t, err)
		assert.Empty(t, m.sent)
	})
}

func TestClient_Distributor(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, newFakeContract(), gethtypes.ReceiptStatusSuccessful)
	dist := c.distributor.(*fakeContract)
	root := common.HexToHash("0x01")

	dist.calls["isClaimed"] = func(params []interface{}) ([]interface{}, error) {
		assert.Equal(t, [32]byte(root), params[0])
		assert.Equal(t, user.Common(), params[1])
		return []interface{}{true}, nil
	}
	claimed, err := c.IsClaimed(ctx, root, user)
	require.NoError(t, err)
	assert.True(t, claimed)

	proof := []common.Hash{common.HexToHash("0x02")}
	_, err = c.Claim(ctx, types.AddressFromCommon(tokenA), big.NewInt(5), proof)
	require.NoError(t, err)

	_, err = c.ClaimMultiple(ctx, []types.Address{types.AddressFromCommon(tokenA)}, []*big.Int{big.NewInt(5)}, [][]common.Hash{proof})
	require.NoError(t, err)
	require.Len(t, dist.sent, 2)
	assert.Equal(t, "claim", dist.sent[0].method)
	assert.Equal(t, [][32]byte{proof[0]}, dist.sent[0].params[2])
	assert.Equal(t, "claimMultiple", dist.sent[1].method)
	assert.Equal(t, []common.Address{tokenA}, dist.sent[1].params[0])

	_, err = c.ClaimMultiple(ctx, []types.Address{types.AddressFromCommon(tokenA)}, nil, nil)
	require.Error(t, err)

	c.distributor = nil
	_, err = c.IsClaimed(ctx, root, user)
	require.Error(t, err)
}
