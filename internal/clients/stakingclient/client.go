package stakingclient

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/config"
)

var (
	// ErrMissingSigner is returned by every write when no signer is configured.
	ErrMissingSigner = errors.New("no transaction signer configured")
	// ErrTxReverted is returned when a mined transaction has a failed status.
	ErrTxReverted = errors.New("transaction reverted")
	// ErrTxUnconfirmed is returned when a transaction was sent but its receipt
	// could not be obtained. The transaction may still be mined.
	ErrTxUnconfirmed = errors.New("transaction sent but not confirmed")
)

// contract is the subset of *bind.BoundContract used by the client.
type contract interface {
	Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*gethtypes.Transaction, error)
}

type waitMinedFunc func(ctx context.Context, tx *gethtypes.Transaction) (*gethtypes.Receipt, error)

type Client struct {
	manager     contract
	distributor contract
	bindPool    func(addr common.Address) contract
	waitMined   waitMinedFunc
	signer      *bind.TransactOpts
	timeout     time.Duration
	mineTimeout time.Duration
}

// Dial connects to the configured RPC node and binds the staking contracts.
// A signer is only built when the signer key environment variable is set.
func Dial(ctx context.Context, cfg *config.ChainConfig) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc %s: %w", cfg.RPCURL, err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if chainID.Int64() != cfg.ChainID {
		return nil, fmt.Errorf("rpc chain id %s does not match configured %d", chainID, cfg.ChainID)
	}

	managerABI, err := abi.JSON(strings.NewReader(stakingManagerABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse staking manager abi: %w", err)
	}
	poolABI, err := abi.JSON(strings.NewReader(rewardPoolABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse reward pool abi: %w", err)
	}

	c := &Client{
		manager: bind.NewBoundContract(common.HexToAddress(cfg.StakingManager), managerABI, eth, eth, eth),
		bindPool: func(addr common.Address) contract {
			return bind.NewBoundContract(addr, poolABI, eth, eth, eth)
		},
		waitMined: func(ctx context.Context, tx *gethtypes.Transaction) (*gethtypes.Receipt, error) {
			return bind.WaitMined(ctx, eth, tx)
		},
		timeout:     cfg.Timeout,
		mineTimeout: cfg.MineTimeout,
	}

	if cfg.RewardDistributor != "" {
		distABI, err := abi.JSON(strings.NewReader(distributorABI))
		if err != nil {
			return nil, fmt.Errorf("failed to parse distributor abi: %w", err)
		}
		c.distributor = bind.NewBoundContract(common.HexToAddress(cfg.RewardDistributor), distABI, eth, eth, eth)
	}

	if key := cfg.SignerKey(); key != "" {
		c.signer, err = newSigner(key, chainID)
		if err != nil {
			return nil, err
		}
		log.Info().Str("signer", c.signer.From.Hex()).Msg("transaction signer configured")
	} else {
		log.Warn().Msg("no signer key configured, staking client is read-only")
	}

	return c, nil
}

func newSigner(hexKey string, chainID *big.Int) (*bind.TransactOpts, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid signer key: %w", err)
	}
	return signerFromKey(key, chainID)
}

func signerFromKey(key *ecdsa.PrivateKey, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	return opts, nil
}

func (c *Client) callOpts(ctx context.Context) (*bind.CallOpts, context.CancelFunc) {
	if c.timeout <= 0 {
		return &bind.CallOpts{Context: ctx}, func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	return &bind.CallOpts{Context: ctx}, cancel
}

// call invokes a view method and returns its unpacked outputs.
func (c *Client) call(ctx context.Context, target contract, method string, params ...interface{}) ([]interface{}, error) {
	opts, cancel := c.callOpts(ctx)
	defer cancel()

	var out []interface{}
	if err := target.Call(opts, &out, method, params...); err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	return out, nil
}

func (c *Client) callBigInt(ctx context.Context, target contract, method string, params ...interface{}) (*big.Int, error) {
	out, err := c.call(ctx, target, method, params...)
	if err != nil {
		return nil, err
	}
	return bigIntAt(out, 0, method)
}

func bigIntAt(out []interface{}, i int, method string) (*big.Int, error) {
	if len(out) <= i {
		return nil, fmt.Errorf("%s returned %d values, expected more than %d", method, len(out), i)
	}
	v, ok := out[i].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s returned %T at %d, expected *big.Int", method, out[i], i)
	}
	return v, nil
}
