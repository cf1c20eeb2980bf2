package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultChainTimeout = 30 * time.Second
	defaultMineTimeout  = 5 * time.Minute
)

type ChainConfig struct {
	// RPCURL is the EVM JSON-RPC endpoint, e.g. an Optimism node.
	RPCURL            string        `mapstructure:"rpc-url"`
	ChainID           int64         `mapstructure:"chain-id"`
	StakingManager    string        `mapstructure:"staking-manager"`
	StakingToken      string        `mapstructure:"staking-token"`
	RewardDistributor string        `mapstructure:"reward-distributor"`
	// SignerKeyEnv names the environment variable holding the hex private key
	// used for transactions. Empty means the service runs read-only.
	SignerKeyEnv string        `mapstructure:"signer-key-env"`
	Timeout      time.Duration `mapstructure:"timeout"`
	// MineTimeout bounds the wait for a sent transaction to be mined. The wait
	// outlives the caller's context.
	MineTimeout time.Duration `mapstructure:"mine-timeout"`
}

func (cfg *ChainConfig) Validate() error {
	if cfg.RPCURL == "" {
		return errors.New("rpc-url is required")
	}
	if cfg.ChainID <= 0 {
		return errors.New("chain-id must be positive")
	}
	if !common.IsHexAddress(cfg.StakingManager) {
		return fmt.Errorf("invalid staking-manager address %q", cfg.StakingManager)
	}
	if cfg.StakingToken != "" && !common.IsHexAddress(cfg.StakingToken) {
		return fmt.Errorf("invalid staking-token address %q", cfg.StakingToken)
	}
	if cfg.RewardDistributor != "" && !common.IsHexAddress(cfg.RewardDistributor) {
		return fmt.Errorf("invalid reward-distributor address %q", cfg.RewardDistributor)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChainTimeout
	}
	if cfg.MineTimeout <= 0 {
		cfg.MineTimeout = defaultMineTimeout
	}

	return nil
}

// SignerKey reads the signer private key from the configured environment
// variable. It returns "" when no signer is configured.
func (cfg *ChainConfig) SignerKey() string {
	if cfg.SignerKeyEnv == "" {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(os.Getenv(cfg.SignerKeyEnv)), "0x")
}
