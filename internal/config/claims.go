package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultClaimsTimeout       = 15 * time.Second
	defaultClaimsMaxRetryTimes = 3
	defaultClaimsRetryInterval = 2 * time.Second
)

type ClaimsConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	// Tokens maps reward token symbols to token addresses. Viper lower-cases
	// map keys, so symbols are normalised with TokenSymbols.
	Tokens map[string]string `mapstructure:"tokens"`
}

func (cfg *ClaimsConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("claims URL must be set")
	}
	if len(cfg.Tokens) == 0 {
		return errors.New("at least one claim token must be configured")
	}
	for symbol, addr := range cfg.Tokens {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid address %q for token %s", addr, symbol)
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultClaimsTimeout
	}
	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultClaimsMaxRetryTimes
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultClaimsRetryInterval
	}

	return nil
}

// TokenSymbols returns the configured tokens keyed by upper-case symbol.
func (cfg *ClaimsConfig) TokenSymbols() map[string]string {
	out := make(map[string]string, len(cfg.Tokens))
	for symbol, addr := range cfg.Tokens {
		out[strings.ToUpper(symbol)] = addr
	}
	return out
}
