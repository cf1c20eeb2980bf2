package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "HAI_STAKING"

type Config struct {
	LogLevel string         `mapstructure:"log-level"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Claims   *ClaimsConfig  `mapstructure:"claims"`
	Subgraph SubgraphConfig `mapstructure:"subgraph"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Poller   PollerConfig   `mapstructure:"poller"`
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("invalid log-level: %w", err)
		}
	}

	if err := cfg.Chain.Validate(); err != nil {
		return fmt.Errorf("chain: %w", err)
	}

	// claims are optional, without them incentive claims are reported empty
	if cfg.Claims != nil {
		if err := cfg.Claims.Validate(); err != nil {
			return fmt.Errorf("claims: %w", err)
		}
	}

	if err := cfg.Subgraph.Validate(); err != nil {
		return fmt.Errorf("subgraph: %w", err)
	}

	if err := cfg.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}

	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Every key can be overridden through HAI_STAKING_* environment variables,
// e.g. HAI_STAKING_CHAIN_RPC_URL.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
