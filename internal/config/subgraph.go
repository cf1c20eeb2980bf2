package config

import (
	"errors"
	"time"
)

const defaultSubgraphTimeout = 10 * time.Second

type SubgraphConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func (cfg *SubgraphConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("subgraph URL must be set")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSubgraphTimeout
	}
	return nil
}
