package config

import (
	"errors"
	"time"
)

const (
	defaultCacheStaleTime = 30 * time.Second
	defaultCacheNamespace = "staking"
)

type CacheConfig struct {
	StaleTime time.Duration `mapstructure:"stale-time"`
	Namespace string        `mapstructure:"namespace"`
}

func (cfg *CacheConfig) Validate() error {
	if cfg.StaleTime < 0 {
		return errors.New("stale-time must not be negative")
	}
	if cfg.StaleTime == 0 {
		cfg.StaleTime = defaultCacheStaleTime
	}
	if cfg.Namespace == "" {
		cfg.Namespace = defaultCacheNamespace
	}
	return nil
}
