package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

const (
	defaultRequestsPerMinute = 120
	defaultBurst             = 20
)

type ServerConfig struct {
	Host              string  `mapstructure:"host"`
	Port              int     `mapstructure:"port"`
	RequestsPerMinute float64 `mapstructure:"requests-per-minute"`
	Burst             int     `mapstructure:"burst"`
	// WriteTokenEnv names the environment variable holding the bearer token
	// required by transaction routes. Empty disables those routes.
	WriteTokenEnv string `mapstructure:"write-token-env"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("host is required")
	}
	if ip := net.ParseIP(cfg.Host); ip == nil && cfg.Host != "localhost" {
		return fmt.Errorf("invalid host %q", cfg.Host)
	}
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return errors.New("port must be between 1024 and 65535")
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = defaultRequestsPerMinute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	return nil
}

func (cfg *ServerConfig) Address() string {
	return net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
}

// WriteToken reads the write token from the configured environment variable.
// It returns "" when writes are disabled.
func (cfg *ServerConfig) WriteToken() string {
	if cfg.WriteTokenEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(cfg.WriteTokenEnv))
}
