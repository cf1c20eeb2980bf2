package claimsclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/clients/client"
	"github.com/hai-on-op/hai-staking-service/internal/config"
	"github.com/hai-on-op/hai-staking-service/internal/merkle"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.ClaimsConfig
}

func (c *Client) GetBaseURL() string {
	return c.cfg.URL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

// NewClient returns nil when claims are not configured.
func NewClient(cfg *config.ClaimsConfig) *Client {
	if cfg == nil {
		return nil
	}

	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetDistributions(ctx context.Context) (map[string]merkle.Dump, error) {
	type empty struct{}

	callForDistributions := func() (map[string]merkle.Dump, error) {
		opts := &client.HttpClientOptions{TemplatePath: "/claims"}
		resp, err := client.SendRequest[empty, map[string]merkle.Dump](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return nil, err
		}
		return *resp, nil
	}

	result, err := clientCallWithRetry(ctx, callForDistributions, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get claim distributions: %w", err)
	}

	out := make(map[string]merkle.Dump, len(result))
	for symbol, dump := range result {
		out[strings.ToUpper(symbol)] = dump
	}
	return out, nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.ClaimsConfig,
) (T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		// only rate limited responses are retried
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, client.ErrRateLimited)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("claims endpoint rate limited, retrying with exponential backoff")
		}))
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
