package subgraphclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/clients/client"
	"github.com/hai-on-op/hai-staking-service/internal/config"
	"github.com/hai-on-op/hai-staking-service/internal/types"
)

const (
	haiVeloCollateral = "HAIVELO"
	haiSymbol         = "HAI"

	maxRetryTimes = 3
	retryInterval = 500 * time.Millisecond
)

type Client struct {
	httpClient *http.Client
	cfg        *config.SubgraphConfig
}

func NewClient(cfg *config.SubgraphConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
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

func (c *Client) GetPrices(ctx context.Context) (map[string]float64, error) {
	data, err := query[pricesData](ctx, c, "Prices", pricesQuery, nil)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(data.CollateralTypes)+1)
	for _, ct := range data.CollateralTypes {
		prices[strings.ToUpper(ct.ID)] = parseFloat(ct.CurrentPrice.Value)
	}
	if len(data.SystemStates) > 0 {
		prices[haiSymbol] = parseFloat(data.SystemStates[0].CurrentRedemptionPrice.Value)
	}
	return prices, nil
}

func (c *Client) GetBoostInputs(ctx context.Context, user types.Address) (*BoostInputs, error) {
	vars := map[string]any{"owner": user.String()}
	data, err := query[boostInputsData](ctx, c, "BoostInputs", boostInputsQuery, vars)
	if err != nil {
		return nil, err
	}

	var (
		inputs          BoostInputs
		redemptionPrice float64
		haiVeloPrice    float64
	)
	if len(data.SystemStates) > 0 {
		inputs.TotalDebt = parseFloat(data.SystemStates[0].GlobalDebt)
		redemptionPrice = parseFloat(data.SystemStates[0].CurrentRedemptionPrice.Value)
	}
	if len(data.CollateralTypes) > 0 {
		inputs.TotalHaiVeloDeposited = parseFloat(data.CollateralTypes[0].TotalCollateral)
		haiVeloPrice = parseFloat(data.CollateralTypes[0].CurrentPrice.Value)
	}
	for _, s := range data.Safes {
		inputs.UserDebt += parseFloat(s.Debt)
		if strings.EqualFold(s.CollateralType.ID, haiVeloCollateral) {
			inputs.UserHaiVeloDeposited += parseFloat(s.Collateral)
		}
	}
	inputs.HaiVeloPositionValueUsd = inputs.UserHaiVeloDeposited * haiVeloPrice
	inputs.MintingPositionValueUsd = inputs.UserDebt * redemptionPrice

	return &inputs, nil
}

func (c *Client) GetHaiVeloParticipation(ctx context.Context) (*HaiVeloParticipation, error) {
	data, err := query[participationData](ctx, c, "HaiVeloParticipation", haiVeloParticipationQuery, nil)
	if err != nil {
		return nil, err
	}

	p := &HaiVeloParticipation{
		Deposits: make(map[types.Address]float64, len(data.Safes)),
		Staked:   make(map[types.Address]float64, len(data.StakingUsers)),
	}
	for _, s := range data.Safes {
		p.Deposits[types.NewAddress(s.Owner.Address)] += parseFloat(s.Collateral)
	}
	for _, u := range data.StakingUsers {
		p.Staked[types.NewAddress(u.ID)] += parseFloat(u.StakedBalance)
	}
	if len(data.HaiVeloRewardTransfers) > 0 {
		p.LatestTransferAmount = parseFloat(data.HaiVeloRewardTransfers[0].Amount)
	}
	return p, nil
}

func query[T any](ctx context.Context, c *Client, operation, q string, vars map[string]any) (*T, error) {
	req := &graphQLRequest{Query: q, Variables: vars}
	opts := &client.HttpClientOptions{TemplatePath: "/" + operation}

	call := func() (*graphQLResponse[T], error) {
		return client.SendRequest[graphQLRequest, graphQLResponse[T]](ctx, c, http.MethodPost, opts, req)
	}

	resp, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(maxRetryTimes),
		retry.Delay(retryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Str("operation", operation).
				Uint("attempt", n+1).
				Err(err).
				Msg("subgraph query failed, retrying")
		}))
	if err != nil {
		return nil, fmt.Errorf("subgraph %s query failed: %w", operation, err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("subgraph %s query returned errors: %s", operation, strings.Join(msgs, "; "))
	}
	return &resp.Data, nil
}

// isRetryable skips client errors other than rate limiting.
func isRetryable(err error) bool {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

// parseFloat reads subgraph BigDecimal strings. Malformed values count as 0.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
