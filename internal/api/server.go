package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/config"
	"github.com/hai-on-op/hai-staking-service/internal/services"
	"github.com/hai-on-op/hai-staking-service/internal/types"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 2 * time.Minute
	idleTimeout     = time.Minute
	shutdownTimeout = 10 * time.Second
)

// StakingService is the subset of services.Service exposed over HTTP.
type StakingService interface {
	GetStats(ctx context.Context) (*types.StakingStats, error)
	GetAccount(ctx context.Context, account types.Address) (*types.StakedAccountState, error)
	BuildSummary(ctx context.Context, account types.Address, stake, unstake string) (*services.StakingSummary, error)
	GetApr(ctx context.Context, account types.Address) (*services.AprSummary, error)
	Stake(ctx context.Context, amt string) (*gethtypes.Receipt, error)
	InitiateWithdrawal(ctx context.Context, amt string) (*gethtypes.Receipt, error)
	Withdraw(ctx context.Context) (*gethtypes.Receipt, error)
	CancelWithdrawal(ctx context.Context) (*gethtypes.Receipt, error)
	ClaimRewards(ctx context.Context) (*gethtypes.Receipt, error)
	GetClaimData(ctx context.Context, account types.Address) ([]services.IncentiveClaim, error)
	Claim(ctx context.Context, symbol string) (*gethtypes.Receipt, error)
	ClaimAll(ctx context.Context) (*gethtypes.Receipt, error)
}

type Server struct {
	cfg        *config.ServerConfig
	svc        StakingService
	limiter    *RateLimiter
	writeToken string
	router     http.Handler
}

func New(cfg *config.ServerConfig, svc StakingService) *Server {
	s := &Server{
		cfg:        cfg,
		svc:        svc,
		limiter:    NewRateLimiter(cfg.RequestsPerMinute, cfg.Burst),
		writeToken: cfg.WriteToken(),
	}
	if s.writeToken == "" {
		log.Warn().Msg("no write token configured, transaction routes are disabled")
	}
	s.router = s.buildRouter()
	return s
}

// Handler exposes the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(withTraceID)
	r.Use(withMetrics)

	r.Get("/healthcheck", s.healthcheck)

	r.Group(func(r chi.Router) {
		r.Use(s.limiter.Middleware)

		r.Route("/v1/staking", func(r chi.Router) {
			r.Get("/stats", s.getStats)
			r.Get("/apr", s.getApr)
			r.Get("/accounts/{address}", s.getAccount)
			r.Get("/accounts/{address}/summary", s.getSummary)

			r.Group(func(r chi.Router) {
				r.Use(s.requireWriteToken)
				r.Post("/stake", s.stake)
				r.Post("/initiate-withdrawal", s.initiateWithdrawal)
				r.Post("/withdraw", s.withdraw)
				r.Post("/cancel-withdrawal", s.cancelWithdrawal)
				r.Post("/claim-rewards", s.claimRewards)
			})
		})

		r.Route("/v1/incentives", func(r chi.Router) {
			r.Get("/{address}", s.getIncentives)

			r.Group(func(r chi.Router) {
				r.Use(s.requireWriteToken)
				r.Post("/claim-all", s.claimAll)
				r.Post("/claim/{symbol}", s.claim)
			})
		})
	})

	return r
}

// Start serves until ctx is cancelled, then shuts the listener down.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting staking API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
