package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/observability/tracing"
)

type Option func(*Poller)

// WithRunOnStart polls once as soon as Start is called instead of waiting
// for the first tick.
func WithRunOnStart() Option {
	return func(p *Poller) {
		p.runOnStart = true
	}
}

type Poller struct {
	name       string
	interval   time.Duration
	runOnStart bool
	quit       chan struct{}
	stopOnce   sync.Once
	pollMethod func(ctx context.Context) error
}

func NewPoller(name string, interval time.Duration, pollMethod func(ctx context.Context) error, opts ...Option) *Poller {
	p := &Poller{
		name:       name,
		interval:   interval,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Str("poller", p.name).Msgf("Starting poller with interval %s", p.interval)

	if p.runOnStart {
		p.poll(ctx)
	}

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			log.Info().Str("poller", p.name).Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			log.Info().Str("poller", p.name).Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	pollCtx := tracing.InjectTraceID(ctx)
	logger := log.Ctx(pollCtx).With().Str("poller", p.name).Logger()
	if err := p.pollMethod(pollCtx); err != nil {
		logger.Error().Err(err).Msg("Error polling")
		return
	}
	logger.Debug().Msg("Poll method executed successfully")
}

// Stop is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
}
