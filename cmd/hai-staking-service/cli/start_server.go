package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hai-on-op/hai-staking-service/internal/api"
	"github.com/hai-on-op/hai-staking-service/internal/config"
	"github.com/hai-on-op/hai-staking-service/internal/observability/metrics"
	"github.com/hai-on-op/hai-staking-service/internal/observability/tracing"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the HAI staking API server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	service, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	if signer, err := service.SignerAddress(); err == nil {
		log.Info().Str("signer", signer.String()).Msg("transaction signer configured")
	} else {
		log.Warn().Msg("no transaction signer configured, mutations are disabled")
	}

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.Host, cfg.Metrics.GetMetricsPort())

	statsPoller := service.StartStatsPoller(ctx)
	defer statsPoller.Stop()

	return api.New(&cfg.Server, service).Start(ctx)
}
