package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hai-on-op/hai-staking-service/internal/config"
	"github.com/hai-on-op/hai-staking-service/internal/observability/tracing"
	"github.com/hai-on-op/hai-staking-service/internal/types"
)

// AccountSummaryCmd prints the staking summary of one account, optionally
// simulating a stake or unstake amount:
// ./hai-staking-service account-summary --address 0x.. --stake 10 --config config.yml
func AccountSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account-summary",
		Short: "Print the staking summary of an account",
		Args:  cobra.ExactArgs(0),
		RunE:  accountSummary,
	}

	cmd.Flags().String("address", "", "Account address")
	cmd.Flags().String("stake", "", "Amount to simulate staking")
	cmd.Flags().String("unstake", "", "Amount to simulate unstaking")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

func accountSummary(cmd *cobra.Command, _ []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	rawAddress, err := cmd.Flags().GetString("address")
	if err != nil {
		return err
	}
	account, err := types.ParseAddress(rawAddress)
	if err != nil {
		return err
	}
	stake, err := cmd.Flags().GetString("stake")
	if err != nil {
		return err
	}
	unstake, err := cmd.Flags().GetString("unstake")
	if err != nil {
		return err
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	service, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	summary, err := service.BuildSummary(ctx, account, stake, unstake)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
