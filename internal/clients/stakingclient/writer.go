package stakingclient

import (
	"context"
	"fmt"

	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/types"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

func (c *Client) SignerAddress() (types.Address, error) {
	if c.signer == nil {
		return "", ErrMissingSigner
	}
	return types.AddressFromCommon(c.signer.From), nil
}

func (c *Client) Stake(ctx context.Context, amt string) (*gethtypes.Receipt, error) {
	wei, err := amount.ToWei(amt)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, c.manager, "stake", wei)
}

func (c *Client) InitiateWithdrawal(ctx context.Context, amt string) (*gethtypes.Receipt, error) {
	wei, err := amount.ToWei(amt)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, c.manager, "initiateWithdrawal", wei)
}

func (c *Client) Withdraw(ctx context.Context) (*gethtypes.Receipt, error) {
	return c.transact(ctx, c.manager, "withdraw")
}

func (c *Client) CancelWithdrawal(ctx context.Context) (*gethtypes.Receipt, error) {
	return c.transact(ctx, c.manager, "cancelWithdrawal")
}

func (c *Client) ClaimRewards(ctx context.Context) (*gethtypes.Receipt, error) {
	if c.signer == nil {
		return nil, ErrMissingSigner
	}
	return c.transact(ctx, c.manager, "getReward", c.signer.From)
}

// transact sends a transaction from the signer and waits until it is mined.
// Once sent, the wait no longer follows ctx cancellation and is bounded by the
// mine timeout instead; a failed wait is reported as ErrTxUnconfirmed.
func (c *Client) transact(ctx context.Context, target contract, method string, params ...interface{}) (*gethtypes.Receipt, error) {
	if c.signer == nil {
		return nil, ErrMissingSigner
	}

	opts := *c.signer
	opts.Context = ctx

	tx, err := target.Transact(&opts, method, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", method, err)
	}

	logger := log.Ctx(ctx).With().Str("method", method).Str("tx", tx.Hash().Hex()).Logger()
	logger.Debug().Msg("transaction sent, waiting to be mined")

	waitCtx, cancel := c.mineContext(ctx)
	defer cancel()

	receipt, err := c.waitMined(waitCtx, tx)
	if err != nil {
		logger.Warn().Err(err).Msg("transaction sent but not confirmed")
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTxUnconfirmed, method, tx.Hash().Hex(), err)
	}
	if receipt.Status != gethtypes.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s in block %s", ErrTxReverted, tx.Hash().Hex(), receipt.BlockNumber)
	}

	logger.Info().Uint64("gas_used", receipt.GasUsed).Msg("transaction mined")
	return receipt, nil
}


func (c *Client) mineContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if c.mineTimeout <= 0 {
		return detached, func() {}
	}
	return context.WithTimeout(detached, c.mineTimeout)
}
