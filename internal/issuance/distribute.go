package issuance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/logger"
	"github.com/feral-file/ff-token-registry/internal/store"
)

// Distribute sends the escrowed supply of ticker to the initial holders.
// The allocations must cover the whole supply and every receiver must have
// opened a balance beforehand.
func (l *Ledger) Distribute(ctx context.Context, tx store.Store, signers domain.Signers, ticker domain.SymbolCode, allocations []domain.Allocation) error {
	if len(allocations) == 0 {
		return domain.ErrEmptyAllocation
	}

	token, err := l.lookupToken(ctx, tx, ticker)
	if err != nil {
		return err
	}
	if err := domain.RequireAuth(signers, token.Creator); err != nil {
		return err
	}
	if !token.BoundTo(l.Contract()) {
		return fmt.Errorf("%w: %s is not bound to %s", domain.ErrNotBound, ticker, l.Contract())
	}

	stat, err := l.book.Stat(ctx, tx, ticker)
	if err != nil {
		return err
	}
	if stat == nil {
		return fmt.Errorf("%w: %s", domain.ErrSupplyNotSet, ticker)
	}
	if stat.Supply != stat.MaxSupply {
		return fmt.Errorf("%w: supply must be fully allocated", domain.ErrSupplyNotSet)
	}
	if domain.Name(stat.Issuer) != token.Creator {
		return fmt.Errorf("%w %s", domain.ErrMissingAuthority, stat.Issuer)
	}

	escrow, err := l.Escrow(ctx, tx, ticker)
	if err != nil {
		return err
	}
	if escrow == nil || escrow.Amount != stat.MaxSupply {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyDistributed, ticker)
	}

	maxSupply := domain.NewAsset(stat.MaxSupply, domain.NewSymbol(ticker, stat.Precision))
	if err := domain.CheckAllocations(maxSupply, allocations); err != nil {
		return err
	}

	for _, allocation := range allocations {
		open, err := l.book.Balance(ctx, tx, allocation.Receiver, ticker)
		if err != nil {
			return err
		}
		if open == nil {
			return fmt.Errorf("%w: %s", domain.ErrBalanceNotOpen, allocation.Receiver)
		}

		if err := l.gateway.Transfer(ctx, tx, gateway.Transfer{
			Contract: l.Contract(),
			From:     l.Contract(),
			To:       allocation.Receiver,
			Quantity: allocation.Quantity,
			Memo:     domain.MEMO_INITIAL_ALLOCATION,
		}); err != nil {
			return err
		}
	}

	logger.DebugCtx(ctx, "supply distributed",
		zap.String("contract", l.Contract().String()),
		zap.String("ticker", ticker.String()),
		zap.Int("allocations", len(allocations)))
	return nil
}
