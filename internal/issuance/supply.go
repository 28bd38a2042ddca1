package issuance

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// SetSupply fixes the supply of a ticker bound to this contract and places all
// of it in escrow. The supply can be set only once.
func (l *Ledger) SetSupply(ctx context.Context, tx store.Store, signers domain.Signers, ticker domain.SymbolCode, supply domain.Asset) error {
	if ticker != supply.Symbol.Code {
		return fmt.Errorf("%w: ticker must match supply symbol", domain.ErrValidation)
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

	if !supply.Valid() {
		return fmt.Errorf("%w: %s is out of range", domain.ErrInvalidSupply, supply)
	}
	if !supply.IsPositive() {
		return fmt.Errorf("%w: max-supply must be positive", domain.ErrInvalidSupply)
	}
	if supply.Symbol.Precision != token.Precision {
		return fmt.Errorf("%w: precision must be %d", domain.ErrInvalidSupply, token.Precision)
	}

	existing, err := l.book.Stat(ctx, tx, ticker)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", domain.ErrAlreadySet, ticker)
	}

	if err := tx.SaveTokenStat(ctx, &schema.TokenStat{
		Contract:   l.Contract().String(),
		SymbolCode: ticker.String(),
		Precision:  supply.Symbol.Precision,
		Supply:     supply.Amount,
		MaxSupply:  supply.Amount,
		Issuer:     token.Creator.String(),
	}); err != nil {
		return err
	}

	return l.book.AddBalance(ctx, tx, l.Contract(), supply)
}
