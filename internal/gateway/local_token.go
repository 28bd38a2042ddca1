package gateway

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/ledger"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// LocalToken is a standalone fungible token contract used as the deposit asset's ledger
type LocalToken struct {
	book *ledger.Book
}

// NewLocalToken creates the ledger of a local token contract
func NewLocalToken(contract domain.Name) *LocalToken {
	return &LocalToken{book: ledger.NewBook(contract)}
}

// Contract returns the token contract account
func (l *LocalToken) Contract() domain.Name {
	return l.book.Contract()
}

// Create defines a new symbol with its issuer and maximum supply
func (l *LocalToken) Create(ctx context.Context, tx store.Store, signers domain.Signers, issuer domain.Name, maxSupply domain.Asset) error {
	if err := domain.RequireAuth(signers, l.book.Contract()); err != nil {
		return err
	}
	if !issuer.Valid() {
		return fmt.Errorf("%w: invalid issuer %q", domain.ErrValidation, issuer)
	}
	if !maxSupply.Valid() {
		return fmt.Errorf("%w: %s is out of range", domain.ErrInvalidSupply, maxSupply)
	}
	if !maxSupply.IsPositive() {
		return fmt.Errorf("%w: max-supply must be positive", domain.ErrInvalidSupply)
	}

	existing, err := l.book.Stat(ctx, tx, maxSupply.Symbol.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: token with symbol already exists", domain.ErrAlreadySet)
	}

	return tx.SaveTokenStat(ctx, &schema.TokenStat{
		Contract:   l.book.Contract().String(),
		SymbolCode: maxSupply.Symbol.Code.String(),
		Precision:  maxSupply.Symbol.Precision,
		Supply:     0,
		MaxSupply:  maxSupply.Amount,
		Issuer:     issuer.String(),
	})
}

// Issue mints quantity to the issuer
func (l *LocalToken) Issue(ctx context.Context, tx store.Store, signers domain.Signers, to domain.Name, quantity domain.Asset, memo string) error {
	if !quantity.Symbol.Valid() {
		return fmt.Errorf("%w: invalid symbol name", domain.ErrValidation)
	}
	if len(memo) > domain.MAX_MEMO_BYTES {
		return fmt.Errorf("%w: memo has more than %d bytes", domain.ErrValidation, domain.MAX_MEMO_BYTES)
	}

	stat, err := l.book.RequireStat(ctx, tx, quantity.Symbol.Code)
	if err != nil {
		return err
	}
	issuer := domain.Name(stat.Issuer)
	if to != issuer {
		return fmt.Errorf("%w: tokens can only be issued to issuer account", domain.ErrValidation)
	}
	if err := domain.RequireAuth(signers, issuer); err != nil {
		return err
	}
	if !quantity.Valid() || !quantity.IsPositive() {
		return fmt.Errorf("%w: must issue positive quantity", domain.ErrValidation)
	}
	if quantity.Symbol.Precision != stat.Precision {
		return fmt.Errorf("%w: symbol precision mismatch", domain.ErrValidation)
	}
	if quantity.Amount > stat.MaxSupply-stat.Supply {
		return fmt.Errorf("%w: quantity exceeds available supply", domain.ErrValidation)
	}

	stat.Supply += quantity.Amount
	if err := tx.SaveTokenStat(ctx, stat); err != nil {
		return err
	}

	return l.book.AddBalance(ctx, tx, issuer, quantity)
}

// Transfer implements Ledger
func (l *LocalToken) Transfer(ctx context.Context, tx store.Store, t Transfer) error {
	return l.book.Transfer(ctx, tx, t.From, t.To, t.Quantity, t.Memo)
}

// Balance returns the balance of owner, zero when no balance is open
func (l *LocalToken) Balance(ctx context.Context, tx store.Store, owner domain.Name, symbol domain.Symbol) (domain.Asset, error) {
	row, err := l.book.Balance(ctx, tx, owner, symbol.Code)
	if err != nil {
		return domain.Asset{}, err
	}
	if row == nil {
		return domain.NewAsset(0, symbol), nil
	}
	return ledger.StoredAsset(row), nil
}
