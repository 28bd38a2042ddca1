// Package issuance implements an issuing contract: it sets the supply of
// tickers bound to it in the registry catalog, holds that supply in escrow
// and distributes it once to the initial holders.
package issuance

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/ledger"
	"github.com/feral-file/ff-token-registry/internal/registry"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// Catalog resolves registered tickers
type Catalog interface {
	// Account returns the registry account keeping the catalog
	Account() domain.Name
	// LookupToken returns the catalog entry of ticker, failing when it is not registered
	LookupToken(ctx context.Context, tx store.Store, ticker domain.SymbolCode) (*registry.Token, error)
}

// Stat is the supply record of an issued token
type Stat struct {
	Supply    domain.Asset `json:"supply"`
	MaxSupply domain.Asset `json:"max_supply"`
	Issuer    domain.Name  `json:"issuer"`
}

// Ledger is an issuing contract
type Ledger struct {
	book    *ledger.Book
	gateway gateway.Gateway
	catalog Catalog
}

// New creates the issuing contract living at contract
func New(contract domain.Name, gw gateway.Gateway, catalog Catalog) *Ledger {
	return &Ledger{
		book:    ledger.NewBook(contract),
		gateway: gw,
		catalog: catalog,
	}
}

// Contract returns the issuing contract account
func (l *Ledger) Contract() domain.Name {
	return l.book.Contract()
}

// SetConfig points the issuing contract at the registry whose catalog it serves
func (l *Ledger) SetConfig(ctx context.Context, tx store.Store, signers domain.Signers, registryAccount domain.Name) error {
	if err := domain.RequireAuth(signers, l.Contract()); err != nil {
		return err
	}
	if !registryAccount.Valid() {
		return fmt.Errorf("%w: invalid registry account %q", domain.ErrValidation, registryAccount)
	}

	return tx.SaveIssuerConfig(ctx, &schema.IssuerConfig{
		Contract: l.Contract().String(),
		Registry: registryAccount.String(),
	})
}

// Registry returns the configured registry account, empty when not configured
func (l *Ledger) Registry(ctx context.Context, tx store.Store) (domain.Name, error) {
	cfg, err := tx.GetIssuerConfig(ctx, l.Contract().String())
	if err != nil {
		return "", err
	}
	if cfg == nil {
		return "", nil
	}
	return domain.Name(cfg.Registry), nil
}

// lookupToken resolves ticker in the configured registry
func (l *Ledger) lookupToken(ctx context.Context, tx store.Store, ticker domain.SymbolCode) (*registry.Token, error) {
	registryAccount, err := l.Registry(ctx, tx)
	if err != nil {
		return nil, err
	}
	if registryAccount.IsEmpty() {
		return nil, domain.ErrRegistryNotSet
	}
	if l.catalog == nil || l.catalog.Account() != registryAccount {
		return nil, fmt.Errorf("%w: registry contract %s is not reachable", domain.ErrNotFound, registryAccount)
	}
	return l.catalog.LookupToken(ctx, tx, ticker)
}

// Stat returns the supply record of ticker, or nil when the supply was never set
func (l *Ledger) Stat(ctx context.Context, tx store.Store, ticker domain.SymbolCode) (*Stat, error) {
	row, err := l.book.Stat(ctx, tx, ticker)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return &Stat{
		Supply:    ledger.SupplyAsset(row),
		MaxSupply: ledger.MaxSupplyAsset(row),
		Issuer:    domain.Name(row.Issuer),
	}, nil
}

// Balance returns the balance of owner, or nil when no balance is open
func (l *Ledger) Balance(ctx context.Context, tx store.Store, owner domain.Name, ticker domain.SymbolCode) (*domain.Asset, error) {
	row, err := l.book.Balance(ctx, tx, owner, ticker)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	balance := ledger.StoredAsset(row)
	return &balance, nil
}

// Escrow returns the undistributed supply of ticker held by the contract itself
func (l *Ledger) Escrow(ctx context.Context, tx store.Store, ticker domain.SymbolCode) (*domain.Asset, error) {
	return l.Balance(ctx, tx, l.Contract(), ticker)
}

// Open creates a zero balance for owner, paid for by payer
func (l *Ledger) Open(ctx context.Context, tx store.Store, signers domain.Signers, owner domain.Name, symbol domain.Symbol, payer domain.Name) error {
	if err := domain.RequireAuth(signers, payer); err != nil {
		return err
	}
	if !owner.Valid() {
		return fmt.Errorf("%w: owner account does not exist", domain.ErrValidation)
	}
	return l.book.Open(ctx, tx, owner, symbol)
}

// Close deletes the zero balance of owner
func (l *Ledger) Close(ctx context.Context, tx store.Store, signers domain.Signers, owner domain.Name, symbol domain.Symbol) error {
	if err := domain.RequireAuth(signers, owner); err != nil {
		return err
	}
	return l.book.Close(ctx, tx, owner, symbol.Code)
}

// Transfer implements gateway.Ledger
func (l *Ledger) Transfer(ctx context.Context, tx store.Store, t gateway.Transfer) error {
	return l.book.Transfer(ctx, tx, t.From, t.To, t.Quantity, t.Memo)
}
