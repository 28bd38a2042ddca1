package engine

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/issuance"
	"github.com/feral-file/ff-token-registry/internal/ledger"
	"github.com/feral-file/ff-token-registry/internal/registry"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// Config returns the registry configuration
func (e *Engine) Config(ctx context.Context) (registry.Config, error) {
	return e.registry.LoadConfig(ctx, e.store)
}

// ListContracts lists the whitelisted contracts
func (e *Engine) ListContracts(ctx context.Context) ([]domain.Name, error) {
	return e.registry.ListContracts(ctx, e.store)
}

// ListTokens lists the ticker catalog
func (e *Engine) ListTokens(ctx context.Context) ([]registry.Token, error) {
	return e.registry.ListTokens(ctx, e.store)
}

// GetToken returns a catalog entry
func (e *Engine) GetToken(ctx context.Context, ticker domain.SymbolCode) (*registry.Token, error) {
	return e.registry.LookupToken(ctx, e.store, ticker)
}

// GetTokenByContract returns the catalog entry bound to contract for ticker
func (e *Engine) GetTokenByContract(ctx context.Context, contract domain.Name, ticker domain.SymbolCode) (*registry.Token, error) {
	token, err := e.registry.GetTokenByContract(ctx, e.store, contract, ticker)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrTickerNotFound
	}
	return token, nil
}

// DepositBalance returns the deposit balance of account
func (e *Engine) DepositBalance(ctx context.Context, account domain.Name) (*domain.Asset, error) {
	balance, err := e.registry.Balance(ctx, e.store, account)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, fmt.Errorf("%w: no deposit balance for %s", domain.ErrNotFound, account)
	}
	return balance, nil
}

// IssuanceStat returns the supply record of ticker on an issuing contract
func (e *Engine) IssuanceStat(ctx context.Context, contract domain.Name, ticker domain.SymbolCode) (*issuance.Stat, error) {
	l, err := e.issuer(contract)
	if err != nil {
		return nil, err
	}
	stat, err := l.Stat(ctx, e.store, ticker)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, domain.ErrSymbolNotFound
	}
	return stat, nil
}

// LedgerBalances returns the balances account holds on a token contract
func (e *Engine) LedgerBalances(ctx context.Context, contract domain.Name, account domain.Name) ([]domain.Asset, error) {
	rows, err := e.store.ListLedgerBalances(ctx, contract.String(), account.String())
	if err != nil {
		return nil, err
	}
	balances := make([]domain.Asset, 0, len(rows))
	for i := range rows {
		balances = append(balances, ledger.StoredAsset(&rows[i]))
	}
	return balances, nil
}

// Actions returns journaled actions after filter.Since, with the total number matching
func (e *Engine) Actions(ctx context.Context, filter store.ActionQueryFilter) ([]schema.ActionJournal, uint64, error) {
	return e.store.GetActionJournal(ctx, filter)
}
