// Package ledger keeps fungible balances and supply records for a token contract.
package ledger

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// Book is the balance book of one token contract
type Book struct {
	contract domain.Name
}

// NewBook creates a balance book for a token contract
func NewBook(contract domain.Name) *Book {
	return &Book{contract: contract}
}

// Contract returns the token contract keeping the book
func (b *Book) Contract() domain.Name {
	return b.contract
}

// Stat returns the supply record of a symbol, or nil when the symbol does not exist
func (b *Book) Stat(ctx context.Context, tx store.Store, code domain.SymbolCode) (*schema.TokenStat, error) {
	return tx.GetTokenStat(ctx, b.contract.String(), code.String())
}

// RequireStat returns the supply record of a symbol, failing when it does not exist
func (b *Book) RequireStat(ctx context.Context, tx store.Store, code domain.SymbolCode) (*schema.TokenStat, error) {
	stat, err := b.Stat(ctx, tx, code)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSymbolNotFound, code)
	}
	return stat, nil
}

// Balance returns the balance of an owner, or nil when no balance is open
func (b *Book) Balance(ctx context.Context, tx store.Store, owner domain.Name, code domain.SymbolCode) (*schema.LedgerBalance, error) {
	return tx.GetLedgerBalance(ctx, b.contract.String(), owner.String(), code.String())
}

// AddBalance credits an owner, opening the balance when absent
func (b *Book) AddBalance(ctx context.Context, tx store.Store, owner domain.Name, quantity domain.Asset) error {
	row, err := b.Balance(ctx, tx, owner, quantity.Symbol.Code)
	if err != nil {
		return err
	}

	if row == nil {
		row = &schema.LedgerBalance{
			Contract:   b.contract.String(),
			Account:    owner.String(),
			SymbolCode: quantity.Symbol.Code.String(),
			Precision:  quantity.Symbol.Precision,
		}
	}

	current := StoredAsset(row)
	updated, err := current.Add(quantity)
	if err != nil {
		return err
	}

	row.Amount = updated.Amount
	return tx.SaveLedgerBalance(ctx, row)
}

// SubBalance debits an owner. The balance row is kept even when it reaches zero.
func (b *Book) SubBalance(ctx context.Context, tx store.Store, owner domain.Name, quantity domain.Asset) error {
	row, err := b.Balance(ctx, tx, owner, quantity.Symbol.Code)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("%w: no balance object found for %s", domain.ErrInsufficientBalance, owner)
	}
	if row.Amount < quantity.Amount {
		return fmt.Errorf("%w: overdrawn balance of %s", domain.ErrInsufficientBalance, owner)
	}

	current := StoredAsset(row)
	updated, err := current.Sub(quantity)
	if err != nil {
		return err
	}

	row.Amount = updated.Amount
	return tx.SaveLedgerBalance(ctx, row)
}

// Move debits from and credits to
func (b *Book) Move(ctx context.Context, tx store.Store, from, to domain.Name, quantity domain.Asset) error {
	if err := b.SubBalance(ctx, tx, from, quantity); err != nil {
		return err
	}
	return b.AddBalance(ctx, tx, to, quantity)
}

// Open creates a zero balance for owner. Opening an open balance has no effect.
func (b *Book) Open(ctx context.Context, tx store.Store, owner domain.Name, symbol domain.Symbol) error {
	stat, err := b.RequireStat(ctx, tx, symbol.Code)
	if err != nil {
		return err
	}
	if stat.Precision != symbol.Precision {
		return fmt.Errorf("%w: symbol precision mismatch", domain.ErrValidation)
	}

	row, err := b.Balance(ctx, tx, owner, symbol.Code)
	if err != nil {
		return err
	}
	if row != nil {
		return nil
	}

	return tx.SaveLedgerBalance(ctx, &schema.LedgerBalance{
		Contract:   b.contract.String(),
		Account:    owner.String(),
		SymbolCode: symbol.Code.String(),
		Precision:  symbol.Precision,
	})
}

// Close deletes a zero balance
func (b *Book) Close(ctx context.Context, tx store.Store, owner domain.Name, code domain.SymbolCode) error {
	row, err := b.Balance(ctx, tx, owner, code)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("%w: balance row already deleted or never existed", domain.ErrNotOpen)
	}
	if row.Amount != 0 {
		return domain.ErrNonZeroBalance
	}
	return tx.DeleteLedgerBalance(ctx, b.contract.String(), owner.String(), code.String())
}

// StoredAsset converts a stored balance into an asset
func StoredAsset(row *schema.LedgerBalance) domain.Asset {
	return domain.NewAsset(row.Amount, domain.NewSymbol(domain.SymbolCode(row.SymbolCode), row.Precision))
}

// SupplyAsset returns the current supply of a supply record
func SupplyAsset(stat *schema.TokenStat) domain.Asset {
	return domain.NewAsset(stat.Supply, domain.NewSymbol(domain.SymbolCode(stat.SymbolCode), stat.Precision))
}

// MaxSupplyAsset returns the maximum supply of a supply record
func MaxSupplyAsset(stat *schema.TokenStat) domain.Asset {
	return domain.NewAsset(stat.MaxSupply, domain.NewSymbol(domain.SymbolCode(stat.SymbolCode), stat.Precision))
}

// Transfer validates and executes a transfer of an existing symbol between two accounts
func (b *Book) Transfer(ctx context.Context, tx store.Store, from, to domain.Name, quantity domain.Asset, memo string) error {
	if from == to {
		return fmt.Errorf("%w: cannot transfer to self", domain.ErrValidation)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: to account does not exist", domain.ErrValidation)
	}
	if !quantity.Valid() {
		return fmt.Errorf("%w: invalid quantity", domain.ErrValidation)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: must transfer positive quantity", domain.ErrValidation)
	}
	if len(memo) > domain.MAX_MEMO_BYTES {
		return fmt.Errorf("%w: memo has more than %d bytes", domain.ErrValidation, domain.MAX_MEMO_BYTES)
	}

	stat, err := b.RequireStat(ctx, tx, quantity.Symbol.Code)
	if err != nil {
		return err
	}
	if stat.Precision != quantity.Symbol.Precision {
		return fmt.Errorf("%w: symbol precision mismatch", domain.ErrValidation)
	}

	return b.Move(ctx, tx, from, to, quantity)
}
