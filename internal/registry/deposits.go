package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/logger"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// Balance returns the deposit balance of account, or nil when the balance is not open
func (r *Registry) Balance(ctx context.Context, tx store.Store, account domain.Name) (*domain.Asset, error) {
	row, err := tx.GetDepositBalance(ctx, account.String())
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	symbol, err := domain.ParseSymbol(row.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored deposit symbol: %w", err)
	}
	balance := domain.NewAsset(row.Amount, symbol)
	return &balance, nil
}

// Credit adds quantity to the deposit balance of account, opening it when absent
func (r *Registry) Credit(ctx context.Context, tx store.Store, account domain.Name, quantity domain.Asset) error {
	current, err := r.Balance(ctx, tx, account)
	if err != nil {
		return err
	}

	updated := quantity
	if current != nil {
		updated, err = current.Add(quantity)
		if err != nil {
			return err
		}
	}

	return tx.SaveDepositBalance(ctx, &schema.DepositBalance{
		Account: account.String(),
		Amount:  updated.Amount,
		Symbol:  updated.Symbol.String(),
	})
}

// Debit removes quantity from the deposit balance of account; a balance debited to exactly zero is closed
func (r *Registry) Debit(ctx context.Context, tx store.Store, account domain.Name, quantity domain.Asset) error {
	current, err := r.Balance(ctx, tx, account)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("%w: no contract balance for account %s", domain.ErrInsufficientBalance, account)
	}
	if current.Amount < quantity.Amount {
		return fmt.Errorf("%w: contract balance of %s is below the debit", domain.ErrInsufficientBalance, account)
	}

	updated, err := current.Sub(quantity)
	if err != nil {
		return err
	}
	if updated.Amount == 0 {
		return tx.DeleteDepositBalance(ctx, account.String())
	}

	return tx.SaveDepositBalance(ctx, &schema.DepositBalance{
		Account: account.String(),
		Amount:  updated.Amount,
		Symbol:  updated.Symbol.String(),
	})
}

// OpenBalance explicitly opens a zero deposit balance for account
func (r *Registry) OpenBalance(ctx context.Context, tx store.Store, signers domain.Signers, account domain.Name) error {
	if err := domain.RequireAuth(signers, account); err != nil {
		return err
	}
	cfg, err := r.requireEnabled(ctx, tx)
	if err != nil {
		return err
	}

	existing, err := tx.GetDepositBalance(ctx, account.String())
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: deposit balance of %s", domain.ErrAlreadyOpen, account)
	}

	return tx.SaveDepositBalance(ctx, &schema.DepositBalance{
		Account: account.String(),
		Amount:  0,
		Symbol:  cfg.DepositAsset.Symbol.String(),
	})
}

// CloseBalance closes the zero deposit balance of account
func (r *Registry) CloseBalance(ctx context.Context, tx store.Store, signers domain.Signers, account domain.Name) error {
	if err := domain.RequireAuth(signers, account); err != nil {
		return err
	}

	existing, err := tx.GetDepositBalance(ctx, account.String())
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: deposit balance of %s", domain.ErrNotOpen, account)
	}
	if existing.Amount != 0 {
		return domain.ErrNonZeroBalance
	}

	return tx.DeleteDepositBalance(ctx, account.String())
}

// Withdraw debits the deposit balance of account and sends quantity back to it
func (r *Registry) Withdraw(ctx context.Context, tx store.Store, signers domain.Signers, account domain.Name, quantity domain.Asset) error {
	if err := domain.RequireAuth(signers, account); err != nil {
		return err
	}
	cfg, err := r.requireEnabled(ctx, tx)
	if err != nil {
		return err
	}

	if quantity.Symbol != cfg.DepositAsset.Symbol {
		return fmt.Errorf("%w: incorrect token symbol for withdraw", domain.ErrWrongAsset)
	}
	if !quantity.Valid() || !quantity.IsPositive() {
		return fmt.Errorf("%w: must withdraw positive quantity", domain.ErrValidation)
	}

	if err := r.Debit(ctx, tx, account, quantity); err != nil {
		return err
	}

	return r.gateway.Transfer(ctx, tx, gateway.Transfer{
		Contract: cfg.DepositAsset.Contract,
		From:     r.account,
		To:       account,
		Quantity: quantity,
		Memo:     domain.MEMO_WITHDRAW,
	})
}

// OnTransfer credits genuine deposits to the registry. Transfers the registry
// sends, transfers not addressed to it and storage market movements are ignored.
func (r *Registry) OnTransfer(ctx context.Context, tx store.Store, t gateway.Transfer) error {
	if t.From == r.account || t.To != r.account {
		return nil
	}
	if _, ok := r.storageMarkets[t.From]; ok {
		return nil
	}

	cfg, err := r.requireEnabled(ctx, tx)
	if err != nil {
		return err
	}

	if t.Contract != cfg.DepositAsset.Contract {
		return fmt.Errorf("%w: incorrect token contract for deposit", domain.ErrWrongAsset)
	}
	if t.Quantity.Symbol != cfg.DepositAsset.Symbol {
		return fmt.Errorf("%w: incorrect token symbol for deposit", domain.ErrWrongAsset)
	}

	if err := r.Credit(ctx, tx, t.From, t.Quantity); err != nil {
		return err
	}

	logger.DebugCtx(ctx, "deposit credited",
		zap.String("account", t.From.String()),
		zap.String("quantity", t.Quantity.String()))
	return nil
}
