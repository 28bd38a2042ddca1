package engine

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/registry"
	"github.com/feral-file/ff-token-registry/internal/store"
)

// Action names recorded in the journal
const (
	ActionSetConfig    = "setconfig"
	ActionEnable       = "enable"
	ActionDisable      = "disable"
	ActionAddContract  = "addcontract"
	ActionRmContract   = "rmcontract"
	ActionAddToken     = "addtoken"
	ActionRmToken      = "rmtoken"
	ActionRegToken     = "regtoken"
	ActionSetContract  = "setcontract"
	ActionOpenBalance  = "openbalance"
	ActionCloseBalance = "closebalance"
	ActionWithdraw     = "withdraw"
	ActionSetRegistry  = "setregistry"
	ActionSetSupply    = "setsupply"
	ActionDistribute   = "distribute"
	ActionOpen         = "open"
	ActionClose        = "close"
	ActionTransfer     = "transfer"
	ActionCreate       = "create"
	ActionIssue        = "issue"
)

// ContractRequest names a contract in the whitelist
type ContractRequest struct {
	Contract domain.Name `json:"contract"`
}

// AddTokenRequest registers a ticker administratively
type AddTokenRequest struct {
	Creator   domain.Name       `json:"creator"`
	Ticker    domain.SymbolCode `json:"ticker"`
	Precision uint8             `json:"precision"`
}

// TickerRequest names a ticker
type TickerRequest struct {
	Ticker domain.SymbolCode `json:"ticker"`
}

// SetContractRequest binds a ticker to an issuing contract
type SetContractRequest struct {
	Ticker   domain.SymbolCode `json:"ticker"`
	Contract domain.Name       `json:"contract"`
}

// AccountRequest names an account
type AccountRequest struct {
	Account domain.Name `json:"account"`
}

// WithdrawRequest withdraws from a deposit balance
type WithdrawRequest struct {
	Account  domain.Name  `json:"account"`
	Quantity domain.Asset `json:"quantity"`
}

// SetRegistryRequest configures the registry of an issuing contract
type SetRegistryRequest struct {
	Contract domain.Name `json:"contract"`
	Registry domain.Name `json:"registry"`
}

// SetSupplyRequest sets the supply of a ticker on an issuing contract
type SetSupplyRequest struct {
	Contract domain.Name       `json:"contract"`
	Ticker   domain.SymbolCode `json:"ticker"`
	Supply   domain.Asset      `json:"supply"`
}

// DistributeRequest distributes the escrowed supply of a ticker
type DistributeRequest struct {
	Contract    domain.Name         `json:"contract"`
	Ticker      domain.SymbolCode   `json:"ticker"`
	Allocations []domain.Allocation `json:"allocations"`
}

// OpenRequest opens a balance on an issuing contract
type OpenRequest struct {
	Contract domain.Name   `json:"contract"`
	Owner    domain.Name   `json:"owner"`
	Symbol   domain.Symbol `json:"symbol"`
	Payer    domain.Name   `json:"payer"`
}

// CloseRequest closes a balance on an issuing contract
type CloseRequest struct {
	Contract domain.Name   `json:"contract"`
	Owner    domain.Name   `json:"owner"`
	Symbol   domain.Symbol `json:"symbol"`
}

// CreateRequest defines a symbol on the deposit token contract
type CreateRequest struct {
	Issuer    domain.Name  `json:"issuer"`
	MaxSupply domain.Asset `json:"maximum_supply"`
}

// IssueRequest mints on the deposit token contract
type IssueRequest struct {
	To       domain.Name  `json:"to"`
	Quantity domain.Asset `json:"quantity"`
	Memo     string       `json:"memo"`
}

// SetConfig merges update into the registry configuration
func (e *Engine) SetConfig(ctx context.Context, signers domain.Signers, update registry.ConfigUpdate) (registry.Config, error) {
	var cfg registry.Config
	err := e.execute(ctx, e.registry.Account(), ActionSetConfig, signers, update, func(ctx context.Context, tx store.Store) error {
		var err error
		cfg, err = e.registry.SetConfig(ctx, tx, signers, update)
		return err
	})
	return cfg, err
}

// Enable starts accepting registrations
func (e *Engine) Enable(ctx context.Context, signers domain.Signers) error {
	return e.execute(ctx, e.registry.Account(), ActionEnable, signers, struct{}{}, func(ctx context.Context, tx store.Store) error {
		return e.registry.Enable(ctx, tx, signers)
	})
}

// Disable stops every configuration-dependent action
func (e *Engine) Disable(ctx context.Context, signers domain.Signers) error {
	return e.execute(ctx, e.registry.Account(), ActionDisable, signers, struct{}{}, func(ctx context.Context, tx store.Store) error {
		return e.registry.Disable(ctx, tx, signers)
	})
}

// AddContract whitelists a contract
func (e *Engine) AddContract(ctx context.Context, signers domain.Signers, req ContractRequest) error {
	return e.execute(ctx, e.registry.Account(), ActionAddContract, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.registry.AddContract(ctx, tx, signers, req.Contract)
	})
}

// RemoveContract removes a contract from the whitelist
func (e *Engine) RemoveContract(ctx context.Context, signers domain.Signers, req ContractRequest) error {
	return e.execute(ctx, e.registry.Account(), ActionRmContract, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.registry.RemoveContract(ctx, tx, signers, req.Contract)
	})
}

// AddToken registers a ticker without a fee
func (e *Engine) AddToken(ctx context.Context, signers domain.Signers, req AddTokenRequest) error {
	return e.execute(ctx, e.registry.Account(), ActionAddToken, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.registry.AddToken(ctx, tx, signers, req.Creator, req.Ticker, req.Precision)
	})
}

// RemoveToken deletes a catalog entry
func (e *Engine) RemoveToken(ctx context.Context, signers domain.Signers, req TickerRequest) error {
	return e.execute(ctx, e.registry.Account(), ActionRmToken, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.registry.RemoveToken(ctx, tx, signers, req.Ticker)
	})
}

// RegToken registers a ticker against the registration fee
func (e *Engine) RegToken(ctx context.Context, signers domain.Signers, req registry.RegTokenRequest) error {
	return e.execute(ctx, e.registry.Account(), ActionRegToken, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.registry.RegToken(ctx, tx, signers, req)
	})
}

// SetContract binds a ticker to an issuing contract
func (e *Engine) SetContract(ctx context.Context, signers domain.Signers, req SetContractRequest) error {
	return e.execute(ctx, e.registry.Account(), ActionSetContract, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.registry.SetContract(ctx, tx, signers, req.Ticker, req.Contract)
	})
}

// OpenBalance opens a zero deposit balance
func (e *Engine) OpenBalance(ctx context.Context, signers domain.Signers, req AccountRequest) error {
	return e.execute(ctx, e.registry.Account(), ActionOpenBalance, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.registry.OpenBalance(ctx, tx, signers, req.Account)
	})
}

// CloseBalance closes a zero deposit balance
func (e *Engine) CloseBalance(ctx context.Context, signers domain.Signers, req AccountRequest) error {
	return e.execute(ctx, e.registry.Account(), ActionCloseBalance, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.registry.CloseBalance(ctx, tx, signers, req.Account)
	})
}

// Withdraw sends part of a deposit balance back to its owner
func (e *Engine) Withdraw(ctx context.Context, signers domain.Signers, req WithdrawRequest) error {
	return e.execute(ctx, e.registry.Account(), ActionWithdraw, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.registry.Withdraw(ctx, tx, signers, req.Account, req.Quantity)
	})
}

// SetRegistry points an issuing contract at the registry
func (e *Engine) SetRegistry(ctx context.Context, signers domain.Signers, req SetRegistryRequest) error {
	l, err := e.issuer(req.Contract)
	if err != nil {
		return err
	}
	return e.execute(ctx, req.Contract, ActionSetRegistry, signers, req, func(ctx context.Context, tx store.Store) error {
		return l.SetConfig(ctx, tx, signers, req.Registry)
	})
}

// SetSupply sets the supply of a ticker bound to an issuing contract
func (e *Engine) SetSupply(ctx context.Context, signers domain.Signers, req SetSupplyRequest) error {
	l, err := e.issuer(req.Contract)
	if err != nil {
		return err
	}
	return e.execute(ctx, req.Contract, ActionSetSupply, signers, req, func(ctx context.Context, tx store.Store) error {
		return l.SetSupply(ctx, tx, signers, req.Ticker, req.Supply)
	})
}

// Distribute sends the escrowed supply of a ticker to its initial holders
func (e *Engine) Distribute(ctx context.Context, signers domain.Signers, req DistributeRequest) error {
	l, err := e.issuer(req.Contract)
	if err != nil {
		return err
	}
	return e.execute(ctx, req.Contract, ActionDistribute, signers, req, func(ctx context.Context, tx store.Store) error {
		return l.Distribute(ctx, tx, signers, req.Ticker, req.Allocations)
	})
}

// Open opens a balance on an issuing contract
func (e *Engine) Open(ctx context.Context, signers domain.Signers, req OpenRequest) error {
	l, err := e.issuer(req.Contract)
	if err != nil {
		return err
	}
	return e.execute(ctx, req.Contract, ActionOpen, signers, req, func(ctx context.Context, tx store.Store) error {
		return l.Open(ctx, tx, signers, req.Owner, req.Symbol, req.Payer)
	})
}

// Close closes a balance on an issuing contract
func (e *Engine) Close(ctx context.Context, signers domain.Signers, req CloseRequest) error {
	l, err := e.issuer(req.Contract)
	if err != nil {
		return err
	}
	return e.execute(ctx, req.Contract, ActionClose, signers, req, func(ctx context.Context, tx store.Store) error {
		return l.Close(ctx, tx, signers, req.Owner, req.Symbol)
	})
}

// Transfer moves value on any hosted token contract on behalf of the sender
func (e *Engine) Transfer(ctx context.Context, signers domain.Signers, t gateway.Transfer) error {
	return e.execute(ctx, t.Contract, ActionTransfer, signers, t, func(ctx context.Context, tx store.Store) error {
		if err := domain.RequireAuth(signers, t.From); err != nil {
			return err
		}
		return e.router.Transfer(ctx, tx, t)
	})
}

// Create defines a symbol on the deposit token contract
func (e *Engine) Create(ctx context.Context, signers domain.Signers, req CreateRequest) error {
	return e.execute(ctx, e.deposit.Contract(), ActionCreate, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.deposit.Create(ctx, tx, signers, req.Issuer, req.MaxSupply)
	})
}

// Issue mints on the deposit token contract
func (e *Engine) Issue(ctx context.Context, signers domain.Signers, req IssueRequest) error {
	return e.execute(ctx, e.deposit.Contract(), ActionIssue, signers, req, func(ctx context.Context, tx store.Store) error {
		return e.deposit.Issue(ctx, tx, signers, req.To, req.Quantity, req.Memo)
	})
}

// SeedWhitelist adds the given contracts to the whitelist on behalf of the registry
func (e *Engine) SeedWhitelist(ctx context.Context, contracts []domain.Name) (int, error) {
	var added int
	err := e.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		added, err = e.registry.SeedWhitelist(ctx, tx, contracts)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed whitelist: %w", err)
	}
	return added, nil
}
