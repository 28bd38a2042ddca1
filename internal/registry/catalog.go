package registry

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// Token is a ticker catalog entry
type Token struct {
	Ticker    domain.SymbolCode `json:"ticker"`
	Precision uint8             `json:"precision"`
	Creator   domain.Name       `json:"creator"`
	Contract  *domain.Name      `json:"contract"`
}

// Symbol returns the registered symbol of the ticker
func (t Token) Symbol() domain.Symbol {
	return domain.NewSymbol(t.Ticker, t.Precision)
}

// IsBound reports whether an issuing contract has been bound
func (t Token) IsBound() bool {
	return t.Contract != nil
}

// BoundTo reports whether the ticker is bound to contract
func (t Token) BoundTo(contract domain.Name) bool {
	return t.Contract != nil && *t.Contract == contract
}

func tokenFromRow(row *schema.Token) *Token {
	t := &Token{
		Ticker:    domain.SymbolCode(row.Ticker),
		Precision: row.Precision,
		Creator:   domain.Name(row.Creator),
	}
	if row.IsBound() {
		contract := domain.Name(*row.Contract)
		t.Contract = &contract
	}
	return t
}

// checkTickerRule validates a ticker and precision against the configured ticker rule
func checkTickerRule(cfg Config, ticker domain.SymbolCode, precision uint8) error {
	if !ticker.Valid() {
		return fmt.Errorf("%w: invalid ticker %q", domain.ErrValidation, ticker)
	}
	if len(ticker) < cfg.MinTickerLength {
		return fmt.Errorf("%w: ticker must be at least %d characters", domain.ErrValidation, cfg.MinTickerLength)
	}
	if precision > domain.MaxPrecision {
		return fmt.Errorf("%w: precision must not exceed %d", domain.ErrValidation, domain.MaxPrecision)
	}
	return nil
}

// GetToken returns a catalog entry, or nil when the ticker is not registered
func (r *Registry) GetToken(ctx context.Context, tx store.Store, ticker domain.SymbolCode) (*Token, error) {
	row, err := tx.GetTokenByTicker(ctx, ticker.String())
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return tokenFromRow(row), nil
}

// LookupToken returns a catalog entry, failing when the ticker is not registered
func (r *Registry) LookupToken(ctx context.Context, tx store.Store, ticker domain.SymbolCode) (*Token, error) {
	token, err := r.GetToken(ctx, tx, ticker)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTickerNotFound, ticker)
	}
	return token, nil
}

// GetTokenByContract returns the entry bound to contract for ticker, or nil
func (r *Registry) GetTokenByContract(ctx context.Context, tx store.Store, contract domain.Name, ticker domain.SymbolCode) (*Token, error) {
	row, err := tx.GetTokenByContractTicker(ctx, contract.String(), ticker.String())
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return tokenFromRow(row), nil
}

// ListTokens lists the catalog ordered by ticker
func (r *Registry) ListTokens(ctx context.Context, tx store.Store) ([]Token, error) {
	rows, err := tx.ListTokens(ctx)
	if err != nil {
		return nil, err
	}
	tokens := make([]Token, 0, len(rows))
	for i := range rows {
		tokens = append(tokens, *tokenFromRow(&rows[i]))
	}
	return tokens, nil
}

// register inserts an unbound catalog entry
func (r *Registry) register(ctx context.Context, tx store.Store, ticker domain.SymbolCode, creator domain.Name, precision uint8) error {
	existing, err := tx.GetTokenByTicker(ctx, ticker.String())
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateTicker, ticker)
	}

	return tx.CreateToken(ctx, &schema.Token{
		Ticker:    ticker.String(),
		Precision: precision,
		Creator:   creator.String(),
	})
}

// AddToken registers a ticker administratively, without a fee
func (r *Registry) AddToken(ctx context.Context, tx store.Store, signers domain.Signers, creator domain.Name, ticker domain.SymbolCode, precision uint8) error {
	if err := domain.RequireAuth(signers, r.account); err != nil {
		return err
	}
	if !creator.Valid() {
		return fmt.Errorf("%w: invalid creator %q", domain.ErrValidation, creator)
	}

	cfg, err := r.LoadConfig(ctx, tx)
	if err != nil {
		return err
	}
	if err := checkTickerRule(cfg, ticker, precision); err != nil {
		return err
	}

	return r.register(ctx, tx, ticker, creator, precision)
}

// RemoveToken deletes a catalog entry regardless of its binding
func (r *Registry) RemoveToken(ctx context.Context, tx store.Store, signers domain.Signers, ticker domain.SymbolCode) error {
	if err := domain.RequireAuth(signers, r.account); err != nil {
		return err
	}
	if _, err := r.LookupToken(ctx, tx, ticker); err != nil {
		return err
	}
	return tx.DeleteToken(ctx, ticker.String())
}

// SetContract binds a ticker to a whitelisted issuing contract, once
func (r *Registry) SetContract(ctx context.Context, tx store.Store, signers domain.Signers, ticker domain.SymbolCode, contract domain.Name) error {
	token, err := r.LookupToken(ctx, tx, ticker)
	if err != nil {
		return err
	}
	if err := domain.RequireAuth(signers, token.Creator); err != nil {
		return err
	}
	if token.IsBound() {
		return fmt.Errorf("%w: %s is bound to %s", domain.ErrAlreadyBound, ticker, *token.Contract)
	}

	whitelisted, err := r.IsWhitelisted(ctx, tx, contract)
	if err != nil {
		return err
	}
	if !whitelisted {
		return fmt.Errorf("%w: %s", domain.ErrNotWhitelisted, contract)
	}

	return tx.SetTokenContract(ctx, ticker.String(), contract.String())
}
