package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/issuance"
	"github.com/feral-file/ff-token-registry/internal/registry"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// ActionResultResponse is returned by every committed action
type ActionResultResponse struct {
	Action string `json:"action"`
	Status string `json:"status"`
}

// ConfigResponse represents the registry configuration
type ConfigResponse struct {
	Enabled         bool                   `json:"enabled"`
	DepositAsset    *domain.ExtendedSymbol `json:"deposit_asset"`
	Fees            *registry.Fees         `json:"fees"`
	MinTickerLength int                    `json:"min_ticker_length"`
}

// TokenResponse represents a ticker catalog entry
type TokenResponse struct {
	Ticker    string  `json:"ticker"`
	Precision uint8   `json:"precision"`
	Symbol    string  `json:"symbol"`
	Creator   string  `json:"creator"`
	Contract  *string `json:"contract"`
}

// TokenListResponse represents the ticker catalog
type TokenListResponse struct {
	Tokens []TokenResponse `json:"tokens"`
}

// ContractListResponse represents the contract whitelist
type ContractListResponse struct {
	Contracts []string `json:"contracts"`
}

// DepositBalanceResponse represents a deposit balance kept by the registry
type DepositBalanceResponse struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
}

// LedgerBalancesResponse represents the balances an account holds on a token contract
type LedgerBalancesResponse struct {
	Contract string   `json:"contract"`
	Account  string   `json:"account"`
	Balances []string `json:"balances"`
}

// StatResponse represents the supply record of a ticker on an issuing contract
type StatResponse struct {
	Contract  string `json:"contract"`
	Supply    string `json:"supply"`
	MaxSupply string `json:"max_supply"`
	Issuer    string `json:"issuer"`
}

// ActionResponse represents a journaled action
type ActionResponse struct {
	Cursor    int64           `json:"cursor"`
	EventID   string          `json:"event_id"`
	Contract  string          `json:"contract"`
	Action    string          `json:"action"`
	Actor     string          `json:"actor"`
	Data      json.RawMessage `json:"data"`
	Digest    string          `json:"digest"`
	CreatedAt time.Time       `json:"created_at"`
}

// ActionListResponse represents a page of the action journal
type ActionListResponse struct {
	Actions []ActionResponse `json:"actions"`
	Total   uint64           `json:"total"`
	// NextCursor is the cursor to pass as since for the next page, nil when the page is empty
	NextCursor *int64 `json:"next_cursor"`
}

// MapConfigToDTO maps the registry configuration
func MapConfigToDTO(cfg registry.Config) *ConfigResponse {
	return &ConfigResponse{
		Enabled:         cfg.Enabled,
		DepositAsset:    cfg.DepositAsset,
		Fees:            cfg.Fees,
		MinTickerLength: cfg.MinTickerLength,
	}
}

// MapTokenToDTO maps a catalog entry
func MapTokenToDTO(token registry.Token) TokenResponse {
	resp := TokenResponse{
		Ticker:    token.Ticker.String(),
		Precision: token.Precision,
		Symbol:    token.Symbol().String(),
		Creator:   token.Creator.String(),
	}
	if token.Contract != nil {
		contract := token.Contract.String()
		resp.Contract = &contract
	}
	return resp
}

// MapStatToDTO maps a supply record
func MapStatToDTO(contract domain.Name, stat issuance.Stat) *StatResponse {
	return &StatResponse{
		Contract:  contract.String(),
		Supply:    stat.Supply.String(),
		MaxSupply: stat.MaxSupply.String(),
		Issuer:    stat.Issuer.String(),
	}
}

// MapActionToDTO maps a journal entry
func MapActionToDTO(entry schema.ActionJournal) ActionResponse {
	return ActionResponse{
		Cursor:    entry.Cursor,
		EventID:   entry.EventID,
		Contract:  entry.Contract,
		Action:    entry.Action,
		Actor:     entry.Actor,
		Data:      json.RawMessage(entry.Data),
		Digest:    entry.Digest,
		CreatedAt: entry.CreatedAt,
	}
}
