package executor

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/api/shared/dto"
	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/engine"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/registry"
	"github.com/feral-file/ff-token-registry/internal/store"
)

const (
	DEFAULT_ACTIONS_LIMIT = 20
	MAX_ACTIONS_LIMIT     = 100
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetConfig returns the registry configuration
	GetConfig(ctx context.Context) (*dto.ConfigResponse, error)
	// ListContracts lists the contract whitelist
	ListContracts(ctx context.Context) (*dto.ContractListResponse, error)
	// ListTokens lists the ticker catalog
	ListTokens(ctx context.Context) (*dto.TokenListResponse, error)
	// GetToken returns a catalog entry by ticker
	GetToken(ctx context.Context, ticker domain.SymbolCode) (*dto.TokenResponse, error)
	// GetTokenByContract returns the catalog entry bound to contract for ticker
	GetTokenByContract(ctx context.Context, contract domain.Name, ticker domain.SymbolCode) (*dto.TokenResponse, error)
	// GetDepositBalance returns the deposit balance of account
	GetDepositBalance(ctx context.Context, account domain.Name) (*dto.DepositBalanceResponse, error)
	// GetStat returns the supply record of ticker on an issuing contract
	GetStat(ctx context.Context, contract domain.Name, ticker domain.SymbolCode) (*dto.StatResponse, error)
	// GetLedgerBalances returns the balances account holds on a token contract
	GetLedgerBalances(ctx context.Context, contract domain.Name, account domain.Name) (*dto.LedgerBalancesResponse, error)
	// GetActions returns a page of the action journal
	GetActions(ctx context.Context, contract string, action string, since int64, limit int) (*dto.ActionListResponse, error)

	SetConfig(ctx context.Context, signers domain.Signers, update registry.ConfigUpdate) (*dto.ConfigResponse, error)
	Enable(ctx context.Context, signers domain.Signers) error
	Disable(ctx context.Context, signers domain.Signers) error
	AddContract(ctx context.Context, signers domain.Signers, req engine.ContractRequest) error
	RemoveContract(ctx context.Context, signers domain.Signers, req engine.ContractRequest) error
	AddToken(ctx context.Context, signers domain.Signers, req engine.AddTokenRequest) error
	RemoveToken(ctx context.Context, signers domain.Signers, req engine.TickerRequest) error
	RegToken(ctx context.Context, signers domain.Signers, req registry.RegTokenRequest) error
	SetContract(ctx context.Context, signers domain.Signers, req engine.SetContractRequest) error
	OpenBalance(ctx context.Context, signers domain.Signers, req engine.AccountRequest) error
	CloseBalance(ctx context.Context, signers domain.Signers, req engine.AccountRequest) error
	Withdraw(ctx context.Context, signers domain.Signers, req engine.WithdrawRequest) error
	SetRegistry(ctx context.Context, signers domain.Signers, req engine.SetRegistryRequest) error
	SetSupply(ctx context.Context, signers domain.Signers, req engine.SetSupplyRequest) error
	Distribute(ctx context.Context, signers domain.Signers, req engine.DistributeRequest) error
	Open(ctx context.Context, signers domain.Signers, req engine.OpenRequest) error
	Close(ctx context.Context, signers domain.Signers, req engine.CloseRequest) error
	Transfer(ctx context.Context, signers domain.Signers, req gateway.Transfer) error
	// Create and Issue act on the deposit token contract; any other contract is not found
	Create(ctx context.Context, signers domain.Signers, contract domain.Name, req engine.CreateRequest) error
	Issue(ctx context.Context, signers domain.Signers, contract domain.Name, req engine.IssueRequest) error
}

// executor embeds the engine so actions pass straight through; queries are mapped to DTOs
type executor struct {
	*engine.Engine
}

func NewExecutor(eng *engine.Engine) Executor {
	return &executor{Engine: eng}
}

func (e *executor) GetConfig(ctx context.Context) (*dto.ConfigResponse, error) {
	cfg, err := e.Engine.Config(ctx)
	if err != nil {
		return nil, err
	}
	return dto.MapConfigToDTO(cfg), nil
}

func (e *executor) SetConfig(ctx context.Context, signers domain.Signers, update registry.ConfigUpdate) (*dto.ConfigResponse, error) {
	cfg, err := e.Engine.SetConfig(ctx, signers, update)
	if err != nil {
		return nil, err
	}
	return dto.MapConfigToDTO(cfg), nil
}

func (e *executor) ListContracts(ctx context.Context) (*dto.ContractListResponse, error) {
	contracts, err := e.Engine.ListContracts(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ContractListResponse{Contracts: make([]string, 0, len(contracts))}
	for _, c := range contracts {
		resp.Contracts = append(resp.Contracts, c.String())
	}
	return resp, nil
}

func (e *executor) ListTokens(ctx context.Context) (*dto.TokenListResponse, error) {
	tokens, err := e.Engine.ListTokens(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.TokenListResponse{Tokens: make([]dto.TokenResponse, 0, len(tokens))}
	for _, token := range tokens {
		resp.Tokens = append(resp.Tokens, dto.MapTokenToDTO(token))
	}
	return resp, nil
}

func (e *executor) GetToken(ctx context.Context, ticker domain.SymbolCode) (*dto.TokenResponse, error) {
	token, err := e.Engine.GetToken(ctx, ticker)
	if err != nil {
		return nil, err
	}
	resp := dto.MapTokenToDTO(*token)
	return &resp, nil
}

func (e *executor) GetTokenByContract(ctx context.Context, contract domain.Name, ticker domain.SymbolCode) (*dto.TokenResponse, error) {
	token, err := e.Engine.GetTokenByContract(ctx, contract, ticker)
	if err != nil {
		return nil, err
	}
	resp := dto.MapTokenToDTO(*token)
	return &resp, nil
}

func (e *executor) GetDepositBalance(ctx context.Context, account domain.Name) (*dto.DepositBalanceResponse, error) {
	balance, err := e.Engine.DepositBalance(ctx, account)
	if err != nil {
		return nil, err
	}
	return &dto.DepositBalanceResponse{Account: account.String(), Balance: balance.String()}, nil
}

func (e *executor) GetStat(ctx context.Context, contract domain.Name, ticker domain.SymbolCode) (*dto.StatResponse, error) {
	stat, err := e.Engine.IssuanceStat(ctx, contract, ticker)
	if err != nil {
		return nil, err
	}
	return dto.MapStatToDTO(contract, *stat), nil
}

func (e *executor) GetLedgerBalances(ctx context.Context, contract domain.Name, account domain.Name) (*dto.LedgerBalancesResponse, error) {
	balances, err := e.Engine.LedgerBalances(ctx, contract, account)
	if err != nil {
		return nil, err
	}

	resp := &dto.LedgerBalancesResponse{
		Contract: contract.String(),
		Account:  account.String(),
		Balances: make([]string, 0, len(balances)),
	}
	for _, b := range balances {
		resp.Balances = append(resp.Balances, b.String())
	}
	return resp, nil
}

func (e *executor) Create(ctx context.Context, signers domain.Signers, contract domain.Name, req engine.CreateRequest) error {
	if err := e.checkDepositContract(contract); err != nil {
		return err
	}
	return e.Engine.Create(ctx, signers, req)
}

func (e *executor) Issue(ctx context.Context, signers domain.Signers, contract domain.Name, req engine.IssueRequest) error {
	if err := e.checkDepositContract(contract); err != nil {
		return err
	}
	return e.Engine.Issue(ctx, signers, req)
}

func (e *executor) checkDepositContract(contract domain.Name) error {
	if contract != e.Engine.DepositContract() {
		return fmt.Errorf("%w: %s does not accept create or issue", domain.ErrNotFound, contract)
	}
	return nil
}

func (e *executor) GetActions(ctx context.Context, contract string, action string, since int64, limit int) (*dto.ActionListResponse, error) {
	if limit <= 0 {
		limit = DEFAULT_ACTIONS_LIMIT
	}
	if limit > MAX_ACTIONS_LIMIT {
		limit = MAX_ACTIONS_LIMIT
	}

	entries, total, err := e.Engine.Actions(ctx, store.ActionQueryFilter{
		Contract: contract,
		Action:   action,
		Since:    since,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ActionListResponse{
		Actions: make([]dto.ActionResponse, 0, len(entries)),
		Total:   total,
	}
	for _, entry := range entries {
		resp.Actions = append(resp.Actions, dto.MapActionToDTO(entry))
	}
	if len(entries) > 0 {
		next := entries[len(entries)-1].Cursor
		resp.NextCursor = &next
	}
	return resp, nil
}
