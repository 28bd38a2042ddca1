package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-token-registry/internal/api/middleware"
	"github.com/feral-file/ff-token-registry/internal/api/shared/dto"
	"github.com/feral-file/ff-token-registry/internal/api/shared/executor"
	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/engine"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/registry"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetConfig returns the registry configuration
	// GET /api/v1/registry/config
	GetConfig(c *gin.Context)
	// SetConfig merges a partial configuration (admin)
	// POST /api/v1/registry/config
	SetConfig(c *gin.Context)
	// Enable opens the registry for registrations and deposits (admin)
	// POST /api/v1/registry/enable
	Enable(c *gin.Context)
	// Disable closes the registry (admin)
	// POST /api/v1/registry/disable
	Disable(c *gin.Context)

	// ListContracts lists the contract whitelist
	// GET /api/v1/registry/contracts
	ListContracts(c *gin.Context)
	// AddContract whitelists a contract (admin)
	// POST /api/v1/registry/contracts
	AddContract(c *gin.Context)
	// RemoveContract removes a contract from the whitelist (admin)
	// DELETE /api/v1/registry/contracts/:account
	RemoveContract(c *gin.Context)
	// GetTokenByContract returns the ticker bound to a contract
	// GET /api/v1/registry/contracts/:account/tokens/:ticker
	GetTokenByContract(c *gin.Context)

	// ListTokens lists the ticker catalog
	// GET /api/v1/registry/tokens
	ListTokens(c *gin.Context)
	// GetToken returns a ticker
	// GET /api/v1/registry/tokens/:ticker
	GetToken(c *gin.Context)
	// RegToken registers a ticker paying the fee from the creator's deposit balance (creator)
	// POST /api/v1/registry/tokens
	RegToken(c *gin.Context)
	// AddToken registers a ticker without a fee (admin)
	// POST /api/v1/registry/tokens/admin
	AddToken(c *gin.Context)
	// RemoveToken removes a ticker (admin)
	// DELETE /api/v1/registry/tokens/:ticker
	RemoveToken(c *gin.Context)
	// SetContract binds a ticker to a whitelisted issuing contract (creator)
	// POST /api/v1/registry/tokens/:ticker/contract
	SetContract(c *gin.Context)

	// GetDepositBalance returns a deposit balance
	// GET /api/v1/registry/balances/:account
	GetDepositBalance(c *gin.Context)
	// OpenBalance opens a deposit balance (account)
	// POST /api/v1/registry/balances/:account/open
	OpenBalance(c *gin.Context)
	// CloseBalance closes an empty deposit balance (account)
	// POST /api/v1/registry/balances/:account/close
	CloseBalance(c *gin.Context)
	// Withdraw returns deposited funds (account)
	// POST /api/v1/registry/balances/:account/withdraw
	Withdraw(c *gin.Context)

	// SetRegistry points an issuing contract at the registry (contract)
	// POST /api/v1/issuance/:contract/registry
	SetRegistry(c *gin.Context)
	// SetSupply fixes the supply of a bound ticker (creator)
	// POST /api/v1/issuance/:contract/supply
	SetSupply(c *gin.Context)
	// Distribute allocates the escrowed supply (creator)
	// POST /api/v1/issuance/:contract/distribute
	Distribute(c *gin.Context)
	// OpenIssuanceBalance opens a balance on an issuing contract (payer)
	// POST /api/v1/issuance/:contract/balances/open
	OpenIssuanceBalance(c *gin.Context)
	// CloseIssuanceBalance closes an empty balance on an issuing contract (owner)
	// POST /api/v1/issuance/:contract/balances/close
	CloseIssuanceBalance(c *gin.Context)
	// GetStat returns the supply record of a ticker
	// GET /api/v1/issuance/:contract/stats/:ticker
	GetStat(c *gin.Context)

	// GetLedgerBalances returns the balances of an account on a token contract
	// GET /api/v1/ledgers/:contract/balances/:account
	GetLedgerBalances(c *gin.Context)
	// CreateSymbol defines a symbol on the deposit token contract (contract)
	// POST /api/v1/ledgers/:contract/create
	CreateSymbol(c *gin.Context)
	// IssueSymbol mints on the deposit token contract (issuer)
	// POST /api/v1/ledgers/:contract/issue
	IssueSymbol(c *gin.Context)

	// Transfer moves tokens on any hosted token contract (sender)
	// POST /api/v1/transfers
	Transfer(c *gin.Context)

	// ListActions returns the action journal
	// GET /api/v1/actions?contract=<contract>&action=<action>&since=<cursor>&limit=<limit>
	ListActions(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// bindBody decodes the JSON body into req, responding 422 on failure
func bindBody(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

// nameParam parses an account name path parameter, responding 400 on failure
func nameParam(c *gin.Context, key string) (domain.Name, bool) {
	name, err := domain.ParseName(c.Param(key))
	if err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid %s", key), err.Error())
		return "", false
	}
	return name, true
}

// tickerParam parses the ticker path parameter, responding 400 on failure
func tickerParam(c *gin.Context) (domain.SymbolCode, bool) {
	ticker, err := domain.ParseSymbolCode(c.Param("ticker"))
	if err != nil {
		respondBadRequest(c, "Invalid ticker", err.Error())
		return "", false
	}
	return ticker, true
}

// committed reports the outcome of an action
func committed(c *gin.Context, action string, err error) {
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to execute %s", action))
		return
	}
	c.JSON(http.StatusOK, dto.ActionResultResponse{Action: action, Status: "committed"})
}

func (h *handler) GetConfig(c *gin.Context) {
	resp, err := h.executor.GetConfig(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get config")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) SetConfig(c *gin.Context) {
	var req registry.ConfigUpdate
	if !bindBody(c, &req) {
		return
	}

	resp, err := h.executor.SetConfig(c.Request.Context(), middleware.Signers(c), req)
	if err != nil {
		respondError(c, err, "Failed to set config")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) Enable(c *gin.Context) {
	committed(c, engine.ActionEnable, h.executor.Enable(c.Request.Context(), middleware.Signers(c)))
}

func (h *handler) Disable(c *gin.Context) {
	committed(c, engine.ActionDisable, h.executor.Disable(c.Request.Context(), middleware.Signers(c)))
}

func (h *handler) ListContracts(c *gin.Context) {
	resp, err := h.executor.ListContracts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list contracts")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) AddContract(c *gin.Context) {
	var req engine.ContractRequest
	if !bindBody(c, &req) {
		return
	}
	committed(c, engine.ActionAddContract, h.executor.AddContract(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) RemoveContract(c *gin.Context) {
	account, ok := nameParam(c, "account")
	if !ok {
		return
	}
	req := engine.ContractRequest{Contract: account}
	committed(c, engine.ActionRmContract, h.executor.RemoveContract(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) GetTokenByContract(c *gin.Context) {
	account, ok := nameParam(c, "account")
	if !ok {
		return
	}
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}

	resp, err := h.executor.GetTokenByContract(c.Request.Context(), account, ticker)
	if err != nil {
		respondError(c, err, "Failed to get token")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) ListTokens(c *gin.Context) {
	resp, err := h.executor.ListTokens(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list tokens")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetToken(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}

	resp, err := h.executor.GetToken(c.Request.Context(), ticker)
	if err != nil {
		respondError(c, err, "Failed to get token")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) RegToken(c *gin.Context) {
	var req registry.RegTokenRequest
	if !bindBody(c, &req) {
		return
	}
	committed(c, engine.ActionRegToken, h.executor.RegToken(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) AddToken(c *gin.Context) {
	var req engine.AddTokenRequest
	if !bindBody(c, &req) {
		return
	}
	committed(c, engine.ActionAddToken, h.executor.AddToken(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) RemoveToken(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	req := engine.TickerRequest{Ticker: ticker}
	committed(c, engine.ActionRmToken, h.executor.RemoveToken(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) SetContract(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	var req engine.SetContractRequest
	if !bindBody(c, &req) {
		return
	}
	req.Ticker = ticker
	committed(c, engine.ActionSetContract, h.executor.SetContract(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) GetDepositBalance(c *gin.Context) {
	account, ok := nameParam(c, "account")
	if !ok {
		return
	}

	resp, err := h.executor.GetDepositBalance(c.Request.Context(), account)
	if err != nil {
		respondError(c, err, "Failed to get deposit balance")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) OpenBalance(c *gin.Context) {
	account, ok := nameParam(c, "account")
	if !ok {
		return
	}
	req := engine.AccountRequest{Account: account}
	committed(c, engine.ActionOpenBalance, h.executor.OpenBalance(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) CloseBalance(c *gin.Context) {
	account, ok := nameParam(c, "account")
	if !ok {
		return
	}
	req := engine.AccountRequest{Account: account}
	committed(c, engine.ActionCloseBalance, h.executor.CloseBalance(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) Withdraw(c *gin.Context) {
	account, ok := nameParam(c, "account")
	if !ok {
		return
	}
	var req engine.WithdrawRequest
	if !bindBody(c, &req) {
		return
	}
	req.Account = account
	committed(c, engine.ActionWithdraw, h.executor.Withdraw(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) SetRegistry(c *gin.Context) {
	contract, ok := nameParam(c, "contract")
	if !ok {
		return
	}
	var req engine.SetRegistryRequest
	if !bindBody(c, &req) {
		return
	}
	req.Contract = contract
	committed(c, engine.ActionSetRegistry, h.executor.SetRegistry(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) SetSupply(c *gin.Context) {
	contract, ok := nameParam(c, "contract")
	if !ok {
		return
	}
	var req engine.SetSupplyRequest
	if !bindBody(c, &req) {
		return
	}
	req.Contract = contract
	committed(c, engine.ActionSetSupply, h.executor.SetSupply(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) Distribute(c *gin.Context) {
	contract, ok := nameParam(c, "contract")
	if !ok {
		return
	}
	var req engine.DistributeRequest
	if !bindBody(c, &req) {
		return
	}
	req.Contract = contract
	committed(c, engine.ActionDistribute, h.executor.Distribute(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) OpenIssuanceBalance(c *gin.Context) {
	contract, ok := nameParam(c, "contract")
	if !ok {
		return
	}
	var req engine.OpenRequest
	if !bindBody(c, &req) {
		return
	}
	req.Contract = contract
	committed(c, engine.ActionOpen, h.executor.Open(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) CloseIssuanceBalance(c *gin.Context) {
	contract, ok := nameParam(c, "contract")
	if !ok {
		return
	}
	var req engine.CloseRequest
	if !bindBody(c, &req) {
		return
	}
	req.Contract = contract
	committed(c, engine.ActionClose, h.executor.Close(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) GetStat(c *gin.Context) {
	contract, ok := nameParam(c, "contract")
	if !ok {
		return
	}
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}

	resp, err := h.executor.GetStat(c.Request.Context(), contract, ticker)
	if err != nil {
		respondError(c, err, "Failed to get stat")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetLedgerBalances(c *gin.Context) {
	contract, ok := nameParam(c, "contract")
	if !ok {
		return
	}
	account, ok := nameParam(c, "account")
	if !ok {
		return
	}

	resp, err := h.executor.GetLedgerBalances(c.Request.Context(), contract, account)
	if err != nil {
		respondError(c, err, "Failed to get balances")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) CreateSymbol(c *gin.Context) {
	contract, ok := nameParam(c, "contract")
	if !ok {
		return
	}
	var req engine.CreateRequest
	if !bindBody(c, &req) {
		return
	}
	committed(c, engine.ActionCreate, h.executor.Create(c.Request.Context(), middleware.Signers(c), contract, req))
}

func (h *handler) IssueSymbol(c *gin.Context) {
	contract, ok := nameParam(c, "contract")
	if !ok {
		return
	}
	var req engine.IssueRequest
	if !bindBody(c, &req) {
		return
	}
	committed(c, engine.ActionIssue, h.executor.Issue(c.Request.Context(), middleware.Signers(c), contract, req))
}

func (h *handler) Transfer(c *gin.Context) {
	var req gateway.Transfer
	if !bindBody(c, &req) {
		return
	}
	committed(c, engine.ActionTransfer, h.executor.Transfer(c.Request.Context(), middleware.Signers(c), req))
}

func (h *handler) ListActions(c *gin.Context) {
	params, err := ParseListActionsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.GetActions(c.Request.Context(), params.Contract, params.Action, params.Since, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list actions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-token-registry-api",
	})
}
