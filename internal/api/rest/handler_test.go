package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-token-registry/internal/adapter"
	"github.com/feral-file/ff-token-registry/internal/api/middleware"
	"github.com/feral-file/ff-token-registry/internal/api/rest"
	"github.com/feral-file/ff-token-registry/internal/api/shared/dto"
	"github.com/feral-file/ff-token-registry/internal/api/shared/executor"
	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/engine"
	"github.com/feral-file/ff-token-registry/internal/store"
)

const apiKey = "test-key"

type testAPI struct {
	router *gin.Engine
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eng, err := engine.New(store.NewMemoryStore(), engine.Config{
		RegistryAccount:  "registry",
		DepositContract:  "eosio.token",
		IssuingContracts: []domain.Name{"tokens"},
	}, adapter.NewJSON(), adapter.NewJCS(), adapter.NewClock())
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RequestID())
	rest.SetupRoutes(router, rest.NewHandler(executor.NewExecutor(eng)), middleware.AuthConfig{APIKeys: []string{apiKey}})

	return &testAPI{router: router}
}

// do sends a request signed by signers; an empty signers sends it unauthenticated
func (a *testAPI) do(t *testing.T, method, path, signers string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if signers != "" {
		req.Header.Set("Authorization", "ApiKey "+apiKey)
		req.Header.Set(middleware.SIGNERS_HEADER, signers)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) mustDo(t *testing.T, method, path, signers string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := a.do(t, method, path, signers, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	decode(t, w, &body)
	return body.Code
}

// bootstrap creates SYS, funds alice, bob and carol and enables the registry with a 10.0000 SYS fee
func (a *testAPI) bootstrap(t *testing.T) {
	t.Helper()

	a.mustDo(t, http.MethodPost, "/api/v1/ledgers/eosio.token/create", "eosio.token", map[string]string{
		"issuer":         "eosio.token",
		"maximum_supply": "1000000000.0000 SYS",
	})
	a.mustDo(t, http.MethodPost, "/api/v1/ledgers/eosio.token/issue", "eosio.token", map[string]string{
		"to":       "eosio.token",
		"quantity": "10000.0000 SYS",
		"memo":     "genesis",
	})
	for _, account := range []string{"alice", "bob", "carol"} {
		a.mustDo(t, http.MethodPost, "/api/v1/transfers", "eosio.token", map[string]string{
			"contract": "eosio.token",
			"from":     "eosio.token",
			"to":       account,
			"quantity": "100.0000 SYS",
		})
	}

	a.mustDo(t, http.MethodPost, "/api/v1/registry/config", "registry", map[string]interface{}{
		"deposit_asset": map[string]string{"contract": "eosio.token", "symbol": "4,SYS"},
		"fees":          map[string]string{"receiver": "feesink", "regtoken": "10.0000 SYS"},
	})
	a.mustDo(t, http.MethodPost, "/api/v1/registry/enable", "registry", nil)
	a.mustDo(t, http.MethodPost, "/api/v1/registry/contracts", "registry", map[string]string{"contract": "tokens"})
	a.mustDo(t, http.MethodPost, "/api/v1/issuance/tokens/registry", "tokens", map[string]string{"registry": "registry"})
}

func TestHealthCheck(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRegistrationOverHTTP(t *testing.T) {
	api := setupAPI(t)
	api.bootstrap(t)

	// deposit and register FOO
	api.mustDo(t, http.MethodPost, "/api/v1/transfers", "alice", map[string]string{
		"contract": "eosio.token",
		"from":     "alice",
		"to":       "registry",
		"quantity": "10.0000 SYS",
	})
	var balance dto.DepositBalanceResponse
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/registry/balances/alice", "", nil), &balance)
	assert.Equal(t, "10.0000 SYS", balance.Balance)

	var result dto.ActionResultResponse
	decode(t, api.mustDo(t, http.MethodPost, "/api/v1/registry/tokens", "alice", map[string]interface{}{
		"creator":   "alice",
		"ticker":    "FOO",
		"precision": 4,
		"payment":   "10.0000 SYS",
	}), &result)
	assert.Equal(t, dto.ActionResultResponse{Action: "regtoken", Status: "committed"}, result)

	api.mustDo(t, http.MethodPost, "/api/v1/registry/tokens/FOO/contract", "alice", map[string]string{"contract": "tokens"})
	api.mustDo(t, http.MethodPost, "/api/v1/issuance/tokens/supply", "alice", map[string]string{
		"ticker": "FOO",
		"supply": "1000.0000 FOO",
	})

	var token dto.TokenResponse
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/registry/contracts/tokens/tokens/FOO", "", nil), &token)
	assert.Equal(t, "FOO", token.Ticker)
	assert.Equal(t, "4,FOO", token.Symbol)
	assert.Equal(t, "alice", token.Creator)
	require.NotNil(t, token.Contract)
	assert.Equal(t, "tokens", *token.Contract)

	var stat dto.StatResponse
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/issuance/tokens/stats/FOO", "", nil), &stat)
	assert.Equal(t, "1000.0000 FOO", stat.Supply)
	assert.Equal(t, "1000.0000 FOO", stat.MaxSupply)
	assert.Equal(t, "alice", stat.Issuer)

	// distribute to bob and carol
	for _, account := range []string{"bob", "carol"} {
		api.mustDo(t, http.MethodPost, "/api/v1/issuance/tokens/balances/open", account, map[string]string{
			"owner":  account,
			"symbol": "4,FOO",
			"payer":  account,
		})
	}

	w := api.do(t, http.MethodPost, "/api/v1/issuance/tokens/distribute", "alice", map[string]interface{}{
		"ticker": "FOO",
		"allocations": []map[string]string{
			{"receiver": "bob", "quantity": "600.0000 FOO"},
			{"receiver": "carol", "quantity": "399.0000 FOO"},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "allocation_mismatch", errorCode(t, w))

	api.mustDo(t, http.MethodPost, "/api/v1/issuance/tokens/distribute", "alice", map[string]interface{}{
		"ticker": "FOO",
		"allocations": []map[string]string{
			{"receiver": "bob", "quantity": "600.0000 FOO"},
			{"receiver": "carol", "quantity": "400.0000 FOO"},
		},
	})

	var balances dto.LedgerBalancesResponse
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/ledgers/tokens/balances/bob", "", nil), &balances)
	assert.Equal(t, []string{"600.0000 FOO"}, balances.Balances)

	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/ledgers/eosio.token/balances/feesink", "", nil), &balances)
	assert.Equal(t, []string{"10.0000 SYS"}, balances.Balances)

	// the journal pages by cursor
	var page dto.ActionListResponse
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/actions?contract=tokens&action=distribute", "", nil), &page)
	require.Len(t, page.Actions, 1)
	assert.Equal(t, uint64(1), page.Total)
	assert.Equal(t, "alice", page.Actions[0].Actor)
	require.NotNil(t, page.NextCursor)

	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/actions?limit=2", "", nil), &page)
	require.Len(t, page.Actions, 2)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, page.Actions[1].Cursor, *page.NextCursor)
	assert.Less(t, page.Actions[0].Cursor, page.Actions[1].Cursor)
}

func TestActionErrors(t *testing.T) {
	api := setupAPI(t)
	api.bootstrap(t)

	tests := []struct {
		name       string
		method     string
		path       string
		signers    string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unauthenticated action",
			method:     http.MethodPost,
			path:       "/api/v1/registry/disable",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:       "admin action signed by someone else",
			method:     http.MethodPost,
			path:       "/api/v1/registry/disable",
			signers:    "alice",
			wantStatus: http.StatusForbidden,
			wantCode:   "missing_authority",
		},
		{
			name:       "regtoken without deposit",
			method:     http.MethodPost,
			path:       "/api/v1/registry/tokens",
			signers:    "bob",
			body:       map[string]interface{}{"creator": "bob", "ticker": "BAR", "precision": 4, "payment": "10.0000 SYS"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "insufficient_balance",
		},
		{
			name:       "regtoken with wrong amount",
			method:     http.MethodPost,
			path:       "/api/v1/registry/tokens",
			signers:    "bob",
			body:       map[string]interface{}{"creator": "bob", "ticker": "BAR", "precision": 4, "payment": "5.0000 SYS"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "wrong_amount",
		},
		{
			name:       "malformed asset",
			method:     http.MethodPost,
			path:       "/api/v1/registry/tokens",
			signers:    "bob",
			body:       map[string]interface{}{"creator": "bob", "ticker": "BAR", "precision": 4, "payment": "ten SYS"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "validation_failed",
		},
		{
			name:       "unknown ticker",
			method:     http.MethodGet,
			path:       "/api/v1/registry/tokens/NOPE",
			wantStatus: http.StatusNotFound,
			wantCode:   "ticker_not_found",
		},
		{
			name:       "invalid ticker",
			method:     http.MethodGet,
			path:       "/api/v1/registry/tokens/nope",
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:       "duplicate whitelist entry",
			method:     http.MethodPost,
			path:       "/api/v1/registry/contracts",
			signers:    "registry",
			body:       map[string]string{"contract": "tokens"},
			wantStatus: http.StatusConflict,
			wantCode:   "duplicate",
		},
		{
			name:       "unknown issuing contract",
			method:     http.MethodGet,
			path:       "/api/v1/issuance/other/stats/FOO",
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "create on an issuing contract",
			method:     http.MethodPost,
			path:       "/api/v1/ledgers/tokens/create",
			signers:    "tokens",
			body:       map[string]string{"issuer": "tokens", "maximum_supply": "1.0000 BAR"},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "closing an unopened deposit balance",
			method:     http.MethodPost,
			path:       "/api/v1/registry/balances/bob/close",
			signers:    "bob",
			wantStatus: http.StatusConflict,
			wantCode:   "not_open",
		},
		{
			name:       "missing deposit balance",
			method:     http.MethodGet,
			path:       "/api/v1/registry/balances/bob",
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, tt.method, tt.path, tt.signers, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestDepositBalanceOverHTTP(t *testing.T) {
	api := setupAPI(t)
	api.bootstrap(t)

	var balance dto.DepositBalanceResponse
	api.mustDo(t, http.MethodPost, "/api/v1/registry/balances/bob/open", "bob", nil)
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/registry/balances/bob", "", nil), &balance)
	assert.Equal(t, "0.0000 SYS", balance.Balance)

	api.mustDo(t, http.MethodPost, "/api/v1/registry/balances/bob/close", "bob", nil)
	w := api.do(t, http.MethodGet, "/api/v1/registry/balances/bob", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	api.mustDo(t, http.MethodPost, "/api/v1/transfers", "bob", map[string]string{
		"contract": "eosio.token",
		"from":     "bob",
		"to":       "registry",
		"quantity": "25.0000 SYS",
	})
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/registry/balances/bob", "", nil), &balance)
	assert.Equal(t, "25.0000 SYS", balance.Balance)

	// withdrawing everything closes the deposit balance
	api.mustDo(t, http.MethodPost, "/api/v1/registry/balances/bob/withdraw", "bob", map[string]string{"quantity": "25.0000 SYS"})
	w = api.do(t, http.MethodGet, "/api/v1/registry/balances/bob", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var balances dto.LedgerBalancesResponse
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/ledgers/eosio.token/balances/bob", "", nil), &balances)
	assert.Equal(t, []string{"100.0000 SYS"}, balances.Balances)
}

func TestConfigOverHTTP(t *testing.T) {
	api := setupAPI(t)
	api.bootstrap(t)

	var cfg dto.ConfigResponse
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/registry/config", "", nil), &cfg)
	assert.True(t, cfg.Enabled)
	require.NotNil(t, cfg.Fees)
	assert.Equal(t, "10.0000 SYS", cfg.Fees.RegToken.String())
	require.NotNil(t, cfg.DepositAsset)
	assert.Equal(t, domain.Name("eosio.token"), cfg.DepositAsset.Contract)

	var contracts dto.ContractListResponse
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/registry/contracts", "", nil), &contracts)
	assert.Equal(t, []string{"tokens"}, contracts.Contracts)

	api.mustDo(t, http.MethodDelete, "/api/v1/registry/contracts/tokens", "registry", nil)
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/registry/contracts", "", nil), &contracts)
	assert.Empty(t, contracts.Contracts)

	api.mustDo(t, http.MethodPost, "/api/v1/registry/tokens/admin", "registry", map[string]interface{}{
		"creator": "carol", "ticker": "CAROL", "precision": 2,
	})
	var tokens dto.TokenListResponse
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/registry/tokens", "", nil), &tokens)
	require.Len(t, tokens.Tokens, 1)
	assert.Equal(t, "2,CAROL", tokens.Tokens[0].Symbol)
	assert.Nil(t, tokens.Tokens[0].Contract)

	api.mustDo(t, http.MethodDelete, "/api/v1/registry/tokens/CAROL", "registry", nil)
	decode(t, api.mustDo(t, http.MethodGet, "/api/v1/registry/tokens", "", nil), &tokens)
	assert.Empty(t, tokens.Tokens)
}
