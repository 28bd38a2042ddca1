package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// StoreTestSuite provides the interface for running store tests against different implementations
type StoreTestSuite struct {
	Store Store
	// InitDB should be called before each test to initialize the database
	InitDB func(t *testing.T) Store
	// CleanupDB should be called after each test to clean up the database
	CleanupDB func(t *testing.T)
}

// =============================================================================
// Test Data Builders
// =============================================================================

func strPtr(s string) *string {
	return &s
}

// buildTestToken creates an unbound catalog entry
func buildTestToken(ticker string, precision uint8, creator string) *schema.Token {
	return &schema.Token{
		Ticker:    ticker,
		Precision: precision,
		Creator:   creator,
	}
}

// buildTestJournal creates an action journal entry
func buildTestJournal(eventID, contract, action string) *schema.ActionJournal {
	return &schema.ActionJournal{
		EventID:  eventID,
		Contract: contract,
		Action:   action,
		Actor:    "alice",
		Data:     datatypes.JSON(`{"ticker":"FOO"}`),
		Digest:   "digest",
	}
}

// =============================================================================
// Tests
// =============================================================================

func testRegistryConfig(t *testing.T, store Store) {
	ctx := context.Background()

	cfg, err := store.GetRegistryConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	err = store.SaveRegistryConfig(ctx, &schema.RegistryConfig{
		DepositContract: strPtr("eosio.token"),
		DepositSymbol:   strPtr("4,SYS"),
		MinTickerLength: 3,
	})
	require.NoError(t, err)

	cfg, err = store.GetRegistryConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, schema.RegistryConfigID, cfg.ID)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "eosio.token", *cfg.DepositContract)
	assert.Nil(t, cfg.FeeReceiver)
	assert.Equal(t, 3, cfg.MinTickerLength)

	cfg.Enabled = true
	cfg.FeeReceiver = strPtr("fees")
	cfg.RegTokenFee = strPtr("10.0000 SYS")
	require.NoError(t, store.SaveRegistryConfig(ctx, cfg))

	cfg, err = store.GetRegistryConfig(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "fees", *cfg.FeeReceiver)
	assert.Equal(t, "10.0000 SYS", *cfg.RegTokenFee)
}

func testDepositBalances(t *testing.T, store Store) {
	ctx := context.Background()

	balance, err := store.GetDepositBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, balance)

	require.NoError(t, store.SaveDepositBalance(ctx, &schema.DepositBalance{Account: "alice", Amount: 0, Symbol: "4,SYS"}))
	balance, err = store.GetDepositBalance(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, int64(0), balance.Amount)

	balance.Amount = 100000
	require.NoError(t, store.SaveDepositBalance(ctx, balance))
	balance, err = store.GetDepositBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), balance.Amount)
	assert.Equal(t, "4,SYS", balance.Symbol)

	require.NoError(t, store.DeleteDepositBalance(ctx, "alice"))
	balance, err = store.GetDepositBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, balance)
}

func testWhitelist(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.CreateWhitelistedContract(ctx, &schema.WhitelistedContract{Account: "tokens"}))
	require.NoError(t, store.CreateWhitelistedContract(ctx, &schema.WhitelistedContract{Account: "alpha"}))

	entry, err := store.GetWhitelistedContract(ctx, "tokens")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "tokens", entry.Account)

	// Run inside a unit of work so a failed statement does not poison the PostgreSQL test transaction
	err = store.Transaction(ctx, func(tx Store) error {
		return tx.CreateWhitelistedContract(ctx, &schema.WhitelistedContract{Account: "tokens"})
	})
	assert.Error(t, err)

	list, err := store.ListWhitelistedContracts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Account)
	assert.Equal(t, "tokens", list[1].Account)

	require.NoError(t, store.DeleteWhitelistedContract(ctx, "tokens"))
	entry, err = store.GetWhitelistedContract(ctx, "tokens")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func testTokens(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.CreateToken(ctx, buildTestToken("FOO", 4, "alice")))
	require.NoError(t, store.CreateToken(ctx, buildTestToken("BAR", 0, "bob")))

	token, err := store.GetTokenByTicker(ctx, "FOO")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, uint8(4), token.Precision)
	assert.Equal(t, "alice", token.Creator)
	assert.False(t, token.IsBound())

	// Unbound tokens are not reachable through the secondary index
	token, err = store.GetTokenByContractTicker(ctx, "tokens", "FOO")
	require.NoError(t, err)
	assert.Nil(t, token)

	require.NoError(t, store.SetTokenContract(ctx, "FOO", "tokens"))

	token, err = store.GetTokenByTicker(ctx, "FOO")
	require.NoError(t, err)
	require.True(t, token.IsBound())
	assert.Equal(t, "tokens", *token.Contract)

	token, err = store.GetTokenByContractTicker(ctx, "tokens", "FOO")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "FOO", token.Ticker)

	token, err = store.GetTokenByContractTicker(ctx, "other", "FOO")
	require.NoError(t, err)
	assert.Nil(t, token)

	assert.Error(t, store.SetTokenContract(ctx, "NOPE", "tokens"))

	list, err := store.ListTokens(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BAR", list[0].Ticker)
	assert.Equal(t, "FOO", list[1].Ticker)

	// Deleting keeps the secondary index consistent
	require.NoError(t, store.DeleteToken(ctx, "FOO"))
	token, err = store.GetTokenByTicker(ctx, "FOO")
	require.NoError(t, err)
	assert.Nil(t, token)
	token, err = store.GetTokenByContractTicker(ctx, "tokens", "FOO")
	require.NoError(t, err)
	assert.Nil(t, token)

	// The ticker can be registered again after removal
	require.NoError(t, store.CreateToken(ctx, buildTestToken("FOO", 2, "carol")))
	token, err = store.GetTokenByTicker(ctx, "FOO")
	require.NoError(t, err)
	assert.Equal(t, "carol", token.Creator)
	assert.False(t, token.IsBound())
}

func testIssuerConfig(t *testing.T, store Store) {
	ctx := context.Background()

	cfg, err := store.GetIssuerConfig(ctx, "tokens")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, store.SaveIssuerConfig(ctx, &schema.IssuerConfig{Contract: "tokens", Registry: "registry"}))
	require.NoError(t, store.SaveIssuerConfig(ctx, &schema.IssuerConfig{Contract: "tokens", Registry: "registry2"}))

	cfg, err = store.GetIssuerConfig(ctx, "tokens")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "registry2", cfg.Registry)
}

func testTokenStats(t *testing.T, store Store) {
	ctx := context.Background()

	stat, err := store.GetTokenStat(ctx, "tokens", "FOO")
	require.NoError(t, err)
	assert.Nil(t, stat)

	require.NoError(t, store.SaveTokenStat(ctx, &schema.TokenStat{
		Contract:   "tokens",
		SymbolCode: "FOO",
		Precision:  4,
		Supply:     10000000,
		MaxSupply:  10000000,
		Issuer:     "alice",
	}))

	stat, err = store.GetTokenStat(ctx, "tokens", "FOO")
	require.NoError(t, err)
	require.NotNil(t, stat)
	assert.Equal(t, int64(10000000), stat.Supply)
	assert.Equal(t, int64(10000000), stat.MaxSupply)
	assert.Equal(t, "alice", stat.Issuer)
	assert.Equal(t, uint8(4), stat.Precision)

	stat, err = store.GetTokenStat(ctx, "other", "FOO")
	require.NoError(t, err)
	assert.Nil(t, stat)
}

func testLedgerBalances(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.SaveLedgerBalance(ctx, &schema.LedgerBalance{Contract: "tokens", Account: "bob", SymbolCode: "FOO", Precision: 4}))
	require.NoError(t, store.SaveLedgerBalance(ctx, &schema.LedgerBalance{Contract: "tokens", Account: "bob", SymbolCode: "BAR", Precision: 0, Amount: 5}))
	require.NoError(t, store.SaveLedgerBalance(ctx, &schema.LedgerBalance{Contract: "other", Account: "bob", SymbolCode: "FOO", Precision: 4, Amount: 7}))

	balance, err := store.GetLedgerBalance(ctx, "tokens", "bob", "FOO")
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, int64(0), balance.Amount)

	balance.Amount = 6000000
	require.NoError(t, store.SaveLedgerBalance(ctx, balance))
	balance, err = store.GetLedgerBalance(ctx, "tokens", "bob", "FOO")
	require.NoError(t, err)
	assert.Equal(t, int64(6000000), balance.Amount)

	list, err := store.ListLedgerBalances(ctx, "tokens", "bob")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BAR", list[0].SymbolCode)
	assert.Equal(t, "FOO", list[1].SymbolCode)

	require.NoError(t, store.DeleteLedgerBalance(ctx, "tokens", "bob", "BAR"))
	balance, err = store.GetLedgerBalance(ctx, "tokens", "bob", "BAR")
	require.NoError(t, err)
	assert.Nil(t, balance)

	balance, err = store.GetLedgerBalance(ctx, "other", "bob", "FOO")
	require.NoError(t, err)
	assert.Equal(t, int64(7), balance.Amount)
}

func testActionJournal(t *testing.T, store Store) {
	ctx := context.Background()

	first := buildTestJournal("01J0000000000000000000000A", "registry", "regtoken")
	require.NoError(t, store.CreateActionJournal(ctx, first))
	second := buildTestJournal("01J0000000000000000000000B", "tokens", "setsupply")
	require.NoError(t, store.CreateActionJournal(ctx, second))
	third := buildTestJournal("01J0000000000000000000000C", "registry", "setcontract")
	require.NoError(t, store.CreateActionJournal(ctx, third))

	assert.Greater(t, second.Cursor, first.Cursor)
	assert.Greater(t, third.Cursor, second.Cursor)

	entries, total, err := store.GetActionJournal(ctx, ActionQueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, entries, 3)
	assert.Equal(t, "regtoken", entries[0].Action)

	entries, total, err = store.GetActionJournal(ctx, ActionQueryFilter{Contract: "registry"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, entries, 2)
	assert.Equal(t, "setcontract", entries[1].Action)

	entries, total, err = store.GetActionJournal(ctx, ActionQueryFilter{Since: first.Cursor, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, entries, 1)
	assert.Equal(t, "setsupply", entries[0].Action)
	assert.JSONEq(t, `{"ticker":"FOO"}`, string(entries[0].Data))
}

func testTransactionCommit(t *testing.T, store Store) {
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateToken(ctx, buildTestToken("FOO", 4, "alice")); err != nil {
			return err
		}
		// Nested units join the enclosing one
		return tx.Transaction(ctx, func(inner Store) error {
			return inner.SaveDepositBalance(ctx, &schema.DepositBalance{Account: "alice", Amount: 1, Symbol: "4,SYS"})
		})
	})
	require.NoError(t, err)

	token, err := store.GetTokenByTicker(ctx, "FOO")
	require.NoError(t, err)
	assert.NotNil(t, token)
	balance, err := store.GetDepositBalance(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, balance)
}

func testTransactionRollback(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.SaveDepositBalance(ctx, &schema.DepositBalance{Account: "alice", Amount: 100000, Symbol: "4,SYS"}))

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.DeleteDepositBalance(ctx, "alice"); err != nil {
			return err
		}
		if err := tx.CreateToken(ctx, buildTestToken("FOO", 4, "alice")); err != nil {
			return err
		}
		if err := tx.SetTokenContract(ctx, "FOO", "tokens"); err != nil {
			return err
		}
		return tx.Transaction(ctx, func(inner Store) error {
			if err := inner.SaveLedgerBalance(ctx, &schema.LedgerBalance{Contract: "tokens", Account: "bob", SymbolCode: "FOO", Precision: 4}); err != nil {
				return err
			}
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	balance, err := store.GetDepositBalance(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, int64(100000), balance.Amount)

	token, err := store.GetTokenByTicker(ctx, "FOO")
	require.NoError(t, err)
	assert.Nil(t, token)
	token, err = store.GetTokenByContractTicker(ctx, "tokens", "FOO")
	require.NoError(t, err)
	assert.Nil(t, token)

	ledger, err := store.GetLedgerBalance(ctx, "tokens", "bob", "FOO")
	require.NoError(t, err)
	assert.Nil(t, ledger)
}

func testTransactionJournal(t *testing.T, store Store) {
	ctx := context.Background()

	first := buildTestJournal("01J0000000000000000000000A", "registry", "enable")
	require.NoError(t, store.CreateActionJournal(ctx, first))

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateActionJournal(ctx, buildTestJournal("01J0000000000000000000000B", "registry", "regtoken")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, total, err := store.GetActionJournal(ctx, ActionQueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, entries, 1)

	second := buildTestJournal("01J0000000000000000000000C", "tokens", "setsupply")
	err = store.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateActionJournal(ctx, second); err != nil {
			return err
		}
		// Entries of the open unit are visible to it
		entries, total, err := tx.GetActionJournal(ctx, ActionQueryFilter{Since: first.Cursor})
		if err != nil {
			return err
		}
		assert.Equal(t, uint64(1), total)
		assert.Equal(t, "setsupply", entries[0].Action)
		return nil
	})
	require.NoError(t, err)
	assert.Greater(t, second.Cursor, first.Cursor)

	third := buildTestJournal("01J0000000000000000000000D", "tokens", "distribute")
	require.NoError(t, store.CreateActionJournal(ctx, third))
	assert.Greater(t, third.Cursor, second.Cursor)

	entries, total, err = store.GetActionJournal(ctx, ActionQueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"enable", "setsupply", "distribute"}, []string{entries[0].Action, entries[1].Action, entries[2].Action})

	// Event ids stay unique across committed and pending entries
	err = store.Transaction(ctx, func(tx Store) error {
		return tx.CreateActionJournal(ctx, buildTestJournal("01J0000000000000000000000C", "tokens", "setsupply"))
	})
	assert.Error(t, err)
}

func testEmitterCursor(t *testing.T, store Store) {
	ctx := context.Background()

	cursor, err := store.GetEmitterCursor(ctx, "REGISTRY_ACTIONS")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cursor)

	require.NoError(t, store.SetEmitterCursor(ctx, "REGISTRY_ACTIONS", 42))
	require.NoError(t, store.SetEmitterCursor(ctx, "REGISTRY_ACTIONS", 57))
	require.NoError(t, store.SetEmitterCursor(ctx, "OTHER", 3))

	cursor, err = store.GetEmitterCursor(ctx, "REGISTRY_ACTIONS")
	require.NoError(t, err)
	assert.Equal(t, int64(57), cursor)

	cursor, err = store.GetEmitterCursor(ctx, "OTHER")
	require.NoError(t, err)
	assert.Equal(t, int64(3), cursor)
}

// RunStoreTests runs all store tests against a store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"RegistryConfig", testRegistryConfig},
		{"DepositBalances", testDepositBalances},
		{"Whitelist", testWhitelist},
		{"Tokens", testTokens},
		{"IssuerConfig", testIssuerConfig},
		{"TokenStats", testTokenStats},
		{"LedgerBalances", testLedgerBalances},
		{"ActionJournal", testActionJournal},
		{"TransactionCommit", testTransactionCommit},
		{"TransactionRollback", testTransactionRollback},
		{"TransactionJournal", testTransactionJournal},
		{"EmitterCursor", testEmitterCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
