package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// TestMemoryStore runs all store tests against the memory store
func TestMemoryStore(t *testing.T) {
	RunStoreTests(t, func(t *testing.T) Store {
		return NewMemoryStore()
	}, func(t *testing.T) {})
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateToken(ctx, buildTestToken("FOO", 4, "alice")))
	require.NoError(t, s.SetTokenContract(ctx, "FOO", "tokens"))

	token, err := s.GetTokenByTicker(ctx, "FOO")
	require.NoError(t, err)
	*token.Contract = "mutated"
	token.Creator = "mallory"

	token, err = s.GetTokenByTicker(ctx, "FOO")
	require.NoError(t, err)
	assert.Equal(t, "tokens", *token.Contract)
	assert.Equal(t, "alice", token.Creator)
}

func TestMemoryStoreRejectsNegativeBalances(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	assert.Error(t, s.SaveDepositBalance(ctx, &schema.DepositBalance{Account: "alice", Amount: -1, Symbol: "4,SYS"}))
	assert.Error(t, s.SaveLedgerBalance(ctx, &schema.LedgerBalance{Contract: "tokens", Account: "bob", SymbolCode: "FOO", Amount: -1}))
	assert.Error(t, s.SaveTokenStat(ctx, &schema.TokenStat{Contract: "tokens", SymbolCode: "FOO", Supply: 2, MaxSupply: 1}))
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewMemoryStore().Transaction(ctx, func(tx Store) error {
		called = true
		return nil
	})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called)
}

func TestMemoryStoreSerializesTransactions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveDepositBalance(ctx, &schema.DepositBalance{Account: "alice", Symbol: "4,SYS"}))

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Transaction(ctx, func(tx Store) error {
				balance, err := tx.GetDepositBalance(ctx, "alice")
				if err != nil {
					return err
				}
				balance.Amount++
				return tx.SaveDepositBalance(ctx, balance)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balance, err := s.GetDepositBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), balance.Amount)
}
