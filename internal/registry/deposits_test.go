package registry_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/mocks"
	"github.com/feral-file/ff-token-registry/internal/registry"
	"github.com/feral-file/ff-token-registry/internal/store"
)

func TestDepositCreditsSender(t *testing.T) {
	f := newEnabledFixture(t)

	require.NoError(t, f.deposit("alice", sysAsset(100_000)))
	require.NoError(t, f.deposit("alice", sysAsset(25_000)))

	balance := f.depositBalance(t, "alice")
	require.NotNil(t, balance)
	assert.Equal(t, "12.5000 SYS", balance.String())
	assert.Equal(t, sysAsset(125_000), f.tokenBalance(t, registryAccount))
	assert.Equal(t, sysAsset(875_000), f.tokenBalance(t, "alice"))
}

func TestDepositRejections(t *testing.T) {
	t.Run("disabled registry rejects the transfer", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.deposit("alice", sysAsset(100_000)), domain.ErrDisabled)
		assert.Equal(t, sysAsset(1_000_000), f.tokenBalance(t, "alice"))
		assert.Nil(t, f.depositBalance(t, "alice"))
	})

	t.Run("foreign token contract rejects the transfer", func(t *testing.T) {
		f := newEnabledFixture(t)
		fake := gateway.NewLocalToken("fake.token")
		f.router.RegisterLedger("fake.token", fake)

		f.run(t, func(tx store.Store) error {
			if err := fake.Create(f.ctx, tx, domain.Signers{"fake.token"}, "mallory", sysAsset(1_000_000)); err != nil {
				return err
			}
			return fake.Issue(f.ctx, tx, domain.Signers{"mallory"}, "mallory", sysAsset(1_000_000), "")
		})

		err := f.try(func(tx store.Store) error {
			return f.router.Transfer(f.ctx, tx, gateway.Transfer{
				Contract: "fake.token",
				From:     "mallory",
				To:       registryAccount,
				Quantity: sysAsset(100_000),
			})
		})
		assert.ErrorIs(t, err, domain.ErrWrongAsset)
		assert.Nil(t, f.depositBalance(t, "mallory"))

		balance, err := fake.Balance(f.ctx, f.store, "mallory", sys)
		require.NoError(t, err)
		assert.Equal(t, sysAsset(1_000_000), balance, "the rejected transfer is rolled back")
	})

	t.Run("storage market movements are ignored", func(t *testing.T) {
		f := newEnabledFixture(t)
		require.NoError(t, f.deposit("eosio.ram", sysAsset(100_000)))
		assert.Nil(t, f.depositBalance(t, "eosio.ram"))
		assert.Equal(t, sysAsset(100_000), f.tokenBalance(t, registryAccount))
	})
}

func TestOnTransferIgnoresUnrelatedTransfers(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)

	s := store.NewMemoryStore()
	reg := registry.New(registryAccount, gw)
	ctx := context.Background()

	// no configuration is stored, so reaching the enabled check would fail
	assert.NoError(t, reg.OnTransfer(ctx, s, gateway.Transfer{Contract: depositContract, From: registryAccount, To: "alice", Quantity: sysAsset(1)}))
	assert.NoError(t, reg.OnTransfer(ctx, s, gateway.Transfer{Contract: depositContract, From: "alice", To: "bob", Quantity: sysAsset(1)}))
	assert.NoError(t, reg.OnTransfer(ctx, s, gateway.Transfer{Contract: depositContract, From: "eosio.ramfee", To: registryAccount, Quantity: sysAsset(1)}))
	assert.ErrorIs(t, reg.OnTransfer(ctx, s, gateway.Transfer{Contract: depositContract, From: "alice", To: registryAccount, Quantity: sysAsset(1)}), domain.ErrDisabled)
}

func TestStorageMarketAccountsOption(t *testing.T) {
	s := store.NewMemoryStore()
	reg := registry.New(registryAccount, nil, registry.WithStorageMarketAccounts("custom.ram"))
	ctx := context.Background()

	assert.NoError(t, reg.OnTransfer(ctx, s, gateway.Transfer{Contract: depositContract, From: "custom.ram", To: registryAccount, Quantity: sysAsset(1)}))
	assert.ErrorIs(t, reg.OnTransfer(ctx, s, gateway.Transfer{Contract: depositContract, From: "eosio.ram", To: registryAccount, Quantity: sysAsset(1)}), domain.ErrDisabled)
}

func TestBalanceLifecycle(t *testing.T) {
	f := newEnabledFixture(t)

	open := func(signers domain.Signers, account domain.Name) error {
		return f.try(func(tx store.Store) error { return f.reg.OpenBalance(f.ctx, tx, signers, account) })
	}
	closeBalance := func(signers domain.Signers, account domain.Name) error {
		return f.try(func(tx store.Store) error { return f.reg.CloseBalance(f.ctx, tx, signers, account) })
	}

	assert.ErrorIs(t, open(domain.Signers{"bob"}, "alice"), domain.ErrMissingAuthority)
	assert.ErrorIs(t, closeBalance(domain.Signers{"alice"}, "alice"), domain.ErrNotOpen)

	require.NoError(t, open(domain.Signers{"alice"}, "alice"))
	assert.Equal(t, sysAsset(0), *f.depositBalance(t, "alice"))
	assert.ErrorIs(t, open(domain.Signers{"alice"}, "alice"), domain.ErrAlreadyOpen)

	require.NoError(t, closeBalance(domain.Signers{"alice"}, "alice"))
	assert.Nil(t, f.depositBalance(t, "alice"))

	require.NoError(t, open(domain.Signers{"alice"}, "alice"))
	require.NoError(t, f.deposit("alice", sysAsset(1)))
	assert.ErrorIs(t, closeBalance(domain.Signers{"alice"}, "alice"), domain.ErrNonZeroBalance)
	assert.Equal(t, sysAsset(1), *f.depositBalance(t, "alice"))
}

func TestCloseBalanceWhileDisabled(t *testing.T) {
	f := newEnabledFixture(t)
	f.run(t, func(tx store.Store) error { return f.reg.OpenBalance(f.ctx, tx, domain.Signers{"alice"}, "alice") })
	f.run(t, func(tx store.Store) error { return f.reg.Disable(f.ctx, tx, domain.Signers{registryAccount}) })

	assert.ErrorIs(t, f.try(func(tx store.Store) error {
		return f.reg.OpenBalance(f.ctx, tx, domain.Signers{"bob"}, "bob")
	}), domain.ErrDisabled)
	f.run(t, func(tx store.Store) error { return f.reg.CloseBalance(f.ctx, tx, domain.Signers{"alice"}, "alice") })
	assert.Nil(t, f.depositBalance(t, "alice"))
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name            string
		signers         domain.Signers
		quantity        domain.Asset
		expectedErr     error
		expectedDeposit *domain.Asset
		expectedTokens  domain.Asset
	}{
		{
			name:            "partial withdraw",
			signers:         domain.Signers{"alice"},
			quantity:        sysAsset(20_000),
			expectedDeposit: func() *domain.Asset { a := sysAsset(30_000); return &a }(),
			expectedTokens:  sysAsset(970_000),
		},
		{
			name:           "full withdraw closes the balance",
			signers:        domain.Signers{"alice"},
			quantity:       sysAsset(50_000),
			expectedTokens: sysAsset(1_000_000),
		},
		{
			name:        "requires owner authority",
			signers:     domain.Signers{"bob"},
			quantity:    sysAsset(1),
			expectedErr: domain.ErrMissingAuthority,
		},
		{
			name:        "wrong symbol",
			signers:     domain.Signers{"alice"},
			quantity:    domain.NewAsset(1, domain.NewSymbol("EOS", 4)),
			expectedErr: domain.ErrWrongAsset,
		},
		{
			name:        "non positive quantity",
			signers:     domain.Signers{"alice"},
			quantity:    sysAsset(0),
			expectedErr: domain.ErrValidation,
		},
		{
			name:        "overdraw",
			signers:     domain.Signers{"alice"},
			quantity:    sysAsset(50_001),
			expectedErr: domain.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEnabledFixture(t)
			require.NoError(t, f.deposit("alice", sysAsset(50_000)))

			err := f.try(func(tx store.Store) error {
				return f.reg.Withdraw(f.ctx, tx, tt.signers, "alice", tt.quantity)
			})
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Equal(t, sysAsset(50_000), *f.depositBalance(t, "alice"))
				assert.Equal(t, sysAsset(950_000), f.tokenBalance(t, "alice"))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedDeposit, f.depositBalance(t, "alice"))
			assert.Equal(t, tt.expectedTokens, f.tokenBalance(t, "alice"))
		})
	}
}

func TestWithdrawUsesWithdrawMemo(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	f := newEnabledFixture(t)
	reg := registry.New(registryAccount, gw)

	require.NoError(t, f.deposit("alice", sysAsset(50_000)))

	gw.EXPECT().
		Transfer(gomock.Any(), gomock.Any(), gateway.Transfer{
			Contract: depositContract,
			From:     registryAccount,
			To:       "alice",
			Quantity: sysAsset(10_000),
			Memo:     domain.MEMO_WITHDRAW,
		}).
		Return(nil)

	f.run(t, func(tx store.Store) error {
		return reg.Withdraw(f.ctx, tx, domain.Signers{"alice"}, "alice", sysAsset(10_000))
	})
	assert.Equal(t, sysAsset(40_000), *f.depositBalance(t, "alice"))
}

func TestWithdrawGatewayFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	f := newEnabledFixture(t)
	reg := registry.New(registryAccount, gw)

	require.NoError(t, f.deposit("alice", sysAsset(50_000)))
	gw.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)

	err := f.try(func(tx store.Store) error {
		return reg.Withdraw(f.ctx, tx, domain.Signers{"alice"}, "alice", sysAsset(10_000))
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, sysAsset(50_000), *f.depositBalance(t, "alice"))
}
