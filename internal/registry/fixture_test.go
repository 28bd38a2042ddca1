package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/registry"
	"github.com/feral-file/ff-token-registry/internal/store"
)

const (
	registryAccount = domain.Name("registry")
	depositContract = domain.Name("eosio.token")
	feeReceiver     = domain.Name("feesink")
)

var sys = domain.NewSymbol("SYS", 4)

func sysAsset(amount int64) domain.Asset {
	return domain.NewAsset(amount, sys)
}

type fixture struct {
	ctx    context.Context
	store  store.Store
	router *gateway.Router
	token  *gateway.LocalToken
	reg    *registry.Registry
}

// newFixture builds a registry wired to a local SYS token through a router.
// The registry is configured with a 10.0000 SYS fee but left disabled.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:    context.Background(),
		store:  store.NewMemoryStore(),
		router: gateway.NewRouter(),
		token:  gateway.NewLocalToken(depositContract),
	}
	f.reg = registry.New(registryAccount, f.router)
	f.router.RegisterLedger(depositContract, f.token)
	f.router.Subscribe(registryAccount, f.reg)

	f.run(t, func(tx store.Store) error {
		if err := f.token.Create(f.ctx, tx, domain.Signers{depositContract}, depositContract, sysAsset(10_000_000_000_000)); err != nil {
			return err
		}
		if err := f.token.Issue(f.ctx, tx, domain.Signers{depositContract}, depositContract, sysAsset(1_000_000_000), "genesis"); err != nil {
			return err
		}
		for _, account := range []domain.Name{"alice", "bob", "eosio.ram"} {
			if err := f.router.Transfer(f.ctx, tx, gateway.Transfer{
				Contract: depositContract,
				From:     depositContract,
				To:       account,
				Quantity: sysAsset(1_000_000),
			}); err != nil {
				return err
			}
		}
		_, err := f.reg.SetConfig(f.ctx, tx, domain.Signers{registryAccount}, registry.ConfigUpdate{
			DepositAsset: &domain.ExtendedSymbol{Contract: depositContract, Symbol: sys},
			Fees:         &registry.Fees{Receiver: feeReceiver, RegToken: sysAsset(100_000)},
		})
		return err
	})

	return f
}

// newEnabledFixture returns a fixture with the registry enabled
func newEnabledFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.run(t, func(tx store.Store) error {
		return f.reg.Enable(f.ctx, tx, domain.Signers{registryAccount})
	})
	return f
}

// run executes fn in a unit of work and requires it to succeed
func (f *fixture) run(t *testing.T, fn func(tx store.Store) error) {
	t.Helper()
	require.NoError(t, f.store.Transaction(f.ctx, fn))
}

// try executes fn in a unit of work and returns its error
func (f *fixture) try(fn func(tx store.Store) error) error {
	return f.store.Transaction(f.ctx, fn)
}

// deposit sends quantity from account to the registry through the gateway
func (f *fixture) deposit(account domain.Name, quantity domain.Asset) error {
	return f.try(func(tx store.Store) error {
		return f.router.Transfer(f.ctx, tx, gateway.Transfer{
			Contract: depositContract,
			From:     account,
			To:       registryAccount,
			Quantity: quantity,
			Memo:     "deposit",
		})
	})
}

func (f *fixture) depositBalance(t *testing.T, account domain.Name) *domain.Asset {
	t.Helper()
	balance, err := f.reg.Balance(f.ctx, f.store, account)
	require.NoError(t, err)
	return balance
}

func (f *fixture) tokenBalance(t *testing.T, account domain.Name) domain.Asset {
	t.Helper()
	balance, err := f.token.Balance(f.ctx, f.store, account, sys)
	require.NoError(t, err)
	return balance
}
