// Package registry implements the fee-gated token registry: its configuration,
// the deposit ledger, the contract whitelist, the ticker catalog and the
// registration workflow.
package registry

import (
	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/gateway"
)

// Registry is the registry contract. Every mutating method runs against the
// store it is given, which is expected to be a unit of work opened by the caller.
type Registry struct {
	account        domain.Name
	gateway        gateway.Gateway
	storageMarkets map[domain.Name]struct{}
}

// Option configures a Registry
type Option func(*Registry)

// WithStorageMarketAccounts sets the gateway-internal accounts whose transfers the deposit handler ignores
func WithStorageMarketAccounts(accounts ...domain.Name) Option {
	return func(r *Registry) {
		r.storageMarkets = make(map[domain.Name]struct{}, len(accounts))
		for _, a := range accounts {
			r.storageMarkets[a] = struct{}{}
		}
	}
}

// New creates the registry contract living at account
func New(account domain.Name, gw gateway.Gateway, opts ...Option) *Registry {
	r := &Registry{
		account: account,
		gateway: gw,
	}
	WithStorageMarketAccounts(domain.DefaultStorageMarketAccounts...)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Account returns the registry account
func (r *Registry) Account() domain.Name {
	return r.account
}
