// Package engine executes registry, issuance and transfer actions. Each action
// runs as one all-or-nothing unit of work against the store and is recorded in
// the action journal when it commits.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-token-registry/internal/adapter"
	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/gateway"
	"github.com/feral-file/ff-token-registry/internal/issuance"
	"github.com/feral-file/ff-token-registry/internal/logger"
	"github.com/feral-file/ff-token-registry/internal/registry"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// Config describes the contracts hosted by the engine
type Config struct {
	// RegistryAccount is the account of the registry contract
	RegistryAccount domain.Name
	// DepositContract is the token contract keeping the deposit asset
	DepositContract domain.Name
	// IssuingContracts are the issuing contracts that can be bound to tickers
	IssuingContracts []domain.Name
	// StorageMarketAccounts overrides the accounts ignored by the deposit handler
	StorageMarketAccounts []domain.Name
}

// Engine hosts the contracts and executes actions against them
type Engine struct {
	store    store.Store
	router   *gateway.Router
	registry *registry.Registry
	deposit  *gateway.LocalToken
	issuers  map[domain.Name]*issuance.Ledger
	json     adapter.JSON
	jcs      adapter.JCS
	clock    adapter.Clock
}

// New wires the registry, the deposit token ledger and the issuing contracts to one gateway
func New(st store.Store, cfg Config, json adapter.JSON, jcs adapter.JCS, clock adapter.Clock) (*Engine, error) {
	if !cfg.RegistryAccount.Valid() {
		return nil, fmt.Errorf("%w: invalid registry account %q", domain.ErrValidation, cfg.RegistryAccount)
	}
	if !cfg.DepositContract.Valid() {
		return nil, fmt.Errorf("%w: invalid deposit contract %q", domain.ErrValidation, cfg.DepositContract)
	}

	router := gateway.NewRouter()

	var opts []registry.Option
	if len(cfg.StorageMarketAccounts) > 0 {
		opts = append(opts, registry.WithStorageMarketAccounts(cfg.StorageMarketAccounts...))
	}
	reg := registry.New(cfg.RegistryAccount, router, opts...)
	router.Subscribe(cfg.RegistryAccount, reg)

	deposit := gateway.NewLocalToken(cfg.DepositContract)
	router.RegisterLedger(cfg.DepositContract, deposit)

	issuers := make(map[domain.Name]*issuance.Ledger, len(cfg.IssuingContracts))
	for _, contract := range cfg.IssuingContracts {
		if !contract.Valid() {
			return nil, fmt.Errorf("%w: invalid issuing contract %q", domain.ErrValidation, contract)
		}
		if contract == cfg.RegistryAccount || contract == cfg.DepositContract {
			return nil, fmt.Errorf("%w: issuing contract %s is already hosted", domain.ErrValidation, contract)
		}
		l := issuance.New(contract, router, reg)
		router.RegisterLedger(contract, l)
		issuers[contract] = l
	}

	return &Engine{
		store:    st,
		router:   router,
		registry: reg,
		deposit:  deposit,
		issuers:  issuers,
		json:     json,
		jcs:      jcs,
		clock:    clock,
	}, nil
}

// Registry returns the hosted registry contract
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// DepositContract returns the account of the hosted deposit token contract
func (e *Engine) DepositContract() domain.Name {
	return e.deposit.Contract()
}

// Router returns the gateway shared by the hosted contracts
func (e *Engine) Router() *gateway.Router {
	return e.router
}

func (e *Engine) issuer(contract domain.Name) (*issuance.Ledger, error) {
	l, ok := e.issuers[contract]
	if !ok {
		return nil, fmt.Errorf("%w: unknown issuing contract %s", domain.ErrNotFound, contract)
	}
	return l, nil
}

// execute runs fn as one unit of work and journals the action when it commits.
// fn receives the context carrying the action log fields.
func (e *Engine) execute(ctx context.Context, contract domain.Name, action string, signers domain.Signers, data interface{}, fn func(ctx context.Context, tx store.Store) error) error {
	actor := actorOf(signers)
	ctx = logger.WithFields(ctx,
		zap.String("action", action),
		zap.String("contract", contract.String()),
		zap.String("actor", actor.String()))

	payload, err := adapter.CanonicalJSON(e.json, e.jcs, data)
	if err != nil {
		return fmt.Errorf("failed to encode action data: %w", err)
	}
	digest := sha256.Sum256(payload)

	logger.DebugCtx(ctx, "Executing action", zap.ByteString("data", payload))

	now := e.clock.Now().UTC()
	entry := &schema.ActionJournal{
		EventID:   ulid.MustNewDefault(now).String(),
		Contract:  contract.String(),
		Action:    action,
		Actor:     actor.String(),
		Data:      datatypes.JSON(payload),
		Digest:    hex.EncodeToString(digest[:]),
		CreatedAt: now,
	}

	err = e.store.Transaction(ctx, func(tx store.Store) error {
		if err := fn(ctx, tx); err != nil {
			return err
		}
		return tx.CreateActionJournal(ctx, entry)
	})
	if err != nil {
		if _, ok := domain.KindOf(err); ok {
			logger.InfoCtx(ctx, "Action rejected", zap.String("code", domain.CodeOf(err)), zap.Error(err))
		} else {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to execute action: %w", err))
		}
		return err
	}

	logger.InfoCtx(ctx, "Action committed",
		zap.Int64("cursor", entry.Cursor),
		zap.String("event_id", entry.EventID))
	return nil
}

func actorOf(signers domain.Signers) domain.Name {
	if len(signers) == 0 {
		return ""
	}
	return signers[0]
}
