package gateway

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/logger"
	"github.com/feral-file/ff-token-registry/internal/store"
)

// DefaultMaxDepth bounds how deeply transfers triggered by notifications may nest
const DefaultMaxDepth = 8

type depthKey struct{}

// Router dispatches transfers to the ledger of their token contract and then
// notifies the listeners subscribed for the sender and the receiver
type Router struct {
	mu        sync.RWMutex
	ledgers   map[domain.Name]Ledger
	listeners map[domain.Name][]Listener
	maxDepth  int
}

// NewRouter creates a router with no ledgers
func NewRouter() *Router {
	return &Router{
		ledgers:   make(map[domain.Name]Ledger),
		listeners: make(map[domain.Name][]Listener),
		maxDepth:  DefaultMaxDepth,
	}
}

// RegisterLedger routes transfers of contract to ledger
func (r *Router) RegisterLedger(contract domain.Name, ledger Ledger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledgers[contract] = ledger
}

// Subscribe delivers notifications of transfers from or to account to listener
func (r *Router) Subscribe(account domain.Name, listener Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[account] = append(r.listeners[account], listener)
}

// Transfer moves value and notifies the sender's and then the receiver's listeners
func (r *Router) Transfer(ctx context.Context, tx store.Store, t Transfer) error {
	depth, _ := ctx.Value(depthKey{}).(int)
	if depth >= r.maxDepth {
		return fmt.Errorf("%w: max notification depth %d exceeded", domain.ErrValidation, r.maxDepth)
	}
	ctx = context.WithValue(ctx, depthKey{}, depth+1)

	r.mu.RLock()
	ledger, ok := r.ledgers[t.Contract]
	fromListeners := r.listeners[t.From]
	toListeners := r.listeners[t.To]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: unknown token contract %s", domain.ErrNotFound, t.Contract)
	}

	logger.DebugCtx(ctx, "transfer",
		zap.String("contract", t.Contract.String()),
		zap.String("from", t.From.String()),
		zap.String("to", t.To.String()),
		zap.String("quantity", t.Quantity.String()),
		zap.Int("depth", depth))

	if err := ledger.Transfer(ctx, tx, t); err != nil {
		return err
	}

	for _, l := range fromListeners {
		if err := l.OnTransfer(ctx, tx, t); err != nil {
			return err
		}
	}
	for _, l := range toListeners {
		if err := l.OnTransfer(ctx, tx, t); err != nil {
			return err
		}
	}

	return nil
}
