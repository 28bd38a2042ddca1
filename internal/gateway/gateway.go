// Package gateway moves fungible value between accounts and notifies the
// contracts involved before the transfer returns.
package gateway

import (
	"context"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/store"
)

// Transfer is a movement of value kept by a token contract
type Transfer struct {
	// Contract is the token contract keeping the balances
	Contract domain.Name  `json:"contract"`
	From     domain.Name  `json:"from"`
	To       domain.Name  `json:"to"`
	Quantity domain.Asset `json:"quantity"`
	Memo     string       `json:"memo"`
}

// Gateway executes transfers inside the caller's unit of work
//
//go:generate mockgen -source=gateway.go -destination=../mocks/gateway.go -package=mocks -mock_names=Gateway=MockGateway,Listener=MockListener
type Gateway interface {
	// Transfer moves value and delivers notifications synchronously.
	// Any failure, including a failing listener, fails the whole transfer.
	Transfer(ctx context.Context, tx store.Store, t Transfer) error
}

// Listener receives notifications of transfers involving the account it is subscribed for
type Listener interface {
	// OnTransfer is called once per involved account, after balances moved
	OnTransfer(ctx context.Context, tx store.Store, t Transfer) error
}

// Ledger keeps the balances of one token contract
type Ledger interface {
	// Transfer validates and moves balances without notifying anyone
	Transfer(ctx context.Context, tx store.Store, t Transfer) error
}
