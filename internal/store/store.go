package store

import (
	"context"

	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// ActionQueryFilter filters action journal queries
type ActionQueryFilter struct {
	// Contract restricts results to actions executed against this contract
	Contract string
	// Action restricts results to one action name
	Action string
	// Since returns only entries with a cursor greater than this value
	Since int64
	// Limit caps the number of returned entries
	Limit int
}

// Store defines the interface for database operations.
// Getters return nil, nil when the record does not exist.
type Store interface {
	// Transaction runs fn in a single all-or-nothing unit of work.
	// Calling Transaction on the store passed to fn joins the enclosing unit.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// GetRegistryConfig retrieves the registry configuration singleton
	GetRegistryConfig(ctx context.Context) (*schema.RegistryConfig, error)
	// SaveRegistryConfig stores the registry configuration singleton
	SaveRegistryConfig(ctx context.Context, cfg *schema.RegistryConfig) error

	// GetDepositBalance retrieves the deposit balance of an account
	GetDepositBalance(ctx context.Context, account string) (*schema.DepositBalance, error)
	// SaveDepositBalance creates or updates a deposit balance
	SaveDepositBalance(ctx context.Context, balance *schema.DepositBalance) error
	// DeleteDepositBalance removes a deposit balance
	DeleteDepositBalance(ctx context.Context, account string) error

	// GetWhitelistedContract retrieves a whitelist entry
	GetWhitelistedContract(ctx context.Context, account string) (*schema.WhitelistedContract, error)
	// CreateWhitelistedContract inserts a whitelist entry
	CreateWhitelistedContract(ctx context.Context, contract *schema.WhitelistedContract) error
	// DeleteWhitelistedContract removes a whitelist entry
	DeleteWhitelistedContract(ctx context.Context, account string) error
	// ListWhitelistedContracts lists whitelist entries ordered by account
	ListWhitelistedContracts(ctx context.Context) ([]schema.WhitelistedContract, error)

	// GetTokenByTicker retrieves a catalog entry by ticker
	GetTokenByTicker(ctx context.Context, ticker string) (*schema.Token, error)
	// GetTokenByContractTicker retrieves a catalog entry through the (contract, ticker) index
	GetTokenByContractTicker(ctx context.Context, contract, ticker string) (*schema.Token, error)
	// CreateToken inserts a catalog entry
	CreateToken(ctx context.Context, token *schema.Token) error
	// SetTokenContract binds a catalog entry to an issuing contract
	SetTokenContract(ctx context.Context, ticker, contract string) error
	// DeleteToken removes a catalog entry
	DeleteToken(ctx context.Context, ticker string) error
	// ListTokens lists catalog entries ordered by ticker
	ListTokens(ctx context.Context) ([]schema.Token, error)

	// GetIssuerConfig retrieves the configuration of an issuing contract
	GetIssuerConfig(ctx context.Context, contract string) (*schema.IssuerConfig, error)
	// SaveIssuerConfig creates or updates the configuration of an issuing contract
	SaveIssuerConfig(ctx context.Context, cfg *schema.IssuerConfig) error

	// GetTokenStat retrieves the supply record of a symbol kept by a contract
	GetTokenStat(ctx context.Context, contract, symbolCode string) (*schema.TokenStat, error)
	// SaveTokenStat creates or updates a supply record
	SaveTokenStat(ctx context.Context, stat *schema.TokenStat) error

	// GetLedgerBalance retrieves a balance kept by a token contract
	GetLedgerBalance(ctx context.Context, contract, account, symbolCode string) (*schema.LedgerBalance, error)
	// SaveLedgerBalance creates or updates a balance kept by a token contract
	SaveLedgerBalance(ctx context.Context, balance *schema.LedgerBalance) error
	// DeleteLedgerBalance removes a balance kept by a token contract
	DeleteLedgerBalance(ctx context.Context, contract, account, symbolCode string) error
	// ListLedgerBalances lists the balances of an account kept by a token contract, ordered by symbol code
	ListLedgerBalances(ctx context.Context, contract, account string) ([]schema.LedgerBalance, error)

	// CreateActionJournal appends an entry to the action journal and assigns its cursor
	CreateActionJournal(ctx context.Context, entry *schema.ActionJournal) error
	// GetActionJournal retrieves journal entries ordered by cursor along with the total count
	GetActionJournal(ctx context.Context, filter ActionQueryFilter) ([]schema.ActionJournal, uint64, error)

	// GetEmitterCursor retrieves the last published journal cursor of a named emitter, 0 when none was saved
	GetEmitterCursor(ctx context.Context, name string) (int64, error)
	// SetEmitterCursor stores the last published journal cursor of a named emitter
	SetEmitterCursor(ctx context.Context, name string, cursor int64) error
}

// emitterCursorKey is the key_value_store key holding the cursor of a named emitter
func emitterCursorKey(name string) string {
	return "emitter_cursor:" + name
}
