package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// txLockKey is the advisory lock serializing every unit of work against the database
const txLockKey int64 = 0x7265676973747279

type pgStore struct {
	db   *gorm.DB
	inTx bool
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero settings fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Transaction runs fn inside a database transaction holding the store-wide advisory lock
func (s *pgStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", txLockKey).Error; err != nil {
			return fmt.Errorf("failed to acquire transaction lock: %w", err)
		}
		return fn(&pgStore{db: tx, inTx: true})
	})
}

// first loads a single record, mapping not-found to nil
func first[T any](ctx context.Context, db *gorm.DB, what string, query string, args ...any) (*T, error) {
	var record T
	err := db.WithContext(ctx).Where(query, args...).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return &record, nil
}

// GetRegistryConfig retrieves the registry configuration singleton
func (s *pgStore) GetRegistryConfig(ctx context.Context) (*schema.RegistryConfig, error) {
	return first[schema.RegistryConfig](ctx, s.db, "registry config", "id = ?", schema.RegistryConfigID)
}

// SaveRegistryConfig stores the registry configuration singleton
func (s *pgStore) SaveRegistryConfig(ctx context.Context, cfg *schema.RegistryConfig) error {
	cfg.ID = schema.RegistryConfigID
	cfg.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return fmt.Errorf("failed to save registry config: %w", err)
	}
	return nil
}

// GetDepositBalance retrieves the deposit balance of an account
func (s *pgStore) GetDepositBalance(ctx context.Context, account string) (*schema.DepositBalance, error) {
	return first[schema.DepositBalance](ctx, s.db, "deposit balance", "account = ?", account)
}

// SaveDepositBalance creates or updates a deposit balance
func (s *pgStore) SaveDepositBalance(ctx context.Context, balance *schema.DepositBalance) error {
	now := time.Now().UTC()
	balance.UpdatedAt = now
	if balance.CreatedAt.IsZero() {
		balance.CreatedAt = now
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "symbol", "updated_at"}),
		}).
		Create(balance).Error
	if err != nil {
		return fmt.Errorf("failed to save deposit balance: %w", err)
	}
	return nil
}

// DeleteDepositBalance removes a deposit balance
func (s *pgStore) DeleteDepositBalance(ctx context.Context, account string) error {
	err := s.db.WithContext(ctx).Where("account = ?", account).Delete(&schema.DepositBalance{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete deposit balance: %w", err)
	}
	return nil
}

// GetWhitelistedContract retrieves a whitelist entry
func (s *pgStore) GetWhitelistedContract(ctx context.Context, account string) (*schema.WhitelistedContract, error) {
	return first[schema.WhitelistedContract](ctx, s.db, "whitelisted contract", "account = ?", account)
}

// CreateWhitelistedContract inserts a whitelist entry
func (s *pgStore) CreateWhitelistedContract(ctx context.Context, contract *schema.WhitelistedContract) error {
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(contract).Error; err != nil {
		return fmt.Errorf("failed to create whitelisted contract: %w", err)
	}
	return nil
}

// DeleteWhitelistedContract removes a whitelist entry
func (s *pgStore) DeleteWhitelistedContract(ctx context.Context, account string) error {
	err := s.db.WithContext(ctx).Where("account = ?", account).Delete(&schema.WhitelistedContract{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete whitelisted contract: %w", err)
	}
	return nil
}

// ListWhitelistedContracts lists whitelist entries ordered by account
func (s *pgStore) ListWhitelistedContracts(ctx context.Context) ([]schema.WhitelistedContract, error) {
	var contracts []schema.WhitelistedContract
	if err := s.db.WithContext(ctx).Order("account ASC").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list whitelisted contracts: %w", err)
	}
	return contracts, nil
}

// GetTokenByTicker retrieves a catalog entry by ticker
func (s *pgStore) GetTokenByTicker(ctx context.Context, ticker string) (*schema.Token, error) {
	return first[schema.Token](ctx, s.db, "token", "ticker = ?", ticker)
}

// GetTokenByContractTicker retrieves a catalog entry through the (contract, ticker) index
func (s *pgStore) GetTokenByContractTicker(ctx context.Context, contract, ticker string) (*schema.Token, error) {
	return first[schema.Token](ctx, s.db, "token", "contract = ? AND ticker = ?", contract, ticker)
}

// CreateToken inserts a catalog entry
func (s *pgStore) CreateToken(ctx context.Context, token *schema.Token) error {
	now := time.Now().UTC()
	token.CreatedAt = now
	token.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

// SetTokenContract binds a catalog entry to an issuing contract
func (s *pgStore) SetTokenContract(ctx context.Context, ticker, contract string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Token{}).
		Where("ticker = ?", ticker).
		Updates(map[string]interface{}{
			"contract":   contract,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set token contract: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to set token contract: token %s does not exist", ticker)
	}
	return nil
}

// DeleteToken removes a catalog entry
func (s *pgStore) DeleteToken(ctx context.Context, ticker string) error {
	if err := s.db.WithContext(ctx).Where("ticker = ?", ticker).Delete(&schema.Token{}).Error; err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// ListTokens lists catalog entries ordered by ticker
func (s *pgStore) ListTokens(ctx context.Context) ([]schema.Token, error) {
	var tokens []schema.Token
	if err := s.db.WithContext(ctx).Order("ticker ASC").Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// GetIssuerConfig retrieves the configuration of an issuing contract
func (s *pgStore) GetIssuerConfig(ctx context.Context, contract string) (*schema.IssuerConfig, error) {
	return first[schema.IssuerConfig](ctx, s.db, "issuer config", "contract = ?", contract)
}

// SaveIssuerConfig creates or updates the configuration of an issuing contract
func (s *pgStore) SaveIssuerConfig(ctx context.Context, cfg *schema.IssuerConfig) error {
	cfg.UpdatedAt = time.Now().UTC()
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract"}},
			DoUpdates: clause.AssignmentColumns([]string{"registry", "updated_at"}),
		}).
		Create(cfg).Error
	if err != nil {
		return fmt.Errorf("failed to save issuer config: %w", err)
	}
	return nil
}

// GetTokenStat retrieves the supply record of a symbol kept by a contract
func (s *pgStore) GetTokenStat(ctx context.Context, contract, symbolCode string) (*schema.TokenStat, error) {
	return first[schema.TokenStat](ctx, s.db, "token stat", "contract = ? AND symbol_code = ?", contract, symbolCode)
}

// SaveTokenStat creates or updates a supply record
func (s *pgStore) SaveTokenStat(ctx context.Context, stat *schema.TokenStat) error {
	now := time.Now().UTC()
	stat.UpdatedAt = now
	if stat.CreatedAt.IsZero() {
		stat.CreatedAt = now
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract"}, {Name: "symbol_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"supply", "max_supply", "issuer", "updated_at"}),
		}).
		Create(stat).Error
	if err != nil {
		return fmt.Errorf("failed to save token stat: %w", err)
	}
	return nil
}

// GetLedgerBalance retrieves a balance kept by a token contract
func (s *pgStore) GetLedgerBalance(ctx context.Context, contract, account, symbolCode string) (*schema.LedgerBalance, error) {
	return first[schema.LedgerBalance](ctx, s.db, "ledger balance",
		"contract = ? AND account = ? AND symbol_code = ?", contract, account, symbolCode)
}

// SaveLedgerBalance creates or updates a balance kept by a token contract
func (s *pgStore) SaveLedgerBalance(ctx context.Context, balance *schema.LedgerBalance) error {
	now := time.Now().UTC()
	balance.UpdatedAt = now
	if balance.CreatedAt.IsZero() {
		balance.CreatedAt = now
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract"}, {Name: "account"}, {Name: "symbol_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(balance).Error
	if err != nil {
		return fmt.Errorf("failed to save ledger balance: %w", err)
	}
	return nil
}

// DeleteLedgerBalance removes a balance kept by a token contract
func (s *pgStore) DeleteLedgerBalance(ctx context.Context, contract, account, symbolCode string) error {
	err := s.db.WithContext(ctx).
		Where("contract = ? AND account = ? AND symbol_code = ?", contract, account, symbolCode).
		Delete(&schema.LedgerBalance{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete ledger balance: %w", err)
	}
	return nil
}

// ListLedgerBalances lists the balances of an account kept by a token contract, ordered by symbol code
func (s *pgStore) ListLedgerBalances(ctx context.Context, contract, account string) ([]schema.LedgerBalance, error) {
	var balances []schema.LedgerBalance
	err := s.db.WithContext(ctx).
		Where("contract = ? AND account = ?", contract, account).
		Order("symbol_code ASC").
		Find(&balances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger balances: %w", err)
	}
	return balances, nil
}

// CreateActionJournal appends an entry to the action journal and assigns its cursor
func (s *pgStore) CreateActionJournal(ctx context.Context, entry *schema.ActionJournal) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create action journal: %w", err)
	}
	return nil
}

// GetActionJournal retrieves journal entries ordered by cursor along with the total count
func (s *pgStore) GetActionJournal(ctx context.Context, filter ActionQueryFilter) ([]schema.ActionJournal, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.ActionJournal{})
	if filter.Contract != "" {
		query = query.Where("contract = ?", filter.Contract)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Since > 0 {
		query = query.Where("\"cursor\" > ?", filter.Since)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count action journal: %w", err)
	}

	var entries []schema.ActionJournal
	err := query.
		Order("\"cursor\" ASC").
		Limit(normalizeLimit(filter.Limit)).
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get action journal: %w", err)
	}

	return entries, uint64(total), nil //nolint:gosec,G115
}

// normalizeLimit applies the default and maximum page size
func normalizeLimit(limit int) int {
	const (
		defaultLimit = 50
		maxLimit     = 500
	)
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
