package registry

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// Fees is the registration fee schedule
type Fees struct {
	Receiver domain.Name  `json:"receiver"`
	RegToken domain.Asset `json:"regtoken"`
}

// Config is the registry configuration
type Config struct {
	Enabled         bool                   `json:"enabled"`
	DepositAsset    *domain.ExtendedSymbol `json:"deposit_asset,omitempty"`
	Fees            *Fees                  `json:"fees,omitempty"`
	MinTickerLength int                    `json:"min_ticker_length"`
}

// ConfigUpdate carries the parts of the configuration to replace; nil parts keep their stored value
type ConfigUpdate struct {
	DepositAsset    *domain.ExtendedSymbol `json:"deposit_asset,omitempty"`
	Fees            *Fees                  `json:"fees,omitempty"`
	MinTickerLength *int                   `json:"min_ticker_length,omitempty"`
}

// ValidateEnable checks the configuration is complete enough to accept registrations
func (c Config) ValidateEnable() error {
	if c.DepositAsset == nil || !c.DepositAsset.Symbol.Valid() {
		return fmt.Errorf("%w: deposit asset symbol is not set", domain.ErrValidation)
	}
	if !c.DepositAsset.Contract.Valid() {
		return fmt.Errorf("%w: deposit asset contract is not set", domain.ErrValidation)
	}
	if c.Fees == nil || !c.Fees.Receiver.Valid() {
		return fmt.Errorf("%w: fee receiver is not set", domain.ErrValidation)
	}
	if !c.Fees.RegToken.Valid() || !c.Fees.RegToken.IsPositive() {
		return fmt.Errorf("%w: registration fee must be positive", domain.ErrValidation)
	}
	if c.Fees.RegToken.Symbol != c.DepositAsset.Symbol {
		return fmt.Errorf("%w: registration fee must be paid in the deposit asset", domain.ErrValidation)
	}
	return nil
}

func (u ConfigUpdate) validate() error {
	if u.DepositAsset != nil && !u.DepositAsset.Valid() {
		return fmt.Errorf("%w: invalid deposit asset %s", domain.ErrValidation, u.DepositAsset)
	}
	if u.Fees != nil {
		if !u.Fees.Receiver.Valid() {
			return fmt.Errorf("%w: invalid fee receiver %q", domain.ErrValidation, u.Fees.Receiver)
		}
		if !u.Fees.RegToken.Valid() || u.Fees.RegToken.Amount < 0 {
			return fmt.Errorf("%w: invalid registration fee %s", domain.ErrValidation, u.Fees.RegToken)
		}
	}
	if u.MinTickerLength != nil && (*u.MinTickerLength < 1 || *u.MinTickerLength > 7) {
		return fmt.Errorf("%w: minimum ticker length must be between 1 and 7", domain.ErrValidation)
	}
	return nil
}

// LoadConfig reads the configuration, returning the default when none was stored
func (r *Registry) LoadConfig(ctx context.Context, tx store.Store) (Config, error) {
	row, err := tx.GetRegistryConfig(ctx)
	if err != nil {
		return Config{}, err
	}
	if row == nil {
		return Config{MinTickerLength: domain.DEFAULT_MIN_TICKER_LENGTH}, nil
	}
	return configFromRow(row)
}

func (r *Registry) saveConfig(ctx context.Context, tx store.Store, cfg Config) error {
	return tx.SaveRegistryConfig(ctx, configToRow(cfg))
}

// SetConfig merges update into the stored configuration
func (r *Registry) SetConfig(ctx context.Context, tx store.Store, signers domain.Signers, update ConfigUpdate) (Config, error) {
	if err := domain.RequireAuth(signers, r.account); err != nil {
		return Config{}, err
	}
	if err := update.validate(); err != nil {
		return Config{}, err
	}

	cfg, err := r.LoadConfig(ctx, tx)
	if err != nil {
		return Config{}, err
	}

	if update.DepositAsset != nil {
		deposit := *update.DepositAsset
		cfg.DepositAsset = &deposit
	}
	if update.Fees != nil {
		fees := *update.Fees
		cfg.Fees = &fees
	}
	if update.MinTickerLength != nil {
		cfg.MinTickerLength = *update.MinTickerLength
	}

	if cfg.Enabled {
		if err := cfg.ValidateEnable(); err != nil {
			return Config{}, err
		}
	}

	if err := r.saveConfig(ctx, tx, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Enable starts accepting registrations once the configuration is complete
func (r *Registry) Enable(ctx context.Context, tx store.Store, signers domain.Signers) error {
	if err := domain.RequireAuth(signers, r.account); err != nil {
		return err
	}

	cfg, err := r.LoadConfig(ctx, tx)
	if err != nil {
		return err
	}
	if err := cfg.ValidateEnable(); err != nil {
		return err
	}

	cfg.Enabled = true
	return r.saveConfig(ctx, tx, cfg)
}

// Disable stops every configuration-dependent action
func (r *Registry) Disable(ctx context.Context, tx store.Store, signers domain.Signers) error {
	if err := domain.RequireAuth(signers, r.account); err != nil {
		return err
	}

	cfg, err := r.LoadConfig(ctx, tx)
	if err != nil {
		return err
	}

	cfg.Enabled = false
	return r.saveConfig(ctx, tx, cfg)
}

// requireEnabled loads the configuration and fails unless the registry is enabled
func (r *Registry) requireEnabled(ctx context.Context, tx store.Store) (Config, error) {
	cfg, err := r.LoadConfig(ctx, tx)
	if err != nil {
		return Config{}, err
	}
	if !cfg.Enabled {
		return Config{}, domain.ErrDisabled
	}
	return cfg, nil
}

func configFromRow(row *schema.RegistryConfig) (Config, error) {
	cfg := Config{
		Enabled:         row.Enabled,
		MinTickerLength: row.MinTickerLength,
	}
	if cfg.MinTickerLength == 0 {
		cfg.MinTickerLength = domain.DEFAULT_MIN_TICKER_LENGTH
	}

	if row.DepositContract != nil && row.DepositSymbol != nil {
		symbol, err := domain.ParseSymbol(*row.DepositSymbol)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse stored deposit symbol: %w", err)
		}
		cfg.DepositAsset = &domain.ExtendedSymbol{
			Contract: domain.Name(*row.DepositContract),
			Symbol:   symbol,
		}
	}

	if row.FeeReceiver != nil && row.RegTokenFee != nil {
		fee, err := domain.ParseAsset(*row.RegTokenFee)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse stored registration fee: %w", err)
		}
		cfg.Fees = &Fees{
			Receiver: domain.Name(*row.FeeReceiver),
			RegToken: fee,
		}
	}

	return cfg, nil
}

func configToRow(cfg Config) *schema.RegistryConfig {
	row := &schema.RegistryConfig{
		ID:              schema.RegistryConfigID,
		Enabled:         cfg.Enabled,
		MinTickerLength: cfg.MinTickerLength,
	}
	if cfg.DepositAsset != nil {
		contract := cfg.DepositAsset.Contract.String()
		symbol := cfg.DepositAsset.Symbol.String()
		row.DepositContract = &contract
		row.DepositSymbol = &symbol
	}
	if cfg.Fees != nil {
		receiver := cfg.Fees.Receiver.String()
		fee := cfg.Fees.RegToken.String()
		row.FeeReceiver = &receiver
		row.RegTokenFee = &fee
	}
	return row
}
