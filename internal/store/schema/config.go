package schema

import (
	"time"
)

// RegistryConfigID is the primary key of the singleton registry configuration row
const RegistryConfigID = 1

// RegistryConfig represents the registry_config table - the registry's singleton configuration
type RegistryConfig struct {
	// ID is always RegistryConfigID
	ID int `gorm:"column:id;primaryKey"`
	// Enabled gates every configuration-dependent action
	Enabled bool `gorm:"column:enabled;not null;default:false"`
	// DepositContract is the token contract of the accepted deposit asset
	DepositContract *string `gorm:"column:deposit_contract;type:text"`
	// DepositSymbol is the accepted deposit asset symbol in "precision,CODE" form
	DepositSymbol *string `gorm:"column:deposit_symbol;type:text"`
	// FeeReceiver is the account receiving registration fees
	FeeReceiver *string `gorm:"column:fee_receiver;type:text"`
	// RegTokenFee is the registration fee, e.g. "10.0000 SYS"
	RegTokenFee *string `gorm:"column:regtoken_fee;type:text"`
	// MinTickerLength is the shortest ticker accepted at registration
	MinTickerLength int `gorm:"column:min_ticker_length;not null;default:1"`
	// UpdatedAt is the timestamp when the configuration was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RegistryConfig model
func (RegistryConfig) TableName() string {
	return "registry_config"
}

// IssuerConfig represents the issuer_configs table - configuration of an issuing contract
type IssuerConfig struct {
	// Contract is the issuing contract
	Contract string `gorm:"column:contract;primaryKey;type:text"`
	// Registry is the registry account the contract looks tickers up in
	Registry string `gorm:"column:registry;not null;type:text"`
	// UpdatedAt is the timestamp when the configuration was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the IssuerConfig model
func (IssuerConfig) TableName() string {
	return "issuer_configs"
}
