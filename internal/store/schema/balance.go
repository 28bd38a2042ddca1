package schema

import (
	"time"
)

// DepositBalance represents the deposit_balances table - per-account balance of the deposit asset held by the registry
type DepositBalance struct {
	// Account owns the balance
	Account string `gorm:"column:account;primaryKey;type:text"`
	// Amount is the balance in the deposit asset's smallest unit
	Amount int64 `gorm:"column:amount;not null;default:0"`
	// Symbol is the deposit asset symbol in "precision,CODE" form
	Symbol string `gorm:"column:symbol;not null;type:text"`
	// CreatedAt is the timestamp when this balance was opened
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DepositBalance model
func (DepositBalance) TableName() string {
	return "deposit_balances"
}

// LedgerBalance represents the ledger_balances table - fungible balances kept by a token contract
type LedgerBalance struct {
	// Contract is the token contract keeping the ledger
	Contract string `gorm:"column:contract;primaryKey;type:text"`
	// Account owns the balance
	Account string `gorm:"column:account;primaryKey;type:text"`
	// SymbolCode is the ticker of the balance
	SymbolCode string `gorm:"column:symbol_code;primaryKey;type:text"`
	// Precision is the symbol precision
	Precision uint8 `gorm:"column:precision;not null;type:smallint"`
	// Amount is the balance in the symbol's smallest unit
	Amount int64 `gorm:"column:amount;not null;default:0"`
	// CreatedAt is the timestamp when this balance was opened
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerBalance model
func (LedgerBalance) TableName() string {
	return "ledger_balances"
}
