package schema

import (
	"time"
)

// TokenStat represents the token_stats table - the supply record of a symbol kept by a token contract
type TokenStat struct {
	// Contract is the token contract issuing the symbol
	Contract string `gorm:"column:contract;primaryKey;type:text"`
	// SymbolCode is the ticker
	SymbolCode string `gorm:"column:symbol_code;primaryKey;type:text"`
	// Precision is the symbol precision
	Precision uint8 `gorm:"column:precision;not null;type:smallint"`
	// Supply is the current supply in the smallest unit
	Supply int64 `gorm:"column:supply;not null"`
	// MaxSupply is the immutable maximum supply in the smallest unit
	MaxSupply int64 `gorm:"column:max_supply;not null"`
	// Issuer is the account recorded as issuer of the supply
	Issuer string `gorm:"column:issuer;not null;type:text"`
	// CreatedAt is the timestamp when the supply was established
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TokenStat model
func (TokenStat) TableName() string {
	return "token_stats"
}
