package schema

import (
	"time"
)

// Token represents the tokens table - the ticker catalog
type Token struct {
	// Ticker is the registered symbol code, globally unique
	Ticker string `gorm:"column:ticker;primaryKey;type:text;uniqueIndex:idx_tokens_contract_ticker,priority:2"`
	// Precision is the number of decimal places registered for the ticker
	Precision uint8 `gorm:"column:precision;not null;type:smallint"`
	// Creator is the account that registered the ticker
	Creator string `gorm:"column:creator;not null;type:text"`
	// Contract is the bound issuing contract (nil until bound, set once)
	Contract *string `gorm:"column:contract;type:text;uniqueIndex:idx_tokens_contract_ticker,priority:1"`
	// CreatedAt is the timestamp when the ticker was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the ticker was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}

// IsBound reports whether an issuing contract has been bound
func (t Token) IsBound() bool {
	return t.Contract != nil && *t.Contract != ""
}
