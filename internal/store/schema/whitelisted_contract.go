package schema

import (
	"time"
)

// WhitelistedContract represents the whitelisted_contracts table - contracts allowed to be bound to tickers
type WhitelistedContract struct {
	// Account is the whitelisted contract account
	Account string `gorm:"column:account;primaryKey;type:text"`
	// CreatedAt is the timestamp when the contract was whitelisted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the WhitelistedContract model
func (WhitelistedContract) TableName() string {
	return "whitelisted_contracts"
}
