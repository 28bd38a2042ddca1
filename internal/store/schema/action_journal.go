package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ActionJournal represents the action_journal table - audit log of every committed action
type ActionJournal struct {
	// Cursor is an auto-incrementing sequence number for pagination and ordering
	Cursor int64 `gorm:"column:\"cursor\";primaryKey;autoIncrement"`
	// EventID is the ULID of the event published for this action
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// Contract is the contract the action was executed against
	Contract string `gorm:"column:contract;not null;type:text;index:idx_action_journal_contract_action,priority:1"`
	// Action is the action name, e.g. "regtoken"
	Action string `gorm:"column:action;not null;type:text;index:idx_action_journal_contract_action,priority:2"`
	// Actor is the first signer of the action
	Actor string `gorm:"column:actor;not null;type:text"`
	// Data is the canonical JSON of the action arguments
	Data datatypes.JSON `gorm:"column:data;not null;type:jsonb"`
	// Digest is the hex SHA-256 of Data
	Digest string `gorm:"column:digest;not null;type:text"`
	// CreatedAt is the timestamp when the action was committed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ActionJournal model
func (ActionJournal) TableName() string {
	return "action_journal"
}
