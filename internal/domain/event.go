package domain

import (
	"encoding/json"
	"time"
)

// ActionEvent is a committed action as published to subscribers
type ActionEvent struct {
	EventID   string          `json:"event_id"`
	Cursor    int64           `json:"cursor"`
	Contract  Name            `json:"contract"`
	Action    string          `json:"action"`
	Actor     Name            `json:"actor"`
	Data      json.RawMessage `json:"data"`
	Digest    string          `json:"digest"`
	Timestamp time.Time       `json:"timestamp"`
}
