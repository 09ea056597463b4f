package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ActivityDetails is free-form structured context stored as JSONB
type ActivityDetails map[string]interface{}

// Value implements driver.Valuer for JSONB storage
func (d ActivityDetails) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB retrieval
func (d *ActivityDetails) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return errors.New("activity details: expected []byte")
	}
	return json.Unmarshal(b, d)
}

// ActivityEntry is one row in the dashboard activity feed. Entries are
// written best-effort; a failed write never fails the triggering request.
type ActivityEntry struct {
	ID         string          `json:"id" db:"id"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   *string         `json:"entity_id,omitempty" db:"entity_id"`
	Action     string          `json:"action" db:"action"`
	Details    ActivityDetails `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
