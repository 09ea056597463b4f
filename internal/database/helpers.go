package database

import (
	"database/sql"
	"fmt"
)

// requireRowUpdated converts a zero-row UPDATE or DELETE into an error so
// callers can distinguish "not found" from success. The error wraps
// sql.ErrNoRows so handlers can map it to a 404. Some drivers do not
// report rows affected; in that case the result is trusted as-is.
func requireRowUpdated(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return nil
	}
	if rows == 0 {
		return fmt.Errorf("%s not found: %s: %w", entity, id, sql.ErrNoRows)
	}
	return nil
}
