// ABOUTME: Transaction helper for multi-statement writes.
// ABOUTME: Rolls back on error or panic, commits otherwise.
package storage

import (
	"database/sql"
	"fmt"
)

// withTx runs fn inside a SQL transaction.
func (d *DB) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
