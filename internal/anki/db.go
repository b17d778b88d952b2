// Package anki writes Anki .apkg flashcard packages: an embedded SQLite
// collection database, an integer-keyed media manifest and the media files
// themselves, folded into a single flat zip archive that the Anki desktop
// and mobile applications import directly.
package anki

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// openCollection opens the collection database file, creating it when missing.
func openCollection(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open collection database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to collection database: %w", err)
	}

	// The Anki schema has no foreign keys; referential integrity between
	// cards, notes and decks is enforced at the application layer.
	if _, err := db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("disable foreign keys: %w", err)
	}

	// One connection serializes every statement of a generation run.
	db.SetMaxOpenConns(1)
	return db, nil
}

// runInTx runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise, it is committed.
func runInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
