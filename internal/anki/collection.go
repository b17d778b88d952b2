package anki

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Conf holds the synced collection configuration stored in the col row's
// conf column. The zero value is not valid; use defaultConf.
type Conf struct {
	NextPos       int     `json:"nextPos"`
	EstTimes      bool    `json:"estTimes"`
	ActiveDecks   []int64 `json:"activeDecks"`
	SortType      string  `json:"sortType"`
	TimeLim       int     `json:"timeLim"`
	SortBackwards bool    `json:"sortBackwards"`
	AddToCur      bool    `json:"addToCur"`
	CurDeck       int64   `json:"curDeck"`
	NewBury       bool    `json:"newBury"`
	NewSpread     int     `json:"newSpread"`
	DueCounts     bool    `json:"dueCounts"`
	CurModel      *int64  `json:"curModel"`
	CollapseTime  int     `json:"collapseTime"`
}

func defaultConf() Conf {
	return Conf{
		NextPos:      1,
		EstTimes:     true,
		ActiveDecks:  []int64{1},
		SortType:     "noteFld",
		AddToCur:     true,
		CurDeck:      1,
		NewBury:      true,
		DueCounts:    true,
		CollapseTime: 1200,
	}
}

// bootstrapCollection creates the five tables, their indexes and the
// singleton col row in one transaction. It fails when the database already
// contains a schema; a generated package is always built from scratch.
func (p *Package) bootstrapCollection(ctx context.Context) error {
	var tables int
	if err := p.db.GetContext(ctx, &tables,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'`); err != nil {
		return fmt.Errorf("db.GetContext(sqlite_master) > %w", err)
	}
	if tables > 0 {
		return fmt.Errorf("collection database %s already contains a schema", p.collectionFile)
	}

	conf, err := json.Marshal(defaultConf())
	if err != nil {
		return fmt.Errorf("json.Marshal(conf) > %w", err)
	}

	now := time.Now()
	return runInTx(ctx, p.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
			 VALUES (1, ?, ?, ?, ?, 0, 0, 0, ?, '{}', '{}', '{}', '{}')`,
			now.Unix(), now.UnixMilli(), now.UnixMilli(), schemaVersion, string(conf),
		); err != nil {
			return fmt.Errorf("seed col row: %w", err)
		}
		return nil
	})
}

// readColJSON decodes one of the col row's JSON columns into v.
// The column name comes from a fixed set; it is never caller supplied.
func (p *Package) readColJSON(ctx context.Context, column string, v any) error {
	var raw string
	if err := p.db.GetContext(ctx, &raw, `SELECT `+column+` FROM col WHERE id = 1`); err != nil {
		return fmt.Errorf("db.GetContext(col.%s) > %w", column, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("col.%s is not valid JSON: %w", column, err)
	}
	return nil
}

// writeColJSON encodes v into one of the col row's JSON columns and bumps
// the collection modification time.
func (p *Package) writeColJSON(ctx context.Context, column string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json.Marshal(col.%s) > %w", column, err)
	}
	if _, err := p.db.ExecContext(ctx,
		`UPDATE col SET `+column+` = ?, mod = ? WHERE id = 1`,
		string(raw), time.Now().UnixMilli(),
	); err != nil {
		return fmt.Errorf("db.ExecContext(col.%s) > %w", column, err)
	}
	return nil
}
