package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Entry is one durable (id, vector) pair.
type Entry struct {
	ID     string
	Vector []float32
}

// SQLiteStore persists entries in a SQLite database. It stores the user's
// payload only — never tree structure; an M-tree is rebuilt from the rows
// with LoadTree when needed.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed store and ensures the entries
// schema exists in the provided database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts entries in one transaction. Entry.ID must be non-empty and
// unique; the table's primary key rejects duplicates.
func (s *SQLiteStore) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries(id, vector) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("store: Entry.ID must be set")
		}
		blob, err := EncodeVector(e.Vector)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, e.ID, blob); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// List returns every stored entry in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, vector FROM entries ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var blob []byte
		if err := rows.Scan(&e.ID, &blob); err != nil {
			return nil, err
		}
		if e.Vector, err = DecodeVector(blob); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes the durable row for id. It does not touch any live tree
// built from the rows: the in-memory M-tree does not support deletion, so a
// caller that removed rows must rebuild via LoadTree.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("store: Remove called with empty id")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	return err
}
