package store

import (
	"database/sql"
)

const entriesSchema = `
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    vector BLOB
);
`

// EnsureSchema creates the entries table in the provided database if it does
// not already exist. One row per indexed value: a caller-chosen id and the
// encoded float32 vector.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(entriesSchema)
	return err
}
