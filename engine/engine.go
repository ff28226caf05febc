package engine

import (
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:".
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }

// OpenWithFunctions registers the metric SQL scalar functions and then opens
// the database, so mtree_l2 and mtree_l1 are usable on every connection the
// returned handle creates.
func OpenWithFunctions(dsn string) (*sql.DB, error) {
	if err := RegisterDistanceFunctions(nil); err != nil {
		return nil, err
	}
	return Open(dsn)
}
