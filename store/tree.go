package store

import (
	"context"
	"database/sql"

	"github.com/viant/mtree"
)

// LoadTree rebuilds an M-tree from every entry stored in db, replaying the
// rows through the normal insert path in insertion order. Two trees built
// from the same rows with the same configuration are structurally identical.
func LoadTree(ctx context.Context, db *sql.DB, capacity int, d mtree.DistanceFunc[[]float32, float32]) (*mtree.Tree[[]float32, string, float32], error) {
	s, err := NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	t, err := mtree.New[[]float32, string, float32](capacity, d)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := t.Insert(e.ID, e.Vector); err != nil {
			return nil, err
		}
	}
	return t, nil
}
