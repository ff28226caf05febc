package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/mtree"
)

// Collection pairs a SQLiteStore with an in-memory M-tree: Add persists an
// entry and indexes it in one call, queries go straight to the tree. Open an
// existing database and the stored rows are replayed into the tree first.
type Collection struct {
	store *SQLiteStore
	tree  *mtree.Tree[[]float32, string, float32]
}

// NewCollection builds a Collection over db, indexing any already-stored
// rows with the given capacity and distance function.
func NewCollection(ctx context.Context, db *sql.DB, capacity int, d mtree.DistanceFunc[[]float32, float32]) (*Collection, error) {
	s, err := NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}
	t, err := LoadTree(ctx, db, capacity, d)
	if err != nil {
		return nil, err
	}
	return &Collection{store: s, tree: t}, nil
}

// Add persists (id, vector) and inserts it into the index. On a storage
// error the index is left untouched.
func (c *Collection) Add(ctx context.Context, id string, vector []float32) error {
	if id == "" {
		return fmt.Errorf("store: Add called with empty id")
	}
	if err := c.store.Add(ctx, []Entry{{ID: id, Vector: vector}}); err != nil {
		return err
	}
	return c.tree.Insert(id, vector)
}

// Range returns the ids of every stored vector within distance r of q.
func (c *Collection) Range(q []float32, r float32) ([]string, error) {
	return c.tree.Range(q, r)
}

// Nearest returns up to k stored vectors closest to q in ascending distance
// order.
func (c *Collection) Nearest(q []float32, k int) ([]mtree.Neighbor[string, float32], error) {
	return c.tree.Nearest(q, k)
}

// Len reports the number of indexed entries.
func (c *Collection) Len() int { return c.tree.Len() }
