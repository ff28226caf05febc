package bruteforce

import (
	"fmt"
	"sort"

	"github.com/viant/mtree"
)

// Index is a linear-scan metric index. Every query evaluates the distance
// function against every stored value. It answers the same queries as
// *mtree.Tree and is the reference the tree is validated against.
type Index[T any, ID comparable, R mtree.Number] struct {
	dist   mtree.DistanceFunc[T, R]
	ids    []ID
	values []T
}

// New constructs an empty brute-force index over the given distance function.
func New[T any, ID comparable, R mtree.Number](d mtree.DistanceFunc[T, R]) *Index[T, ID, R] {
	return &Index[T, ID, R]{dist: d}
}

// Insert stores (id, value). Duplicate ids are not detected.
func (i *Index[T, ID, R]) Insert(id ID, value T) error {
	if i.dist == nil {
		return fmt.Errorf("%w: distance function unset", mtree.ErrInvalidArgument)
	}
	i.ids = append(i.ids, id)
	i.values = append(i.values, value)
	return nil
}

// Len reports the number of stored entries.
func (i *Index[T, ID, R]) Len() int { return len(i.ids) }

// Range returns every id within distance r of q, in insertion order.
func (i *Index[T, ID, R]) Range(q T, r R) ([]ID, error) {
	if i.dist == nil {
		return nil, fmt.Errorf("%w: distance function unset", mtree.ErrInvalidArgument)
	}
	var out []ID
	if r < 0 {
		return out, nil
	}
	for j := range i.values {
		if i.dist(q, i.values[j]) <= r {
			out = append(out, i.ids[j])
		}
	}
	return out, nil
}

// Nearest returns up to k results in ascending distance order, ties broken
// by insertion order.
func (i *Index[T, ID, R]) Nearest(q T, k int) ([]mtree.Neighbor[ID, R], error) {
	if i.dist == nil {
		return nil, fmt.Errorf("%w: distance function unset", mtree.ErrInvalidArgument)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k %d, need at least 1", mtree.ErrInvalidArgument, k)
	}
	all := make([]mtree.Neighbor[ID, R], len(i.values))
	for j := range i.values {
		all[j] = mtree.Neighbor[ID, R]{ID: i.ids[j], Distance: i.dist(q, i.values[j])}
	}
	sort.SliceStable(all, func(a, b int) bool { return all[a].Distance < all[b].Distance })
	if k < len(all) {
		all = all[:k]
	}
	return all, nil
}
