// Package mtree implements an in-memory M-tree: a height-balanced metric
// index supporting range and k-nearest-neighbour queries over any type with
// a user-supplied metric distance function.
//
// Routing entries cache a covering radius and a distance to their parent
// pivot; both queries use the triangle inequality on those cached values to
// discard whole subtrees without calling the distance function. Insertion
// routes new values into the best-fitting covering ball and splits full
// nodes by promoting two pivots and partitioning the overflowing entries
// between them. The promotion rule and the partition rule are selectable,
// see SplitPolicy and PartitionAlgorithm.
//
// Basic usage:
//
//	t, err := mtree.New[float64, int, float64](3, func(a, b float64) float64 {
//		return math.Abs(a - b)
//	})
//	_ = t.Insert(1, 42.0)
//	ids, _ := t.Range(40.0, 5.0)
//	nn, _ := t.Nearest(40.0, 2)
//
// The tree is single-threaded: callers must serialize access themselves.
package mtree
