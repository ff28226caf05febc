package index

import "github.com/viant/mtree"

// Searcher defines the query surface shared by the metric indexes in this
// module. *mtree.Tree implements it with triangle-inequality pruning;
// bruteforce.Index implements it by linear scan and serves as the oracle
// the tree is tested against.
type Searcher[T any, ID comparable, R mtree.Number] interface {
	// Range returns the ids of every stored value within distance r of q,
	// in unspecified order.
	Range(q T, r R) ([]ID, error)

	// Nearest returns up to k results in ascending distance order.
	Nearest(q T, k int) ([]mtree.Neighbor[ID, R], error)
}
