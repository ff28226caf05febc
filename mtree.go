package mtree

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Number constrains the distance codomain R. Unsigned integers are excluded:
// the pruning inequalities subtract radii from distances.
type Number interface {
	constraints.Signed | constraints.Float
}

// DistanceFunc computes the distance between two values. It must be a proper
// metric: non-negative, symmetric, zero only for equal values, and obeying
// the triangle inequality. A non-metric function yields undefined query
// results but never corrupts the tree.
type DistanceFunc[T any, R Number] func(a, b T) R

// Neighbor is a single kNN result.
type Neighbor[ID comparable, R Number] struct {
	ID       ID
	Distance R
}

// SplitPolicy selects how two new pivots are promoted from an overflowing
// node. The policies follow Ciaccia, Patella and Zezula, "M-tree: An
// Efficient Access Method for Similarity Search in Metric Spaces".
type SplitPolicy int

const (
	// SplitMaxLowerBound promotes the two entries at maximum mutual distance.
	// Uses only the precomputed distance matrix. This is the default.
	SplitMaxLowerBound SplitPolicy = iota
	// SplitMinRadiusSum tries every pair and keeps the one minimising the sum
	// of the resulting covering radii. Costs the same as SplitMinMaxRadius,
	// the most of all policies.
	SplitMinRadiusSum
	// SplitMinMaxRadius tries every pair and keeps the one minimising the
	// larger of the two resulting covering radii.
	SplitMinMaxRadius
	// SplitRandom promotes two distinct entries uniformly at random.
	SplitRandom
	// SplitSampling draws a few random pairs, trial-partitions each, and
	// keeps the pair with the smallest covering-radius sum.
	SplitSampling
)

// String returns the policy name.
func (p SplitPolicy) String() string {
	switch p {
	case SplitMaxLowerBound:
		return "max-lower-bound"
	case SplitMinRadiusSum:
		return "min-radius-sum"
	case SplitMinMaxRadius:
		return "min-max-radius"
	case SplitRandom:
		return "random"
	case SplitSampling:
		return "sampling"
	}
	return fmt.Sprintf("SplitPolicy(%d)", int(p))
}

// PartitionAlgorithm selects how a split distributes the overflowing entries
// between the two promoted pivots.
type PartitionAlgorithm int

const (
	// PartitionBalanced alternates pivots, each taking its nearest unassigned
	// entry, so the two children end up (near) equally full. The default.
	PartitionBalanced PartitionAlgorithm = iota
	// PartitionHyperplane assigns every entry to its nearer pivot (ties to
	// the first). Cheaper, but the children may end up lopsided.
	PartitionHyperplane
)

// String returns the algorithm name.
func (a PartitionAlgorithm) String() string {
	switch a {
	case PartitionBalanced:
		return "balanced"
	case PartitionHyperplane:
		return "hyperplane"
	}
	return fmt.Sprintf("PartitionAlgorithm(%d)", int(a))
}

// defaultSeed pins the random policies so that two trees configured alike
// behave alike unless the caller supplies its own source via SetRand.
const defaultSeed = 1

// Tree is an M-tree over values of type T identified by ID, with distances
// of type R. The zero Tree is not usable; construct with New.
//
// A Tree is not safe for concurrent use.
type Tree[T any, ID comparable, R Number] struct {
	capacity  int
	dist      DistanceFunc[T, R]
	policy    SplitPolicy
	partition PartitionAlgorithm
	rng       *rand.Rand
	root      *node[T, ID, R]
	count     int
}

// New constructs an empty tree with the given node capacity and distance
// function. Capacity must be at least 2. The split policy defaults to
// SplitMaxLowerBound and the partition algorithm to PartitionBalanced.
func New[T any, ID comparable, R Number](capacity int, d DistanceFunc[T, R]) (*Tree[T, ID, R], error) {
	if capacity < 2 {
		return nil, fmt.Errorf("%w: capacity %d, need at least 2", ErrInvalidArgument, capacity)
	}
	return &Tree[T, ID, R]{
		capacity:  capacity,
		dist:      d,
		policy:    SplitMaxLowerBound,
		partition: PartitionBalanced,
		rng:       rand.New(rand.NewSource(defaultSeed)),
		root:      newLeafNode[T, ID, R](capacity, nil),
	}, nil
}

// SetDistanceFunc replaces the distance function. Existing entries are not
// re-indexed; the tree stays consistent only if the new function agrees with
// the old one on stored values.
func (t *Tree[T, ID, R]) SetDistanceFunc(d DistanceFunc[T, R]) { t.dist = d }

// SetSplitPolicy selects the promotion policy used by future splits.
func (t *Tree[T, ID, R]) SetSplitPolicy(p SplitPolicy) { t.policy = p }

// SetPartitionAlgorithm selects the partition rule used by future splits.
func (t *Tree[T, ID, R]) SetPartitionAlgorithm(a PartitionAlgorithm) { t.partition = a }

// SetRand replaces the random source used by SplitRandom and SplitSampling,
// letting callers pin or vary their behaviour. A nil source restores the
// default deterministic seed.
func (t *Tree[T, ID, R]) SetRand(r *rand.Rand) {
	if r == nil {
		r = rand.New(rand.NewSource(defaultSeed))
	}
	t.rng = r
}

// Len reports the number of stored entries.
func (t *Tree[T, ID, R]) Len() int { return t.count }

// Empty reports whether the tree holds no entries.
func (t *Tree[T, ID, R]) Empty() bool { return t.count == 0 }

// Clear drops every entry, leaving a fresh single-leaf tree behind.
func (t *Tree[T, ID, R]) Clear() {
	t.root = newLeafNode[T, ID, R](t.capacity, nil)
	t.count = 0
}
