package mtree

import "fmt"

// Validate walks the whole tree and checks the structural invariants the
// pruning inequalities depend on: entry/node tag homogeneity, uniform leaf
// depth, node capacities, the covering property, cached parent distances,
// zero distances in the root, and parent back-links. It returns an
// ErrInvariantViolation-wrapped error describing the first failure, or nil.
//
// Validation recomputes distances for every entry and every leaf below every
// routing entry; it is meant for tests and debugging, not hot paths.
func (t *Tree[T, ID, R]) Validate() error {
	if t.root == nil {
		return fmt.Errorf("%w: nil root", ErrInvariantViolation)
	}
	if t.root.parent != nil {
		return fmt.Errorf("%w: root has a parent link", ErrInvariantViolation)
	}
	leafDepth := -1
	return t.validateNode(t.root, 0, &leafDepth)
}

func (t *Tree[T, ID, R]) validateNode(n *node[T, ID, R], depth int, leafDepth *int) error {
	if n.leaf && len(n.routes) != 0 {
		return fmt.Errorf("%w: leaf node carries routing entries", ErrInvariantViolation)
	}
	if !n.leaf && len(n.leaves) != 0 {
		return fmt.Errorf("%w: internal node carries leaf entries", ErrInvariantViolation)
	}
	size := n.size()
	if size > t.capacity {
		return fmt.Errorf("%w: node holds %d entries, capacity %d", ErrInvariantViolation, size, t.capacity)
	}
	if n != t.root && size < 1 {
		return fmt.Errorf("%w: non-root node is empty", ErrInvariantViolation)
	}

	parent := n.parentEntry()
	if n != t.root {
		if n.parent == nil {
			return fmt.Errorf("%w: non-root node without parent link", ErrInvariantViolation)
		}
		if parent == nil {
			return fmt.Errorf("%w: parent node has no entry pointing back", ErrInvariantViolation)
		}
	}

	if n.leaf {
		if *leafDepth < 0 {
			*leafDepth = depth
		} else if depth != *leafDepth {
			return fmt.Errorf("%w: leaf at depth %d, expected %d", ErrInvariantViolation, depth, *leafDepth)
		}
		for i := range n.leaves {
			e := &n.leaves[i]
			if err := t.checkParentDist(parent, e.value, e.distParent); err != nil {
				return err
			}
		}
		return nil
	}

	for i := range n.routes {
		e := &n.routes[i]
		if e.child == nil {
			return fmt.Errorf("%w: routing entry without child", ErrInvariantViolation)
		}
		if e.child.parent != n {
			return fmt.Errorf("%w: child parent link does not point back", ErrInvariantViolation)
		}
		if err := t.checkParentDist(parent, e.pivot, e.distParent); err != nil {
			return err
		}
		if err := t.checkCovering(e); err != nil {
			return err
		}
		if err := t.validateNode(e.child, depth+1, leafDepth); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree[T, ID, R]) checkParentDist(parent *routingEntry[T, ID, R], own T, got R) error {
	if parent == nil {
		var zero R
		if got != zero {
			return fmt.Errorf("%w: root entry with non-zero parent distance %v", ErrInvariantViolation, got)
		}
		return nil
	}
	if want := t.dist(parent.pivot, own); got != want {
		return fmt.Errorf("%w: cached parent distance %v, recomputed %v", ErrInvariantViolation, got, want)
	}
	return nil
}

// checkCovering asserts that every leaf value under e lies within e.radius
// of e.pivot.
func (t *Tree[T, ID, R]) checkCovering(e *routingEntry[T, ID, R]) error {
	stack := []*node[T, ID, R]{e.child}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.leaf {
			for i := range n.leaves {
				if d := t.dist(e.pivot, n.leaves[i].value); d > e.radius {
					return fmt.Errorf("%w: value at distance %v outside covering radius %v", ErrInvariantViolation, d, e.radius)
				}
			}
			continue
		}
		for i := range n.routes {
			stack = append(stack, n.routes[i].child)
		}
	}
	return nil
}
