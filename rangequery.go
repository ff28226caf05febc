package mtree

import "fmt"

// Range returns the ids of every stored value within distance r of q, in
// unspecified order. A negative r yields an empty result.
//
// Traversal is an iterative depth-first walk. Per visited node one distance
// to the parent pivot is computed; per surviving entry one more. Entries are
// first filtered on stored scalars alone: |d(q,parent) - distParent| cannot
// exceed r (leaf) or r+radius (routing) when a match is possible, by the
// triangle inequality.
func (t *Tree[T, ID, R]) Range(q T, r R) ([]ID, error) {
	if t.dist == nil {
		return nil, fmt.Errorf("%w: distance function unset", ErrInvalidArgument)
	}
	var out []ID
	if r < 0 {
		return out, nil
	}
	stack := []*node[T, ID, R]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var dp R
		if p := n.parentEntry(); p != nil {
			dp = t.dist(q, p.pivot)
		}
		if n.leaf {
			for i := range n.leaves {
				e := &n.leaves[i]
				if absDiff(dp, e.distParent) > r {
					continue
				}
				if t.dist(q, e.value) <= r {
					out = append(out, e.id)
				}
			}
			continue
		}
		for i := range n.routes {
			e := &n.routes[i]
			if absDiff(dp, e.distParent) > r+e.radius {
				continue
			}
			if t.dist(q, e.pivot) <= r+e.radius {
				stack = append(stack, e.child)
			}
		}
	}
	return out, nil
}
