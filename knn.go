package mtree

import (
	"container/heap"
	"fmt"
	"sort"
)

// Nearest returns up to k stored entries closest to q in ascending distance
// order. Ties are broken deterministically within one call. k < 1 is an
// error.
//
// The search is best-first: a priority queue orders pending subtrees by
// dmin, a lower bound on any distance below them, and a bounded result list
// tracks the running kth distance. Routing entries additionally contribute
// dmax upper-bound placeholders that tighten the kth distance before any
// value below them has been seen. A placeholder stands in for one unseen
// value of its subtree, so it lives only while that subtree is pending: it
// is dropped when the subtree is visited, and any survivors are stripped
// from the returned results.
func (t *Tree[T, ID, R]) Nearest(q T, k int) ([]Neighbor[ID, R], error) {
	if t.dist == nil {
		return nil, fmt.Errorf("%w: distance function unset", ErrInvalidArgument)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k %d, need at least 1", ErrInvalidArgument, k)
	}
	nn := nnList[T, ID, R]{k: k}
	pq := prQueue[T, ID, R]{{node: t.root}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(prItem[T, ID, R])
		if dk, ok := nn.bound(); ok && item.dmin > dk {
			break
		}
		n := item.node
		nn.dropPlaceholder(n)
		var dp R
		if p := n.parentEntry(); p != nil {
			dp = t.dist(q, p.pivot)
		}
		if n.leaf {
			for i := range n.leaves {
				e := &n.leaves[i]
				if dk, ok := nn.bound(); ok && absDiff(dp, e.distParent) > dk {
					continue
				}
				de := t.dist(q, e.value)
				if dk, ok := nn.bound(); !ok || de <= dk {
					nn.insert(nnEntry[T, ID, R]{id: e.id, dist: de})
				}
			}
			continue
		}
		for i := range n.routes {
			e := &n.routes[i]
			if dk, ok := nn.bound(); ok && absDiff(dp, e.distParent) > dk+e.radius {
				continue
			}
			de := t.dist(q, e.pivot)
			dmin := de - e.radius
			if dmin < 0 {
				dmin = 0
			}
			dmax := de + e.radius
			if dk, ok := nn.bound(); !ok || dmin <= dk {
				heap.Push(&pq, prItem[T, ID, R]{dmin: dmin, node: e.child})
			}
			if dk, ok := nn.bound(); !ok || dmax < dk {
				nn.insert(nnEntry[T, ID, R]{dist: dmax, pending: e.child})
			}
		}
	}

	out := make([]Neighbor[ID, R], 0, len(nn.entries))
	for _, e := range nn.entries {
		if e.pending != nil {
			continue
		}
		out = append(out, Neighbor[ID, R]{ID: e.id, Distance: e.dist})
	}
	return out, nil
}

// prItem is a pending subtree keyed by dmin = max(d(q,pivot)-radius, 0).
type prItem[T any, ID comparable, R Number] struct {
	dmin R
	node *node[T, ID, R]
}

// prQueue is a min-heap of pending subtrees by dmin.
type prQueue[T any, ID comparable, R Number] []prItem[T, ID, R]

func (q prQueue[T, ID, R]) Len() int           { return len(q) }
func (q prQueue[T, ID, R]) Less(i, j int) bool { return q[i].dmin < q[j].dmin }
func (q prQueue[T, ID, R]) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *prQueue[T, ID, R]) Push(x interface{}) { *q = append(*q, x.(prItem[T, ID, R])) }

func (q *prQueue[T, ID, R]) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// nnEntry is one slot of the bounded result list. A non-nil pending marks a
// placeholder: a dmax upper bound standing in for one unseen value of that
// subtree. Its id is the zero ID and is never returned.
type nnEntry[T any, ID comparable, R Number] struct {
	id      ID
	dist    R
	pending *node[T, ID, R]
}

// nnList keeps at most k entries in ascending distance order. Real results
// sort ahead of placeholders at equal distance so a placeholder never
// crowds out the result that fulfilled it. The kth distance stays a sound
// upper bound on the true kth-nearest distance because every slot is
// witnessed by a distinct value: reals by themselves, placeholders by an
// unseen value of a still-pending subtree.
type nnList[T any, ID comparable, R Number] struct {
	k       int
	entries []nnEntry[T, ID, R]
}

// bound returns the kth distance and whether the list is full; an unfilled
// list imposes no bound.
func (l *nnList[T, ID, R]) bound() (R, bool) {
	if len(l.entries) < l.k {
		var zero R
		return zero, false
	}
	return l.entries[l.k-1].dist, true
}

func (l *nnList[T, ID, R]) insert(e nnEntry[T, ID, R]) {
	pos := sort.Search(len(l.entries), func(i int) bool {
		if l.entries[i].dist != e.dist {
			return l.entries[i].dist > e.dist
		}
		return l.entries[i].pending != nil && e.pending == nil
	})
	l.entries = append(l.entries, nnEntry[T, ID, R]{})
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = e
	if len(l.entries) > l.k {
		l.entries = l.entries[:l.k]
	}
}

// dropPlaceholder removes the placeholder carried for n, if present: the
// subtree is about to be visited and its values will speak for themselves.
func (l *nnList[T, ID, R]) dropPlaceholder(n *node[T, ID, R]) {
	for i := range l.entries {
		if l.entries[i].pending == n {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}
