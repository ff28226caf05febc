package mtree

// assignment is the outcome of partitioning a split bag between two pivots:
// the member indices of each side and the maximum pivot-to-member distance
// observed on each side.
type assignment[R Number] struct {
	first, second []int
	r1, r2        R
}

// assign distributes the bag's indices between pivots p1 and p2 under the
// active partition algorithm. Both sides respect the per-node capacity and
// end up non-empty, so the node invariants survive degenerate metrics.
func (t *Tree[T, ID, R]) assign(m *distMatrix[R], p1, p2 int) assignment[R] {
	if t.partition == PartitionHyperplane {
		return hyperplaneAssign(m, p1, p2, t.capacity)
	}
	return balancedAssign(m, p1, p2, t.capacity)
}

// balancedAssign alternates sides; each turn the assigning pivot takes the
// unassigned index nearest to it. Once one side reaches capacity the other
// takes the remainder.
func balancedAssign[R Number](m *distMatrix[R], p1, p2, capacity int) assignment[R] {
	var as assignment[R]
	unassigned := make([]int, m.n)
	for i := range unassigned {
		unassigned[i] = i
	}
	firstTurn := true
	for len(unassigned) > 0 {
		useFirst := firstTurn
		if len(as.first) >= capacity {
			useFirst = false
		} else if len(as.second) >= capacity {
			useFirst = true
		}
		pivot := p1
		if !useFirst {
			pivot = p2
		}
		best := 0
		for k := 1; k < len(unassigned); k++ {
			if m.at(pivot, unassigned[k]) < m.at(pivot, unassigned[best]) {
				best = k
			}
		}
		idx := unassigned[best]
		unassigned = append(unassigned[:best], unassigned[best+1:]...)
		d := m.at(pivot, idx)
		if useFirst {
			as.first = append(as.first, idx)
			if d > as.r1 {
				as.r1 = d
			}
		} else {
			as.second = append(as.second, idx)
			if d > as.r2 {
				as.r2 = d
			}
		}
		firstTurn = !firstTurn
	}
	return as
}

// hyperplaneAssign gives every index to its nearer pivot, ties to the first.
// No balance guarantee beyond the capacity cap.
func hyperplaneAssign[R Number](m *distMatrix[R], p1, p2, capacity int) assignment[R] {
	var as assignment[R]
	for i := 0; i < m.n; i++ {
		d1, d2 := m.at(p1, i), m.at(p2, i)
		useFirst := d1 <= d2
		if len(as.first) >= capacity {
			useFirst = false
		} else if len(as.second) >= capacity {
			useFirst = true
		}
		if useFirst {
			as.first = append(as.first, i)
			if d1 > as.r1 {
				as.r1 = d1
			}
		} else {
			as.second = append(as.second, i)
			if d2 > as.r2 {
				as.r2 = d2
			}
		}
	}
	return as
}
