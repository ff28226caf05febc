package mtree

// splitLeaf splits a full leaf n together with the incoming entry extra into
// two new leaves under two promoted routing entries, then attaches those
// entries in n's place, possibly splitting upward.
func (t *Tree[T, ID, R]) splitLeaf(n *node[T, ID, R], extra leafEntry[T, ID, R]) {
	bag := make([]leafEntry[T, ID, R], 0, len(n.leaves)+1)
	bag = append(bag, n.leaves...)
	bag = append(bag, extra)

	m := t.newDistMatrix(len(bag), func(i int) T { return bag[i].value })
	p1, p2 := t.promote(m)
	as := t.assign(m, p1, p2)

	left := newLeafNode[T, ID, R](t.capacity, nil)
	right := newLeafNode[T, ID, R](t.capacity, nil)
	for _, i := range as.first {
		e := bag[i]
		e.distParent = m.at(p1, i)
		left.leaves = append(left.leaves, e)
	}
	for _, i := range as.second {
		e := bag[i]
		e.distParent = m.at(p2, i)
		right.leaves = append(right.leaves, e)
	}

	o1 := routingEntry[T, ID, R]{pivot: bag[p1].value, radius: as.r1, child: left}
	o2 := routingEntry[T, ID, R]{pivot: bag[p2].value, radius: as.r2, child: right}
	t.attach(n, o1, o2)
}

// splitInternal splits a full internal node n together with the incoming
// routing entry extra. Unlike the leaf case, a child entry covers a whole
// subtree, so each new covering radius is the largest distance from the new
// pivot to any leaf value below the assigned entries.
func (t *Tree[T, ID, R]) splitInternal(n *node[T, ID, R], extra routingEntry[T, ID, R]) {
	bag := make([]routingEntry[T, ID, R], 0, len(n.routes)+1)
	bag = append(bag, n.routes...)
	bag = append(bag, extra)

	m := t.newDistMatrix(len(bag), func(i int) T { return bag[i].pivot })
	p1, p2 := t.promote(m)
	as := t.assign(m, p1, p2)

	left := newInternalNode[T, ID, R](t.capacity, nil)
	right := newInternalNode[T, ID, R](t.capacity, nil)
	reach := func(pivot T, n *node[T, ID, R]) (r R) {
		for stack := []*node[T, ID, R]{n}; len(stack) > 0; {
			n, stack = stack[len(stack)-1], stack[:len(stack)-1]
			for i := range n.leaves {
				if d := t.dist(pivot, n.leaves[i].value); d > r {
					r = d
				}
			}
			for i := range n.routes {
				stack = append(stack, n.routes[i].child)
			}
		}
		return r
	}
	var r1, r2 R
	for _, i := range as.first {
		e := bag[i]
		e.distParent = m.at(p1, i)
		e.child.parent = left
		left.routes = append(left.routes, e)
		if d := reach(bag[p1].pivot, e.child); d > r1 {
			r1 = d
		}
	}
	for _, i := range as.second {
		e := bag[i]
		e.distParent = m.at(p2, i)
		e.child.parent = right
		right.routes = append(right.routes, e)
		if d := reach(bag[p2].pivot, e.child); d > r2 {
			r2 = d
		}
	}

	o1 := routingEntry[T, ID, R]{pivot: bag[p1].pivot, radius: r1, child: left}
	o2 := routingEntry[T, ID, R]{pivot: bag[p2].pivot, radius: r2, child: right}
	t.attach(n, o1, o2)
}

// attach replaces the split node n with o1 in its parent and inserts o2
// alongside. A root split allocates a new internal root one level up; a full
// parent recurses into splitInternal with o2 as the overflowing entry.
func (t *Tree[T, ID, R]) attach(n *node[T, ID, R], o1, o2 routingEntry[T, ID, R]) {
	if n.parent == nil {
		root := newInternalNode[T, ID, R](t.capacity, nil)
		o1.child.parent = root
		o2.child.parent = root
		root.routes = append(root.routes, o1, o2)
		t.root = root
		return
	}
	p := n.parent
	o1.child.parent = p
	o2.child.parent = p
	if gp := p.parentEntry(); gp != nil {
		o1.distParent = t.dist(gp.pivot, o1.pivot)
		o2.distParent = t.dist(gp.pivot, o2.pivot)
	}
	for i := range p.routes {
		if p.routes[i].child == n {
			p.routes[i] = o1
			break
		}
	}
	if len(p.routes) < t.capacity {
		p.routes = append(p.routes, o2)
		return
	}
	t.splitInternal(p, o2)
}
