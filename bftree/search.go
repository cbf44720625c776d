package bftree

// containerGet looks up key inside containers[idx] of n. If the exact key
// is present and is a Put, its value is returned. If it is present and is a
// Del, the tombstone shadows anything below and "not found" is reported
// without descending further. Otherwise the search continues into the
// container's child, if any.
func (t *Tree[K, V]) containerGet(n *node[K, V], idx int, key K) (V, bool) {
	var zero V
	if idx >= n.size {
		return zero, false
	}

	c := n.containers[idx]
	curr, equal := t.locate(c.first, key)
	if equal {
		if curr.kind == putKind {
			return curr.val, true
		}
		return zero, false
	}
	if c.child != nil {
		childIdx := t.findContainer(c.child, key, 0)
		return t.containerGet(c.child, childIdx, key)
	}
	return zero, false
}
