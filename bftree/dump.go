package bftree

// ContainerDump is a read-only snapshot of a single container, suitable for
// rendering by a caller (see internal/diag). It borrows no internal
// pointers; Keys is a copy of the container's payload keys in list order.
type ContainerDump[K, V any] struct {
	Keys  []K
	Kinds []bool // true for Put, false for Del, parallel to Keys
	Child *NodeDump[K, V]
}

// NodeDump is a read-only snapshot of a single node and, transitively, its
// children.
type NodeDump[K, V any] struct {
	Containers []ContainerDump[K, V]
}

// Dump walks the tree and returns an immutable snapshot of its structure.
// It is intended for diagnostics, not for any hot path.
func (t *Tree[K, V]) Dump() *NodeDump[K, V] {
	if t.root == nil {
		return nil
	}
	return dumpNode(t.root)
}

func dumpNode[K, V any](n *node[K, V]) *NodeDump[K, V] {
	d := &NodeDump[K, V]{Containers: make([]ContainerDump[K, V], n.size)}
	for i := 0; i < n.size; i++ {
		c := n.containers[i]
		cd := ContainerDump[K, V]{}
		for p := c.first; p != nil; p = p.next {
			cd.Keys = append(cd.Keys, p.key)
			cd.Kinds = append(cd.Kinds, p.kind == putKind)
		}
		if c.child != nil {
			cd.Child = dumpNode(c.child)
		}
		d.Containers[i] = cd
	}
	return d
}
