package bftree

// containerInsert resolves new against the container responsible for its
// key (node.containers[idx], or a freshly created leftmost container if
// idx is out of range — which only happens on the very first insert into an
// empty node), replacing a duplicate in place or splicing new into the
// list. When the container overflows, the overflow is pushed to the
// container's child if it has one, or the container is split.
//
// Overflow is checked unconditionally rather than only while isMigrated is
// set: gating it on isMigrated would mean the very first split anywhere in
// the tree has to originate from inside a migration pass, but a migration
// pass only exists once some earlier split created one — a bootstrapping
// deadlock where no container could ever split first. isMigrated is still
// set on the tree during an orderContainerPayload pass, but nothing reads it.
func (t *Tree[K, V]) containerInsert(n *node[K, V], idx int, new *payload[K, V]) *container[K, V] {
	var target *container[K, V]
	if idx >= n.size {
		target = newContainer[K, V]()
		insertAfterContainer(n, target, 0)
		idx = 0
	} else {
		target = n.containers[idx]
	}

	curr, equal := t.locate(target.first, new.key)
	if equal {
		t.replace(curr, new)
		return target
	}

	if curr != nil {
		new.next = curr.next
		curr.next = new
	} else {
		new.next = target.first
		target.first = new
	}
	target.size++
	t.adjustCount(new.kind, 1)

	if target.size > t.opts.PayloadThreshold {
		if target.child != nil {
			t.pushToChild(n, target)
		} else {
			t.splitContainer(n, idx)
		}
	}

	return target
}
