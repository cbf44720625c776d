package bftree

// splitContainer is invoked when a childless container overflows. It creates a sibling container holding the upper half of
// the overflowing container's payloads and then checks whether the node
// itself must split.
func (t *Tree[K, V]) splitContainer(n *node[K, V], containerIdx int) {
	sibling := newContainer[K, V]()
	insertAfterContainer(n, sibling, containerIdx)

	target := n.containers[containerIdx]
	half := target.size / 2
	p := target.first
	for i := 0; i < half-1; i++ {
		p = p.next
	}
	sibling.first = p.next
	p.next = nil
	sibling.size = target.size - half
	target.size = half

	t.logf("split_container: node container count=%d", n.size)
	t.trySplitNode(n)
}

// pushToChild moves roughly half of container's payloads (the push count is
// computed once from the pre-push size and never adjusted as tombstones are
// dropped along the way — "half of the original payload count") into
// container's child. A Del payload is dropped outright, rather than
// reinserted, whenever del_count > put_count at the start of the push
// (tombstone elision); otherwise every payload, tombstone or not, is pushed
// down so that upper levels keep correctly shadowing lower ones.
//
// The next pointer for each moved payload is snapshotted before it is
// unlinked or reinserted, so the walk always advances regardless of which
// branch a given payload took. containerInsert counts every payload it
// links in or merges, so a moved payload's count is released before it is
// reinserted.
func (t *Tree[K, V]) pushToChild(n *node[K, V], c *container[K, V]) {
	curr := c.first.next
	childIdx := 0
	pushCount := c.size / 2
	c.size -= pushCount
	skipDelete := t.delCount > t.putCount

	for i := 0; i < pushCount; i++ {
		next := curr.next
		c.first.next = next

		if curr.kind == delKind && skipDelete {
			t.logf("push_to_child: eliding tombstone for key %v", curr.key)
			t.freePayload(curr)
		} else {
			t.adjustCount(curr.kind, -1)
			childIdx = t.findContainer(c.child, curr.key, childIdx)
			t.containerInsert(c.child, childIdx, curr)
		}
		curr = next
	}
}

// trySplitNode splits n when its container count has reached the
// configured threshold: the middle container is promoted, becoming the
// separator between n (which keeps the lower half) and a new sibling node
// (which keeps the upper half and inherits the promoted container's old
// child subtree through its own containers). Splitting the root grows the
// tree's height; otherwise the promoted container is inserted into the
// parent and the split recurses upward.
func (t *Tree[K, V]) trySplitNode(n *node[K, V]) {
	if n.size < t.opts.ContainerThreshold {
		return
	}

	m := n.size / 2
	sibling := newNode[K, V](n.parent, t.opts.ContainerCapacity)
	promoted := n.containers[m]
	promoted.child = sibling

	i := m + 1
	for ; i < n.size; i++ {
		insertAfterContainer(sibling, n.containers[i], i-m-2)
	}
	n.size -= i - m

	if n == t.root {
		newRoot := newNode[K, V](nil, t.opts.ContainerCapacity)
		t.root = newRoot
		t.height++
		n.parent = newRoot
		sibling.parent = newRoot

		leftmost := removeContainer(n, 0)
		leftmost.child = n
		insertAfterContainer(newRoot, leftmost, 0)
		insertAfterContainer(newRoot, promoted, 0)

		t.logf("try_split_node: promoted new root, height=%d", t.height)
		return
	}

	parentIdx := t.findContainer(n.parent, promoted.firstKey(), 0)
	insertAfterContainer(n.parent, promoted, parentIdx)
	t.orderContainerPayload(n.parent, parentIdx, parentIdx+1)
	t.trySplitNode(n.parent)
}

// orderContainerPayload restores the disjoint, ordered-range invariant
// between two adjacent sibling containers after right has just been
// inserted immediately after left. Any payload in left whose key belongs
// to right's range is moved over; if left already holds a payload with
// exactly right's first key, that duplicate is merged into right's head
// (its value replaces the head's value, its key and the head's old value
// are freed) and it is unlinked from left's chain rather than ever being
// reinserted. The payloads actually moved are always the chain strictly
// after the duplicate, snapshotting each payload's next pointer before the
// recursive containerInsert call relinks it.
func (t *Tree[K, V]) orderContainerPayload(parent *node[K, V], leftIdx, rightIdx int) {
	left := parent.containers[leftIdx]
	right := parent.containers[rightIdx]

	sep, equal := t.locate(left.first, right.firstKey())
	if equal {
		prev := left.first
		for prev.next != sep {
			prev = prev.next
		}
		t.adjustCount(sep.kind, -1)
		t.replace(right.first, sep)
		prev.next = sep.next
		left.size--
		sep = prev
	}

	if sep == nil {
		return
	}

	curr := sep.next
	sep.next = nil
	t.isMigrated = true
	for curr != nil {
		next := curr.next
		left.size--
		t.adjustCount(curr.kind, -1)
		t.containerInsert(parent, rightIdx, curr)
		curr = next
	}
	t.isMigrated = false
}
