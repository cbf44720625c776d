package bftree

import "github.com/pkg/errors"

// Tree is a single-owner, in-memory ordered key/value index built as a
// buffered tree (see the package doc comment). It is not safe for
// concurrent use.
type Tree[K, V any] struct {
	opts Options[K, V]
	root *node[K, V]

	height int

	// isMigrated is true for the duration of a single orderContainerPayload
	// pass following a node split, and nowhere else. It only marks that
	// pass: containerInsert does not consult it and handles overflow on
	// every insert, top-level writes included.
	isMigrated bool

	putCount int
	delCount int
}

// New creates an empty tree. Compare is the only required field of opts;
// every other field defaults per normalized thresholds.
func New[K, V any](opts Options[K, V]) (*Tree[K, V], error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Wrap(err, "bftree.New")
	}
	opts = opts.normalized()
	return &Tree[K, V]{
		opts:   opts,
		root:   newNode[K, V](nil, opts.ContainerCapacity),
		height: 1,
	}, nil
}

// Height reports the tree's root-to-leaf node count. It only increases
// across the lifetime of a tree.
func (t *Tree[K, V]) Height() int { return t.height }

// PutCount reports the number of live Put payloads reachable in the tree.
func (t *Tree[K, V]) PutCount() int { return t.putCount }

// DelCount reports the number of live Del (tombstone) payloads reachable
// in the tree.
func (t *Tree[K, V]) DelCount() int { return t.delCount }

func (t *Tree[K, V]) adjustCount(kind payloadKind, delta int) {
	if kind == putKind {
		t.putCount += delta
	} else {
		t.delCount += delta
	}
}

func (t *Tree[K, V]) logf(format string, args ...any) {
	if t.opts.Logger != nil {
		t.opts.Logger.Debugf(format, args...)
	}
}

// Put inserts or replaces key's value. The tree takes ownership of key and
// val; a replaced value is freed via Options.ValueFree. Put never fails.
func (t *Tree[K, V]) Put(key K, val V) {
	p := newPayload[K, V](key, val, putKind)
	idx := t.findContainer(t.root, key, 0)
	t.containerInsert(t.root, idx, p)
	if t.opts.Debug {
		t.assertInvariants()
	}
}

// Del inserts a tombstone for key. The tree takes ownership of key. Del
// never fails, even if key is not present.
func (t *Tree[K, V]) Del(key K) {
	var zero V
	p := newPayload[K, V](key, zero, delKind)
	idx := t.findContainer(t.root, key, 0)
	t.containerInsert(t.root, idx, p)
	if t.opts.Debug {
		t.assertInvariants()
	}
}

// Get returns the live value for key, or the zero value and false if key
// is absent or shadowed by a tombstone. The returned value is borrowed:
// callers must not free it themselves.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	idx := t.findContainer(t.root, key, 0)
	return t.containerGet(t.root, idx, key)
}

// Close recursively tears down the tree, invoking the host destructors on
// every owned key and value exactly once. The tree must not be used after
// Close returns.
func (t *Tree[K, V]) Close() {
	if t.root != nil {
		t.closeNode(t.root)
		t.root = nil
	}
}

func (t *Tree[K, V]) closeNode(n *node[K, V]) {
	for i := 0; i < n.size; i++ {
		c := n.containers[i]
		if c.child != nil {
			t.closeNode(c.child)
		}
		t.closeContainer(c)
	}
}

func (t *Tree[K, V]) closeContainer(c *container[K, V]) {
	curr := c.first
	for curr != nil {
		next := curr.next
		t.freePayload(curr)
		curr = next
	}
}
