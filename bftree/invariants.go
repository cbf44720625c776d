package bftree

import "fmt"

// Check walks the whole tree verifying its structural invariants: every
// container's payload list is strictly key-ordered, containers within a
// node are strictly ordered by first key, and every key reachable through
// a container's child falls within that container's range. It is exported
// for use by tests and callers that want to validate a tree after a heavy
// churn workload; it is not called on the hot path unless Options.Debug is
// set.
func (t *Tree[K, V]) Check() error {
	if t.root == nil {
		return nil
	}
	if t.root.parent != nil {
		return fmt.Errorf("bftree: root has a parent")
	}
	_, _, err := t.checkNode(t.root)
	return err
}

// checkNode validates n's own containers' adjacency and ordering and
// recurses into every child, returning the minimum and maximum key
// reachable anywhere under n so the caller can check n's subtree range
// against its own container bounds.
func (t *Tree[K, V]) checkNode(n *node[K, V]) (minKey, maxKey K, err error) {
	if n.size == 0 {
		return minKey, maxKey, fmt.Errorf("bftree: empty node")
	}

	var prevFirst K
	haveMin, haveMax := false, false

	for i := 0; i < n.size; i++ {
		c := n.containers[i]
		if c.first == nil {
			return minKey, maxKey, fmt.Errorf("bftree: container %d has no payloads", i)
		}

		lastInList, err := t.checkAdjacency(c)
		if err != nil {
			return minKey, maxKey, err
		}

		if i > 0 && t.opts.Compare(prevFirst, c.firstKey()) >= 0 {
			return minKey, maxKey, fmt.Errorf("bftree: container %d not strictly greater than container %d", i, i-1)
		}
		prevFirst = c.firstKey()

		observe := func(k K) {
			if !haveMin || t.opts.Compare(k, minKey) < 0 {
				minKey, haveMin = k, true
			}
			if !haveMax || t.opts.Compare(k, maxKey) > 0 {
				maxKey, haveMax = k, true
			}
		}
		observe(c.firstKey())
		observe(lastInList)

		if c.child != nil {
			cMin, cMax, err := t.checkNode(c.child)
			if err != nil {
				return minKey, maxKey, err
			}
			if t.opts.Compare(c.firstKey(), cMin) > 0 {
				return minKey, maxKey, fmt.Errorf("bftree: child of container %d holds a key below its own range", i)
			}
			if i+1 < n.size {
				hi := n.containers[i+1].firstKey()
				if t.opts.Compare(cMax, hi) >= 0 {
					return minKey, maxKey, fmt.Errorf("bftree: child of container %d holds a key at or above its successor", i)
				}
			}
			observe(cMin)
			observe(cMax)
		}
	}
	return minKey, maxKey, nil
}

// checkAdjacency verifies that c's payload list is strictly key-ordered.
// It returns the last key in the list.
func (t *Tree[K, V]) checkAdjacency(c *container[K, V]) (lastKey K, err error) {
	count := 0
	prev := c.first
	curr := prev.next
	count++
	for curr != nil {
		if t.opts.Compare(prev.key, curr.key) >= 0 {
			return lastKey, fmt.Errorf("bftree: payload list not strictly increasing")
		}
		prev = curr
		curr = curr.next
		count++
	}
	if count != c.size {
		return lastKey, fmt.Errorf("bftree: container size %d does not match payload count %d", c.size, count)
	}
	return prev.key, nil
}

// assertInvariants panics on the first invariant violation found. Only
// called when Options.Debug is set; it walks the whole tree on every call,
// so it is unsuitable for production use.
func (t *Tree[K, V]) assertInvariants() {
	if err := t.Check(); err != nil {
		panic(err)
	}
}
