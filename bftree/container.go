package bftree

// container owns an ordered, deduplicated run of payloads and, optionally,
// a child node covering the key range between this container's first key
// and the next container's first key.
type container[K, V any] struct {
	first *payload[K, V]
	size  int
	child *node[K, V]
}

func newContainer[K, V any]() *container[K, V] {
	return &container[K, V]{}
}

// firstKey panics if the container is empty; callers must never let an
// empty container become externally observable.
func (c *container[K, V]) firstKey() K {
	return c.first.key
}

// insertAfterContainer splices container c into node n so that it ends up
// immediately after index idx, growing n's backing array geometrically
// (doubling) when full. On an empty node idx is ignored and c becomes
// index 0 — the single insertion convention used throughout this package.
func insertAfterContainer[K, V any](n *node[K, V], c *container[K, V], idx int) {
	if n.size == len(n.containers) {
		grown := make([]*container[K, V], len(n.containers)*2)
		copy(grown, n.containers)
		n.containers = grown
	}

	if n.size == 0 {
		n.containers[0] = c
		n.size++
		return
	}

	copy(n.containers[idx+2:n.size+1], n.containers[idx+1:n.size])
	n.containers[idx+1] = c
	n.size++
}
