package bftree

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Defaults for the tunable thresholds that govern when a container or node
// must split. They are exposed as Options fields rather than compile-time
// constants so tests (and callers with unusual fan-out requirements) can
// pick small values without inserting thousands of keys to exercise a
// split.
const (
	// DefaultContainerCapacity is the initial per-node container-array
	// capacity; it doubles on overflow.
	DefaultContainerCapacity = 4
	// DefaultContainerThreshold is the container count at which a node
	// must split.
	DefaultContainerThreshold = 8
	// DefaultPayloadThreshold is the payload count beyond which a
	// container must push down to its child or split.
	DefaultPayloadThreshold = 8
)

// CompareFunc is a total order over the key domain: negative if a < b,
// zero if a == b, positive if a > b. It must be deterministic and must not
// mutate the tree it is called from (the tree is not reentrant).
type CompareFunc[K any] func(a, b K) int

// Options bundles the host-supplied collaborators and tunable thresholds
// that configure a Tree.
type Options[K, V any] struct {
	// Compare orders keys. Required.
	Compare CompareFunc[K]

	// KeyFree, if set, is invoked exactly once per owned key slot when a
	// payload holding that key is freed or replaced.
	KeyFree func(K)
	// ValueFree, if set, is invoked exactly once per owned value slot
	// when a payload holding that value is freed or replaced.
	ValueFree func(V)

	// ContainerCapacity is the initial per-node container-array capacity.
	ContainerCapacity int
	// ContainerThreshold is the container count at which a node must
	// split.
	ContainerThreshold int
	// PayloadThreshold is the payload count beyond which an overflowing
	// container must push down to its child or split.
	PayloadThreshold int

	// Logger, if set, receives structural tracing (splits, root
	// promotions, tombstone elision) at Debug level. Hot-path operations
	// never log, so a nil Logger costs nothing on the common path.
	Logger *logrus.Logger

	// Debug enables the adjacency/monotonicity assertions of invariants.go
	// after every Put and Del. Intended for tests, not production use: it
	// walks the whole tree on every call.
	Debug bool
}

func (o Options[K, V]) normalized() Options[K, V] {
	if o.ContainerCapacity <= 0 {
		o.ContainerCapacity = DefaultContainerCapacity
	}
	if o.ContainerThreshold <= 0 {
		o.ContainerThreshold = DefaultContainerThreshold
	}
	if o.PayloadThreshold <= 0 {
		o.PayloadThreshold = DefaultPayloadThreshold
	}
	return o
}

// validate normalizes o first so that the zero value of a threshold (which
// normalized() defaults) is never mistaken for an explicit, too-small
// setting. A zero or negative threshold is replaced by its default; only a
// positive value below the minimum is rejected.
func (o Options[K, V]) validate() error {
	o = o.normalized()
	if o.Compare == nil {
		return errors.Wrap(ErrInvalidOptions, "Compare is required")
	}
	if o.ContainerThreshold < 2 {
		return errors.Wrap(ErrInvalidOptions, "ContainerThreshold must be >= 2")
	}
	if o.PayloadThreshold < 1 {
		return errors.Wrap(ErrInvalidOptions, "PayloadThreshold must be >= 1")
	}
	return nil
}
