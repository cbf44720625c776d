package bftree

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func compareStrings(a, b string) int {
	return strings.Compare(a, b)
}

func newTestTree(t *testing.T) *Tree[string, string] {
	t.Helper()
	tree, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerCapacity:  2,
		ContainerThreshold: 4,
		PayloadThreshold:   4,
		Debug:              true,
	})
	require.NoError(t, err)
	return tree
}

func TestNewRejectsMissingComparator(t *testing.T) {
	_, err := New[string, string](Options[string, string]{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestNewDefaultsZeroThresholds(t *testing.T) {
	tree, err := New[string, string](Options[string, string]{
		Compare: compareStrings,
	})
	require.NoError(t, err)
	require.Equal(t, DefaultContainerCapacity, tree.opts.ContainerCapacity)
	require.Equal(t, DefaultContainerThreshold, tree.opts.ContainerThreshold)
	require.Equal(t, DefaultPayloadThreshold, tree.opts.PayloadThreshold)

	n := DefaultPayloadThreshold * DefaultContainerThreshold * DefaultContainerThreshold
	for i := 0; i < n; i++ {
		tree.Put(key(i), val(i))
	}
	require.Greater(t, tree.Height(), 1)
	require.NoError(t, tree.Check())
}

func TestNewRejectsTinyThresholds(t *testing.T) {
	_, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerThreshold: 1,
	})
	require.Error(t, err)
}

func TestPutGetRoundTrip(t *testing.T) {
	tree := newTestTree(t)
	tree.Put("a", "1")
	v, ok := tree.Get("a")
	require.True(t, ok)
	require.Equal(t, "1", v)
}

func TestPutReplacesValue(t *testing.T) {
	tree := newTestTree(t)
	tree.Put("a", "1")
	tree.Put("a", "2")
	v, ok := tree.Get("a")
	require.True(t, ok)
	require.Equal(t, "2", v)
	require.Equal(t, 1, tree.PutCount())
}

func TestPutThenDel(t *testing.T) {
	tree := newTestTree(t)
	tree.Put("a", "1")
	tree.Del("a")
	_, ok := tree.Get("a")
	require.False(t, ok)
}

func TestDelThenPut(t *testing.T) {
	tree := newTestTree(t)
	tree.Del("a")
	tree.Put("a", "1")
	v, ok := tree.Get("a")
	require.True(t, ok)
	require.Equal(t, "1", v)
}

func TestDelOfAbsentKeyIsBenign(t *testing.T) {
	tree := newTestTree(t)
	tree.Del("ghost")
	_, ok := tree.Get("ghost")
	require.False(t, ok)
	require.NoError(t, tree.Check())
}

func TestAlternatingPutReplacementHasNoNetGrowth(t *testing.T) {
	tree := newTestTree(t)
	var freed int
	tree.opts.ValueFree = func(string) { freed++ }

	for i := 0; i < 1000; i++ {
		tree.Put("k", "a")
		tree.Put("k", "b")
		v, ok := tree.Get("k")
		require.True(t, ok)
		require.Equal(t, "b", v)
	}

	require.Equal(t, 1, tree.PutCount())
	require.Equal(t, 1999, freed)
}

func key(i int) string { return fmt.Sprintf("key%04d", i) }
func val(i int) string { return fmt.Sprintf("val%04d", i) }

func TestSequentialInsertGrowsHeight(t *testing.T) {
	tree, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerThreshold: 4,
		PayloadThreshold:   4,
	})
	require.NoError(t, err)

	const n = 10000
	for i := 0; i < n; i++ {
		tree.Put(key(i), val(i))
		v, ok := tree.Get(key(i))
		require.True(t, ok)
		require.Equal(t, val(i), v)
	}
	require.Greater(t, tree.Height(), 1)
	require.NoError(t, tree.Check())
}

func TestDeletingEveryKeyLeavesOthersIntactUntilTheirTurn(t *testing.T) {
	tree, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerThreshold: 4,
		PayloadThreshold:   4,
	})
	require.NoError(t, err)

	const n = 10000
	for i := 0; i < n; i++ {
		tree.Put(key(i), val(i))
	}
	for i := 0; i < n; i++ {
		tree.Del(key(i))
		_, ok := tree.Get(key(i))
		require.False(t, ok)
		for _, j := range []int{0, n / 2, n - 1} {
			if j <= i {
				continue
			}
			v, ok := tree.Get(key(j))
			require.True(t, ok)
			require.Equal(t, val(j), v)
		}
	}
	require.NoError(t, tree.Check())
}

func TestShuffledInsertionMatchesSortedInsertion(t *testing.T) {
	const n = 10000

	sorted, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerThreshold: 4,
		PayloadThreshold:   4,
	})
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		sorted.Put(key(i), val(i))
	}

	order := rand.New(rand.NewSource(1)).Perm(n)
	shuffled, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerThreshold: 4,
		PayloadThreshold:   4,
	})
	require.NoError(t, err)
	for _, i := range order {
		shuffled.Put(key(i), val(i))
	}

	for i := 0; i < n; i++ {
		sv, sok := sorted.Get(key(i))
		shv, shok := shuffled.Get(key(i))
		require.Equal(t, sok, shok)
		require.Equal(t, sv, shv)
	}
	require.NoError(t, shuffled.Check())
}

func TestMixedWorkloadMatchesReferenceMap(t *testing.T) {
	tree, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerThreshold: 4,
		PayloadThreshold:   4,
	})
	require.NoError(t, err)

	const keyspace = 1000
	reference := make(map[string]string)
	rng := rand.New(rand.NewSource(2))

	for op := 0; op < 50000; op++ {
		k := key(rng.Intn(keyspace))
		switch {
		case op%5 < 2: // 40% put
			v := fmt.Sprintf("v%d", rng.Int())
			tree.Put(k, v)
			reference[k] = v
		case op%5 < 4: // 40% get
			v, ok := tree.Get(k)
			rv, rok := reference[k]
			require.Equal(t, rok, ok, "key %s", k)
			if rok {
				require.Equal(t, rv, v, "key %s", k)
			}
		default: // 20% del
			tree.Del(k)
			delete(reference, k)
		}
	}

	for k, v := range reference {
		got, ok := tree.Get(k)
		require.True(t, ok)
		require.Equal(t, v, got)
	}
	require.NoError(t, tree.Check())
}

func TestHeightGrowsAfterThresholdPower(t *testing.T) {
	tree, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerThreshold: 4,
		PayloadThreshold:   4,
	})
	require.NoError(t, err)

	n := 4 * 4 * 4 // PayloadThreshold * ContainerThreshold^2
	for i := 0; i < n; i++ {
		tree.Put(key(i), val(i))
	}
	require.GreaterOrEqual(t, tree.Height(), 3)
}

func TestTombstoneElisionReducesDelCountOverTime(t *testing.T) {
	tree, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerThreshold: 4,
		PayloadThreshold:   4,
	})
	require.NoError(t, err)

	const n = 2000
	for i := 0; i < n; i++ {
		tree.Put(key(i), val(i))
	}
	peak := tree.DelCount()
	for i := 0; i < n; i++ {
		tree.Del(key(i))
	}
	require.Less(t, tree.DelCount(), n)
	require.Greater(t, peak, -1) // peak was 0 before any delete, sanity check only
}

func TestCloseInvokesDestructorsExactlyOnce(t *testing.T) {
	tree, err := New[string, string](Options[string, string]{
		Compare:            compareStrings,
		ContainerThreshold: 4,
		PayloadThreshold:   4,
	})
	require.NoError(t, err)

	freedKeys := make(map[string]int)
	freedValues := make(map[string]int)
	tree.opts.KeyFree = func(k string) { freedKeys[k]++ }
	tree.opts.ValueFree = func(v string) { freedValues[v]++ }

	const n = 500
	for i := 0; i < n; i++ {
		tree.Put(key(i), val(i))
	}
	tree.Close()

	for i := 0; i < n; i++ {
		require.Equal(t, 1, freedKeys[key(i)], "key %s", key(i))
		require.Equal(t, 1, freedValues[val(i)], "val %s", val(i))
	}
}
