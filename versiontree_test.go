// SPDX-License-Identifier: MIT

package pds

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewVersionTreeHoldsOnlyRoot(t *testing.T) {
	t.Parallel()
	tr := NewVersionTree()

	require.True(t, tr.Empty())
	require.Equal(t, 1, tr.Size())
	require.Equal(t, initialCapacity, tr.Capacity())

	before, err := tr.Before(0, 0)
	require.NoError(t, err)
	require.True(t, before, "a version is always before itself")
}

func TestInsertRejectsUnknownParentAndDuplicate(t *testing.T) {
	t.Parallel()
	tr := NewVersionTree()

	err := tr.Insert(1, 99)
	require.ErrorIs(t, err, ErrOutOfRange)

	require.NoError(t, tr.Insert(1, 0))
	err = tr.Insert(1, 0)
	require.ErrorIs(t, err, ErrOutOfRange, "duplicate version id must be rejected")

	err = tr.Insert(NoneVersion, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestBeforeUnknownVersions(t *testing.T) {
	t.Parallel()
	tr := NewVersionTree()

	_, err := tr.Before(0, 42)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = tr.Before(42, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

// TestScenarioC mirrors the reference design's worked example: root 0
// with child 1, grandchild 2 (child of 1), and a second child 3 of the
// root.
func TestScenarioC(t *testing.T) {
	t.Parallel()
	tr := NewVersionTree()

	require.NoError(t, tr.Insert(1, 0))
	require.NoError(t, tr.Insert(2, 1))
	require.NoError(t, tr.Insert(3, 0))

	require.Equal(t, "[0 [3 ]3 [1 [2 ]2 ]1 ]0", tr.String())

	cases := []struct {
		a, b int
		want bool
	}{
		{0, 1, true},
		{0, 2, true},
		{0, 3, true},
		{1, 2, true},
		{1, 0, false},
		{1, 3, false},
		{3, 1, false},
		{2, 1, false},
		{2, 3, false},
	}
	for _, c := range cases {
		got, err := tr.Before(c.a, c.b)
		require.NoError(t, err)
		require.Equalf(t, c.want, got, "Before(%d, %d)", c.a, c.b)
	}
}

func TestInsertPlacesChildAtLeftmostPosition(t *testing.T) {
	t.Parallel()
	tr := NewVersionTree()

	require.NoError(t, tr.Insert(1, 0))
	require.NoError(t, tr.Insert(2, 0))
	require.Equal(t, "[0 [2 ]2 [1 ]1 ]0", tr.String(), "the newest child must open right after its parent")

	// 2 was inserted after 1 but as another direct child of root; both
	// must still be siblings, neither preceding the other.
	b12, err := tr.Before(1, 2)
	require.NoError(t, err)
	b21, err := tr.Before(2, 1)
	require.NoError(t, err)
	require.False(t, b12)
	require.False(t, b21)

	require.NoError(t, tr.Insert(3, 1))
	// 3 is a child of 1, so it must lie strictly inside 1's bracket.
	before, err := tr.Before(1, 3)
	require.NoError(t, err)
	require.True(t, before)
}

func TestLabelsAreStrictlyMonotonic(t *testing.T) {
	t.Parallel()
	tr := NewVersionTree()
	prng := rand.New(rand.NewPCG(1, 2))

	ids := []int{0}
	for i := 1; i <= 500; i++ {
		parent := ids[prng.IntN(len(ids))]
		require.NoError(t, tr.Insert(i, parent))
		ids = append(ids, i)
	}

	var labels []int
	for ev := tr.head; ev != nil; ev = ev.next {
		labels = append(labels, ev.label)
	}
	for i := 1; i < len(labels); i++ {
		require.Lessf(t, labels[i-1], labels[i], "labels must strictly increase along the event list at index %d", i)
	}
}

// TestGrowsUnderSustainedInsertion is scenario D: inserting enough
// versions must eventually double the label space at least once, and
// Before must keep agreeing with a naive preorder reference after the
// grow.
func TestGrowsUnderSustainedInsertion(t *testing.T) {
	tr := NewVersionTree()
	prng := rand.New(rand.NewPCG(7, 7))

	parentOf := map[int]int{0: NoneVersion}
	ids := []int{0}
	initial := tr.Capacity()

	const n = 10_000
	for i := 1; i <= n; i++ {
		parent := ids[prng.IntN(len(ids))]
		require.NoError(t, tr.Insert(i, parent))
		parentOf[i] = parent
		ids = append(ids, i)
	}

	require.Greater(t, tr.Capacity(), initial, "label space must have grown at least once over %d inserts", n)

	// Spot-check Before against the naive ancestor walk on a sample.
	isAncestor := func(a, b int) bool {
		for cur := b; ; {
			if cur == a {
				return true
			}
			p, ok := parentOf[cur]
			if !ok || p == NoneVersion {
				return cur == a
			}
			cur = p
		}
	}

	for i := 0; i < 200; i++ {
		a := ids[prng.IntN(len(ids))]
		b := ids[prng.IntN(len(ids))]
		want := isAncestor(a, b)
		got, err := tr.Before(a, b)
		require.NoError(t, err)
		require.Equalf(t, want, got, "Before(%d, %d)", a, b)
	}
}

func TestClearResetsTree(t *testing.T) {
	t.Parallel()
	tr := NewVersionTree()
	require.NoError(t, tr.Insert(1, 0))
	require.NoError(t, tr.Insert(2, 1))

	tr.Clear()
	require.True(t, tr.Empty())
	require.Equal(t, initialCapacity, tr.Capacity())

	_, err := tr.Before(0, 1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestWithDensityConstant(t *testing.T) {
	t.Parallel()
	tr := NewVersionTree(WithDensityConstant(1.1))
	require.InDelta(t, 1.1, tr.densityConstant, 1e-9)

	require.NoError(t, tr.Insert(1, 0))
	before, err := tr.Before(0, 1)
	require.NoError(t, err)
	require.True(t, before)
}

func TestVersionTreeEqual(t *testing.T) {
	t.Parallel()
	a := NewVersionTree()
	require.NoError(t, a.Insert(1, 0))

	b := NewVersionTree()
	require.NoError(t, b.Insert(1, 0))

	require.True(t, a.Equal(b))

	require.NoError(t, b.Insert(2, 1))
	require.False(t, a.Equal(b))

	var nilTree *VersionTree
	require.False(t, a.Equal(nilTree))
	require.True(t, nilTree.Equal(nil))
}

func TestVersionTreeNilReceiverPanics(t *testing.T) {
	t.Parallel()
	var tr *VersionTree

	mustPanic(t, "Size", func() { tr.Size() })
	mustPanic(t, "Empty", func() { tr.Empty() })
	mustPanic(t, "Clear", func() { tr.Clear() })
	mustPanic(t, "Insert", func() { _ = tr.Insert(1, 0) })
	mustPanic(t, "Before", func() { _, _ = tr.Before(0, 0) })
}
