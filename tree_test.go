// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaissmai/wbtree/internal/tests/random"
)

// height of the subtree, number of nodes on the longest path
func height[V any](n *Node[V]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.first), height(n.last))
}

// maxHeight, every child weighs at most 3/4 of its parent
// and a leaf weighs 2
func maxHeight(n int) float64 {
	return 1 + math.Log(float64(n+1)/2)/math.Log(4.0/3.0)
}

func TestTreeZeroValue(t *testing.T) {
	t.Parallel()
	tree := new(Tree[*item])

	assert.Equal(t, 0, tree.Len())
	assert.True(t, tree.IsEmpty())

	_, ok := tree.First()
	assert.False(t, ok, "First")
	_, ok = tree.Last()
	assert.False(t, ok, "Last")
	_, ok = tree.Root()
	assert.False(t, ok, "Root")
	_, ok = tree.RemoveFirst()
	assert.False(t, ok, "RemoveFirst")
	_, ok = tree.RemoveLast()
	assert.False(t, ok, "RemoveLast")
	_, ok = tree.RemoveAny()
	assert.False(t, ok, "RemoveAny")

	assert.Empty(t, keysOf(tree.All()))
	assert.Empty(t, keysOf(tree.Backward()))
	assert.Equal(t, "", tree.String())

	noPanic(t, "Clear", func() { tree.Clear() })
	verify(t, tree)

	mustPanic(t, "At", func() { tree.At(0) })
	mustPanic(t, "RemoveAt", func() { tree.RemoveAt(0) })
}

func TestTreeNilTree(t *testing.T) {
	t.Parallel()
	var tree *Tree[*item]

	assert.Equal(t, 0, tree.Len())
	assert.True(t, tree.IsEmpty())
}

func TestTreeInsertLastFirst(t *testing.T) {
	t.Parallel()
	n := workLoadN()

	tree, _ := treeOf(random.Ascending(n)...)
	verify(t, tree)
	require.Equal(t, n, tree.Len())
	assert.Equal(t, random.Ascending(n), keysOf(tree.All()))
	assert.Equal(t, random.Descending(n), keysOf(tree.Backward()))

	tree2 := new(Tree[*item])
	for _, it := range newItems(random.Ascending(n)...) {
		tree2.InsertFirst(it)
		verify(t, tree2)
	}
	assert.Equal(t, random.Descending(n), keysOf(tree2.All()))
}

func TestTreeBalanceBound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys []int
	}{
		{"ascending", random.Ascending(workLoadN())},
		{"descending", random.Descending(workLoadN())},
		{"random", random.Perm(rand.New(rand.NewPCG(42, 42)), workLoadN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tree, _ := treeOf(tt.keys...)
			verify(t, tree)

			h := height(tree.root)
			assert.LessOrEqual(t, float64(h), maxHeight(tree.Len()), "height of %d nodes", tree.Len())
		})
	}
}

func TestTreeSmallShapes(t *testing.T) {
	t.Parallel()

	// three ascending nodes are still within the weight balance
	tree, items := treeOf(1, 2, 3)
	verify(t, tree)
	assert.Same(t, items[0], tree.root.value)
	assert.Equal(t, 4, tree.root.weight)

	//  1
	//   \
	//    2
	//     \
	//      3
	n1, n2, n3 := items[0].TreeNode(), items[1].TreeNode(), items[2].TreeNode()
	assert.Nil(t, n1.Parent())
	assert.Nil(t, n1.FirstChild())
	assert.Same(t, n2, n1.LastChild())
	assert.Same(t, n1, n2.Parent())
	assert.Same(t, n3, n2.LastChild())
	assert.Equal(t, 2, n3.Weight())

	// the fourth node triggers a rotation at the root
	//    2
	//   / \
	//  1   3
	//       \
	//        4
	four := &item{key: 4}
	tree.InsertLast(four)
	verify(t, tree)
	assert.Same(t, items[1], tree.root.value)
	assert.Equal(t, 5, tree.root.weight)
	assert.Equal(t, []int{1, 2, 3, 4}, keysOf(tree.All()))

	assert.Nil(t, n2.Parent())
	assert.Same(t, n1, n2.FirstChild())
	assert.Same(t, n3, n2.LastChild())
	assert.Same(t, n2, n1.Parent())
	assert.Nil(t, n1.FirstChild())
	assert.Nil(t, n1.LastChild())
	assert.Nil(t, n3.FirstChild())
	assert.Same(t, four.TreeNode(), n3.LastChild())
	assert.Same(t, n3, four.Parent())
}

func TestTreeInsertBeforeAfter(t *testing.T) {
	t.Parallel()

	tree, items := treeOf(10, 20, 30)

	tree.InsertAfter(items[0], &item{key: 15})
	tree.InsertBefore(items[0], &item{key: 5})
	tree.InsertAfter(items[2], &item{key: 35})
	tree.InsertBefore(items[2], &item{key: 25})
	verify(t, tree)

	assert.Equal(t, []int{5, 10, 15, 20, 25, 30, 35}, keysOf(tree.All()))
}

func TestTreeInsertAtRandom(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(1, 1))

	tree := new(Tree[*item])
	var model []int

	for k := range workLoadN() {
		i := prng.IntN(len(model) + 1)
		it := &item{key: k}

		tree.InsertAt(i, it)
		model = slices.Insert(model, i, k)

		require.Equal(t, i, tree.Index(it))
		verify(t, tree)
	}

	assert.Equal(t, model, keysOf(tree.All()))
}

func TestTreeRankSelect(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(2, 2))

	tree := new(Tree[*item])
	for _, k := range random.Perm(prng, workLoadN()) {
		tree.InsertAt(prng.IntN(tree.Len()+1), &item{key: k})
	}
	verify(t, tree)

	for i := range tree.Len() {
		require.Equal(t, i, tree.Index(tree.At(i)), "Index(At(%d))", i)
	}

	i := 0
	for it := range tree.All() {
		require.Same(t, it, tree.At(i))
		i++
	}
}

func TestTreeNextPrevious(t *testing.T) {
	t.Parallel()

	tree, items := treeOf(random.Ascending(workLoadN())...)

	for i, it := range items {
		next, ok := tree.Next(it)
		if i == len(items)-1 {
			assert.False(t, ok)
		} else {
			require.True(t, ok)
			require.Same(t, items[i+1], next)
		}

		prev, ok := tree.Previous(it)
		if i == 0 {
			assert.False(t, ok)
		} else {
			require.True(t, ok)
			require.Same(t, items[i-1], prev)
		}
	}
}

func TestTreeRemoveRandom(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(3, 3))
	n := workLoadN()

	tree, items := treeOf(random.Ascending(n)...)
	model := random.Ascending(n)

	for _, it := range random.Shuffle(prng, items) {
		tree.Remove(it)
		verify(t, tree)

		i, _ := slices.BinarySearch(model, it.key)
		model = slices.Delete(model, i, i+1)

		require.False(t, it.Linked(), "removed node must be unlinked")
		require.Equal(t, len(model), tree.Len())
	}

	assert.True(t, tree.IsEmpty())
}

func TestTreeRemoveVariants(t *testing.T) {
	t.Parallel()

	tree, items := treeOf(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	assert.Same(t, items[4], tree.RemoveAt(4))
	verify(t, tree)

	first, ok := tree.RemoveFirst()
	require.True(t, ok)
	assert.Same(t, items[0], first)

	last, ok := tree.RemoveLast()
	require.True(t, ok)
	assert.Same(t, items[9], last)

	next, ok := tree.RemoveAndNext(items[3])
	require.True(t, ok)
	assert.Same(t, items[5], next)

	prev, ok := tree.RemoveAndPrevious(items[6])
	require.True(t, ok)
	assert.Same(t, items[5], prev)
	verify(t, tree)

	assert.Equal(t, []int{1, 2, 5, 7, 8}, keysOf(tree.All()))

	_, ok = tree.RemoveAndNext(items[8])
	assert.False(t, ok, "RemoveAndNext on the last value")
	_, ok = tree.RemoveAndPrevious(items[1])
	assert.False(t, ok, "RemoveAndPrevious on the first value")

	// teardown
	count := 0
	for _, ok := tree.RemoveAny(); ok; _, ok = tree.RemoveAny() {
		count++
		verify(t, tree)
	}
	assert.Equal(t, 3, count)
	assert.True(t, tree.IsEmpty())
}

func TestTreeReplace(t *testing.T) {
	t.Parallel()

	tree, items := treeOf(random.Ascending(20)...)
	root, _ := tree.Root()

	// replace the root, an inner node and a leaf
	for _, old := range []*item{root, items[3], items[19]} {
		now := &item{key: old.key, id: -1}
		tree.Replace(old, now)
		verify(t, tree)

		assert.False(t, old.Linked())
		assert.True(t, tree.Contains(now))
	}

	old := tree.ReplaceAt(0, &item{key: 1, id: -1})
	assert.Same(t, items[0], old)
	verify(t, tree)

	assert.Equal(t, random.Ascending(20), keysOf(tree.All()))

	replaced := 0
	for it := range tree.All() {
		if it.id == -1 {
			replaced++
		}
	}
	assert.Equal(t, 4, replaced)
}

func TestTreeSwapClear(t *testing.T) {
	t.Parallel()

	a, itemsA := treeOf(1, 2, 3)
	b, _ := treeOf(7, 8)

	a.Swap(b)
	assert.Equal(t, []int{7, 8}, keysOf(a.All()))
	assert.Equal(t, []int{1, 2, 3}, keysOf(b.All()))
	verify(t, a)
	verify(t, b)

	// the members moved with the contents
	assert.True(t, b.Contains(itemsA[0]))
	assert.False(t, a.Contains(itemsA[0]))
	mustPanic(t, "insert swapped member", func() { a.InsertLast(itemsA[2]) })

	b.Clear()
	assert.True(t, b.IsEmpty())
	assert.False(t, b.Contains(itemsA[1]), "stale node after Clear")
	for _, it := range itemsA {
		assert.False(t, it.Linked(), "stale node after Clear")
	}

	// values of a cleared tree can be reused
	for _, it := range itemsA {
		b.InsertFirst(it)
	}
	verify(t, b)
	assert.Equal(t, []int{3, 2, 1}, keysOf(b.All()))

	// the old root of a cleared tree is relinked, its stale children are no members
	b.Clear()
	b.InsertLast(itemsA[1])
	for _, it := range itemsA {
		if it != itemsA[1] {
			assert.False(t, b.Contains(it))
		}
	}
}

func TestTreeIterators(t *testing.T) {
	t.Parallel()

	tree, items := treeOf(1, 2, 3, 4, 5)

	assert.Equal(t, []int{3, 4, 5}, keysOf(tree.AllFrom(items[2])))

	// early break
	var got []int
	for it := range tree.Backward() {
		got = append(got, it.key)
		if it.key == 4 {
			break
		}
	}
	assert.Equal(t, []int{5, 4}, got)

	// remove the yielded value during iteration
	for it := range tree.All() {
		if it.key%2 == 1 {
			tree.Remove(it)
		}
	}
	verify(t, tree)
	assert.Equal(t, []int{2, 4}, keysOf(tree.All()))

	for it := range tree.Backward() {
		tree.Remove(it)
	}
	assert.True(t, tree.IsEmpty())
}

func TestTreePreconditions(t *testing.T) {
	t.Parallel()

	tree, items := treeOf(1, 2, 3)
	stranger := &item{key: 4}

	mustPanic(t, "insert twice", func() { tree.InsertLast(items[0]) })
	mustPanic(t, "remove unlinked", func() { tree.Remove(stranger) })
	mustPanic(t, "InsertAfter unlinked ref", func() { tree.InsertAfter(stranger, &item{}) })
	mustPanic(t, "InsertBefore unlinked ref", func() { tree.InsertBefore(stranger, &item{}) })
	mustPanic(t, "At out of range", func() { tree.At(3) })
	mustPanic(t, "At negative", func() { tree.At(-1) })
	mustPanic(t, "InsertAt out of range", func() { tree.InsertAt(4, &item{}) })
	mustPanic(t, "Next unlinked", func() { tree.Next(stranger) })
	mustPanic(t, "Index unlinked", func() { tree.Index(stranger) })
	mustPanic(t, "Swap nil", func() { tree.Swap(nil) })

	other, _ := treeOf(9)
	mustPanic(t, "remove from other tree", func() { other.Remove(items[1]) })
	mustPanic(t, "insert member of other tree", func() { other.InsertLast(items[1]) })
	mustPanic(t, "InsertAt member of other tree", func() { other.InsertAt(0, items[0]) })
	mustPanic(t, "Replace with member of other tree", func() {
		o, _ := other.First()
		other.Replace(o, items[2])
	})

	// the failed calls left both trees intact
	verify(t, tree)
	verify(t, other)
	assert.Equal(t, []int{1, 2, 3}, keysOf(tree.All()))
	assert.Equal(t, []int{9}, keysOf(other.All()))

	noPanic(t, "InsertAt end", func() { tree.InsertAt(3, stranger) })
}

func TestTreeVerifyCorrupt(t *testing.T) {
	t.Parallel()

	tree, items := treeOf(1, 2, 3, 4, 5)

	leaf := items[0].TreeNode()
	if leaf.first != nil || leaf.last != nil {
		leaf = items[0].TreeNode().LastInSubtree()
	}

	saved := leaf.weight
	leaf.weight = 7
	err := tree.Verify()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
	leaf.weight = saved

	saved2 := tree.root.parent
	tree.root.parent = leaf
	assert.ErrorIs(t, tree.Verify(), ErrCorrupt)
	tree.root.parent = saved2

	verify(t, tree)
}

func TestTreeFprint(t *testing.T) {
	t.Parallel()

	tree, _ := treeOf(1)
	assert.Equal(t, "1 [w:2]\n", tree.String())

	tree.InsertLast(&item{key: 2})
	out := tree.String()
	assert.True(t, strings.HasPrefix(out, "1 [w:3]\n"), out)
	assert.Contains(t, out, missing)
	assert.Contains(t, out, "2 [w:2]")

	tree, _ = treeOf(random.Ascending(7)...)
	text, err := tree.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, tree.String(), string(text))
	for k := range 7 {
		assert.Contains(t, string(text), strconv.Itoa(k+1)+" [w:")
	}
}

func TestTreeTracer(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tree := new(Tree[*item])
	tree.SetTracer(logger)

	for _, it := range newItems(random.Ascending(10)...) {
		tree.InsertLast(it)
	}
	tree.RemoveAt(5)
	tree.Clear()

	out := buf.String()
	assert.Contains(t, out, "insert as root")
	assert.Contains(t, out, "insert as last child")
	assert.Contains(t, out, "rotate left")
	assert.Contains(t, out, "remove")
	assert.Contains(t, out, "clear")

	// tracer off
	buf.Reset()
	tree.SetTracer(nil)
	tree.InsertLast(&item{key: 1})
	assert.Empty(t, buf.String())
}
