// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/gaissmai/wbtree/internal/invariants"
)

// Balance parameters, see Hirai and Yamamoto, "Balancing weight-balanced
// trees", 2011. (3, 2) is the only integer pair that keeps the tree
// balanced under single and double rotations.
const (
	// Delta: a subtree is unbalanced if one side weighs more than Delta
	// times the other side.
	Delta = 3

	// Gamma: rotate twice if the inner grandchild weighs at least Gamma
	// times the outer grandchild.
	Gamma = 2
)

// Tree is an intrusive weight-balanced binary tree without keys.
//
// The in-order sequence of the tree is defined solely by the positional
// insert methods, the tree never compares values. Weights double as
// subtree sizes, so rank ([Tree.Index]) and select ([Tree.At]) are
// O(log n).
//
// The zero value is an empty tree ready to use.
//
// The Tree never allocates. A value must be removed from the tree before
// its embedded [Node] is reused or inserted elsewhere.
//
// The Tree is safe for concurrent reads, but concurrent reads and writes
// must be externally synchronized.
//
// A Tree must not be copied by value; always pass by pointer.
type Tree[V Elem[V]] struct {
	// used by -copylocks checker from `go vet`.
	_ [0]sync.Mutex

	root *Node[V]

	// optional debug trace, nil disables tracing
	tracer *slog.Logger
}

// SetTracer attaches a logger that receives a debug trace of all
// structural operations, rotations and removal cases. A nil logger
// disables tracing. The tracer is a property of the instance,
// it is not exchanged by [Tree.Swap].
func (t *Tree[V]) SetTracer(logger *slog.Logger) {
	t.tracer = logger
}

// tracing reports whether a trace logger is attached,
// guard expensive log arguments with it.
func (t *Tree[V]) tracing() bool {
	return t.tracer != nil
}

func (t *Tree[V]) trace(msg string, args ...any) {
	t.tracer.Debug(msg, args...)
}

// mustHold panics with an assertion failure if cond is false.
// Contract violations are caller bugs and never returned as errors.
func mustHold(cond bool, msg string) {
	if !cond {
		panic(errors.AssertionFailedf("wbtree: %s", msg))
	}
}

// checkInvariants runs the full sanity check in invariants builds.
func (t *Tree[V]) checkInvariants() {
	if invariants.Enabled {
		if err := t.Verify(); err != nil {
			panic(errors.WithAssertionFailure(err))
		}
	}
}

// valueOf returns the value embedding n, ok is false for a nil node.
func valueOf[V any](n *Node[V]) (val V, ok bool) {
	if n == nil {
		return val, false
	}
	return n.value, true
}

// linkedNode returns the node of v, it must be linked.
func linkedNode[V Elem[V]](v V) *Node[V] {
	n := v.TreeNode()
	mustHold(n.weight != 0, "value is not linked into a tree")
	return n
}

// contains reports whether n is linked into t.
func (t *Tree[V]) contains(n *Node[V]) bool {
	return ownerOf(n) == &t.root
}

// Contains reports whether v is currently linked into t. O(log n).
func (t *Tree[V]) Contains(v V) bool {
	return t.contains(v.TreeNode())
}

// Len returns the number of values in the tree. O(1).
func (t *Tree[V]) Len() int {
	if t == nil {
		return 0
	}
	return nodeCount(t.root)
}

// IsEmpty reports whether the tree has no values.
func (t *Tree[V]) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Root returns the value at the root of the tree.
// Any value is as good as any other for teardown loops, the root is the cheapest.
func (t *Tree[V]) Root() (val V, ok bool) {
	return valueOf(t.root)
}

// First returns the first value in order, or false if the tree is empty.
func (t *Tree[V]) First() (val V, ok bool) {
	return valueOf(t.firstNode())
}

// Last returns the last value in order, or false if the tree is empty.
func (t *Tree[V]) Last() (val V, ok bool) {
	return valueOf(t.lastNode())
}

// Next returns the value following v in order, or false if v is the last one.
func (t *Tree[V]) Next(v V) (val V, ok bool) {
	return valueOf(nextNode(linkedNode(v)))
}

// Previous returns the value preceding v in order, or false if v is the first one.
func (t *Tree[V]) Previous(v V) (val V, ok bool) {
	return valueOf(prevNode(linkedNode(v)))
}

// Index returns the zero based in-order position of v (rank). O(log n).
func (t *Tree[V]) Index(v V) int {
	return indexOf(linkedNode(v))
}

// At returns the value at the zero based in-order position i (select). O(log n).
// At panics if i is out of range, check [Tree.Len] first.
func (t *Tree[V]) At(i int) V {
	return t.atNode(i).value
}

// Swap exchanges the contents of t and other in O(1).
func (t *Tree[V]) Swap(other *Tree[V]) {
	mustHold(other != nil, "swap with nil tree")
	a, b := t.root, other.root
	t.setRoot(b)
	other.setRoot(a)
}

// Clear empties the tree in O(1).
//
// The values are not visited, their embedded nodes keep stale links
// until they are inserted again. Stale nodes are never mistaken as
// members of t.
func (t *Tree[V]) Clear() {
	if t.tracing() {
		t.trace("clear", "count", t.Len())
	}
	t.root = nil
}

func (t *Tree[V]) firstNode() *Node[V] {
	if t.root == nil {
		return nil
	}
	return t.root.FirstInSubtree()
}

func (t *Tree[V]) lastNode() *Node[V] {
	if t.root == nil {
		return nil
	}
	return t.root.LastInSubtree()
}

// nextNode returns the in-order successor of n or nil.
func nextNode[V any](n *Node[V]) *Node[V] {
	// leftmost node of the right subtree
	if n.last != nil {
		return n.last.FirstInSubtree()
	}

	// walk up until we come from a left child
	for p := n.parent; p != nil; n, p = p, p.parent {
		if p.first == n {
			return p
		}
	}

	// n was reached only via right links, it is the last node
	return nil
}

// prevNode returns the in-order predecessor of n or nil.
func prevNode[V any](n *Node[V]) *Node[V] {
	if n.first != nil {
		return n.first.LastInSubtree()
	}

	for p := n.parent; p != nil; n, p = p, p.parent {
		if p.last == n {
			return p
		}
	}

	return nil
}

// indexOf counts the nodes in-order before n.
func indexOf[V any](n *Node[V]) int {
	idx := nodeCount(n.first)
	for p := n.parent; p != nil; n, p = p, p.parent {
		if p.last == n {
			// the parent itself and its left subtree
			idx += 1 + nodeCount(p.first)
		}
	}
	return idx
}

// atNode descends to the node at in-order position i.
func (t *Tree[V]) atNode(i int) *Node[V] {
	mustHold(0 <= i && i < t.Len(), "index out of range")

	n := t.root
	for n != nil {
		leftSize := nodeCount(n.first)
		switch {
		case i == leftSize:
			return n
		case i < leftSize:
			n = n.first
		default:
			i -= leftSize + 1
			n = n.last
		}
	}

	panic(errors.AssertionFailedf("wbtree: weights are corrupt, index not found"))
}
