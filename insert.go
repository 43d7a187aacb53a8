// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

// InsertFirst inserts v as the first value in order. O(log n).
func (t *Tree[V]) InsertFirst(v V) {
	t.insertAfter(nil, t.prepare(v))
	t.checkInvariants()
}

// InsertLast inserts v as the last value in order. O(log n).
func (t *Tree[V]) InsertLast(v V) {
	t.insertBefore(nil, t.prepare(v))
	t.checkInvariants()
}

// InsertBefore inserts v immediately before ref in order,
// ref must be linked into t. O(log n).
func (t *Tree[V]) InsertBefore(ref, v V) {
	r := t.member(ref)
	t.insertBefore(r, t.prepare(v))
	t.checkInvariants()
}

// InsertAfter inserts v immediately after ref in order,
// ref must be linked into t. O(log n).
func (t *Tree[V]) InsertAfter(ref, v V) {
	r := t.member(ref)
	t.insertAfter(r, t.prepare(v))
	t.checkInvariants()
}

// InsertAt inserts v so that afterwards Index(v) == i.
// i must be in range [0, Len()]. O(log n).
func (t *Tree[V]) InsertAt(i int, v V) {
	mustHold(0 <= i && i <= t.Len(), "insert index out of range")

	n := t.prepare(v)
	if i == t.Len() {
		t.insertBefore(nil, n)
	} else {
		t.insertBefore(t.atNode(i), n)
	}
	t.checkInvariants()
}

// prepare checks that v is not a member of any tree and links its node as leaf.
func (t *Tree[V]) prepare(v V) *Node[V] {
	n := v.TreeNode()
	mustHold(ownerOf(n) == nil, "value is already linked into a tree")
	n.link(v)
	return n
}

// member returns the node of v, it must be linked into t.
func (t *Tree[V]) member(v V) *Node[V] {
	n := v.TreeNode()
	mustHold(t.contains(n), "value is not linked into this tree")
	return n
}

// insertAfter links n immediately after ref.
// A nil ref means before all nodes, n becomes the first.
func (t *Tree[V]) insertAfter(ref, n *Node[V]) {
	switch {
	case ref == nil && t.root == nil:
		t.insertRoot(n)
	case ref == nil:
		t.insertAsFirstChild(t.root.FirstInSubtree(), n)
	case ref.last == nil:
		t.insertAsLastChild(ref, n)
	default:
		t.insertAsFirstChild(ref.last.FirstInSubtree(), n)
	}
}

// insertBefore links n immediately before ref.
// A nil ref means after all nodes, n becomes the last.
func (t *Tree[V]) insertBefore(ref, n *Node[V]) {
	switch {
	case ref == nil && t.root == nil:
		t.insertRoot(n)
	case ref == nil:
		t.insertAsLastChild(t.root.LastInSubtree(), n)
	case ref.first == nil:
		t.insertAsFirstChild(ref, n)
	default:
		t.insertAsLastChild(ref.first.LastInSubtree(), n)
	}
}

func (t *Tree[V]) insertRoot(n *Node[V]) {
	if t.tracing() {
		t.trace("insert as root")
	}
	t.setRoot(n)
}

// insertAsFirstChild attaches the leaf n as first child of parent,
// parent must not have one.
func (t *Tree[V]) insertAsFirstChild(parent, n *Node[V]) {
	mustHold(parent.first == nil, "first child slot is occupied")
	if t.tracing() {
		t.trace("insert as first child", "index", indexOf(parent))
	}

	parent.first = n
	n.parent = parent

	incrementToRoot(parent)
	t.rebalance(parent)
}

// insertAsLastChild attaches the leaf n as last child of parent,
// parent must not have one.
func (t *Tree[V]) insertAsLastChild(parent, n *Node[V]) {
	mustHold(parent.last == nil, "last child slot is occupied")
	if t.tracing() {
		t.trace("insert as last child", "index", indexOf(parent))
	}

	parent.last = n
	n.parent = parent

	incrementToRoot(parent)
	t.rebalance(parent)
}
