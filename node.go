// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

// Node is the intrusive link of the weight-balanced tree.
//
// Embed a Node in the struct you want to store and use a pointer to
// that struct as V:
//
//	type person struct {
//		name string
//		wbtree.Node[*person]
//	}
//
// Through method promotion *person then satisfies [Elem][*person].
// A tree never allocates, the links live in the caller's values.
//
// A Node must not be copied while it is linked into a tree.
type Node[V any] struct {
	parent *Node[V]
	first  *Node[V] // left subtree
	last   *Node[V] // right subtree

	// number of nodes in this subtree plus one, zero if unlinked
	weight int

	// back reference to the embedding value, replaces container_of
	value V

	// root field of the owning tree, only meaningful for the top node
	owner **Node[V]
}

// Elem is the constraint for values stored in a [Tree], [Map] or [Multi].
// It is satisfied by every pointer type whose struct embeds a [Node].
type Elem[V any] interface {
	TreeNode() *Node[V]
}

// TreeNode returns n, it is promoted to the embedding struct.
func (n *Node[V]) TreeNode() *Node[V] {
	return n
}

// Linked reports whether n is currently part of a tree. Stale links
// left behind by [Tree.Clear] do not count. O(log n).
func (n *Node[V]) Linked() bool {
	return ownerOf(n) != nil
}

// ownerOf returns the root field of the tree n is linked into, or nil.
//
// The walk to the top verifies the downward links and the top node
// must still be the root of its tree, so stale links of values from a
// cleared tree are not mistaken as members.
func ownerOf[V any](n *Node[V]) **Node[V] {
	if n.weight == 0 {
		return nil
	}
	for n.parent != nil {
		p := n.parent
		if p.first != n && p.last != n {
			return nil
		}
		n = p
	}
	if n.owner == nil || *n.owner != n {
		return nil
	}
	return n.owner
}

// Weight returns the number of nodes in the subtree rooted at n plus one.
// It returns 1 for a nil node and 0 for an unlinked one.
func (n *Node[V]) Weight() int {
	return weight(n)
}

// Parent returns the parent node or nil for the root.
func (n *Node[V]) Parent() *Node[V] { return n.parent }

// FirstChild returns the left child or nil.
func (n *Node[V]) FirstChild() *Node[V] { return n.first }

// LastChild returns the right child or nil.
func (n *Node[V]) LastChild() *Node[V] { return n.last }

// FirstInSubtree returns the leftmost node of the subtree rooted at n.
func (n *Node[V]) FirstInSubtree() *Node[V] {
	for n.first != nil {
		n = n.first
	}
	return n
}

// LastInSubtree returns the rightmost node of the subtree rooted at n.
func (n *Node[V]) LastInSubtree() *Node[V] {
	for n.last != nil {
		n = n.last
	}
	return n
}

// weight of a possibly nil subtree, absent subtrees weigh 1.
func weight[V any](n *Node[V]) int {
	if n == nil {
		return 1
	}
	return n.weight
}

// nodeCount returns the number of nodes in the possibly nil subtree.
func nodeCount[V any](n *Node[V]) int {
	return weight(n) - 1
}

// reset unlinks n completely, the back reference is dropped
// so the tree does not keep the value alive.
func (n *Node[V]) reset() {
	var zero V
	n.parent, n.first, n.last = nil, nil, nil
	n.weight = 0
	n.value = zero
	n.owner = nil
}

// link prepares n of value v to become a leaf.
func (n *Node[V]) link(v V) {
	n.parent, n.first, n.last = nil, nil, nil
	n.weight = 2
	n.value = v
	n.owner = nil
}

// replaceChild redirects the link pointing from parent to old to now,
// or the root if parent is nil.
func (t *Tree[V]) replaceChild(parent, old, now *Node[V]) {
	switch {
	case parent == nil:
		mustHold(t.root == old, "node without parent is not the root")
		t.setRoot(now)
	case parent.first == old:
		parent.first = now
	default:
		mustHold(parent.last == old, "node is not a child of its parent")
		parent.last = now
	}
}

// setRoot makes n the root of t and records t as its owner.
func (t *Tree[V]) setRoot(n *Node[V]) {
	t.root = n
	if n != nil {
		n.owner = &t.root
	}
}
