// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

// Remove unlinks v from t, v must be linked into t. O(log n).
//
// Afterwards v is unlinked and may be inserted again,
// into this or any other tree.
func (t *Tree[V]) Remove(v V) {
	t.removeNode(t.member(v))
	t.checkInvariants()
}

// RemoveAt removes and returns the value at in-order position i.
// RemoveAt panics if i is out of range.
func (t *Tree[V]) RemoveAt(i int) V {
	n := t.atNode(i)
	val := n.value
	t.removeNode(n)
	t.checkInvariants()
	return val
}

// RemoveFirst removes and returns the first value, or false if t is empty.
func (t *Tree[V]) RemoveFirst() (val V, ok bool) {
	return t.removeAndReturn(t.firstNode())
}

// RemoveLast removes and returns the last value, or false if t is empty.
func (t *Tree[V]) RemoveLast() (val V, ok bool) {
	return t.removeAndReturn(t.lastNode())
}

// RemoveAny removes and returns some value, or false if t is empty.
// It removes the root, the cheapest way to tear down a tree.
func (t *Tree[V]) RemoveAny() (val V, ok bool) {
	return t.removeAndReturn(t.root)
}

// RemoveAndNext removes v and returns the value that followed it,
// or false if v was the last one.
func (t *Tree[V]) RemoveAndNext(v V) (val V, ok bool) {
	n := t.member(v)
	next := nextNode(n)
	t.removeNode(n)
	t.checkInvariants()
	return valueOf(next)
}

// RemoveAndPrevious removes v and returns the value that preceded it,
// or false if v was the first one.
func (t *Tree[V]) RemoveAndPrevious(v V) (val V, ok bool) {
	n := t.member(v)
	prev := prevNode(n)
	t.removeNode(n)
	t.checkInvariants()
	return valueOf(prev)
}

func (t *Tree[V]) removeAndReturn(n *Node[V]) (val V, ok bool) {
	if n == nil {
		return val, false
	}
	val = n.value
	t.removeNode(n)
	t.checkInvariants()
	return val, true
}

// Replace puts v into the position of old in O(1), no rebalancing
// is needed. old must be linked into t, v must not be.
// Afterwards old is unlinked.
func (t *Tree[V]) Replace(old, v V) {
	o := t.member(old)
	n := t.prepare(v)
	t.replaceNode(o, n)
	t.checkInvariants()
}

// ReplaceAt puts v into the position i and returns the replaced value.
func (t *Tree[V]) ReplaceAt(i int, v V) V {
	o := t.atNode(i)
	old := o.value
	n := t.prepare(v)
	t.replaceNode(o, n)
	t.checkInvariants()
	return old
}

// replaceNode moves the links and the weight of old to n.
func (t *Tree[V]) replaceNode(old, n *Node[V]) {
	if t.tracing() {
		t.trace("replace", "weight", old.weight)
	}

	n.parent = old.parent
	n.first = old.first
	n.last = old.last
	n.weight = old.weight

	t.replaceChild(n.parent, old, n)
	if n.first != nil {
		n.first.parent = n
	}
	if n.last != nil {
		n.last.parent = n
	}

	old.reset()
}

// removeNode unlinks n and restores the balance.
func (t *Tree[V]) removeNode(n *Node[V]) {
	parent := n.parent

	switch {
	case n.first == nil && n.last == nil:
		if t.tracing() {
			t.trace("remove leaf", "weight", n.weight)
		}
		t.replaceChild(parent, n, nil)
		decrementToRoot(parent)
		t.rebalance(parent)

	case n.first == nil || n.last == nil:
		if t.tracing() {
			t.trace("remove with one child", "weight", n.weight)
		}
		child := n.first
		if child == nil {
			child = n.last
		}

		// splice the only child into the place of n,
		// the child subtree is balanced on its own
		t.replaceChild(parent, n, child)
		child.parent = parent
		decrementToRoot(parent)
		t.rebalance(parent)

	default:
		t.removeWithTwoChildren(n)
	}

	n.reset()
}

// removeWithTwoChildren replaces n by its in-order neighbor in the
// heavier subtree, this keeps the tree closer to balance.
func (t *Tree[V]) removeWithTwoChildren(n *Node[V]) {
	var replacement, replacementChild *Node[V]
	if n.first.weight > n.last.weight {
		replacement = n.first.LastInSubtree()
		replacementChild = replacement.first
	} else {
		replacement = n.last.FirstInSubtree()
		replacementChild = replacement.last
	}

	if t.tracing() {
		t.trace("remove with two children", "weight", n.weight,
			"replacement_weight", replacement.weight)
	}

	// splice out the replacement, it has at most one child
	replacementParent := replacement.parent
	if replacementParent.first == replacement {
		replacementParent.first = replacementChild
	} else {
		replacementParent.last = replacementChild
	}
	if replacementChild != nil {
		replacementChild.parent = replacementParent
	}

	// the replacement takes over both subtrees of n
	replacement.first = n.first
	replacement.last = n.last
	if replacement.first != nil {
		replacement.first.parent = replacement
	}
	if replacement.last != nil {
		replacement.last.parent = replacement
	}

	// and the position of n
	replacement.parent = n.parent
	t.replaceChild(n.parent, n, replacement)

	// the weights below the old position of the replacement are intact
	fix := replacementParent
	if replacementParent == n {
		fix = replacement
	}

	recalculateToRoot(fix)
	t.rebalance(fix)
}
