// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

import "iter"

// All returns an iterator over all values in order.
//
// The yielded value may be removed from the tree during the iteration,
// any other modification stops the iteration at an undefined point.
func (t *Tree[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		forward(t.firstNode(), yield)
	}
}

// Backward returns an iterator over all values in reverse order.
// Same modification rules as [Tree.All].
func (t *Tree[V]) Backward() iter.Seq[V] {
	return func(yield func(V) bool) {
		backward(t.lastNode(), yield)
	}
}

// AllFrom returns an iterator over v and all values following it in order.
// v must be linked into t.
func (t *Tree[V]) AllFrom(v V) iter.Seq[V] {
	n := t.member(v)
	return func(yield func(V) bool) {
		forward(n, yield)
	}
}

func forward[V any](n *Node[V], yield func(V) bool) {
	for n != nil {
		// fetch the successor first, the callback may remove n
		next := nextNode(n)
		if !yield(n.value) {
			return
		}
		n = next
	}
}

func backward[V any](n *Node[V], yield func(V) bool) {
	for n != nil {
		prev := prevNode(n)
		if !yield(n.value) {
			return
		}
		n = prev
	}
}
