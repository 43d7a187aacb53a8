// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

import (
	"cmp"
	"iter"
)

// Multi is an ordered multimap on top of the intrusive [Tree].
//
// Equal keys are permitted, values with equal keys form a contiguous
// run in order. Within a run the order is defined by the insert methods.
//
// Use [NewMulti] or [NewOrderedMulti], the zero value is not usable.
type Multi[K any, V Elem[V]] struct {
	keyed[K, V]
}

// NewMulti returns an empty multimap with the key extractor key and
// the three-way comparator cmp.
func NewMulti[K any, V Elem[V]](key func(V) K, cmp func(a, b K) int) *Multi[K, V] {
	m := new(Multi[K, V])
	m.init(key, cmp)
	return m
}

// NewOrderedMulti returns an empty multimap for keys with a natural order.
func NewOrderedMulti[K cmp.Ordered, V Elem[V]](key func(V) K) *Multi[K, V] {
	return NewMulti(key, cmp.Compare[K])
}

// FindFirst returns the first value of the run with key.
func (m *Multi[K, V]) FindFirst(key K) (val V, ok bool) {
	n, exact := m.findBeforeNode(key)
	if !exact {
		return val, false
	}
	return valueOf(n)
}

// FindLast returns the last value of the run with key.
func (m *Multi[K, V]) FindLast(key K) (val V, ok bool) {
	n, exact := m.findAfterNode(key)
	if !exact {
		return val, false
	}
	return valueOf(n)
}

// FindBefore returns the value with the greatest key less than or equal
// to key, on an exact match the first value of the run.
func (m *Multi[K, V]) FindBefore(key K) (val V, ok, exact bool) {
	n, exact := m.findBeforeNode(key)
	val, ok = valueOf(n)
	return val, ok, exact
}

// FindAfter returns the value with the least key greater than or equal
// to key, on an exact match the last value of the run.
func (m *Multi[K, V]) FindAfter(key K) (val V, ok, exact bool) {
	n, exact := m.findAfterNode(key)
	val, ok = valueOf(n)
	return val, ok, exact
}

// findBeforeNode returns the node in front of the insert position of key.
// If the key exists the search continues into the first subtree and
// returns the first node of the run.
func (m *Multi[K, V]) findBeforeNode(key K) (*Node[V], bool) {
	n := m.tree.root
	for n != nil {
		switch c := m.compare(key, n); {
		case c > 0:
			if n.last == nil {
				return n, false
			}
			n = n.last
		case c < 0:
			if n.first == nil {
				return prevNode(n), false
			}
			n = n.first
		default:
			return m.firstOfRun(key, n), true
		}
	}
	return nil, false
}

// findAfterNode returns the node behind the insert position of key.
// If the key exists the search continues into the last subtree and
// returns the last node of the run, an arbitrary match is not enough
// to append to the run.
func (m *Multi[K, V]) findAfterNode(key K) (*Node[V], bool) {
	n := m.tree.root
	for n != nil {
		switch c := m.compare(key, n); {
		case c < 0:
			if n.first == nil {
				return n, false
			}
			n = n.first
		case c > 0:
			if n.last == nil {
				return nextNode(n), false
			}
			n = n.last
		default:
			return m.lastOfRun(key, n), true
		}
	}
	return nil, false
}

// firstOfRun descends below the match into the first subtree,
// all keys there are less than or equal to key.
func (m *Multi[K, V]) firstOfRun(key K, match *Node[V]) *Node[V] {
	for n := match.first; n != nil; {
		if m.compare(key, n) == 0 {
			match = n
			n = n.first
		} else {
			n = n.last
		}
	}
	return match
}

// lastOfRun descends below the match into the last subtree,
// all keys there are greater than or equal to key.
func (m *Multi[K, V]) lastOfRun(key K, match *Node[V]) *Node[V] {
	for n := match.last; n != nil; {
		if m.compare(key, n) == 0 {
			match = n
			n = n.last
		} else {
			n = n.first
		}
	}
	return match
}

// InsertFirst inserts v at the start of the run of its key,
// or starts a new run at the ordered position.
func (m *Multi[K, V]) InsertFirst(v V) {
	before, exact := m.findBeforeNode(m.key(v))
	if exact {
		before = prevNode(before)
	}

	m.tree.insertAfter(before, m.tree.prepare(v))
	m.checkInvariants(false)
}

// InsertLast inserts v at the end of the run of its key,
// or starts a new run at the ordered position.
func (m *Multi[K, V]) InsertLast(v V) {
	after, exact := m.findAfterNode(m.key(v))
	if exact {
		after = nextNode(after)
	}

	m.tree.insertBefore(after, m.tree.prepare(v))
	m.checkInvariants(false)
}

// InsertBefore inserts v immediately before ref in the run,
// ref must be linked and both keys must be equal.
func (m *Multi[K, V]) InsertBefore(ref, v V) {
	mustHold(m.cmp(m.key(ref), m.key(v)) == 0, "insert before a value with a different key")

	r := m.tree.member(ref)
	m.tree.insertBefore(r, m.tree.prepare(v))
	m.checkInvariants(false)
}

// InsertAfter inserts v immediately after ref in the run,
// ref must be linked and both keys must be equal.
func (m *Multi[K, V]) InsertAfter(ref, v V) {
	mustHold(m.cmp(m.key(ref), m.key(v)) == 0, "insert after a value with a different key")

	r := m.tree.member(ref)
	m.tree.insertAfter(r, m.tree.prepare(v))
	m.checkInvariants(false)
}

// NextMatch returns the value following v if it has the same key,
// use it to iterate over a run.
func (m *Multi[K, V]) NextMatch(v V) (V, bool) {
	return valueOf(m.nextMatch(linkedNode(v)))
}

// PreviousMatch returns the value preceding v if it has the same key.
func (m *Multi[K, V]) PreviousMatch(v V) (V, bool) {
	return valueOf(m.prevMatch(linkedNode(v)))
}

func (m *Multi[K, V]) nextMatch(n *Node[V]) *Node[V] {
	next := nextNode(n)
	if next == nil || m.compare(m.key(n.value), next) != 0 {
		return nil
	}
	return next
}

func (m *Multi[K, V]) prevMatch(n *Node[V]) *Node[V] {
	prev := prevNode(n)
	if prev == nil || m.compare(m.key(n.value), prev) != 0 {
		return nil
	}
	return prev
}

// RemoveFirst removes and returns the first value of the run with key.
func (m *Multi[K, V]) RemoveFirst(key K) (val V, ok bool) {
	n, exact := m.findBeforeNode(key)
	if !exact {
		return val, false
	}
	return m.removeAndReturn(n)
}

// RemoveLast removes and returns the last value of the run with key.
func (m *Multi[K, V]) RemoveLast(key K) (val V, ok bool) {
	n, exact := m.findAfterNode(key)
	if !exact {
		return val, false
	}
	return m.removeAndReturn(n)
}

func (m *Multi[K, V]) removeAndReturn(n *Node[V]) (V, bool) {
	val := n.value
	m.tree.removeNode(n)
	m.checkInvariants(false)
	return val, true
}

// RemoveAllWithKey removes the whole run with key and returns
// the number of removed values.
func (m *Multi[K, V]) RemoveAllWithKey(key K) int {
	n, exact := m.findBeforeNode(key)
	if !exact {
		return 0
	}

	count := 0
	for n != nil {
		// the lookahead needs the still linked node
		next := m.nextMatch(n)
		m.tree.removeNode(n)
		count++
		n = next
	}

	m.checkInvariants(false)
	return count
}

// CountKey returns the length of the run with key in O(log n).
func (m *Multi[K, V]) CountKey(key K) int {
	first, exact := m.findBeforeNode(key)
	if !exact {
		return 0
	}
	last, _ := m.findAfterNode(key)
	return indexOf(last) - indexOf(first) + 1
}

// Run returns an iterator over the run with key.
// The yielded value may be removed during the iteration.
func (m *Multi[K, V]) Run(key K) iter.Seq[V] {
	return func(yield func(V) bool) {
		n, exact := m.findBeforeNode(key)
		if !exact {
			return
		}
		for n != nil {
			next := m.nextMatch(n)
			if !yield(n.value) {
				return
			}
			n = next
		}
	}
}

// Swap exchanges the values of m and other in O(1).
// Both multimaps must use the same key order.
func (m *Multi[K, V]) Swap(other *Multi[K, V]) {
	mustHold(other != nil, "swap with nil multimap")
	m.tree.Swap(&other.tree)
}

// Verify checks the tree structure and that the keys are
// non-decreasing in order. It never panics, see [Tree.Verify].
func (m *Multi[K, V]) Verify() error {
	return m.verify(false)
}
