// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

import "cmp"

// Map is an ordered map with unique keys on top of the intrusive [Tree].
//
// The key of a value is derived with the key function given to [NewMap],
// keys are ordered by the three-way comparator. The key of a linked value
// must not change.
//
// Use [NewMap] or [NewOrderedMap], the zero value is not usable.
type Map[K any, V Elem[V]] struct {
	keyed[K, V]
}

// NewMap returns an empty map with the key extractor key and
// the comparator cmp, cmp returns a negative number if a < b,
// a positive number if a > b and zero if equal.
func NewMap[K any, V Elem[V]](key func(V) K, cmp func(a, b K) int) *Map[K, V] {
	m := new(Map[K, V])
	m.init(key, cmp)
	return m
}

// NewOrderedMap returns an empty map for keys with a natural order.
func NewOrderedMap[K cmp.Ordered, V Elem[V]](key func(V) K) *Map[K, V] {
	return NewMap(key, cmp.Compare[K])
}

// Find returns the value with key, or false if there is none. O(log n).
func (m *Map[K, V]) Find(key K) (V, bool) {
	return valueOf(m.findNode(key))
}

// FindBefore returns the value with the greatest key less than or equal
// to key. exact reports whether the keys are equal, ok is false if all
// keys are greater than key.
func (m *Map[K, V]) FindBefore(key K) (val V, ok, exact bool) {
	n, exact := m.findBeforeNode(key)
	val, ok = valueOf(n)
	return val, ok, exact
}

// FindAfter returns the value with the least key greater than or equal
// to key. exact reports whether the keys are equal, ok is false if all
// keys are less than key.
func (m *Map[K, V]) FindAfter(key K) (val V, ok, exact bool) {
	n, exact := m.findAfterNode(key)
	val, ok = valueOf(n)
	return val, ok, exact
}

// findBeforeNode descends to the leaf position where key would be
// inserted and returns the node in front of that position.
func (m *Map[K, V]) findBeforeNode(key K) (*Node[V], bool) {
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
			return n, true
		}
	}
	return nil, false
}

// findAfterNode is the mirror of findBeforeNode.
func (m *Map[K, V]) findAfterNode(key K) (*Node[V], bool) {
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
			return n, true
		}
	}
	return nil, false
}

// Insert inserts v. If a value with an equal key exists, v takes its
// position and the old value is returned with replaced set, the old
// value is unlinked afterwards. O(log n).
func (m *Map[K, V]) Insert(v V) (prev V, replaced bool) {
	before, exact := m.findBeforeNode(m.key(v))
	n := m.tree.prepare(v)
	if exact {
		prev = before.value
		m.tree.replaceNode(before, n)
		m.checkInvariants(true)
		return prev, true
	}

	// nil before: all keys are greater, v becomes the first
	m.tree.insertAfter(before, n)
	m.checkInvariants(true)
	return prev, false
}

// RemoveKey removes and returns the value with key, or false if there is none.
func (m *Map[K, V]) RemoveKey(key K) (val V, ok bool) {
	n := m.findNode(key)
	if n == nil {
		return val, false
	}
	val = n.value
	m.tree.removeNode(n)
	m.checkInvariants(true)
	return val, true
}

// Swap exchanges the values of m and other in O(1).
// Both maps must use the same key order.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	mustHold(other != nil, "swap with nil map")
	m.tree.Swap(&other.tree)
}

// Verify checks the tree structure and that the keys are strictly
// increasing in order. It never panics, see [Tree.Verify].
func (m *Map[K, V]) Verify() error {
	return m.verify(true)
}
