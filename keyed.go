// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gaissmai/wbtree/internal/invariants"
)

// keyed is the common part of [Map] and [Multi]: the tree engine
// plus the key extractor and the three-way comparator.
type keyed[K any, V Elem[V]] struct {
	tree Tree[V]
	key  func(V) K
	cmp  func(K, K) int
}

func (m *keyed[K, V]) init(key func(V) K, cmp func(K, K) int) {
	mustHold(key != nil, "nil key function")
	mustHold(cmp != nil, "nil compare function")
	m.key, m.cmp = key, cmp
}

// compare the search key against the key of the value of n.
func (m *keyed[K, V]) compare(key K, n *Node[V]) int {
	return m.cmp(key, m.key(n.value))
}

// findNode is the plain binary search, any node with an equal key.
func (m *keyed[K, V]) findNode(key K) *Node[V] {
	n := m.tree.root
	for n != nil {
		switch c := m.compare(key, n); {
		case c < 0:
			n = n.first
		case c > 0:
			n = n.last
		default:
			return n
		}
	}
	return nil
}

// SetTracer attaches a debug trace logger, see [Tree.SetTracer].
func (m *keyed[K, V]) SetTracer(logger *slog.Logger) {
	m.tree.SetTracer(logger)
}

// Len returns the number of values. O(1).
func (m *keyed[K, V]) Len() int {
	return m.tree.Len()
}

// IsEmpty reports whether there are no values.
func (m *keyed[K, V]) IsEmpty() bool {
	return m.tree.IsEmpty()
}

// First returns the value with the smallest key.
func (m *keyed[K, V]) First() (V, bool) {
	return m.tree.First()
}

// Last returns the value with the greatest key.
func (m *keyed[K, V]) Last() (V, bool) {
	return m.tree.Last()
}

// Next returns the in-order successor of v.
func (m *keyed[K, V]) Next(v V) (V, bool) {
	return m.tree.Next(v)
}

// Previous returns the in-order predecessor of v.
func (m *keyed[K, V]) Previous(v V) (V, bool) {
	return m.tree.Previous(v)
}

// At returns the value at in-order position i, it panics if i is out of range.
func (m *keyed[K, V]) At(i int) V {
	return m.tree.At(i)
}

// Index returns the in-order position of the linked value v.
func (m *keyed[K, V]) Index(v V) int {
	return m.tree.Index(v)
}

// Contains reports whether the value v itself, not only its key, is linked.
func (m *keyed[K, V]) Contains(v V) bool {
	return m.tree.Contains(v)
}

// Remove unlinks v, it must be linked. Typically v was returned by a find method.
func (m *keyed[K, V]) Remove(v V) {
	m.tree.Remove(v)
}

// Any returns some value, the cheapest to reach.
func (m *keyed[K, V]) Any() (V, bool) {
	return m.tree.Root()
}

// RemoveAny removes and returns some value, use it to tear down a map:
//
//	for v, ok := m.RemoveAny(); ok; v, ok = m.RemoveAny() {
//		release(v)
//	}
func (m *keyed[K, V]) RemoveAny() (V, bool) {
	return m.tree.RemoveAny()
}

// Clear removes all values in O(1), see [Tree.Clear].
func (m *keyed[K, V]) Clear() {
	m.tree.Clear()
}

// All returns an iterator over all values in key order.
func (m *keyed[K, V]) All() iter.Seq[V] {
	return m.tree.All()
}

// Backward returns an iterator over all values in reverse key order.
func (m *keyed[K, V]) Backward() iter.Seq[V] {
	return m.tree.Backward()
}

// verify checks the tree structure and the key order,
// strict forbids equal neighbors.
func (m *keyed[K, V]) verify(strict bool) error {
	if err := m.tree.Verify(); err != nil {
		return err
	}

	n := m.tree.firstNode()
	for i := 0; n != nil; i++ {
		next := nextNode(n)
		if next == nil {
			break
		}

		c := m.cmp(m.key(n.value), m.key(next.value))
		if c > 0 || (strict && c == 0) {
			return errors.Wrapf(ErrCorrupt, "keys at %d and %d out of order", i, i+1)
		}
		n = next
	}

	return nil
}

// checkInvariants runs the full sanity check including
// the key order in invariants builds.
func (m *keyed[K, V]) checkInvariants(strict bool) {
	if invariants.Enabled {
		if err := m.verify(strict); err != nil {
			panic(errors.WithAssertionFailure(err))
		}
	}
}

// label formats the key of v for the dumps.
func (m *keyed[K, V]) label(v V) string {
	return fmt.Sprintf("%v", m.key(v))
}

// Fprint writes the tree shape with keys and weights to w, see [Tree.Fprint].
func (m *keyed[K, V]) Fprint(w io.Writer) error {
	return m.tree.fprint(w, m.label)
}

// String returns the tree shape, a wrapper for Fprint.
func (m *keyed[K, V]) String() string {
	w := new(strings.Builder)
	if err := m.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// MarshalText implements the [encoding.TextMarshaler] interface,
// a wrapper for Fprint.
func (m *keyed[K, V]) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := m.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// MarshalJSON implements the [json.Marshaler] interface,
// the values are encoded as list in key order.
func (m *keyed[K, V]) MarshalJSON() ([]byte, error) {
	vals := make([]V, 0, m.Len())
	for v := range m.All() {
		vals = append(vals, v)
	}

	return json.Marshal(vals)
}
