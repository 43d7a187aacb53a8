// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden is a simple and slow ordered multimap, implemented as
// a sorted slice of items, as golden reference for the wbtree containers.
package golden

import (
	"fmt"
	"slices"
)

// Multi keeps the items in order, equal keys form a contiguous run
// in insertion order defined by InsertFirst and InsertLast.
type Multi[K, V any] struct {
	Cmp   func(a, b K) int
	Items []Item[K, V]
}

type Item[K, V any] struct {
	Key K
	Val V
}

func (g Item[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", g.Key, g.Val)
}

// New returns an empty reference multimap ordered by cmp.
func New[K, V any](cmp func(a, b K) int) *Multi[K, V] {
	return &Multi[K, V]{Cmp: cmp}
}

func (g *Multi[K, V]) Len() int {
	return len(g.Items)
}

// lowerBound returns the index of the first item with key >= k.
func (g *Multi[K, V]) lowerBound(k K) int {
	for i, item := range g.Items {
		if g.Cmp(item.Key, k) >= 0 {
			return i
		}
	}
	return len(g.Items)
}

// upperBound returns the index of the first item with key > k.
func (g *Multi[K, V]) upperBound(k K) int {
	for i, item := range g.Items {
		if g.Cmp(item.Key, k) > 0 {
			return i
		}
	}
	return len(g.Items)
}

func (g *Multi[K, V]) equal(i int, k K) bool {
	return i >= 0 && i < len(g.Items) && g.Cmp(g.Items[i].Key, k) == 0
}

// Insert with map semantics, an equal key is replaced.
func (g *Multi[K, V]) Insert(k K, v V) (prev V, replaced bool) {
	i := g.lowerBound(k)
	if g.equal(i, k) {
		prev = g.Items[i].Val
		g.Items[i] = Item[K, V]{k, v}
		return prev, true
	}
	g.Items = slices.Insert(g.Items, i, Item[K, V]{k, v})
	return prev, false
}

// InsertFirst inserts at the start of the run of k.
func (g *Multi[K, V]) InsertFirst(k K, v V) {
	g.Items = slices.Insert(g.Items, g.lowerBound(k), Item[K, V]{k, v})
}

// InsertLast inserts at the end of the run of k.
func (g *Multi[K, V]) InsertLast(k K, v V) {
	g.Items = slices.Insert(g.Items, g.upperBound(k), Item[K, V]{k, v})
}

// Get returns the first value with key k.
func (g *Multi[K, V]) Get(k K) (val V, ok bool) {
	if i := g.lowerBound(k); g.equal(i, k) {
		return g.Items[i].Val, true
	}
	return val, false
}

// GetLast returns the last value with key k.
func (g *Multi[K, V]) GetLast(k K) (val V, ok bool) {
	if i := g.upperBound(k) - 1; g.equal(i, k) {
		return g.Items[i].Val, true
	}
	return val, false
}

// FindBefore returns the greatest item with key <= k,
// the first of the run on an exact match.
func (g *Multi[K, V]) FindBefore(k K) (item Item[K, V], ok, exact bool) {
	i := g.lowerBound(k)
	if g.equal(i, k) {
		return g.Items[i], true, true
	}
	if i > 0 {
		return g.Items[i-1], true, false
	}
	return item, false, false
}

// FindAfter returns the least item with key >= k,
// the last of the run on an exact match.
func (g *Multi[K, V]) FindAfter(k K) (item Item[K, V], ok, exact bool) {
	i := g.upperBound(k)
	if g.equal(i-1, k) {
		return g.Items[i-1], true, true
	}
	if i < len(g.Items) {
		return g.Items[i], true, false
	}
	return item, false, false
}

// Count returns the length of the run of k.
func (g *Multi[K, V]) Count(k K) int {
	return g.upperBound(k) - g.lowerBound(k)
}

// RemoveFirst removes the first item with key k.
func (g *Multi[K, V]) RemoveFirst(k K) (val V, ok bool) {
	if i := g.lowerBound(k); g.equal(i, k) {
		return g.RemoveAt(i), true
	}
	return val, false
}

// RemoveLast removes the last item with key k.
func (g *Multi[K, V]) RemoveLast(k K) (val V, ok bool) {
	if i := g.upperBound(k) - 1; g.equal(i, k) {
		return g.RemoveAt(i), true
	}
	return val, false
}

// RemoveAll removes the run of k and returns its length.
func (g *Multi[K, V]) RemoveAll(k K) int {
	lo, hi := g.lowerBound(k), g.upperBound(k)
	g.Items = slices.Delete(g.Items, lo, hi)
	return hi - lo
}

// RemoveAt removes the item at position i.
func (g *Multi[K, V]) RemoveAt(i int) V {
	val := g.Items[i].Val
	g.Items = slices.Delete(g.Items, i, i+1)
	return val
}

// Keys in order.
func (g *Multi[K, V]) Keys() []K {
	keys := make([]K, 0, len(g.Items))
	for _, item := range g.Items {
		keys = append(keys, item.Key)
	}
	return keys
}

// Values in order.
func (g *Multi[K, V]) Values() []V {
	vals := make([]V, 0, len(g.Items))
	for _, item := range g.Items {
		vals = append(vals, item.Val)
	}
	return vals
}
