// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

import (
	"iter"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// workLoadN to adjust loops for tests with -short
func workLoadN() int {
	if testing.Short() {
		return 100
	}
	return 1_000
}

// this file contains helpers for other test functions

// item is the test value, the id tells equal keys apart
type item struct {
	key int
	id  int
	Node[*item]
}

func (it *item) String() string {
	return strconv.Itoa(it.key)
}

func itemKey(it *item) int {
	return it.key
}

// newItems returns one item per key, the id is the position in keys
func newItems(keys ...int) []*item {
	items := make([]*item, len(keys))
	for i, k := range keys {
		items[i] = &item{key: k, id: i}
	}
	return items
}

// treeOf returns a tree with the items of keys appended in order
func treeOf(keys ...int) (*Tree[*item], []*item) {
	tree := new(Tree[*item])
	items := newItems(keys...)
	for _, it := range items {
		tree.InsertLast(it)
	}
	return tree, items
}

func newIntMap() *Map[int, *item] {
	return NewOrderedMap(itemKey)
}

func newIntMulti() *Multi[int, *item] {
	return NewOrderedMulti(itemKey)
}

// keysOf collects the keys of the sequence
func keysOf(seq iter.Seq[*item]) []int {
	var keys []int
	for it := range seq {
		keys = append(keys, it.key)
	}
	return keys
}

// idsOf collects the ids of the sequence
func idsOf(seq iter.Seq[*item]) []int {
	var ids []int
	for it := range seq {
		ids = append(ids, it.id)
	}
	return ids
}

type verifier interface {
	Verify() error
}

// verify runs the O(n) sanity check, unconditionally in all tests
func verify(t *testing.T, v verifier) {
	t.Helper()
	require.NoError(t, v.Verify())
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s must panic", name)
		}
	}()
	fn()
}

func noPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("%s panicked: %v", name, r)
		}
	}()
	fn()
}
