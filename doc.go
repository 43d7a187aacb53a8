// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package wbtree provides intrusive weight-balanced binary trees
// with O(log n) rank and select, and ordered maps on top of them.
//
// The package offers three containers:
//
//   - Tree:  positional sequence, order defined by the insert methods
//   - Map:   ordered map with unique keys, insert replaces
//   - Multi: ordered multimap, equal keys form contiguous runs
//
// The containers are intrusive: the caller embeds a [Node] in its own
// struct and the tree links these nodes directly. The containers never
// allocate, the lifetime of the values is entirely up to the caller.
// A value must be removed before it is reused or linked elsewhere.
//
//	type session struct {
//		id      uint64
//		expires time.Time
//		wbtree.Node[*session]
//	}
//
//	byID := wbtree.NewOrderedMap(func(s *session) uint64 { return s.id })
//	byID.Insert(&session{id: 42})
//
// The weight of a node is the size of its subtree plus one. The tree is
// kept balanced with the parameters (Delta, Gamma) = (3, 2), every
// subtree weighs at most three times its sibling. Rebalancing is bottom
// up with single and double rotations, the weights double as subtree
// sizes for [Tree.Index] and [Tree.At].
//
// Contract violations, like inserting a value twice or removing a value
// that is not linked, panic with an assertion failure. Not found is
// never an error, the finders return ok == false.
//
// The full structural sanity check [Tree.Verify] runs after every
// mutation when built with the invariants or race tag.
//
// The containers are not safe for concurrent modification, readers and
// writers must be synchronized by the caller.
package wbtree
