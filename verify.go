// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

import (
	"github.com/cockroachdb/errors"
)

// ErrCorrupt is the base error returned by the sanity checks,
// test with errors.Is.
var ErrCorrupt = errors.New("wbtree: corrupt tree")

// Verify checks the structure of the whole tree in O(n):
// root ownership, parent links, weights and the weight balance of every node.
//
// Verify never panics, it returns an error wrapping [ErrCorrupt]
// that names the in-order position of the first offending node.
func (t *Tree[V]) Verify() error {
	if t.root == nil {
		return nil
	}
	if t.root.parent != nil {
		return errors.Wrapf(ErrCorrupt, "root has a parent")
	}
	if t.root.owner != &t.root {
		return errors.Wrapf(ErrCorrupt, "root is owned by another tree")
	}
	_, err := verifyNode(t.root, 0)
	return err
}

// verifyNode checks the subtree rooted at n, offset is the in-order
// position of the first node in this subtree. It returns the number
// of nodes in the subtree.
func verifyNode[V any](n *Node[V], offset int) (int, error) {
	if n == nil {
		return 0, nil
	}

	for _, child := range [2]*Node[V]{n.first, n.last} {
		if child != nil && child.parent != n {
			return 0, errors.Wrapf(ErrCorrupt, "node at %d: child has wrong parent", offset+nodeCount(n.first))
		}
	}

	nFirst, err := verifyNode(n.first, offset)
	if err != nil {
		return 0, err
	}

	idx := offset + nFirst

	nLast, err := verifyNode(n.last, idx+1)
	if err != nil {
		return 0, err
	}

	if want := nFirst + nLast + 2; n.weight != want {
		return 0, errors.Wrapf(ErrCorrupt, "node at %d: weight %d, want %d", idx, n.weight, want)
	}

	wFirst, wLast := weight(n.first), weight(n.last)
	if !isBalanced(wFirst, wLast) || !isBalanced(wLast, wFirst) {
		return 0, errors.Wrapf(ErrCorrupt, "node at %d: unbalanced, weights %d and %d", idx, wFirst, wLast)
	}

	return nFirst + nLast + 1, nil
}
