// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"
)

// missing marks the empty side of a node with exactly one child.
const missing = "·"

// MarshalText implements the [encoding.TextMarshaler] interface,
// just a wrapper for [Tree.Fprint].
func (t *Tree[V]) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := t.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// String returns the shape of the tree as diagram,
// just a wrapper for [Tree.Fprint].
// If Fprint returns an error, String panics.
func (t *Tree[V]) String() string {
	w := new(strings.Builder)
	if err := t.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes the shape of the tree with the weight of every node to w.
// The first child is printed above the last child. Values implementing
// [fmt.Stringer] are printed with String, others with %v.
//
//	4 [w:8]
//	├── 2 [w:4]
//	│   ├── 1 [w:2]
//	│   └── 3 [w:2]
//	└── 6 [w:4]
//	    ├── 5 [w:2]
//	    └── 7 [w:2]
//
// An empty tree prints nothing. If w is nil, Fprint panics.
func (t *Tree[V]) Fprint(w io.Writer) error {
	return t.fprint(w, defaultLabel[V])
}

func defaultLabel[V any](v V) string {
	if s, ok := any(v).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

// fprint renders the tree with label for the node values.
func (t *Tree[V]) fprint(w io.Writer, label func(V) string) error {
	if t.root == nil {
		return nil
	}

	root := treeprint.NewWithRoot(nodeLabel(t.root, label))
	addChildren(root, t.root, label)

	_, err := io.WriteString(w, root.String())
	return err
}

// addChildren rec-descents the subtree of n into branch.
func addChildren[V any](branch treeprint.Tree, n *Node[V], label func(V) string) {
	if n.first == nil && n.last == nil {
		return
	}

	for _, child := range [2]*Node[V]{n.first, n.last} {
		switch {
		case child == nil:
			branch.AddNode(missing)
		case child.first == nil && child.last == nil:
			branch.AddNode(nodeLabel(child, label))
		default:
			addChildren(branch.AddBranch(nodeLabel(child, label)), child, label)
		}
	}
}

func nodeLabel[V any](n *Node[V], label func(V) string) string {
	return fmt.Sprintf("%s [w:%d]", label(n.value), n.weight)
}
