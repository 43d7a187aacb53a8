// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wbtree

// isBalanced reports whether a subtree weighing w1 is not too light
// compared to its sibling weighing w2.
func isBalanced(w1, w2 int) bool {
	return w1*Delta >= w2
}

// isSingleRotation reports whether the heavy child with inner grandchild
// weighing inner and outer grandchild weighing outer needs only one rotation.
func isSingleRotation(inner, outer int) bool {
	return inner < outer*Gamma
}

// recalculate derives the weight of n from its children,
// (wFirst-1) + (wLast-1) nodes below plus n itself plus one.
func recalculate[V any](n *Node[V]) {
	n.weight = weight(n.first) + weight(n.last)
}

// incrementToRoot adds one to the weight of n and all its ancestors.
func incrementToRoot[V any](n *Node[V]) {
	for ; n != nil; n = n.parent {
		n.weight++
	}
}

// decrementToRoot subtracts one from the weight of n and all its ancestors.
func decrementToRoot[V any](n *Node[V]) {
	for ; n != nil; n = n.parent {
		n.weight--
	}
}

// recalculateToRoot recomputes the weights of n and all its ancestors.
func recalculateToRoot[V any](n *Node[V]) {
	for ; n != nil; n = n.parent {
		recalculate(n)
	}
}

// rotateLeft promotes the last child y of x into the place of x:
//
//	   x                y
//	  / \              / \
//	 a   y     ->     x   c
//	    / \          / \
//	   b   c        a   b
func (t *Tree[V]) rotateLeft(x *Node[V]) {
	y := x.last
	parent := x.parent

	x.last = y.first
	if x.last != nil {
		x.last.parent = x
	}

	y.first = x
	x.parent = y

	y.parent = parent
	t.replaceChild(parent, x, y)

	// demoted node first, its weight is part of y's
	recalculate(x)
	recalculate(y)
}

// rotateRight promotes the first child y of x into the place of x,
// the mirror of rotateLeft.
func (t *Tree[V]) rotateRight(x *Node[V]) {
	y := x.first
	parent := x.parent

	x.first = y.last
	if x.first != nil {
		x.first.parent = x
	}

	y.last = x
	x.parent = y

	y.parent = parent
	t.replaceChild(parent, x, y)

	recalculate(x)
	recalculate(y)
}

// rebalance walks from n up to the root and restores the weight
// balance with single or double rotations. The weights on the path
// must already be correct.
func (t *Tree[V]) rebalance(n *Node[V]) {
	for n != nil {
		wFirst, wLast := weight(n.first), weight(n.last)

		switch {
		case !isBalanced(wFirst, wLast):
			// last side too heavy
			r := n.last
			if isSingleRotation(weight(r.first), weight(r.last)) {
				if t.tracing() {
					t.trace("rotate left", "weight", n.weight)
				}
			} else {
				if t.tracing() {
					t.trace("rotate right-left", "weight", n.weight)
				}
				t.rotateRight(r)
			}
			t.rotateLeft(n)

			// n is now two levels below the old position of its parent,
			// the promoted node is balanced, continue above it
			n = n.parent.parent

		case !isBalanced(wLast, wFirst):
			// first side too heavy
			l := n.first
			if isSingleRotation(weight(l.last), weight(l.first)) {
				if t.tracing() {
					t.trace("rotate right", "weight", n.weight)
				}
			} else {
				if t.tracing() {
					t.trace("rotate left-right", "weight", n.weight)
				}
				t.rotateLeft(l)
			}
			t.rotateRight(n)

			n = n.parent.parent

		default:
			n = n.parent
		}
	}
}
