// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package random generates deterministic test keys and workloads
// from a seeded PRNG.
package random

import (
	"math/rand/v2"
	"slices"
)

// Perm returns the keys 1..n in random order.
func Perm(prng *rand.Rand, n int) []int {
	keys := make([]int, n)
	for i, p := range prng.Perm(n) {
		keys[i] = p + 1
	}
	return keys
}

// Ascending returns the keys 1..n in order, the worst case for
// naive binary trees.
func Ascending(n int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i + 1
	}
	return keys
}

// Descending returns the keys n..1.
func Descending(n int) []int {
	keys := Ascending(n)
	slices.Reverse(keys)
	return keys
}

// Ints returns n random keys in [0, limit), for small limits
// with many duplicates.
func Ints(prng *rand.Rand, n, limit int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = prng.IntN(limit)
	}
	return keys
}

// Shuffle returns a shuffled copy of s.
func Shuffle[T any](prng *rand.Rand, s []T) []T {
	c := slices.Clone(s)
	prng.Shuffle(len(c), func(i, j int) { c[i], c[j] = c[j], c[i] })
	return c
}

// Op is a random mutation of a workload.
type Op int

const (
	OpInsert Op = iota
	OpRemove
)

func (op Op) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Step of a churn workload.
type Step struct {
	Op  Op
	Key int
}

// Churn returns n random insert and remove steps on keys in [0, limit).
// Inserts are twice as likely as removes so the workload grows.
func Churn(prng *rand.Rand, n, limit int) []Step {
	steps := make([]Step, n)
	for i := range steps {
		op := OpInsert
		if prng.IntN(3) == 0 {
			op = OpRemove
		}
		steps[i] = Step{Op: op, Key: prng.IntN(limit)}
	}
	return steps
}
