// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sset is an ordered set of strings on top of [wbtree.Map].
//
// Unlike the wbtree containers the set owns its elements,
// it allocates one element per inserted string.
// Strings are ordered byte-wise.
package sset

import (
	"iter"
	"strings"

	"github.com/gaissmai/wbtree"
)

// Elem is a string in the set. Use it to iterate with [Set.Next]
// and [Set.Previous] or to remove it with [Set.RemoveElem].
type Elem struct {
	s string
	wbtree.Node[*Elem]
}

// String returns the string of the element.
func (e *Elem) String() string {
	return e.s
}

func elemString(e *Elem) string {
	return e.s
}

// Set is an ordered set of strings, the zero value is an empty set.
type Set struct {
	m *wbtree.Map[string, *Elem]
}

// lazy init, the zero value is ready to use
func (s *Set) init() {
	if s.m == nil {
		s.m = wbtree.NewMap(elemString, strings.Compare)
	}
}

// Len returns the number of strings.
func (s *Set) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Insert adds str and reports whether it was not yet in the set.
func (s *Set) Insert(str string) bool {
	s.init()
	if _, ok := s.m.Find(str); ok {
		return false
	}
	s.m.Insert(&Elem{s: strings.Clone(str)})
	return true
}

// Remove deletes str and reports whether it was in the set.
func (s *Set) Remove(str string) bool {
	if s.m == nil {
		return false
	}
	_, ok := s.m.RemoveKey(str)
	return ok
}

// RemoveElem deletes the element e, it must be in the set.
func (s *Set) RemoveElem(e *Elem) {
	s.init()
	s.m.Remove(e)
}

// Find returns the element of str or nil.
func (s *Set) Find(str string) *Elem {
	if s.m == nil {
		return nil
	}
	e, _ := s.m.Find(str)
	return e
}

// Contains reports whether str is in the set.
func (s *Set) Contains(str string) bool {
	return s.Find(str) != nil
}

// FindBefore returns the greatest element less than or equal to str or nil,
// exact reports whether it equals str.
func (s *Set) FindBefore(str string) (e *Elem, exact bool) {
	if s.m == nil {
		return nil, false
	}
	e, _, exact = s.m.FindBefore(str)
	return e, exact
}

// First returns the smallest element or nil.
func (s *Set) First() *Elem {
	if s.m == nil {
		return nil
	}
	e, _ := s.m.First()
	return e
}

// Last returns the greatest element or nil.
func (s *Set) Last() *Elem {
	if s.m == nil {
		return nil
	}
	e, _ := s.m.Last()
	return e
}

// Next returns the element following e or nil.
func (s *Set) Next(e *Elem) *Elem {
	s.init()
	next, _ := s.m.Next(e)
	return next
}

// Previous returns the element preceding e or nil.
func (s *Set) Previous(e *Elem) *Elem {
	s.init()
	prev, _ := s.m.Previous(e)
	return prev
}

// All returns an iterator over the strings in order.
func (s *Set) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if s.m == nil {
			return
		}
		for e := range s.m.All() {
			if !yield(e.s) {
				return
			}
		}
	}
}

// Clear removes all strings.
func (s *Set) Clear() {
	if s.m != nil {
		s.m.Clear()
	}
}

// Verify runs the sanity check of the underlying map.
func (s *Set) Verify() error {
	if s.m == nil {
		return nil
	}
	return s.m.Verify()
}
