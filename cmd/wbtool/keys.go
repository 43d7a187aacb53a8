// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/gaissmai/wbtree"
)

// entry is an integer keyed value, seq is the position on the command line
type entry struct {
	Key int `json:"key"`
	Seq int `json:"seq"`

	wbtree.Node[*entry] `json:"-"`
}

func entryKey(e *entry) int {
	return e.Key
}

// parseEntries converts the arguments to entries
func parseEntries(args []string) ([]*entry, error) {
	if len(args) == 0 {
		return nil, errors.New("need at least one key")
	}

	entries := make([]*entry, 0, len(args))
	for i, arg := range args {
		k, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "key #%d", i+1)
		}
		entries = append(entries, &entry{Key: k, Seq: i})
	}
	return entries, nil
}

// shape is what dump needs from Map and Multi
type shape interface {
	Len() int
	String() string
	MarshalJSON() ([]byte, error)
	Verify() error
}

// buildShape inserts the entries into a map or, with multi, into a
// multimap keeping all duplicates in command line order
func buildShape(entries []*entry, multi bool, trace *slog.Logger) shape {
	if multi {
		m := wbtree.NewOrderedMulti(entryKey)
		m.SetTracer(trace)
		for _, e := range entries {
			m.InsertLast(e)
		}
		return m
	}

	m := wbtree.NewOrderedMap(entryKey)
	m.SetTracer(trace)
	for _, e := range entries {
		m.Insert(e)
	}
	return m
}
