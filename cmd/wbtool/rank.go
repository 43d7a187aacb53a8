// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/gaissmai/wbtree"
)

var cmdRank = &cli.Command{
	Name:      "rank",
	Usage:     "print the rank of a key and the key at every position",
	ArgsUsage: `<key>...`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "key",
			Aliases:  []string{"k"},
			Usage:    "key to rank",
			Required: true,
		},
	},
	Action: runRank,
}

func runRank(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)

	entries, err := parseEntries(cctx.Args().Slice())
	if err != nil {
		return err
	}

	m := wbtree.NewOrderedMap(entryKey)
	m.SetTracer(tracer(cctx, logger))
	for _, e := range entries {
		m.Insert(e)
	}

	return printRank(os.Stdout, m, cctx.Int("key"))
}

// printRank writes the rank of key, or the rank of its predecessor on a
// miss, followed by the select table of m.
func printRank(w io.Writer, m *wbtree.Map[int, *entry], key int) error {
	if m.IsEmpty() {
		return errors.New("empty tree")
	}

	e, ok, exact := m.FindBefore(key)
	switch {
	case exact:
		fmt.Fprintf(w, "rank(%d) = %d\n", key, m.Index(e))
	case ok:
		fmt.Fprintf(w, "rank(%d) = -, predecessor %d at %d\n", key, e.Key, m.Index(e))
	default:
		fmt.Fprintf(w, "rank(%d) = -, no predecessor\n", key)
	}

	for i := range m.Len() {
		fmt.Fprintf(w, "at(%d) = %d\n", i, m.At(i).Key)
	}
	return nil
}
