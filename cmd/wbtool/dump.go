// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

var cmdDump = &cli.Command{
	Name:      "dump",
	Usage:     "insert integer keys and print the balanced tree",
	ArgsUsage: `<key>...`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "multi",
			Usage: "keep duplicate keys, append them to their run",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the entries in key order as JSON",
		},
	},
	Action: runDump,
}

func runDump(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)

	entries, err := parseEntries(cctx.Args().Slice())
	if err != nil {
		return err
	}

	m := buildShape(entries, cctx.Bool("multi"), tracer(cctx, logger))
	if err := m.Verify(); err != nil {
		return errors.Wrap(err, "dump")
	}
	logger.Debug("tree built", "keys", len(entries), "len", m.Len())

	if cctx.Bool("json") {
		buf, err := m.MarshalJSON()
		if err != nil {
			return errors.Wrap(err, "marshal")
		}
		fmt.Println(string(buf))
		return nil
	}

	fmt.Print(m.String())
	return nil
}
