// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command wbtool builds weight-balanced trees from keys given on the
// command line, prints their shape, answers rank and select queries
// and runs randomized stress workloads with full sanity checks.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "wbtool",
		Usage:   "inspect and stress intrusive weight-balanced trees",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "info",
				EnvVars: []string{"WBTOOL_LOG_LEVEL", "LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "trace",
				Usage:   "trace the tree operations at debug level",
				EnvVars: []string{"WBTOOL_TRACE"},
			},
		},
	}
	app.Commands = []*cli.Command{
		cmdDump,
		cmdRank,
		cmdStress,
	}
	return app.Run(args)
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// tracer returns the logger for the tree tracer, nil if tracing is off
func tracer(cctx *cli.Context, logger *slog.Logger) *slog.Logger {
	if !cctx.Bool("trace") {
		return nil
	}
	return logger.With("component", "wbtree")
}
