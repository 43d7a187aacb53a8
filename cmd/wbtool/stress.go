// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/gaissmai/wbtree"
	"github.com/gaissmai/wbtree/internal/tests/random"
)

var cmdStress = &cli.Command{
	Name:  "stress",
	Usage: "random insert and remove churn, verify the tree after every step",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "n",
			Usage: "number of steps",
			Value: 100_000,
		},
		&cli.Uint64Flag{
			Name:    "seed",
			Usage:   "seed of the random generator",
			Value:   42,
			EnvVars: []string{"WBTOOL_SEED"},
		},
		&cli.IntFlag{
			Name:  "keys",
			Usage: "size of the key space",
			Value: 1_000,
		},
		&cli.BoolFlag{
			Name:  "names",
			Usage: "use generated person names as string keys",
		},
	},
	Action: runStress,
}

func runStress(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)

	n, limit, seed := cctx.Int("n"), cctx.Int("keys"), cctx.Uint64("seed")
	if n < 0 || limit <= 0 {
		return errors.Newf("invalid workload, steps: %d, keys: %d", n, limit)
	}

	prng := rand.New(rand.NewPCG(seed, seed))
	steps := random.Churn(prng, n, limit)

	start := time.Now()

	var (
		size int
		err  error
	)
	if cctx.Bool("names") {
		size, err = stressNames(steps, limit, seed, tracer(cctx, logger))
	} else {
		size, err = stressInts(steps, tracer(cctx, logger))
	}
	if err != nil {
		return err
	}

	logger.Info("stress done", "steps", n, "seed", seed, "len", size, "duration", time.Since(start))
	return nil
}

// stressInts runs the workload on integer keys
func stressInts(steps []random.Step, trace *slog.Logger) (int, error) {
	m := wbtree.NewOrderedMap(entryKey)
	m.SetTracer(trace)

	for i, step := range steps {
		switch step.Op {
		case random.OpInsert:
			m.Insert(&entry{Key: step.Key, Seq: i})
		case random.OpRemove:
			m.RemoveKey(step.Key)
		}

		if err := m.Verify(); err != nil {
			return 0, errors.Wrapf(err, "step %d, %s %d", i, step.Op, step.Key)
		}
	}
	return m.Len(), nil
}

// person is a name keyed value
type person struct {
	name string
	wbtree.Node[*person]
}

func personName(p *person) string {
	return p.name
}

// stressNames runs the workload on a fixed pool of generated names,
// the step key selects the name
func stressNames(steps []random.Step, limit int, seed uint64, trace *slog.Logger) (int, error) {
	faker := gofakeit.New(int64(seed))

	names := make([]string, limit)
	for i := range names {
		names[i] = faker.Name()
	}

	m := wbtree.NewMap(personName, strings.Compare)
	m.SetTracer(trace)

	for i, step := range steps {
		name := names[step.Key]

		switch step.Op {
		case random.OpInsert:
			m.Insert(&person{name: name})
		case random.OpRemove:
			m.RemoveKey(name)
		}

		if err := m.Verify(); err != nil {
			return 0, errors.Wrapf(err, "step %d, %s %q", i, step.Op, name)
		}
	}
	return m.Len(), nil
}
