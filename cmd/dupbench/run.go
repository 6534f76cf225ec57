package main

import (
	"fmt"
	"log/slog"

	"github.com/lguimbarda/dupbench/dupes/bench"
	"github.com/lguimbarda/dupbench/dupes/gen"
	"github.com/lguimbarda/dupbench/dupes/store"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time every detector over a length x policy matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}

	f := cmd.Flags()
	f.IntSlice("lengths", bench.DefaultLengths, "array lengths to generate")
	f.StringSlice("policies", policyNames(bench.DefaultPolicies), "duplicate policies to generate")
	f.Int("samples", bench.DefaultSamples, "timing samples per detector and case")
	f.Int("warmup", bench.DefaultWarmup, "untimed calls before sampling")
	f.Duration("target", bench.DefaultSampleTarget, "minimum duration of one sample")
	f.Int("max-iterations", bench.DefaultMaxIterations, "maximum calls per sample")
	f.Int("alloc-runs", bench.DefaultAllocRuns, "calls averaged when counting allocations")
	f.Int("parallel", 1, "cases timed concurrently")
	f.Uint32("seed", bench.DefaultSeed, "base seed for generated arrays")
	f.Bool("linq", false, "also time the go-linq renditions")
	f.String("format", string(bench.FormatTable), "output format: table, json or csv")
	f.String("db", "", "SQLite database to record the run in")
	f.String("note", "", "note stored with the run")
	return cmd
}

func (a *app) run(cmd *cobra.Command) error {
	v := a.v
	format, err := bench.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}
	policies, err := parsePolicies(v.GetStringSlice("policies"))
	if err != nil {
		return err
	}
	cases := bench.Matrix(v.GetIntSlice("lengths"), policies)
	seed := v.GetUint32("seed")

	a.logger.Info("starting run",
		slog.Int("cases", len(cases)),
		slog.Int("samples", v.GetInt("samples")),
		slog.Uint64("seed", uint64(seed)))

	ms, err := bench.Run(cmd.Context(), cases,
		bench.WithSeed(seed),
		bench.WithSamples(v.GetInt("samples")),
		bench.WithWarmup(v.GetInt("warmup")),
		bench.WithSampleTarget(v.GetDuration("target")),
		bench.WithMaxIterations(v.GetInt("max-iterations")),
		bench.WithAllocRuns(v.GetInt("alloc-runs")),
		bench.WithParallelism(v.GetInt("parallel")),
		bench.WithLinq(v.GetBool("linq")),
		bench.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	if path := v.GetString("db"); path != "" {
		s, err := store.Open(cmd.Context(), path)
		if err != nil {
			return err
		}
		defer s.Close()

		saved, err := s.SaveRun(cmd.Context(), store.Run{
			Seed:    seed,
			Samples: v.GetInt("samples"),
			Note:    v.GetString("note"),
		}, ms)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		a.logger.Info("run saved", slog.String("id", saved.ID), slog.String("db", path))
	}

	return bench.Write(cmd.OutOrStdout(), format, ms)
}

func parsePolicies(names []string) ([]gen.Policy, error) {
	policies := make([]gen.Policy, 0, len(names))
	for _, name := range names {
		p, err := gen.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func policyNames(policies []gen.Policy) []string {
	names := make([]string, len(policies))
	for i, p := range policies {
		names[i] = p.String()
	}
	return names
}
