package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lguimbarda/dupbench/dupes/bench"
	"github.com/lguimbarda/dupbench/dupes/core"
	"github.com/lguimbarda/dupbench/dupes/store"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored runs, or print one with --run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.history(cmd)
		},
	}

	f := cmd.Flags()
	f.String("db", "", "SQLite database written by run --db")
	f.String("run", "", "id of the run to print")
	f.String("format", string(bench.FormatTable), "output format for --run: table, json or csv")
	f.Bool("delete", false, "delete the run given by --run")
	return cmd
}

func (a *app) history(cmd *cobra.Command) error {
	v := a.v
	path := v.GetString("db")
	if path == "" {
		return errors.New("--db is required")
	}
	format, err := bench.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	s, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	if id := v.GetString("run"); id != "" {
		if v.GetBool("delete") {
			if err := s.DeleteRun(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %s\n", id)
			return nil
		}
		stream, err := s.Measurements(ctx, id)
		if err != nil {
			return err
		}
		ms, err := core.Slice(ctx, stream)
		if err != nil {
			return err
		}
		return bench.Write(out, format, ms)
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCreated\tSeed\tSamples\tRows\tNote")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, humanize.RelTime(r.CreatedAt, time.Now(), "ago", "from now"),
			r.Seed, r.Samples, r.Measurements, r.Note)
	}
	return tw.Flush()
}
