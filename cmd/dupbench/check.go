package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/lguimbarda/dupbench/dupes/bench"
	"github.com/lguimbarda/dupbench/dupes/gen"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Generate one array and print every detector's verdict",
		Long: "Generate one array and print every detector's verdict.\n" +
			"Exits with status 2 if the detectors disagree.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.check(cmd)
		},
	}

	f := cmd.Flags()
	f.Int("length", 10, "array length")
	f.String("policy", gen.Far.String(), "duplicate policy")
	f.Uint32("seed", bench.DefaultSeed, "generator seed")
	f.Bool("print", false, "print the generated array")
	return cmd
}

func (a *app) check(cmd *cobra.Command) error {
	v := a.v
	policy, err := gen.ParsePolicy(v.GetString("policy"))
	if err != nil {
		return err
	}
	c := bench.Case{Length: v.GetInt("length"), Policy: policy}

	items, verdicts, checkErr := bench.Check(c, v.GetUint32("seed"))
	if verdicts == nil {
		return checkErr
	}

	out := cmd.OutOrStdout()
	if v.GetBool("print") {
		fmt.Fprintln(out, items)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Detector\tHas duplicate\n")
	for _, vd := range verdicts {
		fmt.Fprintf(tw, "%s\t%t\n", vd.Detector, vd.Result)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return checkErr
}
