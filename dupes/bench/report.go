package bench

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

// Format selects a report writer.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat checks a format name. The empty name means FormatTable.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatTable, "":
		return FormatTable, nil
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, name)
	}
}

// Write renders measurements in the given format.
func Write(w io.Writer, format Format, ms []Measurement) error {
	format, err := ParseFormat(string(format))
	if err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		return WriteJSON(w, ms)
	case FormatCSV:
		return WriteCSV(w, ms)
	default:
		return WriteTable(w, ms)
	}
}

// WriteTable renders a human-readable table, one row per measurement, with
// a blank line between Cases.
func WriteTable(w io.Writer, ms []Measurement) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Length\tPolicy\tDetector\tResult\tMean\tP50\tP99\tRatio\tAllocs/op\tItems/s\t")

	var prev Case
	for i, m := range ms {
		if i > 0 && m.Case != prev {
			fmt.Fprintln(tw, "\t\t\t\t\t\t\t\t\t\t")
		}
		prev = m.Case
		fmt.Fprintf(tw, "%s\t%v\t%s\t%t\t%s\t%s\t%s\t%.2f\t%s\t%s\t\n",
			humanize.Comma(int64(m.Length)),
			m.Policy,
			m.Detector,
			m.Result,
			formatNs(m.MeanNs),
			formatNs(m.P50Ns),
			formatNs(m.P99Ns),
			m.Ratio,
			strconv.FormatFloat(m.AllocsPerOp, 'f', -1, 64),
			humanize.SIWithDigits(m.ItemsPerSec, 1, ""),
		)
	}
	return tw.Flush()
}

func formatNs(ns float64) string {
	return humanize.SIWithDigits(ns/float64(time.Second), 2, "s")
}

// WriteJSON renders the measurements as an indented JSON array.
func WriteJSON(w io.Writer, ms []Measurement) error {
	if ms == nil {
		ms = []Measurement{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ms)
}

// CSVHeader is the header row written by WriteCSV.
var CSVHeader = []string{
	"length", "policy", "detector", "strategy", "library", "baseline", "result",
	"iterations", "samples", "mean_ns", "min_ns", "max_ns", "p50_ns", "p90_ns", "p99_ns",
	"allocs_per_op", "items_per_sec", "ratio",
}

// WriteCSV renders the measurements as CSV with a header row.
func WriteCSV(w io.Writer, ms []Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
	for _, m := range ms {
		record := []string{
			strconv.Itoa(m.Length),
			m.Policy.String(),
			m.Detector,
			m.Strategy.String(),
			string(m.Library),
			strconv.FormatBool(m.Baseline),
			strconv.FormatBool(m.Result),
			strconv.Itoa(m.Iterations),
			strconv.Itoa(m.Samples),
			f(m.MeanNs), f(m.MinNs), f(m.MaxNs), f(m.P50Ns), f(m.P90Ns), f(m.P99Ns),
			f(m.AllocsPerOp), f(m.ItemsPerSec), f(m.Ratio),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
