package experiment

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteTable renders one row per result: label, algorithm, runs, mean value
// and deviation, mean violation and deviation, mean lower-bound ratio,
// oracle calls and run id.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tALGORITHM\tRUNS\tVALUE\tSTDDEV\tVIOLATION\tSTDDEV\tRATIO\tORACLE CALLS\tRUN")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.3g\t%d\t%s\n",
			r.Label, r.Algorithm, r.Runs,
			r.Value, r.ValueStdDev,
			r.Violation, r.ViolationStdDev,
			r.Ratio, r.OracleCalls, r.RunID)
	}
	return tw.Flush()
}

// WriteSolutions prints every kept solution, one line per run.
func WriteSolutions(w io.Writer, results []Result) error {
	for _, r := range results {
		for i, sol := range r.Solutions {
			parts := make([]string, len(sol))
			for j, e := range sol {
				parts[j] = fmt.Sprint(e)
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\t#%d\t%s\n", r.Label, r.Algorithm, i, strings.Join(parts, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}
