package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	engine "github.com/scoutline/pennant/internal/app"
)

// renderTable prints the top of the standings as an aligned table plus a
// summary of players that could not be scored.
func renderTable(w io.Writer, report *engine.Report, topN int) error {
	n := len(report.Ranked)
	if topN > 0 && topN < n {
		n = topN
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tLEVEL\tROLE\tTIER\tFINAL\tBASE\tMOD\tTREND\tAGE\tSOURCE")
	for _, r := range report.Ranked[:n] {
		name := r.Name
		if name == "" {
			name = r.PlayerID
		}
		flag := ""
		if r.Indeterminate {
			flag = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.1f\t%.0f(%s)\t%+.1f%s\t%+.1f\t%+.1f\t%s\n",
			r.Rank, name, r.Level, r.Role, r.Tier,
			r.FinalScore, r.BaselineGrade, r.BaselineSource,
			r.PerformanceModifier, flag, r.TrendAdjustment, r.AgeAdjustment, r.Source,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d ranked, %d unranked (run %s, %.0fms)\n",
		len(report.Ranked), len(report.Unranked), report.RunID,
		float64(report.Elapsed.Microseconds())/1000.0,
	)
	for _, u := range report.Unranked {
		fmt.Fprintf(w, "  unranked: %s (%s)\n", u.PlayerID, u.Reason)
	}
	return nil
}

// renderJSON prints the report, truncated to topN ranked rows.
func renderJSON(w io.Writer, report *engine.Report, topN int) error {
	out := *report
	if topN > 0 && topN < len(out.Ranked) {
		out.Ranked = out.Ranked[:topN]
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&out)
}
