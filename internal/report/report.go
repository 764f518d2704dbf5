// Package report renders driver.Stats as the textual table spec.md's
// external interfaces section calls for, using tablewriter in place of
// the original's tabulate dependency.
package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/cachetrace/simulator/internal/driver"
)

// WriteStats renders one policy's Stats as a two-column metric/value
// table, including the nine primary counters, the three derived ratios,
// and Cold Misses.
func WriteStats(w io.Writer, policyName string, stats driver.Stats) {
	table := tablewriter.NewTable(w)
	table.Header("Metric", policyName)

	rows := [][2]string{
		{"Read Requests", strconv.FormatInt(stats.ReadReq, 10)},
		{"Read Hits", strconv.FormatInt(stats.ReadHit, 10)},
		{"Read Misses", strconv.FormatInt(stats.ReadMiss, 10)},
		{"Write Requests", strconv.FormatInt(stats.WriteReq, 10)},
		{"Write Hits", strconv.FormatInt(stats.WriteHit, 10)},
		{"Write Misses", strconv.FormatInt(stats.WriteMiss, 10)},
		{"Total Requests", strconv.FormatInt(stats.TotalReq, 10)},
		{"Total Hits", strconv.FormatInt(stats.TotalHit, 10)},
		{"Total Misses", strconv.FormatInt(stats.TotalMiss, 10)},
		{"Cold Misses", strconv.FormatInt(stats.ColdMisses, 10)},
		{"Read Hit Ratio", formatRatio(stats.ReadHitRatio())},
		{"Write Hit Ratio", formatRatio(stats.WriteHitRatio())},
		{"Total Hit Ratio", formatRatio(stats.TotalHitRatio())},
	}
	for _, row := range rows {
		table.Append(row[0], row[1])
	}

	table.Render()
}

// WriteComparison renders a summary table of total-hit-ratio across
// every policy run against the same trace, for the compare subcommand.
func WriteComparison(w io.Writer, results []driver.Result) {
	table := tablewriter.NewTable(w)
	table.Header("Policy", "Total Hits", "Total Misses", "Hit Ratio")

	for _, r := range results {
		table.Append(
			r.PolicyName,
			strconv.FormatInt(r.Stats.TotalHit, 10),
			strconv.FormatInt(r.Stats.TotalMiss, 10),
			formatRatio(r.Stats.TotalHitRatio()),
		)
	}

	table.Render()
}

func formatRatio(r float64) string {
	return strconv.FormatFloat(r*100, 'f', 2, 64) + "%"
}
