package main

import (
	"fmt"
	"io"

	"purchase-insight/internal/cfg"
	"purchase-insight/internal/dataset"
	"purchase-insight/internal/importance"
	"purchase-insight/internal/profile"
	"purchase-insight/internal/stats"
)

// writeReport prints the full text report: headline summary, grouped
// breakdowns, the feature ranking, and the segment cards.
func writeReport(w io.Writer, ds *dataset.Dataset, warnings []dataset.RowWarning, c cfg.Settings) {
	fmt.Fprintln(w, "=== Purchase Insight Report ===")
	fmt.Fprintf(w, "Records: %d\n", ds.Len())
	if len(warnings) > 0 {
		fmt.Fprintf(w, "Row warnings: %d\n", len(warnings))
		for _, rw := range warnings {
			fmt.Fprintf(w, "  line %d: %s\n", rw.Line, rw.Reason)
		}
	}
	fmt.Fprintln(w)

	writeSummary(w, ds)
	writeImportance(w, ds, c)
	writeSegments(w, ds)
}

func writeSummary(w io.Writer, ds *dataset.Dataset) {
	sum := stats.Summarize(ds)

	fmt.Fprintln(w, "--- Summary ---")
	if sum.PurchaseRate.Valid {
		fmt.Fprintf(w, "Purchase rate: %.1f%%\n", sum.PurchaseRate.Value)
	}
	if sum.AvgAge.Valid {
		fmt.Fprintf(w, "Average age: %.1f\n", sum.AvgAge.Value)
	}
	if sum.AvgSalary.Valid {
		fmt.Fprintf(w, "Average salary: %.0f\n", sum.AvgSalary.Value)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Purchase rate by age group:")
	for _, g := range stats.AgeGroupRates(ds) {
		fmt.Fprintf(w, "  %-6s %5.1f%%  (%d records)\n", g.Group, g.Rate, g.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Brand preference:")
	for _, b := range stats.BrandDistribution(ds) {
		fmt.Fprintf(w, "  %-10s %d\n", b.Brand, b.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Purchase rate by behavioral factor:")
	for _, f := range stats.FactorRates(ds) {
		fmt.Fprintf(w, "  %-22s %5.1f%%\n", f.Name, f.Rate)
	}
	fmt.Fprintln(w)
}

func writeImportance(w io.Writer, ds *dataset.Dataset, c cfg.Settings) {
	policy := importance.DefaultPolicy()
	if c.MaxDistinctValues > 0 {
		policy.MaxDistinctValues = c.MaxDistinctValues
	}
	if len(c.CategoricalFields) > 0 {
		policy.CategoricalColumns = c.CategoricalFields
	}

	ranked := importance.TopK(importance.Rank(ds, importance.DefaultFields(), policy), c.TopFeatures)
	percents := importance.NormalizePercent(ranked)

	fmt.Fprintf(w, "--- Top %d Features ---\n", len(ranked))
	for i, fs := range ranked {
		fmt.Fprintf(w, "  %-20s %.4f  (%5.1f%%)\n", fs.Feature, fs.Importance, percents[i].Percent)
	}
	fmt.Fprintln(w)
}

func writeSegments(w io.Writer, ds *dataset.Dataset) {
	fmt.Fprintln(w, "--- Customer Segments ---")
	for _, seg := range profile.Segments(ds) {
		fmt.Fprintf(w, "  %s %-16s %3d records, %5.1f%% purchase rate\n",
			seg.Icon, seg.Name, seg.Count, seg.PurchaseRate)
	}
}
