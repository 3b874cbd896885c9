// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graveyard/cmd/graveyard/cli"
	"github.com/bureau-foundation/graveyard/lib/bugindex"
)

type analyticsParams struct {
	cli.Output
	Limit int `flag:"limit" desc:"number of module hotspots (default: analytics.hotspot_limit, 6)"`
}

func (app *application) analyticsCommand() *cli.Command {
	var params analyticsParams
	return &cli.Command{
		Name:    "analytics",
		Summary: "Show the dashboard numbers and every aggregation",
		Description: `Show the summary (totals, resolution rate, average fix time), the
severity distribution, the status overview, the module hotspots and the
time-to-fix trend.

Bugs whose created_at does not parse are left out of the trend. Each is
logged as a warning and listed under diagnostics.`,
		Usage: "graveyard [global flags] analytics [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("analytics", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.Limit < 0 {
				return cli.Validation("--limit must not be negative, got %d", params.Limit)
			}
			settings, err := app.loadConfig()
			if err != nil {
				return err
			}
			store, err := app.loadStore(settings)
			if err != nil {
				return err
			}

			limit := params.Limit
			if limit == 0 {
				limit = settings.Analytics.HotspotLimit
			}
			analytics := store.Analyze(limit)

			logger := app.logger(settings, "analytics")
			for _, diagnostic := range bugindex.TimestampErrors(analytics.TrendErr) {
				logger.Warn("bug excluded from time-to-fix trend",
					"bug", diagnostic.BugID,
					"field", diagnostic.Field,
					"value", diagnostic.Value,
					"error", diagnostic.Err,
				)
			}

			return params.Emit(app.stdout, analytics, func(w io.Writer) error {
				return writeAnalytics(w, analytics)
			})
		},
	}
}

func writeAnalytics(w io.Writer, analytics bugindex.Analytics) error {
	summary := analytics.Summary
	table := cli.NewTable(w)
	if analytics.Fingerprint != nil {
		fmt.Fprintf(table, "Dataset:\t%s\n", analytics.Fingerprint.Short())
	}
	fmt.Fprintf(table, "Total bugs:\t%d\n", summary.Total)
	fmt.Fprintf(table, "Buried:\t%d\n", summary.Buried)
	fmt.Fprintf(table, "Still haunting:\t%d\n", summary.Haunting)
	fmt.Fprintf(table, "Critical:\t%d\n", summary.Critical)
	fmt.Fprintf(table, "Lessons captured:\t%d\n", summary.LessonsCaptured)
	fmt.Fprintf(table, "Resolution rate:\t%s\n", summary.ResolutionRate)
	fmt.Fprintf(table, "Average fix time:\t%s\n", summary.AverageFixTime)
	if err := table.Flush(); err != nil {
		return err
	}

	writeCounts := func(title string, counts []bugindex.Count) error {
		fmt.Fprintf(w, "\n%s\n", title)
		if len(counts) == 0 {
			_, err := fmt.Fprintln(w, "  (none)")
			return err
		}
		table := cli.NewTable(w)
		for _, count := range counts {
			fmt.Fprintf(table, "  %s\t%d\n", count.Label, count.Count)
		}
		return table.Flush()
	}
	if err := writeCounts("Severity distribution", analytics.SeverityDistribution); err != nil {
		return err
	}
	if err := writeCounts("Status overview", analytics.StatusOverview); err != nil {
		return err
	}
	if err := writeCounts("Module hotspots", analytics.ModuleHotspots); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTime to fix trend\n")
	if len(analytics.TimeToFixTrend) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		trend := cli.NewTable(w)
		for _, point := range analytics.TimeToFixTrend {
			fmt.Fprintf(trend, "  %s\t%s\t%gh\n", point.BugID, point.CreatedAt.Format("2006-01-02"), point.Hours)
		}
		if err := trend.Flush(); err != nil {
			return err
		}
	}

	if len(analytics.Diagnostics) > 0 {
		fmt.Fprintf(w, "\nDiagnostics\n")
		for _, diagnostic := range analytics.Diagnostics {
			fmt.Fprintf(w, "  %s\n", diagnostic)
		}
	}
	return nil
}
