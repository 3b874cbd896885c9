// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graveyard/cmd/graveyard/cli"
	"github.com/bureau-foundation/graveyard/lib/bugindex"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

type listParams struct {
	cli.Output
	Search   string `flag:"search,q" desc:"case-insensitive substring of the title or description"`
	Severity string `flag:"severity" default:"all" desc:"critical, high, medium, low, info or all"`
	Status   string `flag:"status" default:"all" desc:"open, investigating, fixing, testing, closed or all"`
	Module   string `flag:"module" default:"all" desc:"exact impacted module name or all"`

	ExitStatus bool `flag:"exit-status" desc:"exit with status 1 when no bug matches"`
}

func (app *application) listCommand() *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List bugs matching the filters",
		Description: `List bugs matching every given filter, in dataset order.

--search matches the title or description case-insensitively. The other
filters match exactly; "all" disables a filter.

With --exit-status, an empty result still prints normally but the
command exits with status 1, so scripts can tell "no matches" apart
from a listing.`,
		Usage: "graveyard [global flags] list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Examples: []cli.Example{
			{Description: "Critical bugs", Command: "graveyard list --severity critical"},
			{Description: "Bugs touching the payment service", Command: `graveyard list --module "Payment Service"`},
			{Description: "Fail a script when no open bug is left", Command: "graveyard list --status open --exit-status"},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			criteria := bugindex.Criteria{
				Search:   params.Search,
				Severity: params.Severity,
				Status:   params.Status,
				Module:   params.Module,
			}
			if err := criteria.Validate(); err != nil {
				return cli.Validation("%w", err).WithHint(fmt.Sprintf("Severities: %s. Statuses: %s.",
					joinSeverities(bug.Severities()), joinStatuses(bug.Statuses())))
			}

			settings, err := app.loadConfig()
			if err != nil {
				return err
			}
			store, err := app.loadStore(settings)
			if err != nil {
				return err
			}

			bugs := store.List(criteria)
			if err := params.Emit(app.stdout, bugs, func(w io.Writer) error {
				return writeBugTable(w, bugs)
			}); err != nil {
				return err
			}
			if params.ExitStatus && len(bugs) == 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// writeBugTable writes one aligned row per bug.
func writeBugTable(w io.Writer, bugs []bug.Bug) error {
	if len(bugs) == 0 {
		_, err := fmt.Fprintln(w, "No bugs found")
		return err
	}
	table := cli.NewTable(w)
	fmt.Fprintln(table, "ID\tSEVERITY\tSTATUS\tFIX TIME\tTITLE")
	for index := range bugs {
		record := &bugs[index]
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
			record.ID, record.Severity, record.Status, fixTime(record.TimeToFix), record.Title)
	}
	return table.Flush()
}

// fixTime renders a recorded fix time in hours, or the undefined
// placeholder.
func fixTime(hours *float64) string {
	if hours == nil {
		return bugindex.UndefinedPlaceholder
	}
	return fmt.Sprintf("%gh", *hours)
}

func joinSeverities(severities []bug.Severity) string {
	names := make([]string, len(severities))
	for index, severity := range severities {
		names[index] = string(severity)
	}
	return strings.Join(names, ", ")
}

func joinStatuses(statuses []bug.Status) string {
	names := make([]string, len(statuses))
	for index, status := range statuses {
		names[index] = string(status)
	}
	return strings.Join(names, ", ")
}
