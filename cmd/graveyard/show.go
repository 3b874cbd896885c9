// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graveyard/cmd/graveyard/cli"
	"github.com/bureau-foundation/graveyard/lib/schema/bug"
)

type showParams struct {
	cli.Output
}

func (app *application) showCommand() *cli.Command {
	var params showParams
	return &cli.Command{
		Name:    "show",
		Summary: "Show one bug in full",
		Usage:   "graveyard [global flags] show <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Examples: []cli.Example{
			{Command: "graveyard show BUG-005"},
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("show takes exactly one bug ID, got %d arguments", len(args))
			}
			settings, err := app.loadConfig()
			if err != nil {
				return err
			}
			store, err := app.loadStore(settings)
			if err != nil {
				return err
			}

			record, found := store.Get(args[0])
			if !found {
				return cli.NotFound("bug %q not found", args[0]).
					WithHint("Run 'graveyard list' to see every bug ID.")
			}
			return params.Emit(app.stdout, record, func(w io.Writer) error {
				return writeBugDetail(w, record)
			})
		},
	}
}

// writeBugDetail writes a plain-text rendering of record: a header
// table, then each non-empty section under its title.
func writeBugDetail(w io.Writer, record bug.Bug) error {
	table := cli.NewTable(w)
	fmt.Fprintf(table, "ID:\t%s\n", record.ID)
	fmt.Fprintf(table, "Title:\t%s\n", record.Title)
	fmt.Fprintf(table, "Severity:\t%s\n", record.Severity.Label())
	fmt.Fprintf(table, "Status:\t%s\n", record.Status.Label())
	fmt.Fprintf(table, "Module:\t%s\n", record.Module)
	fmt.Fprintf(table, "Created:\t%s\n", record.CreatedAt)
	if record.ClosedAt != "" {
		fmt.Fprintf(table, "Closed:\t%s\n", record.ClosedAt)
	}
	if record.Assignee != "" {
		fmt.Fprintf(table, "Assignee:\t%s\n", record.Assignee)
	}
	if record.Reporter != "" {
		fmt.Fprintf(table, "Reporter:\t%s\n", record.Reporter)
	}
	fmt.Fprintf(table, "Time to fix:\t%s\n", fixTime(record.TimeToFix))
	if err := table.Flush(); err != nil {
		return err
	}

	section := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		fmt.Fprintf(w, "\n%s\n  %s\n", title, strings.ReplaceAll(strings.TrimSpace(body), "\n", "\n  "))
	}
	section("Description", record.Description)
	section("Root cause", record.RootCause)
	section("Fix", record.Fix)
	section("Lessons learned", record.LessonsLearned)

	if len(record.Prevention) > 0 {
		fmt.Fprintf(w, "\nPrevention\n")
		for _, item := range record.Prevention {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
	if len(record.ImpactedModules) > 0 {
		fmt.Fprintf(w, "\nImpacted modules\n  %s\n", strings.Join(record.ImpactedModules, ", "))
	}
	if len(record.Timeline) > 0 {
		fmt.Fprintf(w, "\nTimeline\n")
		timeline := cli.NewTable(w)
		for _, event := range record.Timeline {
			fmt.Fprintf(timeline, "  %s\t%s\t%s\t%s\n", event.Date, event.Event, event.User, event.Detail)
		}
		if err := timeline.Flush(); err != nil {
			return err
		}
	}
	if record.RIP != "" {
		fmt.Fprintf(w, "\nRIP: %s\n", record.RIP)
	}
	return nil
}
