// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bureau-foundation/graveyard/cmd/graveyard/cli"
	"github.com/bureau-foundation/graveyard/lib/version"
)

func (app *application) versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Show version information",
		Run: func([]string) error {
			_, err := fmt.Fprintf(app.stdout, "graveyard %s\n", version.Full())
			return err
		},
	}
}
