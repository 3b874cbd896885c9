// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graveyard/cmd/graveyard/cli"
)

type modulesParams struct {
	cli.Output
}

func (app *application) modulesCommand() *cli.Command {
	var params modulesParams
	return &cli.Command{
		Name:    "modules",
		Summary: "List every impacted module, in first-seen order",
		Usage:   "graveyard [global flags] modules [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("modules", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			settings, err := app.loadConfig()
			if err != nil {
				return err
			}
			store, err := app.loadStore(settings)
			if err != nil {
				return err
			}

			modules := store.Modules()
			return params.Emit(app.stdout, modules, func(w io.Writer) error {
				for _, module := range modules {
					if _, err := fmt.Fprintln(w, module); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
