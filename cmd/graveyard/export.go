// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graveyard/cmd/graveyard/cli"
	"github.com/bureau-foundation/graveyard/lib/bugindex"
)

type exportParams struct {
	Output string `flag:"output,o" desc:"destination file (required); a .zst or .lz4 suffix compresses"`
	Format string `flag:"format" desc:"jsonl, json, yaml or cbor (default: from the output extension)"`
}

func (app *application) exportCommand() *cli.Command {
	var params exportParams
	return &cli.Command{
		Name:    "export",
		Summary: "Write the dataset to a file",
		Description: `Write the loaded dataset to a file. The file is written to a temporary
sibling and renamed into place, so a viewer watching it never sees a
partial write.`,
		Usage: "graveyard [global flags] export --output <path> [--format <format>]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("export", &params)
		},
		Examples: []cli.Example{
			{Description: "Archive the built-in sample as compressed CBOR", Command: "graveyard export --output graveyard.cbor.zst"},
			{Description: "Convert a JSONL file to YAML", Command: "graveyard --file bugs.jsonl export -o bugs.yaml"},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.Output == "" {
				return cli.Validation("--output is required").
					WithHint("Pass --output <path>; the extension selects the format.")
			}
			settings, err := app.loadConfig()
			if err != nil {
				return err
			}
			store, err := app.loadStore(settings)
			if err != nil {
				return err
			}

			if params.Format == "" {
				if _, _, err := bugindex.DetectPath(params.Output); err != nil {
					return cli.Validation("%w", err).WithHint("Pass --format to choose the encoding explicitly.")
				}
				err = bugindex.WriteFile(params.Output, store.All())
			} else {
				format, parseErr := bugindex.ParseFormat(params.Format)
				if parseErr != nil {
					return cli.Validation("%w", parseErr)
				}
				err = bugindex.WriteFileFormat(params.Output, format, store.All())
			}
			if err != nil {
				return cli.Internal("export %s: %w", params.Output, err)
			}
			_, err = fmt.Fprintf(app.stdout, "exported %d bugs to %s\n", store.Len(), params.Output)
			return err
		},
	}
}
