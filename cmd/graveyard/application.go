// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graveyard/cmd/graveyard/cli"
	"github.com/bureau-foundation/graveyard/lib/bugindex"
	"github.com/bureau-foundation/graveyard/lib/config"
)

// GlobalFlags are accepted before the subcommand name.
type GlobalFlags struct {
	File      string
	Config    string
	LogOutput string
}

// AddFlags binds the global flags. Current values are the defaults, so
// rebuilding the flag set (as help output does) keeps parsed values.
func (flags *GlobalFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.File, "file", flags.File, "bug file (.jsonl, .json, .yaml, .cbor, optionally .zst/.lz4); default: the built-in sample")
	flagSet.StringVar(&flags.Config, "config", flags.Config, "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&flags.LogOutput, "log-output", flags.LogOutput, "write JSON log records to this file")
}

// application holds what every command shares: the global flags and
// the output streams.
type application struct {
	globals GlobalFlags
	stdout  io.Writer
	stderr  io.Writer

	// runProgram runs the viewer. Replaced in tests.
	runProgram func(*tea.Program) error
}

func newApplication(stdout, stderr io.Writer) *application {
	return &application{
		stdout: stdout,
		stderr: stderr,
		runProgram: func(program *tea.Program) error {
			_, err := program.Run()
			return err
		},
	}
}

// loadConfig reads the config named by --config, falling back to the
// environment variable and then to defaults. Flags override the file.
func (app *application) loadConfig() (*config.Config, error) {
	var loaded *config.Config
	var err error
	if app.globals.Config != "" {
		loaded, err = config.LoadFile(app.globals.Config)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err).
			WithHint("Fix the config file, or unset " + config.EnvironmentVariable + " to use the defaults.")
	}

	if app.globals.File != "" {
		loaded.Data.File = app.globals.File
	}
	if app.globals.LogOutput != "" {
		loaded.Log.Output = app.globals.LogOutput
	}
	return loaded, nil
}

// loadStore loads the configured bug file, or the built-in sample when
// none is configured.
func (app *application) loadStore(settings *config.Config) (*bugindex.Store, error) {
	if settings.Data.File == "" {
		store, err := bugindex.Seed()
		if err != nil {
			return nil, cli.Internal("load built-in dataset: %w", err)
		}
		return store, nil
	}
	store, err := bugindex.LoadFile(settings.Data.File)
	if err != nil {
		return nil, cli.Validation("cannot load bugs from %s: %w", settings.Data.File, err).
			WithHint("Check that the file exists and that its extension matches its content (.jsonl, .json, .yaml or .cbor).")
	}
	return store, nil
}

// logger returns the command logger writing to stderr.
func (app *application) logger(settings *config.Config, command string) *slog.Logger {
	return cli.NewCommandLogger(app.stderr, settings.LogLevel()).With("command", command)
}

func (app *application) root() *cli.Command {
	root := &cli.Command{
		Name:    "graveyard",
		Summary: "Browse the bug graveyard",
		Description: `graveyard browses a catalog of resolved and unresolved software bugs.

With no command, opens the interactive viewer. The dataset comes from
--file, the config file's data.file, or the built-in sample.`,
		HelpOutput: app.stderr,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("graveyard", pflag.ContinueOnError)
			app.globals.AddFlags(flagSet)
			return flagSet
		},
		Examples: []cli.Example{
			{Description: "Open the viewer on the built-in sample", Command: "graveyard"},
			{Description: "Watch a bug file and reload on change", Command: "graveyard --file bugs.jsonl view --watch"},
			{Description: "List open critical bugs as JSON", Command: "graveyard list --severity critical --status open --format json"},
		},
		Subcommands: []*cli.Command{
			app.viewCommand(),
			app.listCommand(),
			app.showCommand(),
			app.analyticsCommand(),
			app.modulesCommand(),
			app.exportCommand(),
			app.versionCommand(),
		},
	}
	root.Run = func([]string) error {
		return app.view(false)
	}
	return root
}
