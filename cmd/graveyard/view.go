// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/graveyard/cmd/graveyard/cli"
	"github.com/bureau-foundation/graveyard/lib/bugindex"
	"github.com/bureau-foundation/graveyard/lib/bugui"
)

func (app *application) viewCommand() *cli.Command {
	var watch bool
	return &cli.Command{
		Name:    "view",
		Summary: "Open the interactive viewer (the default command)",
		Description: `Open the interactive viewer.

Background log records at or above the configured level (log.level,
default warn) appear in the status bar. --log-output additionally
writes every record as JSON to a file for post-mortem debugging.`,
		Usage: "graveyard [global flags] view [--watch]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("view", pflag.ContinueOnError)
			flagSet.BoolVar(&watch, "watch", watch, "reload the bug file when it changes (requires --file)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return app.view(watch)
		},
	}
}

// view runs the TUI. Background logging is routed through a
// TUILogHandler so records appear in the status bar instead of
// corrupting the alt-screen display, and optionally fans out to a
// JSON file.
func (app *application) view(watch bool) error {
	settings, err := app.loadConfig()
	if err != nil {
		return err
	}
	watch = watch || settings.Data.Watch
	if watch && settings.Data.File == "" {
		return cli.Validation("--watch requires a bug file").
			WithHint("Pass --file <path> or set data.file in the config file.")
	}

	store, err := app.loadStore(settings)
	if err != nil {
		return err
	}

	tab, err := bugui.ParseTab(string(settings.UI.DefaultTab))
	if err != nil {
		return cli.Validation("%w", err)
	}

	tuiHandler := bugui.NewTUILogHandler(settings.LogLevel())
	var handler slog.Handler = tuiHandler
	if settings.Log.Output != "" {
		fileHandler, closeFile, err := openFileLogHandler(settings.Log.Output)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", settings.Log.Output, err)
		}
		defer closeFile()
		handler = fanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler)

	source := bugui.NewStoreSource(store)
	if watch {
		stop, err := bugindex.Watch(settings.Data.File, store.Fingerprint(), logger, source.Replace)
		if err != nil {
			return cli.Internal("watch %s: %w", settings.Data.File, err)
		}
		defer stop()
	}

	model := bugui.NewModel(source, bugui.Options{
		DefaultTab:   tab,
		SplitRatio:   settings.UI.SplitRatio,
		HotspotLimit: settings.Analytics.HotspotLimit,
		Logger:       logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)
	return app.runProgram(program)
}

// openFileLogHandler creates a slog.JSONHandler that writes to the
// given file path. Returns the handler, a cleanup function to close
// the file, and any error. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
