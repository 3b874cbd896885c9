// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// graveyard browses a catalog of resolved and unresolved software
// bugs: an interactive terminal viewer with Graveyard, All Bugs and
// Analytics tabs, plus scriptable list, show, analytics, modules and
// export commands.
//
// Without --file the embedded sample dataset is shown. With --file the
// dataset is read from a JSONL, JSON/JSONC, YAML or CBOR file
// (optionally zstd or lz4 compressed), and "view --watch" reloads it
// whenever it changes on disk.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/graveyard/lib/version"
)

func main() {
	os.Exit(exitCode(run(os.Args[1:], os.Stdout, os.Stderr), os.Stderr))
}

// exitCode maps the result of run to a process exit code. An error
// carrying its own code (such as [cli.ExitError]) has already reported
// itself; anything else is printed to stderr.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

func run(args []string, stdout, stderr io.Writer) error {
	// Handle --version before flag parsing to match other binaries.
	if len(args) > 0 && args[0] == "--version" {
		version.Fprint(stdout, "graveyard")
		return nil
	}
	return newApplication(stdout, stderr).root().Execute(args)
}
