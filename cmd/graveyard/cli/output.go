// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
	"reflect"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Output is an embeddable struct that adds a --format flag to a
// command's parameter struct.
//
//	type listParams struct {
//	    cli.Output
//	    Search string `flag:"search" desc:"title or description substring"`
//	}
//
//	// In Run:
//	return params.Emit(stdout, bugs, func(w io.Writer) error { ... })
type Output struct {
	Format string
}

// AddFlags registers --format. [BindFlags] calls it for an embedded
// Output.
func (o *Output) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.Format, "format", FormatText, "output format: text, json or yaml")
}

// Validate rejects an unknown --format value.
func (o *Output) Validate() error {
	switch o.Format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return Validation("unknown output format %q", o.Format).
		WithHint("Use --format text, --format json or --format yaml.")
}

// Emit writes value to w in the selected format. Text output is
// delegated to text; JSON and YAML serialize value directly, with nil
// slices written as empty lists.
func (o *Output) Emit(w io.Writer, value any, text func(io.Writer) error) error {
	if err := o.Validate(); err != nil {
		return err
	}
	switch o.Format {
	case FormatJSON:
		return WriteJSON(w, normalizeNilSlice(value))
	case FormatYAML:
		return WriteYAML(w, normalizeNilSlice(value))
	}
	return text(w)
}

// WriteJSON marshals value as indented JSON to w.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return Internal("write json: %w", err)
	}
	return nil
}

// WriteYAML marshals value as YAML to w.
func WriteYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return Internal("write yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return Internal("write yaml: %w", err)
	}
	return nil
}

// NewTable returns a tabwriter for column-aligned text output. The
// caller must Flush it.
func NewTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice, so that serialization produces [] instead of null.
// Returns value unchanged for all other types.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
