// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"kitten", "sitting", 3},
		{"modules", "modlues", 2},
		{"export", "exprt", 1},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "list"}, {Name: "show"}, {Name: "modules"}}
	tests := []struct {
		input string
		want  string
	}{
		{"lst", "list"},
		{"shwo", "show"},
		{"module", "modules"},
		{"tombstone", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
	flagSet.String("module", "all", "")
	flagSet.String("format", "text", "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--modle", "CDN"}, "--module"},
		{[]string{"--format=json", "--fromat=yaml"}, "--format"},
		{[]string{"--zzzzzzzz"}, ""},
		{[]string{"--", "--modle"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
