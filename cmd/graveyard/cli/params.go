// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagBinder lets a params field register its own flags. [BindFlags]
// prefers it over the field's struct tags.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams returns a flag set bound to the tagged fields of
// params, a pointer to a struct. A params type that cannot be bound is
// a programming error, so it panics.
//
//	var params listParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("list", &params) },
//	    Run:   func(args []string) error { /* params is populated here */ },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag on flagSet for every field of params
// carrying a flag tag:
//
//	Search string `flag:"search,q" desc:"substring of title or description" default:""`
//
// The flag tag is the long name and an optional one-letter shorthand.
// default is parsed as the field's type (string, bool, int or
// []string, the last comma-separated). Embedded structs are walked
// unless they implement [FlagBinder].
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	pointer := reflect.ValueOf(params)
	if pointer.Kind() != reflect.Pointer || pointer.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(pointer.Elem(), flagSet)
}

// flagTags is one field's flag, desc and default tags.
type flagTags struct {
	name, shorthand, usage, fallback string
}

func bindStruct(value reflect.Value, flagSet *pflag.FlagSet) error {
	for _, field := range reflect.VisibleFields(value.Type()) {
		if len(field.Index) > 1 {
			// Promoted from an embedded struct; its parent handles it.
			continue
		}
		fieldValue := value.Field(field.Index[0])

		if field.Type.Kind() == reflect.Struct {
			if field.IsExported() {
				if binder, ok := fieldValue.Addr().Interface().(FlagBinder); ok {
					binder.AddFlags(flagSet)
					continue
				}
			}
			if field.Anonymous {
				if err := bindStruct(fieldValue, flagSet); err != nil {
					return fmt.Errorf("embedded %s: %w", field.Name, err)
				}
				continue
			}
		}

		tag, tagged := field.Tag.Lookup("flag")
		if !tagged || tag == "" {
			continue
		}
		tags := flagTags{usage: field.Tag.Get("desc"), fallback: field.Tag.Get("default")}
		tags.name, tags.shorthand, _ = strings.Cut(tag, ",")
		if err := tags.bind(fieldValue, flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func (tags flagTags) bind(field reflect.Value, flagSet *pflag.FlagSet) error {
	switch target := field.Addr().Interface().(type) {
	case *string:
		flagSet.StringVarP(target, tags.name, tags.shorthand, tags.fallback, tags.usage)
	case *bool:
		initial, err := parseDefault(tags, strconv.ParseBool)
		if err != nil {
			return err
		}
		flagSet.BoolVarP(target, tags.name, tags.shorthand, initial, tags.usage)
	case *int:
		initial, err := parseDefault(tags, strconv.Atoi)
		if err != nil {
			return err
		}
		flagSet.IntVarP(target, tags.name, tags.shorthand, initial, tags.usage)
	case *[]string:
		initial, _ := parseDefault(tags, func(list string) ([]string, error) {
			return strings.Split(list, ","), nil
		})
		flagSet.StringSliceVarP(target, tags.name, tags.shorthand, initial, tags.usage)
	default:
		return fmt.Errorf("unsupported type %s for flag --%s", field.Type(), tags.name)
	}
	return nil
}

// parseDefault converts the default tag with convert, or returns the
// zero value when the tag is absent.
func parseDefault[T any](tags flagTags, convert func(string) (T, error)) (T, error) {
	var zero T
	if tags.fallback == "" {
		return zero, nil
	}
	value, err := convert(tags.fallback)
	if err != nil {
		return zero, fmt.Errorf("default for --%s: %w", tags.name, err)
	}
	return value, nil
}
