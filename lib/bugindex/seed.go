// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"bytes"
	_ "embed"
	"fmt"
)

// seedData is the sample graveyard: eight incidents, seven of them
// buried.
//
//go:embed seed.jsonl
var seedData []byte

// Seed returns a Store over the embedded sample dataset. It is used
// when no bug file is configured.
func Seed() (*Store, error) {
	bugs, err := Decode(FormatJSONL, bytes.NewReader(seedData))
	if err != nil {
		return nil, fmt.Errorf("seed dataset: %w", err)
	}
	store, err := NewStore(bugs)
	if err != nil {
		return nil, fmt.Errorf("seed dataset: %w", err)
	}
	return store, nil
}

// MustSeed is Seed for callers (tests, examples) where the embedded
// dataset failing to load is a programming error.
func MustSeed() *Store {
	store, err := Seed()
	if err != nil {
		panic(err)
	}
	return store
}
