// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one text against a pattern.
// Score is zero when the pattern does not match (or is empty).
// Positions are rune indices into the text, ascending.
type FuzzyResult struct {
	Score     int
	Positions []int
}

var fuzzyInit sync.Once

// NewSlab allocates scratch space for [FuzzyMatch]. Callers matching
// many texts in a loop should allocate one slab and reuse it.
func NewSlab() *util.Slab {
	return util.MakeSlab(16*1024, 2048)
}

// FuzzyMatch runs fzf's v2 algorithm over text. Matching is
// case-insensitive: both sides are lowercased before scoring. slab
// may be nil, at the cost of an allocation per call.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	fuzzyInit.Do(func() { algo.Init("default") })

	lowered := make([]rune, len(pattern))
	for index, character := range pattern {
		lowered[index] = unicode.ToLower(character)
	}
	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = slices.Clone(*positions)
		slices.Sort(match.Positions)
	}
	return match
}

// FuzzyRank is an index into the caller's candidate slice with its
// match result.
type FuzzyRank struct {
	Index int
	FuzzyResult
}

// FuzzyFilter matches pattern against every candidate and returns the
// matches, best score first (ties in candidate order). An empty
// pattern returns every candidate with a zero score, in order.
func FuzzyFilter(candidates []string, pattern string) []FuzzyRank {
	runes := []rune(strings.TrimSpace(pattern))
	ranks := make([]FuzzyRank, 0, len(candidates))
	if len(runes) == 0 {
		for index := range candidates {
			ranks = append(ranks, FuzzyRank{Index: index})
		}
		return ranks
	}

	slab := NewSlab()
	for index, candidate := range candidates {
		result := FuzzyMatch(candidate, runes, slab)
		if result.Score > 0 {
			ranks = append(ranks, FuzzyRank{Index: index, FuzzyResult: result})
		}
	}
	slices.SortStableFunc(ranks, func(a, b FuzzyRank) int {
		return b.Score - a.Score
	})
	return ranks
}
