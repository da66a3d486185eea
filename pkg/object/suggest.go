// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package object

import "github.com/sergi/go-diff/diffmatchpatch"

const suggestThreshold = 0.6

// suggest returns the candidate most similar to name, or "" if none is
// similar enough.
func suggest(name string, candidates []string) string {
	best, bestSim := "", 0.0
	for _, c := range candidates {
		if s := similarity(name, c); s >= suggestThreshold && s > bestSim {
			best, bestSim = c, s
		}
	}
	return best
}

// similarity computes the Levenshtein-based similarity ratio between two strings
// using the go-diff library. Returns a value between 0.0 and 1.0.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
