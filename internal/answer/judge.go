// Package answer decides whether a learner's response matches the expected
// answer of a study item.
package answer

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// Strictness selects how closely a response must match.
type Strictness string

const (
	// Strict requires case-insensitive equality after trimming whitespace.
	Strict Strictness = "strict"
	// Relaxed accepts responses within FuzzyTolerance of the expected answer.
	Relaxed Strictness = "relaxed"
)

// FuzzyTolerance is the largest normalized edit distance accepted by Relaxed.
// The distance is 1 minus the Levenshtein similarity, so 0 is an exact match.
const FuzzyTolerance = 0.6

// ParseStrictness converts a config or flag value.
func ParseStrictness(s string) (Strictness, error) {
	switch Strictness(strings.ToLower(strings.TrimSpace(s))) {
	case Strict:
		return Strict, nil
	case Relaxed:
		return Relaxed, nil
	}
	return "", fmt.Errorf("answer: unknown strictness %q (want strict or relaxed)", s)
}

// Judge reports whether actual is an acceptable response to expected.
// An empty response is never accepted.
func Judge(expected, actual string, s Strictness) bool {
	expected = strings.TrimSpace(expected)
	actual = strings.TrimSpace(actual)
	if actual == "" {
		return false
	}

	if s == Relaxed {
		return Distance(expected, actual) <= FuzzyTolerance
	}
	return strings.EqualFold(expected, actual)
}

// Distance returns the normalized edit distance in [0,1] between the
// lowercased, trimmed forms of a and b.
func Distance(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return 1 - levenshtein.Similarity(a, b, nil)
}
