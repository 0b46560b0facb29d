// Package grading decides whether a free-text answer matches an item's
// accepted translations, tolerating case, quote style, spacing, the "I'm"
// contraction and a single typo on longer answers.
package grading

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// MinFuzzyLength is the shortest canonical answer that may be accepted with
// one edit. Shorter words are too easily confused with each other.
const MinFuzzyLength = 5

// MaxFuzzyDistance is the largest edit distance a fuzzy match may have.
const MaxFuzzyDistance = 1

// Match tells how an answer was accepted.
type Match string

const (
	MatchExact Match = "exact"
	MatchFuzzy Match = "fuzzy"
	MatchNone  Match = "none"
)

// Result is the grading verdict plus the feedback shown to the learner.
type Result struct {
	Correct   bool
	Match     Match
	Solutions []string
	// Shown is the solution displayed as "the" answer.
	Shown string
}

// Others returns every accepted solution except the shown one.
func (r Result) Others() []string {
	if len(r.Solutions) <= 1 {
		return []string{}
	}
	return append([]string(nil), r.Solutions[1:]...)
}

var (
	quoteReplacer = strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
	)
	firstPersonRe = regexp.MustCompile(`\bi'?m\b`)
)

// Normalize lower-cases s, straightens curly quotes and collapses whitespace.
func Normalize(s string) string {
	s = quoteReplacer.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

// Canonical is Normalize plus contraction handling: "im" and "i'm" become
// "i am", then every apostrophe is dropped.
func Canonical(s string) string {
	s = firstPersonRe.ReplaceAllString(Normalize(s), "i am")
	return strings.ReplaceAll(s, "'", "")
}

// SplitSolutions splits an accepted-answer field on ';', trimming each part
// and dropping empty ones. Order is preserved.
func SplitSolutions(accepted string) []string {
	parts := strings.Split(accepted, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsCorrect reports whether input matches any accepted solution.
func IsCorrect(input, accepted string) bool {
	return Evaluate(input, accepted).Correct
}

// Evaluate grades input against the accepted-answer field. Exact canonical
// matches win over fuzzy ones; every solution is tried for an exact match
// before any is tried fuzzily.
func Evaluate(input, accepted string) Result {
	solutions := SplitSolutions(accepted)
	res := Result{Match: MatchNone, Solutions: solutions, Shown: accepted}
	if len(solutions) > 0 {
		res.Shown = solutions[0]
	}

	given := Canonical(input)
	canon := make([]string, len(solutions))
	for i, sol := range solutions {
		canon[i] = Canonical(sol)
		if given == canon[i] {
			res.Correct, res.Match = true, MatchExact
			return res
		}
	}

	for _, sol := range canon {
		if withinOneEdit(given, sol) {
			res.Correct, res.Match = true, MatchFuzzy
			return res
		}
	}
	return res
}

func withinOneEdit(a, b string) bool {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if min(la, lb) < MinFuzzyLength {
		return false
	}
	if la-lb > MaxFuzzyDistance || lb-la > MaxFuzzyDistance {
		return false
	}
	return levenshtein.Distance(a, b, nil) <= MaxFuzzyDistance
}
