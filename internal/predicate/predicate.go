// Package predicate builds the three name-matching strategies the search
// engine composes: glob, regex, and bounded-edit-distance fuzzy matching.
// All matching is case-insensitive.
package predicate

import (
	"fmt"
	"regexp"
	"strings"
)

// Predicate is an immutable, safely-shareable-across-goroutines name
// matcher built once per run and reused across every volume and record.
type Predicate interface {
	// Match reports whether name satisfies the predicate.
	Match(name string) bool
	// String describes the predicate for logging/diagnostics.
	String() string
}

type globPredicate struct {
	pattern string
	re      *regexp.Regexp
}

type regexPredicate struct {
	pattern string
	re      *regexp.Regexp
}

type fuzzyPredicate struct {
	query string
	max   byte
}

// Glob compiles a shell-style pattern (`*` = any run of characters
// including empty, `?` = exactly one character) into a case-insensitive,
// fully-anchored regular expression, compiled once per run.
func Glob(pattern string) (Predicate, error) {
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*`, `.*`)
	escaped = strings.ReplaceAll(escaped, `\?`, `.`)

	re, err := regexp.Compile("(?i)^" + escaped + "$")
	if err != nil {
		return nil, fmt.Errorf("predicate: compile glob %q: %w", pattern, err)
	}
	return &globPredicate{pattern: pattern, re: re}, nil
}

func (p *globPredicate) Match(name string) bool { return p.re.MatchString(name) }
func (p *globPredicate) String() string         { return fmt.Sprintf("glob(%q)", p.pattern) }

// Regex compiles the user-supplied pattern verbatim, case-insensitively.
// No anchors are added; callers wanting to match the whole name must
// supply their own `^`/`$`.
func Regex(pattern string) (Predicate, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("predicate: compile regex %q: %w", pattern, err)
	}
	return &regexPredicate{pattern: pattern, re: re}, nil
}

func (p *regexPredicate) Match(name string) bool { return p.re.MatchString(name) }
func (p *regexPredicate) String() string         { return fmt.Sprintf("regex(%q)", p.pattern) }

// Fuzzy accepts names within Levenshtein distance max of query, compared
// case-insensitively.
func Fuzzy(query string, max byte) Predicate {
	return &fuzzyPredicate{query: strings.ToLower(query), max: max}
}

func (p *fuzzyPredicate) Match(name string) bool {
	return Levenshtein(strings.ToLower(name), p.query) <= int(p.max)
}

func (p *fuzzyPredicate) String() string {
	return fmt.Sprintf("fuzzy(%q, distance<=%d)", p.query, p.max)
}
