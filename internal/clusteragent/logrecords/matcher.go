package logrecords

import (
	"regexp"
	"strings"
)

// Matcher decides whether a log line (identified by its message bounds)
// should be emitted. The two implementations here satisfy the same small
// contract.
type Matcher interface {
	// Match reports whether the message content matches.
	Match(message []byte) bool
}

// PassThroughMatcher matches every non-empty message exactly once.
type PassThroughMatcher struct{}

func (PassThroughMatcher) Match(message []byte) bool {
	return len(message) > 0
}

// ansiTolerantSpace replaces a literal space in a grep pattern with a
// pattern that also tolerates ANSI SGR/cursor escape sequences around
// whitespace.
const ansiTolerantSpace = `(?:\x1B\[[0-9;]*[mK])*\s(?:\x1B\[[0-9;]*[mK])*`

// RegexMatcher matches the message portion of a line against a
// substring-derived, ANSI-tolerant regular expression.
type RegexMatcher struct {
	re *regexp.Regexp
}

// NewRegexMatcher compiles grep (itself a regular expression) into a
// RegexMatcher, replacing each literal space with an ANSI-tolerant
// whitespace pattern.
func NewRegexMatcher(grep string) (*RegexMatcher, error) {
	pattern := strings.ReplaceAll(grep, " ", ansiTolerantSpace)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &RegexMatcher{re: re}, nil
}

func (m *RegexMatcher) Match(message []byte) bool {
	return m.re.Match(message)
}

// NewMatcher selects a PassThroughMatcher for an empty/whitespace-only
// grep string, or a compiled RegexMatcher otherwise.
func NewMatcher(grep string) (Matcher, error) {
	if strings.TrimSpace(grep) == "" {
		return PassThroughMatcher{}, nil
	}
	return NewRegexMatcher(grep)
}
