package index

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern is returned when a glob pattern cannot be compiled,
// e.g. it contains a run of three or more stars.
var ErrInvalidPattern = errors.New("invalid pattern")

// regexSegment is one compiled token of a pattern: either a literal
// (possibly wildcard-bearing) fragment for a single path segment, or a
// doublestar matching zero or more whole segments.
type regexSegment struct {
	fragment   string
	doubleStar bool
}

// emit returns the regex fragment for this segment given its neighbors.
// Slash handling between segments is owned by whichever side is a
// doublestar; two adjacent singles get an explicit "[/]".
func (s regexSegment) emit(prev, next *regexSegment) string {
	if !s.doubleStar {
		if next != nil && !next.doubleStar {
			return s.fragment + "[/]"
		}
		return s.fragment
	}

	// Consecutive doublestars were collapsed during tokenizing, so any
	// neighbor here is a single segment.
	switch {
	case prev == nil && next == nil:
		return "((?:.*)?)"
	case prev != nil && next == nil:
		return "((?:[/].*)?)"
	case prev == nil && next != nil:
		return "((?:.*[/])?)"
	default:
		// Also matches a bare "/" so the doublestar can be empty.
		return "((?:[/].*[/])|[/])"
	}
}

// Rule is an immutable compiled glob pattern. "*" matches any run of
// non-slash characters within one segment; "**" matches zero or more
// whole segments. The original pattern text is retained for key
// derivation and diagnostics.
type Rule struct {
	re         *regexp.Regexp
	pattern    string
	advisories []string
}

// NewRule compiles a glob pattern. It returns ErrInvalidPattern for
// unsupported wildcard forms (a run of three or more stars).
//
// Leading and trailing slashes do not change matching behavior (slash
// runs are always normalized); they are reported via Advisories rather
// than logged here, so callers decide how to surface them.
func NewRule(pattern string) (*Rule, error) {
	var advisories []string
	if strings.HasPrefix(pattern, "/") {
		advisories = append(advisories,
			fmt.Sprintf("pattern %q has a leading slash which will be ignored", pattern))
	}
	if strings.HasSuffix(pattern, "/") {
		advisories = append(advisories,
			fmt.Sprintf("pattern %q has a trailing slash which will be ignored", pattern))
	}

	expr, ok := regexString(pattern)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	// The assembled expression is valid by construction.
	re := regexp.MustCompile("^" + expr + "$")

	return &Rule{re: re, pattern: pattern, advisories: advisories}, nil
}

// Pattern returns the original, unprocessed pattern text.
func (r *Rule) Pattern() string { return r.pattern }

// IsMatch reports whether the full candidate string matches the pattern.
func (r *Rule) IsMatch(s string) bool { return r.re.MatchString(s) }

// RegexString returns the anchored regular expression the pattern
// compiled to.
func (r *Rule) RegexString() string { return r.re.String() }

// Advisories returns non-fatal warnings produced during compilation.
func (r *Rule) Advisories() []string { return r.advisories }

// splitPattern tokenizes a pattern in a single pass. Three atomic
// groups are recognized: runs of two or more consecutive stars, single
// slashes, and everything else. Slashes delimit tokens and duplicate
// slashes collapse; a star run is its own token even without a
// surrounding slash, so "root**test" is equivalent to "root/**/test".
func splitPattern(pattern string) []string {
	var parts []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		switch {
		case pattern[i] == '/':
			flush()
			i++
		case pattern[i] == '*' && i+1 < len(pattern) && pattern[i+1] == '*':
			flush()
			j := i
			for j < len(pattern) && pattern[j] == '*' {
				j++
			}
			parts = append(parts, pattern[i:j])
			i = j
		default:
			cur.WriteByte(pattern[i])
			i++
		}
	}
	flush()

	return parts
}

// regexString assembles the unanchored regex for a pattern, or reports
// failure for unsupported wildcard forms.
func regexString(pattern string) (string, bool) {
	var segments []regexSegment
	lastWasDoubleStar := false

	for _, token := range splitPattern(pattern) {
		if len(token) > 1 && strings.Count(token, "*") == len(token) {
			if token != "**" {
				// Three or more stars is not a wildcard we support.
				return "", false
			}
			// Consecutive doublestars are meaningless.
			if !lastWasDoubleStar {
				segments = append(segments, regexSegment{doubleStar: true})
			}
			lastWasDoubleStar = true
			continue
		}
		lastWasDoubleStar = false

		var fragment strings.Builder
		for i, part := range strings.Split(token, "*") {
			if i != 0 {
				fragment.WriteString("([^/]*)")
			}
			fragment.WriteString(regexp.QuoteMeta(part))
		}
		segments = append(segments, regexSegment{fragment: fragment.String()})
	}

	var expr strings.Builder
	for i := range segments {
		var prev, next *regexSegment
		if i > 0 {
			prev = &segments[i-1]
		}
		if i+1 < len(segments) {
			next = &segments[i+1]
		}
		expr.WriteString(segments[i].emit(prev, next))
	}

	return expr.String(), true
}
