package index

import "strings"

// PathSegment is one slash-delimited token of a concrete path: either a
// constant like "web" or a key=value partition like "domain=example.com".
// A partition token is split on the first "=" only; any further "=" in
// the token belongs to the value.
type PathSegment struct {
	key   string // empty for constants
	value string
	text  string // constant text; empty for partitions
}

// ParseSegment parses a single path token. Empty tokens and tokens
// containing a newline are not valid segments.
func ParseSegment(s string) (PathSegment, bool) {
	if s == "" || strings.Contains(s, "\n") {
		return PathSegment{}, false
	}
	if key, value, ok := strings.Cut(s, "="); ok {
		return PathSegment{key: key, value: value}, true
	}
	return PathSegment{text: s}, true
}

// IsValue reports whether this is a key=value partition segment.
func (s PathSegment) IsValue() bool {
	return s.text == ""
}

// Key returns the partition key, or "" for constants.
func (s PathSegment) Key() string { return s.key }

// Value returns the partition value, or "" for constants.
func (s PathSegment) Value() string { return s.value }

func (s PathSegment) String() string {
	if s.IsValue() {
		return s.key + "=" + s.value
	}
	return s.text
}

// Wildcarded returns the segment with its partition value replaced by
// "*". Constants are returned unchanged.
func (s PathSegment) Wildcarded() PathSegment {
	if s.IsValue() {
		return PathSegment{key: s.key, value: "*"}
	}
	return s
}
