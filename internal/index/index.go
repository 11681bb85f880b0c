package index

import (
	"context"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"sort"
	"strings"
)

// Index is an in-memory catalog of concrete path strings, grouped by
// skeleton (the path with every partition value replaced by "*").
// Queries narrow candidates by a prefix search over the skeleton space
// before applying the compiled pattern regex, so a lookup does not scan
// every stored path.
//
// An Index is immutable after construction and safe for concurrent
// readers. Rebuild to update.
type Index struct {
	// buckets maps a skeleton to its paths in insertion order.
	buckets map[string][]string
	// keys holds the skeletons sorted, for prefix range scans.
	keys  []string
	count int
}

// skeletonOf derives the grouping key for a concrete path: tokens that
// fail to parse as segments are dropped, partition values become "*",
// and the rest is rejoined with "/".
func skeletonOf(path string) string {
	var b strings.Builder
	first := true
	for tok := range strings.SplitSeq(path, "/") {
		seg, ok := ParseSegment(tok)
		if !ok {
			continue
		}
		if !first {
			b.WriteByte('/')
		}
		b.WriteString(seg.Wildcarded().String())
		first = false
	}
	return b.String()
}

func newIndex() *Index {
	return &Index{buckets: make(map[string][]string)}
}

// add ingests one path. Malformed tokens degrade the skeleton silently;
// the path itself is still counted and stored verbatim.
func (x *Index) add(path string) {
	sk := skeletonOf(path)
	x.buckets[sk] = append(x.buckets[sk], path)
	x.count++
}

func (x *Index) finish() {
	x.keys = slices.Sorted(maps.Keys(x.buckets))
}

// Build constructs an index from a finite sequence of concrete paths.
func Build(paths iter.Seq[string]) *Index {
	x := newIndex()
	for p := range paths {
		x.add(p)
	}
	x.finish()
	return x
}

// BuildSlice constructs an index from a slice of concrete paths.
func BuildSlice(paths []string) *Index {
	return Build(slices.Values(paths))
}

// BuildEmpty constructs a valid, queryable index with no paths.
func BuildEmpty() *Index {
	x := newIndex()
	x.finish()
	return x
}

// BuildFromChannel constructs an index by draining paths one at a time,
// without materializing the full set up front. It returns when the
// channel is closed. Cancelling ctx stops ingestion early and yields a
// partial but internally consistent index.
func BuildFromChannel(ctx context.Context, paths <-chan string) *Index {
	x := newIndex()
	for {
		select {
		case <-ctx.Done():
			x.finish()
			return x
		case p, ok := <-paths:
			if !ok {
				x.finish()
				return x
			}
			x.add(p)
		}
	}
}

// Len returns the number of indexed paths, duplicates included.
func (x *Index) Len() int { return x.count }

// IsEmpty reports whether the index holds no paths.
func (x *Index) IsEmpty() bool { return x.count == 0 }

// queryKey derives the skeleton-prefix lookup key for a glob. The key
// is truncated at the first bare wildcard token ("*" or "**"), since
// nothing past that point can align with stored skeletons; partition
// values are normalized to "*" like skeletons themselves.
func queryKey(glob string) string {
	trimmed := strings.TrimSpace(glob)
	for strings.HasSuffix(trimmed, "**") {
		trimmed = strings.TrimSuffix(trimmed, "**")
	}
	trimmed = strings.Trim(trimmed, "/")

	var b strings.Builder
	first := true
	for tok := range strings.SplitSeq(trimmed, "/") {
		seg, ok := ParseSegment(tok)
		if !ok {
			continue
		}
		if !seg.IsValue() && (seg.String() == "*" || seg.String() == "**") {
			break
		}
		if !first {
			b.WriteByte('/')
		}
		b.WriteString(seg.Wildcarded().String())
		first = false
	}
	return b.String()
}

// prefixKeys returns the sorted skeletons having key as a prefix. They
// are contiguous in the sorted key slice.
func (x *Index) prefixKeys(key string) []string {
	lo := sort.SearchStrings(x.keys, key)
	hi := lo
	for hi < len(x.keys) && strings.HasPrefix(x.keys[hi], key) {
		hi++
	}
	return x.keys[lo:hi]
}

// Query returns all indexed paths matching the glob as a lazy sequence.
// The sequence may be ranged over multiple times; each pass recomputes.
// An empty sequence is a valid outcome; ErrInvalidPattern signals a bad
// glob, not an empty result.
func (x *Index) Query(glob string) (iter.Seq[string], error) {
	rule, err := NewRule(glob)
	if err != nil {
		return nil, err
	}
	for _, adv := range rule.Advisories() {
		slog.Warn(adv)
	}
	return x.QueryRule(rule), nil
}

// QueryRule is Query with a precompiled rule, amortizing compilation
// across repeated queries with the same pattern.
func (x *Index) QueryRule(rule *Rule) iter.Seq[string] {
	key := queryKey(rule.Pattern())
	slog.Debug("index lookup", "pattern", rule.Pattern(), "key", key)

	return func(yield func(string) bool) {
		for _, sk := range x.prefixKeys(key) {
			for _, p := range x.buckets[sk] {
				if rule.IsMatch(p) && !yield(p) {
					return
				}
			}
		}
	}
}

// QueryMatch reports whether any indexed path matches the glob,
// returning on the first hit.
func (x *Index) QueryMatch(glob string) (bool, error) {
	rule, err := NewRule(glob)
	if err != nil {
		return false, err
	}
	for _, adv := range rule.Advisories() {
		slog.Warn(adv)
	}
	return x.QueryRuleMatch(rule), nil
}

// QueryRuleMatch is QueryMatch with a precompiled rule.
func (x *Index) QueryRuleMatch(rule *Rule) bool {
	key := queryKey(rule.Pattern())
	slog.Debug("index lookup", "pattern", rule.Pattern(), "key", key)

	for _, sk := range x.prefixKeys(key) {
		for _, p := range x.buckets[sk] {
			if rule.IsMatch(p) {
				return true
			}
		}
	}
	return false
}
