package index

import (
	"errors"
	"testing"
)

func mustRule(t *testing.T, pattern string) *Rule {
	t.Helper()
	r, err := NewRule(pattern)
	if err != nil {
		t.Fatalf("NewRule(%q): %v", pattern, err)
	}
	return r
}

func TestRuleMatching(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		matches []string
		rejects []string
	}{
		{
			name:    "simple",
			pattern: "file.txt",
			matches: []string{"file.txt"},
			rejects: []string{"other.txt", "path/file.txt"},
		},
		{
			name:    "simple_dir",
			pattern: "dir/file.txt",
			matches: []string{"dir/file.txt"},
			rejects: []string{"file.txt", "other/file.txt"},
		},
		{
			name:    "simple_star",
			pattern: "*.txt",
			matches: []string{"file.txt", "other.txt"},
			rejects: []string{"file.jpg", "nested/file.txt"},
		},
		{
			name:    "simple_doublestar",
			pattern: "**/*.txt",
			matches: []string{"file.txt", "dir/file.txt", "dir/subdir/file.txt"},
			rejects: []string{"file.jpg", "dir/file.jpg"},
		},
		{
			name:    "consecutive_doublestar",
			pattern: "**/**/**/*.txt",
			matches: []string{"file.txt", "dir/file.txt", "dir/subdir/file.txt"},
			rejects: []string{"file.jpg", "dir/file.jpg"},
		},
		{
			name:    "dual_star",
			pattern: "**/*a*",
			matches: []string{"fileafile", "dir/fileafile", "filea", "dir/filea", "afile", "dir/afile"},
			rejects: []string{"noletter", "dir/noletter"},
		},
		{
			name:    "single_end",
			pattern: "**/*",
			matches: []string{"file", "dir/file", "a/b/c/dir/file"},
		},
		{
			name:    "doublestar_end",
			pattern: "root/**",
			matches: []string{"root/file", "root"},
			rejects: []string{"dir/file", "rootfile"},
		},
		{
			name:    "doublestar_start",
			pattern: "**/dir",
			matches: []string{"dir", "a/b/dir"},
			rejects: []string{"dir/file", "rootdir"},
		},
		{
			name:    "doublestar_adjacent_before",
			pattern: "root/**test",
			matches: []string{"root/test", "root/a/test", "root/a/b/c/test"},
			rejects: []string{"root/file", "root/xxtest"},
		},
		{
			name:    "doublestar_adjacent_after",
			pattern: "root/test**",
			matches: []string{"root/test", "root/test/a", "root/test/a/b/c"},
			rejects: []string{"root/testxx", "root/file"},
		},
		{
			name:    "doublestar_adjacent_middle",
			pattern: "root/test**file",
			matches: []string{"root/test/file", "root/test/a/b/c/file"},
			rejects: []string{"root/test", "root/file", "root/testfile", "root/testxxfile"},
		},
		{
			name:    "doublestar_nullable",
			pattern: "root/**/file",
			matches: []string{"root/test/file", "root/file"},
			rejects: []string{"rootfile"},
		},
		{
			name:    "doublestar_nullable_pre",
			pattern: "**/file",
			matches: []string{"file", "root/file"},
			rejects: []string{"rootfile"},
		},
		{
			name:    "doublestar_bad_extension",
			pattern: "**.flac",
			matches: []string{"root/.flac", "root/a/.flac"},
			rejects: []string{"root/test.flac", "test.flac", "root/test/a/b/c.flac", "root/testflac", "test.mp3"},
		},
		{
			name:    "doublestar_good_extension",
			pattern: "**/*.flac",
			matches: []string{"root/.flac", "root/a/.flac", "root/test.flac", "test.flac", "root/test/a/b/c.flac"},
			rejects: []string{"root/testflac", "test.mp3"},
		},
		{
			name:    "partition_values",
			pattern: "web/domain=*/ts=1234",
			matches: []string{"web/domain=example.com/ts=1234", "web/domain=other.com/ts=1234"},
			rejects: []string{"web/domain=example.com/ts=5678", "api/domain=example.com/ts=1234"},
		},
		{
			name:    "escaped_metacharacters",
			pattern: "dir/file.txt",
			matches: []string{"dir/file.txt"},
			rejects: []string{"dir/fileXtxt"},
		},
		{
			name:    "multi_slash_a",
			pattern: "dir//file.txt",
			matches: []string{"dir/file.txt"},
			rejects: []string{"dirfile.txt", "dir/other.txt"},
		},
		{
			name:    "multi_slash_b",
			pattern: "**///*.txt",
			matches: []string{"dir/file.txt", "dir/subdir/file.txt"},
			rejects: []string{"file.jpg"},
		},
		{
			name:    "multi_slash_c",
			pattern: "///dir//**//*.txt//",
			matches: []string{"dir/subdir/file.txt", "dir/sub1/sub2/file.txt"},
			rejects: []string{"other/sub/file.txt", "dir/file.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRule(t, tt.pattern)
			for _, s := range tt.matches {
				if !r.IsMatch(s) {
					t.Errorf("pattern %q should match %q (regex %s)",
						tt.pattern, s, r.RegexString())
				}
			}
			for _, s := range tt.rejects {
				if r.IsMatch(s) {
					t.Errorf("pattern %q should not match %q (regex %s)",
						tt.pattern, s, r.RegexString())
				}
			}
		})
	}
}

func TestRuleInvalidPatterns(t *testing.T) {
	for _, pattern := range []string{"***", "a/***/b", "root/****", "x***y"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := NewRule(pattern)
			if !errors.Is(err, ErrInvalidPattern) {
				t.Fatalf("NewRule(%q) err = %v, want ErrInvalidPattern", pattern, err)
			}
		})
	}
}

func TestRuleAdvisories(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"web/domain=*", 0},
		{"/web", 1},
		{"web/", 1},
		{"/web/", 2},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			r := mustRule(t, tt.pattern)
			if got := len(r.Advisories()); got != tt.want {
				t.Errorf("Advisories() len = %d, want %d (%v)", got, tt.want, r.Advisories())
			}
		})
	}

	// Advisory slashes don't change matching behavior.
	r := mustRule(t, "/web/domain=example.com/")
	if !r.IsMatch("web/domain=example.com") {
		t.Error("leading/trailing slashes should be ignored for matching")
	}
}

func TestRulePatternRetained(t *testing.T) {
	r := mustRule(t, "//web/**")
	if r.Pattern() != "//web/**" {
		t.Errorf("Pattern() = %q, want the unprocessed input", r.Pattern())
	}
}

func TestSplitPattern(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"root/test", []string{"root", "test"}},
		{"root**test", []string{"root", "**", "test"}},
		{"root//test", []string{"root", "test"}},
		{"/root/", []string{"root"}},
		{"a*b", []string{"a*b"}},
		{"**", []string{"**"}},
		{"***", []string{"***"}},
		{"a**", []string{"a", "**"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := splitPattern(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("splitPattern(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("splitPattern(%q) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}
