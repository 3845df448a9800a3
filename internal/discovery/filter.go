package discovery

import (
	"path/filepath"
	"strconv"
	"strings"

	"ccr/internal/domain"
)

// Filter filters test cases by title pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test cases by title using wildcard matching.
// Supports patterns like "*error*" or "basic 0?"; a pattern without wildcards is a substring match.
func (f *Filter) FilterByName(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}

	var filtered []domain.TestCase
	for _, tc := range cases {
		if matchName(tc.Name(), pattern) {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

// FilterByKeys keeps the cases whose Key is in keys, preserving order
func (f *Filter) FilterByKeys(cases []domain.TestCase, keys map[string]bool) []domain.TestCase {
	var filtered []domain.TestCase
	for _, tc := range cases {
		if keys[Key(tc.Source, tc.Index)] {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

// Key identifies a test case across runs
func Key(source string, index int) string {
	return source + "#" + strconv.Itoa(index)
}

func matchName(name, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.Contains(name, pattern)
	}
	// filepath.Match does not let "*" cross a separator, titles like "args/missing" need that.
	name = strings.ReplaceAll(name, string(filepath.Separator), " ")
	pattern = strings.ReplaceAll(pattern, string(filepath.Separator), " ")
	matched, err := filepath.Match(pattern, name)
	return err == nil && matched
}
