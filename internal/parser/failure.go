package parser

import (
	"ccr/internal/domain"
	"ccr/internal/verify"

	"github.com/google/go-cmp/cmp"
)

// ExpectedSource provides the expected stdout of a case
type ExpectedSource interface {
	ExpectedOutput(tc domain.TestCase) (string, error)
}

// FailureParser turns failed results into TestFailure records
type FailureParser struct {
	expected ExpectedSource
}

var _ Parser = (*FailureParser)(nil)

// NewFailureParser creates a new FailureParser. expected may be nil, then no diff is produced.
func NewFailureParser(expected ExpectedSource) *FailureParser {
	return &FailureParser{expected: expected}
}

// ParseFailure returns the failure record for a failed result, or nil for a passing one
func (p *FailureParser) ParseFailure(result domain.TestResult) []domain.TestFailure {
	if result.Success {
		return nil
	}

	tc := result.Case
	failure := domain.TestFailure{
		Title:      tc.Name(),
		Source:     tc.Source,
		Index:      tc.Index,
		Input:      tc.Input,
		OutputType: string(tc.Output.Type),
		ExitCode:   result.Process.Code,
		Message:    result.Message,
		Diagnostic: result.Details,
		Stderr:     result.Process.Stderr,
	}
	if failure.Message == "" && result.Error != nil {
		failure.Message = result.Error.Error()
	}

	if result.Error == nil && !result.Process.TimedOut && p.expected != nil {
		if expected, err := p.expected.ExpectedOutput(tc); err == nil {
			failure.Line, failure.Diff = diffLines(expected, result.Process.Stdout)
		}
	}

	return []domain.TestFailure{failure}
}

// ParseFailures collects failure records for every failed result
func (p *FailureParser) ParseFailures(results []domain.TestResult) []domain.TestFailure {
	var failures []domain.TestFailure
	for _, result := range results {
		failures = append(failures, p.ParseFailure(result)...)
	}
	return failures
}

// diffLines returns the first differing line (1-based) and a readable diff, or 0 and "" when equal
func diffLines(expected, actual string) (int, string) {
	want := verify.SplitLines(expected)
	got := verify.SplitLines(actual)

	diff := cmp.Diff(want, got)
	if diff == "" {
		return 0, ""
	}

	line := 1
	for line <= len(want) && line <= len(got) && want[line-1] == got[line-1] {
		line++
	}
	return line, diff
}
