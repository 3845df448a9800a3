package ui

import (
	"bytes"
	"strings"
	"testing"

	"ccr/internal/config"
	"ccr/internal/discovery"
	"ccr/internal/domain"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestFormatter(t *testing.T) (*Formatter, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	cfg := config.New()
	cfg.ProjectPath = "/project"
	f := NewFormatter(cfg)
	var buf bytes.Buffer
	f.SetOutput(&buf)
	return f, &buf
}

func TestFormatter_PrintMetaStats_AllPassed(t *testing.T) {
	f, buf := newTestFormatter(t)

	f.PrintMetaStats(&domain.TestResultsOutput{Meta: domain.TestResultsMeta{
		TotalTestCases:  3,
		PassedTestCases: 3,
		Workers:         2,
		Language:        "ja",
		RunID:           "run-1",
	}})

	out := buf.String()
	assert.Contains(t, out, "Total Test Cases")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "All test cases passed!")
}

func TestFormatter_PrintMetaStats_WithFailures(t *testing.T) {
	f, buf := newTestFormatter(t)

	f.PrintMetaStats(&domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{TotalTestCases: 4, PassedTestCases: 2, FailedTestCases: 2},
		Details: []domain.TestFailure{
			{Title: "zero exit", Source: "/project/test/error_testcases.json", Index: 2, Message: "Exit status should not be 0.", Diagnostic: "The program ended abnormally\n  Exit status: 0"},
			{Title: "ranking", Source: "/project/test/basic_testcases.json", Index: 1, Message: "Line 2 does not match the expected output."},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "2 of 4 test case(s) failed")
	assert.Contains(t, out, "test/basic_testcases.json")
	assert.Contains(t, out, "Exit status should not be 0.")
	assert.Contains(t, out, "  Exit status: 0")
	assert.Less(t, strings.Index(out, "basic_testcases.json"), strings.Index(out, "error_testcases.json"), "files are sorted")
}

func TestFormatter_PrintTestList(t *testing.T) {
	f, buf := newTestFormatter(t)

	cases := []domain.TestCase{
		{Title: "highscore", Source: "/project/test/basic_testcases.json", Index: 1, Output: domain.ExpectedOutput{Type: domain.OutputFile}},
		{Title: "bad mode", Source: "/project/test/basic_testcases.json", Index: 2, Output: domain.ExpectedOutput{Type: domain.OutputError}},
		{Title: "average", Source: "/project/test/average_testcases.json", Index: 1, Output: domain.ExpectedOutput{Type: domain.OutputFile}},
	}
	f.PrintTestList(cases, map[string]bool{discovery.Key("/project/test/basic_testcases.json", 2): true})

	out := buf.String()
	assert.Contains(t, out, "Found 3 test case(s) in 2 file(s)")
	assert.Contains(t, out, "├── test/basic_testcases.json")
	assert.Contains(t, out, "└── test/average_testcases.json")
	assert.Contains(t, out, "#2 bad mode (error) [F]")
	assert.NotContains(t, out, "highscore (file) [F]")
}

func TestFormatFailureDetails(t *testing.T) {
	details := formatFailureDetails(domain.TestFailure{
		Title:    "ranking",
		Input:    []string{"highscore", "[x]"},
		ExitCode: 1,
		Line:     2,
		Message:  "Line 2 does not match the expected output.",
		Diff:     "  []string{\n- \t\"2,p2\",\n+ \t\"2,p3\",\n  }",
	})

	assert.Contains(t, details, "Exit status:[white] 1")
	assert.Contains(t, details, "First differing line:[white] 2")
	assert.Contains(t, details, "[red]- ")
	assert.Contains(t, details, "[green]+ ")
	assert.NotContains(t, details, " [x]\n", "input is escaped for tview")
}
