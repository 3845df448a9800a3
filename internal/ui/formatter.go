package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"ccr/internal/config"
	"ccr/internal/discovery"
	"ccr/internal/domain"

	"github.com/fatih/color"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to the color-aware stdout
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg, out: color.Output}
}

// SetOutput redirects the formatter
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	faint  = color.New(color.Faint)
)

// PrintMetaStats displays the statistics of a run followed by its failures
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                 Test Case Execution Statistics                ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Total Test Cases", fmt.Sprint(meta.TotalTestCases), white},
		{"Passed Test Cases", fmt.Sprint(meta.PassedTestCases), green},
		{"Failed Test Cases", fmt.Sprint(meta.FailedTestCases), red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Language", meta.Language, white},
		{"Run ID", meta.RunID, white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬──────────────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-36s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼──────────────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴──────────────────────────────────────┘")

	// Print summary line
	fmt.Fprintln(f.out)
	if meta.FailedTestCases == 0 {
		green.Fprintln(f.out, "✓ All test cases passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d of %d test case(s) failed\n", meta.FailedTestCases, meta.TotalTestCases)
	fmt.Fprintln(f.out)
	f.PrintFailures(output.Details)
}

// PrintFailures prints every failure grouped by test case file: the console
// diagnostic first, then the assertion message.
func (f *Formatter) PrintFailures(failures []domain.TestFailure) {
	groups, order := groupBySource(failures)
	for gi, source := range order {
		isLastFile := gi == len(order)-1
		branch, stem := "├── ", "│   "
		if isLastFile {
			branch, stem = "└── ", "    "
		}
		cyan.Fprintf(f.out, "%s%s\n", branch, f.relative(source))

		for ci, failure := range groups[source] {
			leaf := "├── "
			if ci == len(groups[source])-1 {
				leaf = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s %s\n", stem, leaf, yellow.Sprintf("#%d", failure.Index), failure.Title)
			red.Fprintf(f.out, "%s      %s\n", stem, failure.Message)
			if failure.Diagnostic != "" {
				for _, line := range strings.Split(failure.Diagnostic, "\n") {
					faint.Fprintf(f.out, "%s      %s\n", stem, line)
				}
			}
		}
	}
}

// PrintTestList prints the test cases grouped by file.
// failedKeys is optional; cases in it are marked with [F] (from last run).
func (f *Formatter) PrintTestList(cases []domain.TestCase, failedKeys map[string]bool) {
	bySource := make(map[string][]domain.TestCase)
	var order []string
	for _, tc := range cases {
		if _, ok := bySource[tc.Source]; !ok {
			order = append(order, tc.Source)
		}
		bySource[tc.Source] = append(bySource[tc.Source], tc)
	}

	green.Fprintf(f.out, "Found %d test case(s) in %d file(s):\n\n", len(cases), len(order))
	for i, source := range order {
		isLastFile := i == len(order)-1
		branch, stem := "├── ", "│   "
		if isLastFile {
			branch, stem = "└── ", "    "
		}
		cyan.Fprintf(f.out, "%s%s\n", branch, f.relative(source))

		group := bySource[source]
		for j, tc := range group {
			leaf := "├── "
			if j == len(group)-1 {
				leaf = "└── "
			}
			marker := ""
			if failedKeys[discovery.Key(tc.Source, tc.Index)] {
				marker = " " + red.Sprint("[F]")
			}
			fmt.Fprintf(f.out, "%s%s%s %s %s%s\n", stem, leaf,
				yellow.Sprintf("#%d", tc.Index), tc.Name(), faint.Sprintf("(%s)", tc.Output.Type), marker)
		}
	}
}

func (f *Formatter) relative(path string) string {
	if f.config == nil {
		return path
	}
	rel, err := filepath.Rel(f.config.ProjectPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// groupBySource groups failures by file, ordering files by name and failures by index
func groupBySource(failures []domain.TestFailure) (map[string][]domain.TestFailure, []string) {
	groups := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		groups[failure.Source] = append(groups[failure.Source], failure)
	}
	order := make([]string, 0, len(groups))
	for source, group := range groups {
		order = append(order, source)
		sort.SliceStable(group, func(i, j int) bool { return group[i].Index < group[j].Index })
	}
	sort.Strings(order)
	return groups, order
}
