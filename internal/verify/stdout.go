package verify

import (
	"strings"

	"ccr/internal/domain"
	"ccr/internal/i18n"
)

// Stdout compares the program's stdout with the expected output line by line.
// Trailing whitespace on each line and trailing blank lines are ignored.
func Stdout(msg *i18n.Builder, tc domain.TestCase, in []string, expected string, result domain.ProcessResult) error {
	want := SplitLines(expected)
	got := SplitLines(result.Stdout)

	for i := 0; i < len(want) && i < len(got); i++ {
		if want[i] != got[i] {
			return &AssertionError{
				Message:    msg.LineMismatch(i + 1),
				Diagnostic: msg.AbnormalEnd(in, expected, result),
				Line:       i + 1,
			}
		}
	}
	if len(want) != len(got) {
		line := len(want) + 1
		if len(got) < len(want) {
			line = len(got) + 1
		}
		return &AssertionError{
			Message:    msg.LineCount(len(want), len(got)),
			Diagnostic: msg.AbnormalEnd(in, expected, result),
			Line:       line,
		}
	}
	return nil
}

// SplitLines normalizes output into comparable lines
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
