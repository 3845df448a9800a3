package domain

// TestFailure represents a failed test case
type TestFailure struct {
	Title      string   `json:"title"`
	Source     string   `json:"source"`
	Index      int      `json:"index"`
	Input      []string `json:"input"`
	OutputType string   `json:"output_type"`
	ExitCode   int      `json:"exit_code"`
	Message    string   `json:"message"`
	Diagnostic string   `json:"diagnostic"`
	Stderr     string   `json:"stderr,omitempty"`
	Line       int      `json:"line,omitempty"` // First mismatching stdout line, 1-based
	Diff       string   `json:"diff,omitempty"`
	Resolved   bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
