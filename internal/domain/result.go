package domain

import "time"

// ProcessResult is what the program under test produced
type ProcessResult struct {
	Code     int           // Exit status code, -1 when the process never exited normally
	Stdout   string        // Captured standard output
	Stderr   string        // Captured standard error
	Duration time.Duration // Wall time of the process
	TimedOut bool          // Whether the process was killed by the timeout
}

// TestResult represents the result of executing a test case
type TestResult struct {
	Case     TestCase
	Process  ProcessResult
	Success  bool   // Whether every verification passed
	Message  string // Assertion message when the case failed
	Details  string // Diagnostic text printed for the failure
	Error    error  // Error if the program could not be executed
	WorkerID int
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	Language        string  `json:"language"`
	AppCommand      string  `json:"app_command"`
	TotalTestCases  int     `json:"total_test_cases"`
	PassedTestCases int     `json:"passed_test_cases"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
