package parser

import "ccr/internal/domain"

// Parser extracts failure records from test results
type Parser interface {
	ParseFailure(result domain.TestResult) []domain.TestFailure
}
