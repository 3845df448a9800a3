// Package verify holds the checks a runner applies to the outcome of a test case.
//
// A check returns nil when the case passes it and an *AssertionError when it fails.
// Any other error means the check itself could not be carried out.
package verify

import (
	"errors"

	"ccr/internal/domain"
	"ccr/internal/i18n"
)

// Func verifies one aspect of a finished test case.
// in is the input handed to the program, expected the expected stdout.
type Func func(msg *i18n.Builder, tc domain.TestCase, in []string, expected string, result domain.ProcessResult) error

// AssertionError is a failed check. Message is the assertion text and
// Diagnostic the console text describing what the program did.
type AssertionError struct {
	Message    string
	Diagnostic string
	Line       int // First mismatching stdout line, 0 when not applicable
}

func (e *AssertionError) Error() string {
	return e.Message
}

// Fail builds an AssertionError
func Fail(message, diagnostic string) *AssertionError {
	return &AssertionError{Message: message, Diagnostic: diagnostic}
}

// AsAssertion unwraps err into an AssertionError
func AsAssertion(err error) (*AssertionError, bool) {
	var ae *AssertionError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
