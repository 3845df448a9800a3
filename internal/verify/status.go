package verify

import (
	"ccr/internal/domain"
	"ccr/internal/i18n"
)

// ZeroStatus is the default status check: every program must exit with 0.
func ZeroStatus(msg *i18n.Builder, tc domain.TestCase, in []string, expected string, result domain.ProcessResult) error {
	if result.Code == 0 {
		return nil
	}
	return Fail(msg.NonZeroStatusCode(result.Code), msg.AbnormalEnd(in, expected, result))
}

// ExpectedStatus checks the exit status against the case's output type.
// Cases of type "error" pass only with a non-zero status, all other cases only with 0.
func ExpectedStatus(msg *i18n.Builder, tc domain.TestCase, in []string, expected string, result domain.ProcessResult) error {
	shouldError := tc.ShouldError()
	if shouldError != (result.Code == 0) {
		return nil
	}

	diagnostic := msg.AbnormalEnd(in, expected, result)
	if shouldError {
		return Fail(msg.ErrorZeroStatusCode(), diagnostic)
	}
	return Fail(msg.NonZeroStatusCode(result.Code), diagnostic)
}
