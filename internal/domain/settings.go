package domain

import (
	"fmt"
	"time"
)

// DefaultTimeoutMillis is used when the settings document sets no timeout
const DefaultTimeoutMillis = 6000

// Settings is the shared settings document for a test suite
type Settings struct {
	Cwd         string    `json:"cwd" yaml:"cwd"`
	Timeout     int       `json:"timeout" yaml:"timeout"`
	InputType   InputType `json:"inputType" yaml:"inputType"`
	EmptyOutput string    `json:"emptyOutput" yaml:"emptyOutput"`
	Language    string    `json:"language" yaml:"language"`
	TestCases   []string  `json:"testcases" yaml:"testcases"`
}

// ApplyDefaults fills in zero values; a negative timeout is left for Validate
func (s *Settings) ApplyDefaults() {
	if s.Cwd == "" {
		s.Cwd = "."
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeoutMillis
	}
	if s.InputType == "" {
		s.InputType = InputArgs
	}
}

// Validate checks the settings values
func (s *Settings) Validate() error {
	switch s.InputType {
	case InputArgs, InputStdin:
	default:
		return fmt.Errorf("unknown input type %q", s.InputType)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", s.Timeout)
	}
	return nil
}

// TimeoutDuration returns the per-case timeout
func (s *Settings) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Millisecond
}
