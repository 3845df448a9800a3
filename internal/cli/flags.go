package cli

import "ccr/internal/config"

// Flags holds command-line flags
type Flags struct {
	Processors    int
	Settings      string
	TestCases     []string
	TestPath      string
	NameFilter    string
	FailFast      bool
	OnlyFailed    bool
	RerunFailures bool
	OpenFaills    bool
	Verbose       bool
	NoProgress    bool
	Fresh         bool
	DryRun        bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:    f.Processors,
		Settings:      f.Settings,
		TestCases:     f.TestCases,
		TestPath:      f.TestPath,
		NameFilter:    f.NameFilter,
		FailFast:      f.FailFast,
		OnlyFailed:    f.OnlyFailed,
		RerunFailures: f.RerunFailures,
		OpenFaills:    f.OpenFaills,
		Verbose:       f.Verbose,
		NoProgress:    f.NoProgress,
		Fresh:         f.Fresh,
		DryRun:        f.DryRun,
	}
}
