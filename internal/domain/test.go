package domain

import "fmt"

// OutputType tells the runner how the expected output of a test case is given
type OutputType string

const (
	// OutputFile compares stdout with the content of Output.Path
	OutputFile OutputType = "file"
	// OutputText compares stdout with Output.Value
	OutputText OutputType = "text"
	// OutputError expects a non-zero exit status and no stdout
	OutputError OutputType = "error"
)

// InputType tells the runner how test case input reaches the program
type InputType string

const (
	// InputArgs appends the test case input to the command line
	InputArgs InputType = "args"
	// InputStdin pipes the file named by the first input entry to stdin
	InputStdin InputType = "stdin"
)

// ExpectedOutput describes what a test case expects the program to print
type ExpectedOutput struct {
	Type  OutputType `json:"type" yaml:"type"`
	Path  string     `json:"path,omitempty" yaml:"path,omitempty"`
	Value string     `json:"value,omitempty" yaml:"value,omitempty"`
}

// TestCase is a single descriptor loaded from a test case file
type TestCase struct {
	Title  string         `json:"title" yaml:"title"`
	Input  []string       `json:"input" yaml:"input"`
	Output ExpectedOutput `json:"output" yaml:"output"`

	// Source is the descriptor file the case was loaded from
	Source string `json:"-" yaml:"-"`
	// Index is the position of the case inside Source, starting at 1
	Index int `json:"-" yaml:"-"`
}

// ShouldError reports whether the case expects the program to fail
func (tc TestCase) ShouldError() bool {
	return tc.Output.Type == OutputError
}

// Name returns the title, or a position based name for untitled cases
func (tc TestCase) Name() string {
	if tc.Title != "" {
		return tc.Title
	}
	return fmt.Sprintf("%s #%d", tc.Source, tc.Index)
}

// Validate checks that the descriptor is usable
func (tc TestCase) Validate() error {
	switch tc.Output.Type {
	case OutputFile:
		if tc.Output.Path == "" {
			return fmt.Errorf("test case %q: output type %q requires a path", tc.Name(), tc.Output.Type)
		}
	case OutputText, OutputError:
	case "":
		return fmt.Errorf("test case %q: missing output type", tc.Name())
	default:
		return fmt.Errorf("test case %q: unknown output type %q", tc.Name(), tc.Output.Type)
	}
	return nil
}
