package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCase_ShouldError(t *testing.T) {
	assert.True(t, TestCase{Output: ExpectedOutput{Type: OutputError}}.ShouldError())
	assert.False(t, TestCase{Output: ExpectedOutput{Type: OutputFile, Path: "a.out"}}.ShouldError())
	assert.False(t, TestCase{Output: ExpectedOutput{Type: OutputText}}.ShouldError())
}

func TestTestCase_Name(t *testing.T) {
	assert.Equal(t, "highscore", TestCase{Title: "highscore", Source: "basic_testcases.json", Index: 2}.Name())
	assert.Equal(t, "basic_testcases.json #2", TestCase{Source: "basic_testcases.json", Index: 2}.Name())
}

func TestTestCase_Validate(t *testing.T) {
	tests := []struct {
		name    string
		output  ExpectedOutput
		wantErr string
	}{
		{"file with path", ExpectedOutput{Type: OutputFile, Path: "out/basic/1.out"}, ""},
		{"text", ExpectedOutput{Type: OutputText, Value: "ok"}, ""},
		{"error", ExpectedOutput{Type: OutputError}, ""},
		{"file without path", ExpectedOutput{Type: OutputFile}, "requires a path"},
		{"missing type", ExpectedOutput{}, "missing output type"},
		{"unknown type", ExpectedOutput{Type: "json"}, `unknown output type "json"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TestCase{Title: tt.name, Output: tt.output}.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettings_ApplyDefaults(t *testing.T) {
	var s Settings
	s.ApplyDefaults()

	assert.Equal(t, ".", s.Cwd)
	assert.Equal(t, DefaultTimeoutMillis, s.Timeout)
	assert.Equal(t, InputArgs, s.InputType)
	assert.Equal(t, 6*time.Second, s.TimeoutDuration())

	custom := Settings{Cwd: "app", Timeout: 1500, InputType: InputStdin}
	custom.ApplyDefaults()
	assert.Equal(t, "app", custom.Cwd)
	assert.Equal(t, 1500*time.Millisecond, custom.TimeoutDuration())
	assert.Equal(t, InputStdin, custom.InputType)
}

func TestSettings_Validate(t *testing.T) {
	s := Settings{InputType: InputArgs, Timeout: 100}
	assert.NoError(t, s.Validate())

	s.InputType = "file"
	assert.ErrorContains(t, s.Validate(), `unknown input type "file"`)

	negative := Settings{Timeout: -1}
	negative.ApplyDefaults()
	assert.Equal(t, -1, negative.Timeout)
	assert.ErrorContains(t, negative.Validate(), "timeout must not be negative, got -1")
}
