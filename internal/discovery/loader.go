package discovery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ccr/internal/domain"

	"gopkg.in/yaml.v3"
)

// Loader reads settings documents and test case files
type Loader struct{}

// NewLoader creates a new Loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSettings reads a settings document and applies defaults
func (l *Loader) LoadSettings(path string) (*domain.Settings, error) {
	var settings domain.Settings
	if err := decodeFile(path, &settings); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return &settings, nil
}

// LoadTestCases reads a test case file. Every case is validated and tagged with its source.
func (l *Loader) LoadTestCases(path string) ([]domain.TestCase, error) {
	var cases []domain.TestCase
	if err := decodeFile(path, &cases); err != nil {
		return nil, fmt.Errorf("load test cases: %w", err)
	}

	for i := range cases {
		cases[i].Source = path
		cases[i].Index = i + 1
		if err := cases[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return cases, nil
}

// LoadAll loads every file in order and concatenates the cases
func (l *Loader) LoadAll(paths []string) ([]domain.TestCase, error) {
	var all []domain.TestCase
	for _, path := range paths {
		cases, err := l.LoadTestCases(path)
		if err != nil {
			return nil, err
		}
		all = append(all, cases...)
	}
	return all, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("error parsing YAML %s: %w", path, err)
		}
	case ".json", "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("error parsing JSON %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported file type %q for %s", filepath.Ext(path), path)
	}
	return nil
}
