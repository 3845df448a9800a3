package commands

import (
	"errors"
	"io/fs"
	"os"

	"ccr/internal/config"
	"ccr/internal/discovery"
	"ccr/internal/domain"
	"ccr/internal/storage"
)

// caseSource resolves which test cases a command works on
type caseSource struct {
	config  *config.Config
	loader  *discovery.Loader
	scanner *discovery.Scanner
	filter  *discovery.Filter
}

// settings loads the settings document. A missing default document yields defaults;
// a missing document passed with --settings is an error.
func (cs *caseSource) settings() (*domain.Settings, error) {
	path := cs.config.GetSettingsPath()
	if cs.config.Flags.Settings == "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			settings := &domain.Settings{}
			settings.ApplyDefaults()
			return settings, nil
		}
	}
	return cs.loader.LoadSettings(path)
}

// files returns the descriptor files: --testcases first, then the settings list,
// then every *testcases file below the test path.
func (cs *caseSource) files(settings *domain.Settings) ([]string, error) {
	listed := cs.config.Flags.TestCases
	if len(listed) == 0 {
		listed = settings.TestCases
	}
	if len(listed) > 0 {
		paths := make([]string, len(listed))
		for i, p := range listed {
			paths[i] = cs.config.Resolve(p)
		}
		return paths, nil
	}
	return cs.scanner.Scan(cs.config.GetTestPath())
}

// load returns the selected cases after the name filter
func (cs *caseSource) load(settings *domain.Settings) ([]domain.TestCase, error) {
	paths, err := cs.files(settings)
	if err != nil {
		return nil, err
	}
	cases, err := cs.loader.LoadAll(paths)
	if err != nil {
		return nil, err
	}
	return cs.filter.FilterByName(cases, cs.config.Flags.NameFilter), nil
}

// failedKeys returns the keys of cases that failed in the last stored run
func failedKeys(st storage.Storage) (map[string]bool, error) {
	last, err := st.Load()
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(last.Details))
	for _, f := range last.Details {
		keys[discovery.Key(f.Source, f.Index)] = true
	}
	return keys, nil
}
