package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath  string
	SettingsPath string
	TestPath     string

	// Challenge settings, from the environment
	Language   string
	AppCommand string
	LogLevel   string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Processors int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		SettingsPath:   DefaultSettingsFile,
		TestPath:       DefaultTestPath,
		Language:       DefaultLanguage,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Flags:          Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// LoadEnv reads the .env file in the project path (if any) and then the process environment.
// Variables already set in the environment win over .env entries.
func (c *Config) LoadEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	if lang := os.Getenv(EnvLanguage); lang != "" {
		c.Language = lang
	}
	c.AppCommand = os.Getenv(EnvAppCommand)
	c.LogLevel = os.Getenv(EnvLogLevel)
}

// Apply copies parsed flags into the config
func (c *Config) Apply(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.Settings != "" {
		c.SettingsPath = flags.Settings
	}
}

// Validate checks the values needed to run a suite
func (c *Config) Validate() error {
	if !IsSupportedLanguage(c.Language) {
		return fmt.Errorf("unsupported %s %q (expected one of %v)", EnvLanguage, c.Language, SupportedLanguages)
	}
	if c.AppCommand == "" {
		return fmt.Errorf("%s is not set", EnvAppCommand)
	}
	if c.Processors <= 0 {
		return fmt.Errorf("processors must be positive, got %d", c.Processors)
	}
	return nil
}

// IsSupportedLanguage reports whether messages exist for lang
func IsSupportedLanguage(lang string) bool {
	return slices.Contains(SupportedLanguages, lang)
}

// Resolve makes p relative to the project path unless it is absolute
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetSettingsPath returns the settings document path
func (c *Config) GetSettingsPath() string {
	return c.Resolve(c.SettingsPath)
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		return c.Resolve(c.Flags.TestPath)
	}
	return c.Resolve(c.TestPath)
}

// GetOutputPath returns the full path to the output JSON file (under project so run and faills use the same file).
// Resolves to an absolute path so run and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetResultsDSN returns the MySQL DSN for run history, or "" when history is disabled.
// RESULTS_DSN wins; otherwise the DSN is built from the DB_* variables when DB_HOST is set.
func (c *Config) GetResultsDSN() string {
	if dsn := os.Getenv(EnvResultsDSN); dsn != "" {
		return dsn
	}
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return ""
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
	}
	dbUser := os.Getenv("DB_USERNAME")
	if dbUser == "" {
		dbUser = "root"
	}
	dbPassword := os.Getenv("DB_PASSWORD")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", dbUser, dbPassword, dbHost, dbPort, c.GetResultsDatabase())
}

// GetResultsDatabase returns the database name for run history
func (c *Config) GetResultsDatabase() string {
	if name := os.Getenv("DB_DATABASE"); name != "" {
		return name
	}
	return DefaultResultsDatabase
}
