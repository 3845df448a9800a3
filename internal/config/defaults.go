package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSettingsFile is the settings document looked up in the project path
	DefaultSettingsFile = "test/settings.json"
	// DefaultTestPath is where test case files are scanned for when none are given
	DefaultTestPath = "test"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of processors
	DefaultProcessors = 4
	// DefaultLanguage is used when CHALLENGE_LANGUAGE is unset
	DefaultLanguage = "ja"
	// DefaultResultsDatabase is the MySQL schema used for run history
	DefaultResultsDatabase = "ccr_results"
)

// Environment variable names
const (
	EnvLanguage   = "CHALLENGE_LANGUAGE"
	EnvAppCommand = "APP_COMMAND"
	EnvLogLevel   = "LOG_LEVEL"
	EnvResultsDSN = "RESULTS_DSN"
)

// SupportedLanguages are the locales messages exist for
var SupportedLanguages = []string{"ja", "en"}

// DefaultPathsToIgnore are the default directories to ignore when scanning for test case files
var DefaultPathsToIgnore = []string{
	"node_modules",
	"vendor",
	"storage",
	"out",
	"in",
}
