package commands

import (
	"ccr/internal/cli"
	"ccr/internal/config"
	"ccr/internal/discovery"
	"ccr/internal/execution"
	"ccr/internal/migration"
	"ccr/internal/storage"
	"ccr/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Faills  *FaillsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	cases := &caseSource{
		config:  cfg,
		loader:  discovery.NewLoader(),
		scanner: discovery.NewScanner(cfg.PathsToIgnore),
		filter:  discovery.NewFilter(),
	}
	scheduler := execution.NewRoundRobinScheduler()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	dbManager := migration.NewDatabaseManager(cfg)
	migrator := migration.NewSchemaMigrator(cfg, dbManager)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, cases, scheduler, jsonStorage, formatter, errorViewer),
		List:    NewListCommand(cfg, cases, jsonStorage, formatter),
		Migrate: NewMigrateCommand(cfg, migrator),
		Faills:  NewFaillsCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Flags are only parsed once the command is chosen, so the config is completed here
	applyConfig := func(cmd *cobra.Command, args []string) error {
		cfg.Apply(flags.ToConfigFlags())
		cfg.LoadEnv()
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the test cases against APP_COMMAND",
		Long:    "Load the settings and test case files, execute APP_COMMAND for every case in parallel and verify exit status and stdout",
		RunE:    c.Run.Execute,
		PreRunE: applyConfig,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of processors to use")
	runCmd.Flags().StringVarP(&flags.Settings, "settings", "s", "", "Path to the settings document (default "+config.DefaultSettingsFile+")")
	runCmd.Flags().StringArrayVarP(&flags.TestCases, "testcases", "c", nil, "Test case file to run (repeatable, overrides settings)")
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Folder scanned for *testcases.json|yaml when no files are listed")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test cases by title (supports wildcards, e.g. 'highscore*' or '*invalid*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test case failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only test cases that failed in the last run (from storage/test-results.json)")
	runCmd.Flags().BoolVar(&flags.RerunFailures, "rerun-failures", false, "After running all test cases, rerun only failed ones once and save that result")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every executed case to stderr")
	runCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Disable the progress bar")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered test cases",
		Long:    "Load and list all test cases without executing them; cases that failed in the last run are marked",
		RunE:    c.List.Execute,
		PreRunE: applyConfig,
	}
	listCmd.Flags().StringVarP(&flags.Settings, "settings", "s", "", "Path to the settings document (default "+config.DefaultSettingsFile+")")
	listCmd.Flags().StringArrayVarP(&flags.TestCases, "testcases", "c", nil, "Test case file to list (repeatable, overrides settings)")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Folder scanned for *testcases.json|yaml when no files are listed")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test cases by title (supports wildcards, e.g. 'highscore*' or '*invalid*')")
	listCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "List only test cases that failed in the last run")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Create the run history database",
		Long:    "Create the MySQL database and tables that store run history (RESULTS_DSN or DB_* variables)",
		RunE:    c.Migrate.Execute,
		PreRunE: applyConfig,
	}
	migrateCmd.Flags().BoolVar(&flags.Fresh, "fresh", false, "Drop the history tables before creating them")
	migrateCmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the SQL statements without executing them")
	rootCmd.AddCommand(migrateCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:     "faills",
		Short:   "View test case failures interactively",
		Long:    "Display test case failures from the last run in an interactive viewer",
		RunE:    c.Faills.Execute,
		PreRunE: applyConfig,
	}
	rootCmd.AddCommand(faillsCmd)
}
