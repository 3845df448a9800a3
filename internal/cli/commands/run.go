package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"ccr/internal/config"
	"ccr/internal/discovery"
	"ccr/internal/domain"
	"ccr/internal/execution"
	"ccr/internal/i18n"
	"ccr/internal/logging"
	"ccr/internal/parser"
	"ccr/internal/storage"
	"ccr/internal/ui"
	"ccr/internal/verify"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrTestsFailed is returned by run when at least one case failed
var ErrTestsFailed = errors.New("test cases failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	cases     *caseSource
	scheduler execution.Scheduler
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	cases *caseSource,
	scheduler execution.Scheduler,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		cases:     cases,
		scheduler: scheduler,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := rc.config.Validate(); err != nil {
		return err
	}
	logger := logging.New(os.Stderr, rc.config.LogLevel, rc.config.Flags.Verbose)

	settings, err := rc.cases.settings()
	if err != nil {
		return err
	}
	settings.Language = rc.config.Language

	cases, err := rc.cases.load(settings)
	if err != nil {
		return err
	}
	if rc.config.Flags.OnlyFailed {
		keys, err := failedKeys(rc.storage)
		if err != nil {
			return fmt.Errorf("--failed needs a previous run: %w", err)
		}
		cases = rc.cases.filter.FilterByKeys(cases, keys)
	}

	if len(cases) == 0 {
		color.Yellow("No test cases to execute")
		return nil
	}

	msg, err := i18n.NewBuilder(rc.config.Language)
	if err != nil {
		return err
	}

	runner, err := execution.NewRunner(settings, rc.config.AppCommand, rc.config.ProjectPath, msg, logger)
	if err != nil {
		return err
	}
	// Error cases expect a non-zero exit status instead of the runner's default zero check.
	runner.VerifyStatusCode = verify.ExpectedStatus

	logger.Debug().
		Str("app_command", rc.config.AppCommand).
		Str("language", rc.config.Language).
		Int("cases", len(cases)).
		Int("workers", rc.config.Processors).
		Msg("starting run")

	ctx := cmd.Context()
	results, duration, err := rc.execute(ctx, runner, cases)
	if err != nil {
		return err
	}

	expected := parser.NewFailureParser(runner)
	failures := expected.ParseFailures(results)

	if rc.config.Flags.RerunFailures && len(failures) > 0 {
		color.Yellow("\nRerunning %d failed test case(s)...", len(failures))
		results, duration, err = rc.rerun(ctx, runner, results, duration)
		if err != nil {
			return err
		}
		failures = expected.ParseFailures(results)
	}

	output := storage.NewOutput(storage.RunInfo{
		RunID:      uuid.NewString(),
		Language:   rc.config.Language,
		AppCommand: rc.config.AppCommand,
		Workers:    rc.config.Processors,
	}, results, failures, duration)

	if err := rc.save(output, logger); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	rc.formatter.PrintMetaStats(output)

	if len(failures) == 0 {
		return nil
	}
	if rc.config.Flags.OpenFaills {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return ErrTestsFailed
}

func (rc *RunCommand) execute(ctx context.Context, runner *execution.Runner, cases []domain.TestCase) ([]domain.TestResult, time.Duration, error) {
	pool := execution.NewWorkerPool(rc.config.Processors, runner, rc.scheduler)
	pool.SetFailFast(rc.config.Flags.FailFast)
	if !rc.config.Flags.NoProgress && ui.StderrIsTerminal() {
		pool.SetProgress(ui.NewProgressBar(len(cases)))
	}
	return pool.Execute(ctx, cases)
}

// rerun executes the failed cases once more and replaces their results
func (rc *RunCommand) rerun(ctx context.Context, runner *execution.Runner, results []domain.TestResult, duration time.Duration) ([]domain.TestResult, time.Duration, error) {
	var failed []domain.TestCase
	positions := make(map[string]int)
	for i, r := range results {
		if !r.Success {
			failed = append(failed, r.Case)
			positions[discovery.Key(r.Case.Source, r.Case.Index)] = i
		}
	}

	again, extra, err := rc.execute(ctx, runner, failed)
	if err != nil {
		return nil, 0, err
	}

	merged := make([]domain.TestResult, len(results))
	copy(merged, results)
	for _, r := range again {
		if i, ok := positions[discovery.Key(r.Case.Source, r.Case.Index)]; ok {
			merged[i] = r
		}
	}
	return merged, duration + extra, nil
}

// save writes the JSON results file and, when configured, the MySQL history
func (rc *RunCommand) save(output *domain.TestResultsOutput, logger zerolog.Logger) error {
	history, err := storage.OpenMySQL(rc.config.GetResultsDSN())
	if err != nil {
		logger.Warn().Err(err).Msg("run history disabled")
		return rc.storage.Save(output)
	}
	if history == nil {
		return rc.storage.Save(output)
	}
	defer history.Close()

	return storage.NewMulti(rc.storage, history).Save(output)
}

// ensure the runner exposes expected outputs to the failure parser
var _ parser.ExpectedSource = (*execution.Runner)(nil)

// ensure the pool satisfies the executor contract
var _ execution.Executor = (*execution.WorkerPool)(nil)
