package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"ccr/internal/domain"
	"ccr/internal/i18n"
	"ccr/internal/verify"

	"github.com/google/shlex"
	"github.com/rs/zerolog"
)

// waitDelay bounds how long Run waits for output pipes after the process is gone
const waitDelay = 2 * time.Second

// Runner executes the program under test for a single test case and verifies the outcome.
// VerifyStatusCode and VerifyStdout may be replaced before the first Run.
type Runner struct {
	settings *domain.Settings
	argv     []string
	baseDir  string
	msg      *i18n.Builder
	logger   zerolog.Logger

	VerifyStatusCode verify.Func
	VerifyStdout     verify.Func
}

// NewRunner creates a Runner bound to appCommand. Relative paths in settings and
// test cases are resolved against baseDir.
func NewRunner(settings *domain.Settings, appCommand, baseDir string, msg *i18n.Builder, logger zerolog.Logger) (*Runner, error) {
	argv, err := shlex.Split(appCommand)
	if err != nil {
		return nil, fmt.Errorf("parse app command %q: %w", appCommand, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("app command is empty")
	}
	if baseDir == "" {
		baseDir = "."
	}
	return &Runner{
		settings:         settings,
		argv:             argv,
		baseDir:          baseDir,
		msg:              msg,
		logger:           logger,
		VerifyStatusCode: verify.ZeroStatus,
		VerifyStdout:     verify.Stdout,
	}, nil
}

// Run executes the program for tc and applies the status and stdout checks, in that order
func (r *Runner) Run(ctx context.Context, tc domain.TestCase, workerID int) domain.TestResult {
	result := domain.TestResult{Case: tc, WorkerID: workerID}
	logger := r.logger.With().Str("case", tc.Name()).Int("worker", workerID).Logger()

	expected, err := r.expectedOutput(tc)
	if err != nil {
		result.Error = err
		result.Message = r.msg.ExpectedUnreadable(err)
		logger.Error().Err(err).Msg("expected output unavailable")
		return result
	}

	proc, err := r.execute(ctx, tc)
	result.Process = proc
	switch {
	case proc.TimedOut:
		result.Message = r.msg.Timeout(r.settings.Timeout)
		result.Details = r.msg.AbnormalEnd(tc.Input, expected, proc)
		logger.Warn().Dur("elapsed", proc.Duration).Msg("timed out")
		return result
	case err != nil:
		result.Error = err
		result.Message = r.msg.ProcessStartFailed(err)
		logger.Error().Err(err).Msg("program did not run")
		return result
	}

	logger.Debug().
		Int("code", proc.Code).
		Dur("elapsed", proc.Duration).
		Msg("program finished")

	for _, check := range []verify.Func{r.VerifyStatusCode, r.VerifyStdout} {
		if check == nil {
			continue
		}
		if err := check(r.msg, tc, tc.Input, expected, proc); err != nil {
			if ae, ok := verify.AsAssertion(err); ok {
				result.Message = ae.Message
				result.Details = ae.Diagnostic
				logger.Debug().Str("status", r.msg.Status(false)).Str("assertion", ae.Message).Msg("verification failed")
				return result
			}
			result.Error = err
			result.Message = err.Error()
			return result
		}
	}

	result.Success = true
	logger.Debug().Str("status", r.msg.Status(true)).Msg("verified")
	return result
}

// ExpectedOutput returns the stdout tc expects, for display
func (r *Runner) ExpectedOutput(tc domain.TestCase) (string, error) {
	return r.expectedOutput(tc)
}

func (r *Runner) expectedOutput(tc domain.TestCase) (string, error) {
	switch tc.Output.Type {
	case domain.OutputText:
		return tc.Output.Value, nil
	case domain.OutputError:
		// Error cases expect nothing on stdout.
		if r.settings.EmptyOutput == "" {
			return "", nil
		}
		return r.readFile(r.settings.EmptyOutput)
	default:
		return r.readFile(tc.Output.Path)
	}
}

func (r *Runner) readFile(path string) (string, error) {
	data, err := os.ReadFile(r.resolve(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Runner) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.baseDir, p)
}

// execute runs the program once. The returned error is set only when the
// program could not be started or waited for; a non-zero exit is not an error.
func (r *Runner) execute(ctx context.Context, tc domain.TestCase) (domain.ProcessResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.settings.TimeoutDuration())
	defer cancel()

	args := append([]string{}, r.argv[1:]...)
	var stdin io.Reader
	input := tc.Input
	if r.settings.InputType == domain.InputStdin && len(input) > 0 {
		f, err := os.Open(r.resolve(input[0]))
		if err != nil {
			return domain.ProcessResult{Code: -1}, fmt.Errorf("open stdin file: %w", err)
		}
		defer f.Close()
		stdin = f
		input = input[1:]
	}
	args = append(args, input...)

	cmd := exec.CommandContext(ctx, r.argv[0], args...)
	cmd.Dir = r.resolve(r.settings.Cwd)
	cmd.Env = os.Environ()
	cmd.Stdin = stdin
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	proc := domain.ProcessResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		proc.Code = -1
		proc.TimedOut = true
		return proc, nil
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		proc.Code = 0
	case errors.As(err, &exitErr):
		proc.Code = exitErr.ExitCode()
	default:
		proc.Code = -1
		return proc, err
	}
	return proc, nil
}
