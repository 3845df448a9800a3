package commands

import (
	"ccr/internal/config"
	"ccr/internal/storage"
	"ccr/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	cases     *caseSource
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	cases *caseSource,
	st storage.Storage,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		cases:     cases,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	settings, err := lc.cases.settings()
	if err != nil {
		return err
	}

	cases, err := lc.cases.load(settings)
	if err != nil {
		return err
	}

	// Mark cases that failed last time; no previous run just means nothing is marked
	failed, err := failedKeys(lc.storage)
	if err != nil {
		failed = map[string]bool{}
	}
	if lc.config.Flags.OnlyFailed {
		cases = lc.cases.filter.FilterByKeys(cases, failed)
	}

	if len(cases) == 0 {
		color.Yellow("No test cases found")
		return nil
	}

	lc.formatter.PrintTestList(cases, failed)
	return nil
}
