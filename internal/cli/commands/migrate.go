package commands

import (
	"fmt"

	"ccr/internal/config"
	"ccr/internal/migration"

	"github.com/spf13/cobra"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	config   *config.Config
	migrator migration.Migrator
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(cfg *config.Config, migrator migration.Migrator) *MigrateCommand {
	return &MigrateCommand{
		config:   cfg,
		migrator: migrator,
	}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	fresh := mc.config.Flags.Fresh
	if mc.config.Flags.DryRun {
		out := cmd.OutOrStdout()
		for _, stmt := range migration.Statements(fresh) {
			fmt.Fprintf(out, "%s;\n\n", stmt)
		}
		return nil
	}

	if mc.config.GetResultsDSN() == "" {
		return fmt.Errorf("results database is not configured: set %s or DB_HOST", config.EnvResultsDSN)
	}
	return mc.migrator.Run(fresh)
}
