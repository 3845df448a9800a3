package migration

import (
	"database/sql"
	"fmt"

	"ccr/internal/config"
	"ccr/internal/domain"

	"github.com/fatih/color"
)

type statement struct {
	name string
	sql  string
}

var dropStatements = []statement{
	{name: "drop failures", sql: "DROP TABLE IF EXISTS failures"},
	{name: "drop runs", sql: "DROP TABLE IF EXISTS runs"},
}

var createStatements = []statement{
	{name: "create runs", sql: `CREATE TABLE IF NOT EXISTS runs (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  run_id CHAR(36) NOT NULL UNIQUE,
  language VARCHAR(8) NOT NULL,
  app_command TEXT NOT NULL,
  total_cases INT NOT NULL,
  passed_cases INT NOT NULL,
  failed_cases INT NOT NULL,
  duration_seconds DOUBLE NOT NULL,
  workers INT NOT NULL,
  created_at DATETIME NOT NULL,
  INDEX idx_runs_created_at (created_at)
) DEFAULT CHARSET=utf8mb4`},
	{name: "create failures", sql: `CREATE TABLE IF NOT EXISTS failures (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  run_id CHAR(36) NOT NULL,
  title VARCHAR(255) NOT NULL,
  source VARCHAR(1024) NOT NULL,
  case_index INT NOT NULL,
  input TEXT NOT NULL,
  output_type VARCHAR(16) NOT NULL,
  exit_code INT NOT NULL,
  message TEXT NOT NULL,
  diagnostic MEDIUMTEXT NOT NULL,
  stderr MEDIUMTEXT NOT NULL,
  line INT NOT NULL,
  diff MEDIUMTEXT NOT NULL,
  CONSTRAINT fk_failures_run FOREIGN KEY (run_id) REFERENCES runs (run_id) ON DELETE CASCADE
) DEFAULT CHARSET=utf8mb4`},
}

// Statements returns the DDL a migration applies, in order
func Statements(fresh bool) []string {
	var out []string
	if fresh {
		for _, s := range dropStatements {
			out = append(out, s.sql)
		}
	}
	for _, s := range createStatements {
		out = append(out, s.sql)
	}
	return out
}

// SchemaMigrator creates the run history tables
type SchemaMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(cfg *config.Config, dbManager *DatabaseManager) *SchemaMigrator {
	return &SchemaMigrator{
		config:          cfg,
		databaseManager: dbManager,
	}
}

// Run creates the database if needed and applies the schema.
// With fresh the existing tables are dropped first.
func (m *SchemaMigrator) Run(fresh bool) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║               Migrating Results Database                   ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	dsn, created, err := m.databaseManager.CheckAndCreateDatabase()
	if err != nil {
		return fmt.Errorf("failed to check database: %w", err)
	}
	if created {
		color.Green("✓ Created database %s", m.config.GetResultsDatabase())
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to results database: %w", err)
	}
	defer db.Close()

	steps := createStatements
	if fresh {
		steps = append(append([]statement{}, dropStatements...), createStatements...)
	}

	results := make([]domain.MigrationResult, 0, len(steps))
	for _, step := range steps {
		_, err := db.Exec(step.sql)
		results = append(results, domain.MigrationResult{Name: step.name, Success: err == nil, Error: err})
		if err != nil {
			break
		}
	}

	return report(results)
}

func report(results []domain.MigrationResult) error {
	for _, r := range results {
		if r.Success {
			color.Green("  ✓ %s", r.Name)
			continue
		}
		color.Red("  ✗ %s: %v", r.Name, r.Error)
		return fmt.Errorf("migration step %q failed: %w", r.Name, r.Error)
	}
	color.Green("\n✓ Results database is up to date")
	return nil
}
