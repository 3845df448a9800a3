package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ccr/internal/domain"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStorage keeps the history of runs in MySQL.
// The schema is created by the migrate command.
type MySQLStorage struct {
	db *sql.DB
}

// OpenMySQL connects to dsn. It returns nil, nil when dsn is empty (history disabled).
func OpenMySQL(dsn string) (*MySQLStorage, error) {
	if dsn == "" {
		return nil, nil
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to results database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping results database: %w", err)
	}
	return NewMySQLStorage(db), nil
}

// NewMySQLStorage wraps an open database handle
func NewMySQLStorage(db *sql.DB) *MySQLStorage {
	return &MySQLStorage{db: db}
}

// Close releases the connection pool
func (s *MySQLStorage) Close() error {
	return s.db.Close()
}

// Save inserts the run and its failures in one transaction
func (s *MySQLStorage) Save(output *domain.TestResultsOutput) error {
	meta := output.Meta
	createdAt, err := time.Parse(time.RFC3339, meta.Timestamp)
	if err != nil {
		createdAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, language, app_command, total_cases, passed_cases, failed_cases, duration_seconds, workers, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID, meta.Language, meta.AppCommand, meta.TotalTestCases, meta.PassedTestCases,
		meta.FailedTestCases, meta.DurationSeconds, meta.Workers, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, f := range output.Details {
		input, err := json.Marshal(f.Input)
		if err != nil {
			return fmt.Errorf("marshal input: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO failures (run_id, title, source, case_index, input, output_type, exit_code, message, diagnostic, stderr, line, diff)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			meta.RunID, f.Title, f.Source, f.Index, string(input), f.OutputType, f.ExitCode,
			f.Message, f.Diagnostic, f.Stderr, f.Line, f.Diff,
		)
		if err != nil {
			return fmt.Errorf("insert failure %q: %w", f.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// Load returns the most recent run with its failures. The run command reads
// results back from the primary JSON file; Load completes Storage for callers
// that query the history directly.
func (s *MySQLStorage) Load() (*domain.TestResultsOutput, error) {
	var (
		output    domain.TestResultsOutput
		createdAt time.Time
	)
	meta := &output.Meta
	err := s.db.QueryRow(
		`SELECT run_id, language, app_command, total_cases, passed_cases, failed_cases, duration_seconds, workers, created_at
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&meta.RunID, &meta.Language, &meta.AppCommand, &meta.TotalTestCases, &meta.PassedTestCases,
		&meta.FailedTestCases, &meta.DurationSeconds, &meta.Workers, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no runs recorded")
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	meta.Timestamp = createdAt.Format(time.RFC3339)
	meta.Duration = time.Duration(meta.DurationSeconds * float64(time.Second)).String()

	rows, err := s.db.Query(
		`SELECT title, source, case_index, input, output_type, exit_code, message, diagnostic, stderr, line, diff
		 FROM failures WHERE run_id = ? ORDER BY id`, meta.RunID,
	)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	output.Details = []domain.TestFailure{}
	for rows.Next() {
		var f domain.TestFailure
		var input string
		if err := rows.Scan(&f.Title, &f.Source, &f.Index, &input, &f.OutputType, &f.ExitCode,
			&f.Message, &f.Diagnostic, &f.Stderr, &f.Line, &f.Diff); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		if err := json.Unmarshal([]byte(input), &f.Input); err != nil {
			return nil, fmt.Errorf("parse failure input: %w", err)
		}
		output.Details = append(output.Details, f)
	}
	return &output, rows.Err()
}
