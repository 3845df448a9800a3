package storage

import (
	"errors"
	"testing"
	"time"

	"ccr/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*MySQLStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMySQLStorage(db), mock
}

func historyOutput() *domain.TestResultsOutput {
	return &domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			RunID:           "run-1",
			Language:        "ja",
			AppCommand:      "python main.py",
			TotalTestCases:  3,
			PassedTestCases: 1,
			FailedTestCases: 2,
			DurationSeconds: 1.5,
			Workers:         2,
			Timestamp:       "2024-05-01T10:00:00Z",
		},
		Details: []domain.TestFailure{
			{Title: "highscore", Source: "basic_testcases.json", Index: 1, Input: []string{"a.csv", "b.csv"}, OutputType: "file", ExitCode: 0, Message: "line 2 differs", Line: 2},
			{Title: "error exits zero", Source: "basic_testcases.json", Index: 3, Input: []string{"x"}, OutputType: "error", ExitCode: 0, Message: "Exit status should not be 0."},
		},
	}
}

func TestMySQLStorage_Save(t *testing.T) {
	st, mock := newMockStorage(t)
	output := historyOutput()
	createdAt, err := time.Parse(time.RFC3339, output.Meta.Timestamp)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO runs").
		WithArgs("run-1", "ja", "python main.py", 3, 1, 2, 1.5, 2, createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO failures").
		WithArgs("run-1", "highscore", "basic_testcases.json", 1, `["a.csv","b.csv"]`, "file", 0, "line 2 differs", "", "", 2, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO failures").
		WithArgs("run-1", "error exits zero", "basic_testcases.json", 3, `["x"]`, "error", 0, "Exit status should not be 0.", "", "", 0, "").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, st.Save(output))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStorage_Save_RollsBack(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO runs").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO failures").WillReturnError(errors.New("table missing"))
	mock.ExpectRollback()

	err := st.Save(historyOutput())
	assert.ErrorContains(t, err, `insert failure "highscore"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStorage_Load(t *testing.T) {
	st, mock := newMockStorage(t)
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM runs ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"run_id", "language", "app_command", "total_cases", "passed_cases", "failed_cases", "duration_seconds", "workers", "created_at"}).
			AddRow("run-1", "ja", "python main.py", 3, 2, 1, 1.5, 2, createdAt))
	mock.ExpectQuery(`SELECT (.+) FROM failures WHERE run_id = \?`).
		WithArgs("run-1").
		WillReturnRows(sqlmock.NewRows([]string{"title", "source", "case_index", "input", "output_type", "exit_code", "message", "diagnostic", "stderr", "line", "diff"}).
			AddRow("error exits zero", "basic_testcases.json", 3, `["x"]`, "error", 0, "Exit status should not be 0.", "Exit status: 0", "", 0, ""))

	output, err := st.Load()
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "run-1", output.Meta.RunID)
	assert.Equal(t, 3, output.Meta.TotalTestCases)
	assert.Equal(t, 1, output.Meta.FailedTestCases)
	assert.Equal(t, "2024-05-01T10:00:00Z", output.Meta.Timestamp)
	assert.Equal(t, "1.5s", output.Meta.Duration)

	require.Len(t, output.Details, 1)
	assert.Equal(t, []string{"x"}, output.Details[0].Input)
	assert.Equal(t, 3, output.Details[0].Index)
	assert.Equal(t, "Exit status: 0", output.Details[0].Diagnostic)
}

func TestMySQLStorage_Load_NoRuns(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT (.+) FROM runs").
		WillReturnRows(sqlmock.NewRows([]string{"run_id"}))

	_, err := st.Load()
	assert.ErrorContains(t, err, "no runs recorded")
}
