package migration

import (
	"database/sql"
	"fmt"
	"strings"

	"ccr/internal/config"

	"github.com/go-sql-driver/mysql"
)

// DatabaseManager manages the results database
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// SplitDSN returns a server level DSN (no default database) and the database name of dsn
func SplitDSN(dsn string) (string, string, error) {
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", "", fmt.Errorf("parse DSN: %w", err)
	}
	dbName := parsed.DBName
	parsed.DBName = ""
	return parsed.FormatDSN(), dbName, nil
}

// CheckAndCreateDatabase makes sure the results database exists and returns its DSN
func (dm *DatabaseManager) CheckAndCreateDatabase() (string, bool, error) {
	dsn := dm.config.GetResultsDSN()
	if dsn == "" {
		return "", false, fmt.Errorf("results database is not configured (set %s or DB_HOST)", config.EnvResultsDSN)
	}

	serverDSN, dbName, err := SplitDSN(dsn)
	if err != nil {
		return "", false, err
	}
	if dbName == "" {
		return "", false, fmt.Errorf("DSN does not name a database")
	}

	// Connect to MySQL server (without specifying database)
	db, err := sql.Open("mysql", serverDSN)
	if err != nil {
		return "", false, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	// Test connection
	if err := db.Ping(); err != nil {
		return "", false, fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := dm.databaseExists(db, dbName)
	if err != nil {
		return "", false, fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if !exists {
		if err := dm.createDatabase(db, dbName); err != nil {
			return "", false, fmt.Errorf("failed to create database %s: %w", dbName, err)
		}
	}

	return dsn, !exists, nil
}

// databaseExists checks if a database exists
func (dm *DatabaseManager) databaseExists(db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRow(query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (dm *DatabaseManager) createDatabase(db *sql.DB, dbName string) error {
	if !IsValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", dbName)
	_, err := db.Exec(query)
	return err
}

// IsValidDatabaseName accepts only names that are safe to interpolate into DDL
func IsValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	return strings.IndexFunc(name, func(r rune) bool {
		return !(r == '_' || r == '$' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) < 0
}
