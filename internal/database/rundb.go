package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/blackholecalc/internal/model"
)

// FileName is the database file created inside the database directory.
const FileName = "blackholecalc.db"

// timestampLayout is the fixed-width layout runs are stored with, so that
// lexical order in SQL matches chronological order.
const timestampLayout = "2006-01-02 15:04:05.000000000"

// RunDB provides SQLite-based storage for saved runs.
//
// Design decision: We keep one database for all runs rather than one per
// run directory. History queries then never need to walk the file system,
// and the run directories remain the portable, human-readable record.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}
	// Concurrent invocations wait for the writer instead of failing.
	dsn += "&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Path returns the database file path.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		description TEXT,
		model_class TEXT,
		fingerprint TEXT NOT NULL,
		mass_solar REAL,
		spin REAL,
		charge REAL,
		physical INTEGER DEFAULT 1,
		failed INTEGER DEFAULT 0,
		run_dir TEXT,
		run_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON runs(fingerprint);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_model_class ON runs(model_class);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunSummary is the indexed part of a saved run.
// This is used for listing history without decoding every run.
type RunSummary struct {
	ID          string
	Name        string
	Timestamp   time.Time
	Description string
	ModelClass  string
	Fingerprint string
	MassSolar   float64
	Spin        float64
	Charge      float64
	Physical    bool
	Failed      bool
	Dir         string
}

// SaveRun inserts or replaces the record for run. dir is the run directory
// the run was written to, or empty when only the index is kept.
func (rdb *RunDB) SaveRun(ctx context.Context, run *model.Run, dir string) error {
	runJSON, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to serialize run: %w", err)
	}

	physical := true
	if run.Classification != nil {
		physical = run.Classification.IsPhysical
	}

	query := `
	INSERT INTO runs (id, name, timestamp, description, model_class, fingerprint,
		mass_solar, spin, charge, physical, failed, run_dir, run_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		description = excluded.description,
		model_class = excluded.model_class,
		failed = excluded.failed,
		run_dir = excluded.run_dir,
		run_json = excluded.run_json
	`

	in := run.Request.Input
	_, err = rdb.db.ExecContext(ctx, query,
		run.ID,
		run.Name,
		run.Timestamp.UTC().Format(timestampLayout),
		run.Description,
		run.Provenance.ModelClass,
		run.Fingerprint(),
		in.MassSolar,
		in.Spin,
		in.Charge,
		physical,
		run.Failed(),
		dir,
		string(runJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by its ID. It returns nil, nil when no run matches.
func (rdb *RunDB) GetRun(ctx context.Context, id string) (*model.Run, error) {
	var runJSON string
	err := rdb.db.QueryRowContext(ctx, `SELECT run_json FROM runs WHERE id = ?`, id).Scan(&runJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return decodeRun(runJSON)
}

// ListRuns returns summaries of the most recent runs, newest first.
// A non-positive limit returns every run.
func (rdb *RunDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := summarySelect + ` ORDER BY timestamp DESC, rowid DESC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return rdb.querySummaries(ctx, query, args...)
}

// FindByFingerprint returns summaries of runs evaluated with the same
// parameters, newest first.
func (rdb *RunDB) FindByFingerprint(ctx context.Context, fingerprint string) ([]RunSummary, error) {
	query := summarySelect + ` WHERE fingerprint = ? ORDER BY timestamp DESC, rowid DESC`
	return rdb.querySummaries(ctx, query, fingerprint)
}

// LatestRuns returns the n most recent complete runs, newest first.
// Malformed rows are skipped.
func (rdb *RunDB) LatestRuns(ctx context.Context, n int) ([]*model.Run, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT run_json FROM runs WHERE failed = 0 ORDER BY timestamp DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		var runJSON string
		if err := rows.Scan(&runJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run, err := decodeRun(runJSON)
		if err != nil {
			continue // Skip malformed runs
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Count returns the number of stored runs.
func (rdb *RunDB) Count(ctx context.Context) (int, error) {
	var n int
	if err := rdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

const summarySelect = `
	SELECT id, name, timestamp, description, model_class, fingerprint,
		mass_solar, spin, charge, physical, failed, run_dir
	FROM runs`

func (rdb *RunDB) querySummaries(ctx context.Context, query string, args ...any) ([]RunSummary, error) {
	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var results []RunSummary
	for rows.Next() {
		var (
			s           RunSummary
			timestamp   string
			description sql.NullString
			modelClass  sql.NullString
			dir         sql.NullString
		)
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&timestamp,
			&description,
			&modelClass,
			&s.Fingerprint,
			&s.MassSolar,
			&s.Spin,
			&s.Charge,
			&s.Physical,
			&s.Failed,
			&dir,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		s.Timestamp = parseTimestamp(timestamp)
		s.Description = description.String
		s.ModelClass = modelClass.String
		s.Dir = dir.String
		results = append(results, s)
	}

	return results, rows.Err()
}

func decodeRun(runJSON string) (*model.Run, error) {
	var run model.Run
	if err := json.Unmarshal([]byte(runJSON), &run); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}
	return &run, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02 15:04:05",  // SQLite default datetime format
	"2006-01-02T15:04:05Z", // ISO 8601 with Z suffix
	time.RFC3339,           // Full RFC3339 format
	time.RFC3339Nano,       // RFC3339 with nanoseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
