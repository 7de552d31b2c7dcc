package ledger

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wippyai/watbuild/convert"
	"github.com/wippyai/watbuild/errors"
)

// Run describes the configuration one recorded run executed under.
type Run struct {
	Tool      string
	InputDir  string
	OutputDir string
	Started   time.Time
}

// Summary is one recorded run as returned by Recent.
type Summary struct {
	ID          int64
	Started     time.Time
	Tool        string
	InputDir    string
	OutputDir   string
	Converted   int
	Failed      int
	Interrupted bool
	DurationMS  int64
}

// Store is the append-only run history database. The conversion path
// never reads it; it exists purely for `watbuild history`.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, errors.IO(errors.PhaseLedger, path, err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started TEXT NOT NULL,
			tool TEXT NOT NULL,
			input_dir TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			converted INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			interrupted INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			command TEXT NOT NULL,
			status TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_run_id ON jobs(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "creating schema")
		}
	}
	return nil
}

// Record appends one run and its per-job outcomes.
func (s *Store) Record(ctx context.Context, run Run, result convert.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "beginning transaction")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started, tool, input_dir, output_dir, converted, failed, interrupted, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Started.UTC().Format(time.RFC3339),
		run.Tool, run.InputDir, run.OutputDir,
		result.Converted, result.Failed, boolInt(result.Interrupted),
		result.Duration.Milliseconds())
	if err != nil {
		return errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "inserting run")
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "reading run id")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO jobs (run_id, input, output, command, status, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "preparing job insert")
	}
	defer stmt.Close()

	for _, jr := range result.Jobs {
		errText := ""
		if jr.Err != nil {
			errText = jr.Err.Error()
		}
		if _, err := stmt.ExecContext(ctx,
			runID, jr.Job.Input, jr.Job.Output, jr.Command,
			string(jr.Status), jr.Duration.Milliseconds(), errText); err != nil {
			return errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "inserting job")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "committing run")
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started, tool, input_dir, output_dir, converted, failed, interrupted, duration_ms
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "querying runs")
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var started string
		var interrupted int
		if err := rows.Scan(&sum.ID, &started, &sum.Tool, &sum.InputDir, &sum.OutputDir,
			&sum.Converted, &sum.Failed, &interrupted, &sum.DurationMS); err != nil {
			return nil, errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "scanning run")
		}
		sum.Started, _ = time.Parse(time.RFC3339, started)
		sum.Interrupted = interrupted != 0
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "iterating runs")
	}
	return out, nil
}

// JobCommands returns the command lines recorded for one run, in run order.
func (s *Store) JobCommands(ctx context.Context, runID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT command FROM jobs WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "querying jobs")
	}
	defer rows.Close()

	var commands []string
	for rows.Next() {
		var cmd string
		if err := rows.Scan(&cmd); err != nil {
			return nil, errors.Wrap(errors.PhaseLedger, errors.KindIO, err, "scanning job")
		}
		commands = append(commands, cmd)
	}
	return commands, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
