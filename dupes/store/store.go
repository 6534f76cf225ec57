// Package store keeps benchmark runs in a SQLite database so runs can be
// compared after the fact. Reads come back as streams, the same way the
// detectors consume their input.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lguimbarda/dupbench/dupes/bench"
	"github.com/lguimbarda/dupbench/dupes/core"
	"github.com/lguimbarda/dupbench/dupes/detect"
	"github.com/lguimbarda/dupbench/dupes/gen"

	// Registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	seed       INTEGER NOT NULL,
	samples    INTEGER NOT NULL,
	note       TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS measurements (
	run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	length        INTEGER NOT NULL,
	policy        TEXT NOT NULL,
	detector      TEXT NOT NULL,
	strategy      TEXT NOT NULL,
	library       TEXT NOT NULL,
	baseline      INTEGER NOT NULL,
	result        INTEGER NOT NULL,
	iterations    INTEGER NOT NULL,
	samples       INTEGER NOT NULL,
	mean_ns       REAL NOT NULL,
	min_ns        REAL NOT NULL,
	max_ns        REAL NOT NULL,
	p50_ns        REAL NOT NULL,
	p90_ns        REAL NOT NULL,
	p99_ns        REAL NOT NULL,
	allocs_per_op REAL NOT NULL,
	items_per_sec REAL NOT NULL,
	ratio         REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);`

// Run describes one stored benchmark run.
type Run struct {
	ID        string
	CreatedAt time.Time
	Seed      uint32
	Samples   int
	Note      string
	// Measurements is the number of stored rows; filled by Runs.
	Measurements int
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dsn and ensures the
// schema exists. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// An in-memory database exists per connection. File databases keep a
	// pool so an unfinished Measurements stream does not block other calls.
	if inMemory(dsn) {
		db.SetMaxOpenConns(1)
	} else if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func inMemory(dsn string) bool {
	return dsn == ":memory:" ||
		strings.HasPrefix(dsn, "file::memory:") ||
		strings.Contains(dsn, "mode=memory")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a run and its measurements in one transaction. An empty
// run.ID is replaced with a new UUID; the stored Run is returned.
func (s *Store) SaveRun(ctx context.Context, run Run, ms []bench.Measurement) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.Measurements = len(ms)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, seed, samples, note) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UnixNano(), run.Seed, run.Samples, run.Note)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO measurements (
		run_id, position, length, policy, detector, strategy, library, baseline, result,
		iterations, samples, mean_ns, min_ns, max_ns, p50_ns, p90_ns, p99_ns,
		allocs_per_op, items_per_sec, ratio
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, err
	}
	defer stmt.Close()

	for i, m := range ms {
		_, err := stmt.ExecContext(ctx,
			run.ID, i, m.Length, m.Policy.String(), m.Detector, m.Strategy.String(), string(m.Library),
			m.Baseline, m.Result, m.Iterations, m.Samples,
			m.MeanNs, m.MinNs, m.MaxNs, m.P50Ns, m.P90Ns, m.P99Ns,
			m.AllocsPerOp, m.ItemsPerSec, m.Ratio)
		if err != nil {
			return Run{}, fmt.Errorf("insert measurement %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	return run, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	return core.Slice(ctx, Query(s.db, `
		SELECT r.id, r.created_at, r.seed, r.samples, r.note, COUNT(m.run_id)
		FROM runs r LEFT JOIN measurements m ON m.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id`, scanRun))
}

// Run returns one stored run.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	run, err := core.First(ctx, Query(s.db, `
		SELECT r.id, r.created_at, r.seed, r.samples, r.note, COUNT(m.run_id)
		FROM runs r LEFT JOIN measurements m ON m.run_id = r.id
		WHERE r.id = ?
		GROUP BY r.id`, scanRun, id))
	if errors.Is(err, core.ErrEmptyStream) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// Measurements streams a run's measurements in the order they were saved.
// The stream holds a connection until it is drained or ctx is cancelled.
func (s *Store) Measurements(ctx context.Context, runID string) (core.Stream[bench.Measurement], error) {
	if _, err := s.Run(ctx, runID); err != nil {
		return nil, err
	}
	return Query(s.db, `
		SELECT length, policy, detector, strategy, library, baseline, result,
			iterations, samples, mean_ns, min_ns, max_ns, p50_ns, p90_ns, p99_ns,
			allocs_per_op, items_per_sec, ratio
		FROM measurements WHERE run_id = ? ORDER BY position`, scanMeasurement, runID), nil
}

// DeleteRun removes a run and its measurements.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM measurements WHERE run_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return tx.Commit()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		r       Run
		created int64
	)
	if err := rows.Scan(&r.ID, &created, &r.Seed, &r.Samples, &r.Note, &r.Measurements); err != nil {
		return Run{}, err
	}
	r.CreatedAt = time.Unix(0, created)
	return r, nil
}

func scanMeasurement(rows *sql.Rows) (bench.Measurement, error) {
	var (
		m                          bench.Measurement
		policy, strategy, library string
	)
	err := rows.Scan(&m.Length, &policy, &m.Detector, &strategy, &library, &m.Baseline, &m.Result,
		&m.Iterations, &m.Samples, &m.MeanNs, &m.MinNs, &m.MaxNs, &m.P50Ns, &m.P90Ns, &m.P99Ns,
		&m.AllocsPerOp, &m.ItemsPerSec, &m.Ratio)
	if err != nil {
		return bench.Measurement{}, err
	}
	if m.Policy, err = gen.ParsePolicy(policy); err != nil {
		return bench.Measurement{}, err
	}
	if m.Strategy, err = detect.ParseStrategy(strategy); err != nil {
		return bench.Measurement{}, err
	}
	m.Library = detect.Library(library)
	return m, nil
}
