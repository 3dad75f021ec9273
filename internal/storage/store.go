// Package storage persists simulation runs and basin experiments in a
// local SQLite database.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"ringsim/internal/basin"
)

// Store wraps a SQLite connection for run persistence.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the database at the given path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("storage: create data dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		ring_size INTEGER NOT NULL,
		coupling REAL NOT NULL,
		dt REAL NOT NULL,
		steps INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		freq_policy TEXT NOT NULL,
		phase_policy TEXT NOT NULL,
		integrator TEXT NOT NULL,
		metrics_json TEXT NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		t REAL NOT NULL,
		order_r REAL NOT NULL,
		psi REAL NOT NULL,
		winding INTEGER NOT NULL,
		variance REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS basins (
		run_id TEXT PRIMARY KEY,
		trials INTEGER NOT NULL,
		sync INTEGER NOT NULL,
		twisted1 INTEGER NOT NULL,
		twisted2 INTEGER NOT NULL,
		other INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id, step);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RunMeta describes one stored run or experiment.
type RunMeta struct {
	ID          string    `db:"id"`
	Kind        string    `db:"kind"`
	CreatedAt   time.Time `db:"created_at"`
	RingSize    int       `db:"ring_size"`
	Coupling    float64   `db:"coupling"`
	Dt          float64   `db:"dt"`
	Steps       int       `db:"steps"`
	Seed        int64     `db:"seed"`
	FreqPolicy  string    `db:"freq_policy"`
	PhasePolicy string    `db:"phase_policy"`
	Integrator  string    `db:"integrator"`

	MetricsJSON string             `db:"metrics_json"`
	Metrics     map[string]float64 `db:"-"`
}

// Sample is one diagnostic snapshot along a run.
type Sample struct {
	RunID    string  `db:"run_id"`
	Step     int     `db:"step"`
	T        float64 `db:"t"`
	OrderR   float64 `db:"order_r"`
	Psi      float64 `db:"psi"`
	Winding  int     `db:"winding"`
	Variance float64 `db:"variance"`
}

// BasinRecord is a stored experiment distribution.
type BasinRecord struct {
	RunID    string `db:"run_id"`
	Trials   int    `db:"trials"`
	Sync     int    `db:"sync"`
	Twisted1 int    `db:"twisted1"`
	Twisted2 int    `db:"twisted2"`
	Other    int    `db:"other"`
}

const insertRun = `
	INSERT INTO runs (id, kind, created_at, ring_size, coupling, dt, steps,
		seed, freq_policy, phase_policy, integrator, metrics_json)
	VALUES (:id, :kind, :created_at, :ring_size, :coupling, :dt, :steps,
		:seed, :freq_policy, :phase_policy, :integrator, :metrics_json)`

// SaveRun stores a simulation run with its diagnostic series and returns
// the assigned run ID.
func (s *Store) SaveRun(meta RunMeta, samples []Sample) (string, error) {
	meta.ID = uuid.NewString()
	meta.Kind = "run"
	meta.CreatedAt = time.Now().UTC()

	if meta.Metrics != nil {
		data, err := json.Marshal(meta.Metrics)
		if err != nil {
			return "", fmt.Errorf("storage: encode metrics: %w", err)
		}
		meta.MetricsJSON = string(data)
	} else {
		meta.MetricsJSON = "{}"
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(insertRun, meta); err != nil {
		return "", fmt.Errorf("storage: insert run: %w", err)
	}

	for i := range samples {
		samples[i].RunID = meta.ID
	}
	if len(samples) > 0 {
		_, err = tx.NamedExec(`
			INSERT INTO samples (run_id, step, t, order_r, psi, winding, variance)
			VALUES (:run_id, :step, :t, :order_r, :psi, :winding, :variance)`,
			samples)
		if err != nil {
			return "", fmt.Errorf("storage: insert samples: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// SaveBasin stores an experiment with its distribution and returns the
// assigned run ID.
func (s *Store) SaveBasin(meta RunMeta, dist basin.Distribution) (string, error) {
	meta.ID = uuid.NewString()
	meta.Kind = "basin"
	meta.CreatedAt = time.Now().UTC()
	meta.MetricsJSON = "{}"

	tx, err := s.db.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(insertRun, meta); err != nil {
		return "", fmt.Errorf("storage: insert run: %w", err)
	}

	rec := BasinRecord{
		RunID:    meta.ID,
		Trials:   dist.Total,
		Sync:     dist.Sync,
		Twisted1: dist.Twisted1,
		Twisted2: dist.Twisted2,
		Other:    dist.Other,
	}
	_, err = tx.NamedExec(`
		INSERT INTO basins (run_id, trials, sync, twisted1, twisted2, other)
		VALUES (:run_id, :trials, :sync, :twisted1, :twisted2, :other)`,
		rec)
	if err != nil {
		return "", fmt.Errorf("storage: insert basin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns all stored runs, newest first.
func (s *Store) List() ([]RunMeta, error) {
	var runs []RunMeta
	err := s.db.Select(&runs, `SELECT * FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		if err := runs[i].decodeMetrics(); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Load returns the metadata for one run.
func (s *Store) Load(id string) (*RunMeta, error) {
	var meta RunMeta
	err := s.db.Get(&meta, `SELECT * FROM runs WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("storage: no run %s", id)
	}
	if err != nil {
		return nil, err
	}
	if err := meta.decodeMetrics(); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples returns the diagnostic series of a run in step order.
func (s *Store) LoadSamples(id string) ([]Sample, error) {
	var samples []Sample
	err := s.db.Select(&samples,
		`SELECT * FROM samples WHERE run_id = ? ORDER BY step`, id)
	return samples, err
}

// LoadBasin returns the stored distribution of an experiment.
func (s *Store) LoadBasin(id string) (*BasinRecord, error) {
	var rec BasinRecord
	err := s.db.Get(&rec, `SELECT * FROM basins WHERE run_id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("storage: no basin experiment %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (m *RunMeta) decodeMetrics() error {
	if m.MetricsJSON == "" {
		m.Metrics = map[string]float64{}
		return nil
	}
	return json.Unmarshal([]byte(m.MetricsJSON), &m.Metrics)
}
