// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/konpaku-ming/netsim/sym"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// A SQLiteRecorder stores samples in a SQLite database, one run per Begin.
// Runs are keyed by a random UUID so several simulations can share a file.
//
type SQLiteRecorder struct {
	db    *sql.DB
	runID string
	vars  []sym.Var
	tx    *sql.Tx
	ins   *sql.Stmt
}

// NewSQLite opens (or creates) the trace database at path.
//
func NewSQLite(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening trace database")
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteRecorder{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			design     TEXT NOT NULL,
			started_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS signals (
			run_id TEXT NOT NULL REFERENCES runs(id),
			idx    INTEGER NOT NULL,
			path   TEXT NOT NULL,
			width  INTEGER NOT NULL,
			PRIMARY KEY (run_id, idx)
		);
		CREATE TABLE IF NOT EXISTS samples (
			run_id TEXT NOT NULL REFERENCES runs(id),
			cycle  INTEGER NOT NULL,
			idx    INTEGER NOT NULL,
			value  INTEGER NOT NULL,
			PRIMARY KEY (run_id, cycle, idx)
		);
	`)
	return errors.Wrap(err, "creating trace tables")
}

// RunID returns the UUID of the current run. It is empty before Begin.
//
func (r *SQLiteRecorder) RunID() string { return r.runID }

func (r *SQLiteRecorder) Begin(design string, vars []sym.Var) error {
	r.runID = uuid.NewString()
	r.vars = vars
	_, err := r.db.Exec(`INSERT INTO runs (id, design, started_at) VALUES (?, ?, ?)`,
		r.runID, design, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.Wrap(err, "recording run")
	}
	for i, v := range vars {
		_, err = r.db.Exec(`INSERT INTO signals (run_id, idx, path, width) VALUES (?, ?, ?, ?)`,
			r.runID, i, v.Path, v.Width)
		if err != nil {
			return errors.Wrap(err, "recording signal list")
		}
	}
	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "starting sample transaction")
	}
	ins, err := tx.Prepare(`INSERT INTO samples (run_id, cycle, idx, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "preparing sample insert")
	}
	r.tx, r.ins = tx, ins
	return nil
}

func (r *SQLiteRecorder) Sample(cycle uint64, vals []uint64) error {
	for i, v := range vals {
		if _, err := r.ins.Exec(r.runID, int64(cycle), i, int64(v)); err != nil {
			return errors.Wrap(err, "recording sample")
		}
	}
	return nil
}

// Close commits the pending samples and closes the database.
//
func (r *SQLiteRecorder) Close() error {
	var first error
	if r.tx != nil {
		if err := r.tx.Commit(); err != nil {
			first = errors.Wrap(err, "committing samples")
		}
		r.tx, r.ins = nil, nil
	}
	if err := r.db.Close(); err != nil && first == nil {
		first = errors.Wrap(err, "closing trace database")
	}
	return first
}

var _ Recorder = (*SQLiteRecorder)(nil)
