package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/shipdata/internal/record"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'queued',
	vessels    INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS consensus_fields (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	vessel_key TEXT NOT NULL,
	vessel_pos INTEGER NOT NULL,
	field_pos  INTEGER NOT NULL,
	field      TEXT NOT NULL,
	value      TEXT,
	is_fishing BOOLEAN,
	PRIMARY KEY (run_id, vessel_key, field)
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_consensus_fields_order ON consensus_fields(run_id, vessel_pos, field_pos);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, source string) (*Run, error) {
	now := time.Now().UTC()
	run := &Run{
		ID:        uuid.New().String(),
		Source:    source,
		Status:    RunStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Source, string(run.Status), run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: create run")
	}
	return run, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	var r Run
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, status, vessels, created_at, updated_at FROM runs WHERE id = ?`,
		runID,
	).Scan(&r.ID, &r.Source, &status, &r.Vessels, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrRunNotFound, "sqlite: get run %s", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	r.Status = RunStatus(status)
	return &r, nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, runID string, records []record.Consensus) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`UPDATE runs SET status = ?, vessels = ?, updated_at = ? WHERE id = ?`,
		string(RunStatusComplete), len(records), time.Now().UTC(), runID,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: update run")
	}
	if err := checkRowsAffected(res, runID); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO consensus_fields (run_id, vessel_key, vessel_pos, field_pos, field, value, is_fishing)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, vessel_key, field) DO UPDATE SET
		   vessel_pos = excluded.vessel_pos,
		   field_pos = excluded.field_pos,
		   value = excluded.value,
		   is_fishing = excluded.is_fishing`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	var n int64
	for _, row := range fieldRows(runID, records) {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert field %v", row[4])
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return n, nil
}

func (s *SQLiteStore) ListRun(ctx context.Context, runID string) ([]record.Consensus, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT vessel_key, field, value, is_fishing FROM consensus_fields
		 WHERE run_id = ? ORDER BY vessel_pos, field_pos`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list run")
	}
	defer rows.Close()

	var a assembler
	for rows.Next() {
		var key, field string
		var value sql.NullString
		var fishing sql.NullBool
		if err := rows.Scan(&key, &field, &value, &fishing); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan field")
		}
		var vp *string
		if value.Valid {
			vp = &value.String
		}
		var fp *bool
		if fishing.Valid {
			fp = &fishing.Bool
		}
		a.add(key, field, vp, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: list run rows")
	}
	return a.out, nil
}

func checkRowsAffected(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrRunNotFound, "run %s", runID)
	}
	return nil
}
