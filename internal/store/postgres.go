package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/shipdata/internal/db"
	"github.com/sells-group/shipdata/internal/record"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Close leaves the pool open.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	source     TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'queued',
	vessels    INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
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

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, source string) (*Run, error) {
	now := time.Now().UTC()
	run := &Run{
		ID:        uuid.New().String(),
		Source:    source,
		Status:    RunStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, source, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Source, string(run.Status), run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create run")
	}
	return run, nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	var r Run
	var status string
	err := s.pool.QueryRow(ctx,
		`SELECT id, source, status, vessels, created_at, updated_at FROM runs WHERE id = $1`,
		runID,
	).Scan(&r.ID, &r.Source, &status, &r.Vessels, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrRunNotFound, "postgres: get run %s", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	r.Status = RunStatus(status)
	return &r, nil
}

// SaveRun upserts the field rows through a COPY into a temp table, then marks
// the run complete.
func (s *PostgresStore) SaveRun(ctx context.Context, runID string, records []record.Consensus) (int64, error) {
	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "consensus_fields",
		Columns:      fieldColumns,
		ConflictKeys: []string{"run_id", "vessel_key", "field"},
	}, fieldRows(runID, records))
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: save run %s", runID)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, vessels = $2, updated_at = $3 WHERE id = $4`,
		string(RunStatusComplete), len(records), time.Now().UTC(), runID,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: update run")
	}
	if tag.RowsAffected() == 0 {
		return 0, eris.Wrapf(ErrRunNotFound, "postgres: update run %s", runID)
	}
	return n, nil
}

func (s *PostgresStore) ListRun(ctx context.Context, runID string) ([]record.Consensus, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT vessel_key, field, value, is_fishing FROM consensus_fields
		 WHERE run_id = $1 ORDER BY vessel_pos, field_pos`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list run")
	}
	defer rows.Close()

	var a assembler
	for rows.Next() {
		var key, field string
		var value *string
		var fishing *bool
		if err := rows.Scan(&key, &field, &value, &fishing); err != nil {
			return nil, eris.Wrap(err, "postgres: scan field")
		}
		a.add(key, field, value, fishing)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: list run rows")
	}
	return a.out, nil
}
