package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store needs; pgxmock
// implements it for tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS stage_runs (
	id          UUID PRIMARY KEY,
	stage       TEXT NOT NULL,
	input_path  TEXT NOT NULL,
	output_path TEXT NOT NULL,
	records_in  INTEGER NOT NULL,
	records_out INTEGER NOT NULL,
	input_found BOOLEAN NOT NULL,
	ran_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stage_runs_stage ON stage_runs(stage);
CREATE INDEX IF NOT EXISTS idx_stage_runs_ran_at ON stage_runs(ran_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// RecordStageRun inserts one manifest row, assigning an id when absent.
func (s *PostgresStore) RecordStageRun(ctx context.Context, run StageRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.RanAt.IsZero() {
		run.RanAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO stage_runs (id, stage, input_path, output_path, records_in, records_out, input_found, ran_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.Stage, run.InputPath, run.OutputPath,
		run.RecordsIn, run.RecordsOut, run.InputFound, run.RanAt,
	)
	return eris.Wrapf(err, "postgres: insert stage run %s", run.Stage)
}

// ListStageRuns returns manifest rows, newest first.
func (s *PostgresStore) ListStageRuns(ctx context.Context, filter Filter) ([]StageRun, error) {
	query := `SELECT id, stage, input_path, output_path, records_in, records_out, input_found, ran_at
	          FROM stage_runs`
	var args []any
	if filter.Stage != "" {
		args = append(args, filter.Stage)
		query += ` WHERE stage = $1`
	}
	query += ` ORDER BY ran_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		if filter.Stage != "" {
			query += ` LIMIT $2`
		} else {
			query += ` LIMIT $1`
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list stage runs")
	}
	defer rows.Close()

	var runs []StageRun
	for rows.Next() {
		var r StageRun
		if err := rows.Scan(&r.ID, &r.Stage, &r.InputPath, &r.OutputPath,
			&r.RecordsIn, &r.RecordsOut, &r.InputFound, &r.RanAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan stage run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate stage runs")
}
