package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
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
CREATE TABLE IF NOT EXISTS stage_runs (
	id          TEXT PRIMARY KEY,
	stage       TEXT NOT NULL,
	input_path  TEXT NOT NULL,
	output_path TEXT NOT NULL,
	records_in  INTEGER NOT NULL,
	records_out INTEGER NOT NULL,
	input_found INTEGER NOT NULL,
	ran_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stage_runs_stage ON stage_runs(stage);
CREATE INDEX IF NOT EXISTS idx_stage_runs_ran_at ON stage_runs(ran_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordStageRun inserts one manifest row, assigning an id when absent.
func (s *SQLiteStore) RecordStageRun(ctx context.Context, run StageRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.RanAt.IsZero() {
		run.RanAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stage_runs (id, stage, input_path, output_path, records_in, records_out, input_found, ran_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Stage, run.InputPath, run.OutputPath,
		run.RecordsIn, run.RecordsOut, run.InputFound, run.RanAt,
	)
	return eris.Wrapf(err, "sqlite: insert stage run %s", run.Stage)
}

// ListStageRuns returns manifest rows, newest first.
func (s *SQLiteStore) ListStageRuns(ctx context.Context, filter Filter) ([]StageRun, error) {
	query := `SELECT id, stage, input_path, output_path, records_in, records_out, input_found, ran_at
	          FROM stage_runs`
	var args []any
	if filter.Stage != "" {
		query += ` WHERE stage = ?`
		args = append(args, filter.Stage)
	}
	query += ` ORDER BY ran_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list stage runs")
	}
	defer rows.Close()

	var runs []StageRun
	for rows.Next() {
		var r StageRun
		if err := rows.Scan(&r.ID, &r.Stage, &r.InputPath, &r.OutputPath,
			&r.RecordsIn, &r.RecordsOut, &r.InputFound, &r.RanAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan stage run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate stage runs")
}
