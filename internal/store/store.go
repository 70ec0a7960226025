// Package store persists the pipeline run manifest: one structured row
// per stage invocation, queryable after the fact. The printed summary
// lines stay the human interface; the manifest is the machine one.
package store

import (
	"context"
	"time"
)

// StageRun is one recorded stage invocation.
type StageRun struct {
	ID         string    `json:"id"`
	Stage      string    `json:"stage"`
	InputPath  string    `json:"input_path"`
	OutputPath string    `json:"output_path"`
	RecordsIn  int       `json:"records_in"`
	RecordsOut int       `json:"records_out"`
	InputFound bool      `json:"input_found"`
	RanAt      time.Time `json:"ran_at"`
}

// Filter narrows ListStageRuns results.
type Filter struct {
	Stage string
	Limit int
}

// Store defines persistence for the run manifest.
type Store interface {
	RecordStageRun(ctx context.Context, run StageRun) error
	ListStageRuns(ctx context.Context, filter Filter) ([]StageRun, error)
	Migrate(ctx context.Context) error
	Close() error
}
