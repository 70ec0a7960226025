package stage

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/muscat-guide/places-cli/internal/ingest"
)

// Result summarizes one stage invocation.
type Result struct {
	Stage      string
	RecordsIn  int
	RecordsOut int
	// InputFound is false when the upstream file did not exist and the
	// stage was skipped. That is not an error: it lets the pipeline be
	// invoked piecemeal without failing a build.
	InputFound bool
}

// Runner executes stages under the shared I/O contract. Each run reads
// the entire upstream file fresh, transforms it in memory, and only
// then replaces the output, so a stage failure never corrupts
// downstream files.
type Runner struct {
	log *zap.Logger
}

// NewRunner returns a Runner logging through the global zap logger.
func NewRunner() *Runner {
	return &Runner{log: zap.L().Named("stage")}
}

// Run executes a single stage: read, transform, write, report.
func (r *Runner) Run(st Stage) (Result, error) {
	res := Result{Stage: st.Name}

	lines, found, err := ingest.ReadLines(st.InputPath)
	if err != nil {
		return res, err
	}
	if !found {
		r.log.Info("no input found", zap.String("stage", st.Name), zap.String("path", st.InputPath))
		fmt.Printf("stage %s: no input found at %s\n", st.Name, st.InputPath)
		return res, nil
	}
	res.InputFound = true
	res.RecordsIn = len(lines)

	out := lines
	if st.Transform != nil {
		records := make([]json.RawMessage, len(lines))
		for i, line := range lines {
			records[i] = json.RawMessage(line)
		}
		transformed, err := st.Transform(records)
		if err != nil {
			return res, eris.Wrapf(err, "stage %s: transform", st.Name)
		}
		out = make([][]byte, len(transformed))
		for i, rec := range transformed {
			out[i] = []byte(rec)
		}
	}

	if st.AllowsDrops {
		if len(out) > len(lines) {
			return res, eris.Errorf("stage %s: produced %d records from %d inputs", st.Name, len(out), len(lines))
		}
	} else if len(out) != len(lines) {
		return res, eris.Errorf("stage %s: record count changed %d -> %d, only merge stages may drop records", st.Name, len(lines), len(out))
	}

	if err := ingest.WriteLines(st.OutputPath, out); err != nil {
		return res, err
	}
	res.RecordsOut = len(out)

	r.log.Info("stage complete",
		zap.String("stage", st.Name),
		zap.Int("records_in", res.RecordsIn),
		zap.Int("records_out", res.RecordsOut),
	)
	fmt.Printf("stage %s: %d in, %d out\n", st.Name, res.RecordsIn, res.RecordsOut)
	return res, nil
}
