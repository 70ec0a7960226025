package ingest

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/muscat-guide/places-cli/internal/model"
)

// StageDiscovery tags the provenance entry created at normalization.
const StageDiscovery = "discovery"

// Normalizer converts raw discovery records into canonical places.
type Normalizer struct {
	log *zap.Logger
}

// NewNormalizer returns a Normalizer logging through the global zap
// logger.
func NewNormalizer() *Normalizer {
	return &Normalizer{log: zap.L().Named("normalize")}
}

// Run reads raw discovery JSONL from inputPath and writes canonical
// place JSONL to outputPath. A missing input file is reported and
// treated as success with zero records, so the pipeline can be invoked
// piecemeal. A line that does not parse as a record fails the whole
// run; blank lines are skipped by the reader.
func (n *Normalizer) Run(inputPath, outputPath string) (in, out int, err error) {
	lines, found, err := ReadLines(inputPath)
	if err != nil {
		return 0, 0, err
	}
	if !found {
		n.log.Info("no input found", zap.String("path", inputPath))
		return 0, 0, nil
	}

	outLines := make([][]byte, 0, len(lines))
	for i, line := range lines {
		place, err := n.normalizeLine(line)
		if err != nil {
			return len(lines), 0, eris.Wrapf(err, "normalize: line %d", i+1)
		}
		encoded, err := json.Marshal(place)
		if err != nil {
			return len(lines), 0, eris.Wrapf(err, "normalize: encode line %d", i+1)
		}
		outLines = append(outLines, encoded)
	}

	if err := WriteLines(outputPath, outLines); err != nil {
		return len(lines), 0, err
	}
	return len(lines), len(outLines), nil
}

// normalizeLine builds exactly one canonical place from one raw line.
// IDs are random per run, so re-normalizing the same input yields
// different ids; replayability over ids is an open question upstream.
func (n *Normalizer) normalizeLine(line []byte) (*model.Place, error) {
	var raw model.RawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, eris.Wrap(err, "parse raw record")
	}

	// Field names present in the raw line feed the provenance entry.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(line, &keys); err != nil {
		return nil, eris.Wrap(err, "parse raw keys")
	}
	fields := make([]string, 0, len(keys))
	for k := range keys {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	name := ""
	if raw.Name != nil {
		name = strings.TrimSpace(*raw.Name)
	}

	neighborhood := ""
	if raw.Neighborhood != nil {
		neighborhood = *raw.Neighborhood
	}

	provider := "unknown"
	if raw.Provider != nil && *raw.Provider != "" {
		provider = *raw.Provider
	}

	prov := model.NewProvenance(provider, raw.PlaceID, fields)
	prov.Stage = StageDiscovery

	hours := raw.Hours
	if hours == nil {
		hours = map[string]string{}
	}

	categories := raw.Categories
	if categories == nil {
		categories = []string{}
	}

	lastUpdated := ""
	if raw.CollectedAt != nil {
		lastUpdated = *raw.CollectedAt
	}

	return &model.Place{
		ID:         uuid.New().String(),
		Slug:       model.Slugify(name, neighborhood),
		Name:       name,
		Categories: categories,
		Location: model.Location{
			Lat:          raw.Lat,
			Lng:          raw.Lng,
			Address:      raw.Address,
			Neighborhood: raw.Neighborhood,
		},
		Actions: model.Actions{
			Website: raw.Website,
			Phone:   raw.Phone,
			MapsURL: raw.MapsURL,
		},
		Hours:       hours,
		Provenance:  []model.Provenance{prov},
		LastUpdated: lastUpdated,
	}, nil
}
