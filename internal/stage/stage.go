// Package stage implements the shared pipeline stage contract: every
// enrichment stage reads a line-delimited record stream from a
// well-known path, writes the transformed stream to the next well-known
// path, and reports a summary count.
package stage

import (
	"encoding/json"
	"path/filepath"
)

// Transform rewrites a full batch of records. A nil Transform means the
// stage is a pass-through and its output is byte-identical to its
// input. Transforms see the whole batch so that merge-capable stages
// can compare records.
type Transform func(records []json.RawMessage) ([]json.RawMessage, error)

// Stage describes one step of the enrichment pipeline.
type Stage struct {
	Name       string
	InputPath  string
	OutputPath string
	Transform  Transform
	// AllowsDrops marks the stage as merge-capable. All other stages
	// must preserve record count 1:1.
	AllowsDrops bool
}

// Well-known stage file names under the pipeline tmp dir. The paths
// are part of the process-wide pipeline contract.
const (
	FileDiscoveredRaw       = "discovered_raw.jsonl"
	FileNormalized          = "normalized.jsonl"
	FileMerged              = "merged.jsonl"
	FileHydrated            = "hydrated.jsonl"
	FileGeocoded            = "geocoded.jsonl"
	FileCuisineMapped       = "cuisine_mapped.jsonl"
	FileHoursParsed         = "hours_parsed.jsonl"
	FilePriceMapped         = "price_mapped.jsonl"
	FileBadgesResolved      = "badges_resolved.jsonl"
	FileAboutGenerated      = "about_generated.jsonl"
	FileFAQsGenerated       = "faqs_generated.jsonl"
	FileSentimentSummarized = "sentiment_summarized.jsonl"
)

// Pipeline returns the ordered enrichment stages downstream of the
// normalizer. Only dedupe_merge carries real logic today; the rest are
// registered pass-throughs waiting for real implementations, which
// drop in by supplying a Transform.
func Pipeline(tmpDir string, proximityDegrees float64) []Stage {
	p := func(name string) string { return filepath.Join(tmpDir, name) }
	return []Stage{
		{
			Name:        "dedupe_merge",
			InputPath:   p(FileNormalized),
			OutputPath:  p(FileMerged),
			Transform:   DedupeMerge(proximityDegrees),
			AllowsDrops: true,
		},
		{Name: "hydrate", InputPath: p(FileMerged), OutputPath: p(FileHydrated)},
		{Name: "geocode", InputPath: p(FileHydrated), OutputPath: p(FileGeocoded)},
		{Name: "cuisine_map", InputPath: p(FileGeocoded), OutputPath: p(FileCuisineMapped)},
		{Name: "hours_parse", InputPath: p(FileCuisineMapped), OutputPath: p(FileHoursParsed)},
		{Name: "price_map", InputPath: p(FileHoursParsed), OutputPath: p(FilePriceMapped)},
		{Name: "badges_resolve", InputPath: p(FilePriceMapped), OutputPath: p(FileBadgesResolved)},
		{Name: "about_generate", InputPath: p(FileBadgesResolved), OutputPath: p(FileAboutGenerated)},
		{Name: "faqs_generate", InputPath: p(FileAboutGenerated), OutputPath: p(FileFAQsGenerated)},
		{Name: "sentiment_summarize", InputPath: p(FileFAQsGenerated), OutputPath: p(FileSentimentSummarized)},
	}
}

// Find returns the stage with the given name from the pipeline.
func Find(stages []Stage, name string) (Stage, bool) {
	for _, st := range stages {
		if st.Name == name {
			return st, true
		}
	}
	return Stage{}, false
}
