// Package report provides output formatters for branchstub runs in
// JSON and human-readable text formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/branchstub/internal/generate"
)

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version string                `json:"version"`
	DryRun  bool                  `json:"dry_run"`
	Files   []generate.FileResult `json:"files"`
	Stats   generate.Stats        `json:"stats"`
}

// WriteJSON writes the run report as formatted JSON to the writer.
func WriteJSON(w io.Writer, rpt *generate.Report, version string) error {
	if rpt == nil {
		rpt = &generate.Report{}
	}
	files := rpt.Files
	if files == nil {
		files = []generate.FileResult{}
	}
	if version == "" {
		version = "dev"
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(JSONReport{
		Version: version,
		DryRun:  rpt.Dry,
		Files:   files,
		Stats:   rpt.Stats,
	})
}
