package generate

import (
	"time"

	"github.com/unbound-force/branchstub/internal/extract"
	"github.com/unbound-force/branchstub/internal/render"
)

// Stats accumulates what a run did. Every File call returns its own
// Stats and Run merges them; nothing is shared between files.
type Stats struct {
	FilesRead    int `json:"files_read"`
	FilesWritten int `json:"files_written"`

	Methods        int `json:"methods"`
	Functions      int `json:"functions"`
	Lambdas        int `json:"lambdas"`
	IgnoredLambdas int `json:"ignored_lambdas"`

	Branches  extract.Counts `json:"branches"`
	Sanitized int            `json:"sanitized"`

	// Rendered holds the renderer's output and skip counts.
	Rendered render.Counts `json:"rendered"`

	BytesAppended int `json:"bytes_appended"`

	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration_ns"`
}

// Add accumulates o into s. Started keeps the earliest non-zero time;
// durations are summed.
func (s *Stats) Add(o Stats) {
	s.FilesRead += o.FilesRead
	s.FilesWritten += o.FilesWritten
	s.Methods += o.Methods
	s.Functions += o.Functions
	s.Lambdas += o.Lambdas
	s.IgnoredLambdas += o.IgnoredLambdas
	s.Branches.Add(o.Branches)
	s.Sanitized += o.Sanitized
	s.Rendered.Add(o.Rendered)
	s.BytesAppended += o.BytesAppended
	if s.Started.IsZero() || (!o.Started.IsZero() && o.Started.Before(s.Started)) {
		s.Started = o.Started
	}
	s.Duration += o.Duration
}
