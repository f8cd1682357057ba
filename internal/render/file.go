package render

import (
	"strings"

	"github.com/unbound-force/branchstub/internal/branch"
)

// Options controls which functions of a file are rendered.
type Options struct {
	// IncludePrivate renders private functions.
	IncludePrivate bool

	// IncludeProtected renders protected functions.
	IncludeProtected bool

	// PendingBody is placed inside every pending test.
	PendingBody string
}

// Counts reports what File rendered and what it skipped.
type Counts struct {
	Functions        int `json:"functions"`
	Tests            int `json:"tests"`
	SkippedTested    int `json:"skipped_tested"`
	SkippedPrivate   int `json:"skipped_private"`
	SkippedProtected int `json:"skipped_protected"`
}

// Add accumulates o into c.
func (c *Counts) Add(o Counts) {
	c.Functions += o.Functions
	c.Tests += o.Tests
	c.SkippedTested += o.SkippedTested
	c.SkippedPrivate += o.SkippedPrivate
	c.SkippedProtected += o.SkippedProtected
}

// Skip reports why fn would not be rendered under opts, or "" when it
// would be. Already-tested functions are skipped first, then private
// and protected ones unless opted in.
func Skip(fn branch.Func, opts Options) string {
	switch {
	case fn.AlreadyTested:
		return "tested"
	case fn.Visibility == branch.Private && !opts.IncludePrivate:
		return "private"
	case fn.Visibility == branch.Protected && !opts.IncludeProtected:
		return "protected"
	default:
		return ""
	}
}

// Reasons reports, per element of fns, why File leaves it out, or ""
// when File renders it. A name rendered earlier in the same slice counts
// as already tested, so one file never receives two groups for the same
// name.
func Reasons(fns []branch.Func, opts Options) []string {
	out := make([]string, len(fns))
	seen := make(map[string]bool)
	for i, fn := range fns {
		key := strings.ToLower(fn.Name)
		if seen[key] {
			fn.AlreadyTested = true
		}
		out[i] = Skip(fn, opts)
		if out[i] == "" {
			seen[key] = true
		}
	}
	return out
}

// File renders every function of fns that survives the filters and
// concatenates the blocks in order. Functions are left out for the
// reasons given by Reasons.
func File(fns []branch.Func, d Dialect, opts Options) (string, Counts) {
	var (
		sb     strings.Builder
		counts Counts
	)

	for i, reason := range Reasons(fns, opts) {
		switch reason {
		case "tested":
			counts.SkippedTested++
			continue
		case "private":
			counts.SkippedPrivate++
			continue
		case "protected":
			counts.SkippedProtected++
			continue
		}

		fn := fns[i]
		sb.WriteString(Function(fn, d, opts.PendingBody))
		counts.Functions++
		counts.Tests += pendingTests(fn.Forest)
	}

	return sb.String(), counts
}

// pendingTests is the number of placeholder tests Function emits.
func pendingTests(f branch.Forest) int {
	if len(f) == 0 {
		return 1
	}
	return f.LeafCount()
}
