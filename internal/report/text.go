package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/unbound-force/branchstub/internal/config"
	"github.com/unbound-force/branchstub/internal/generate"
)

// WriteBanner writes the effective configuration of a run.
func WriteBanner(w io.Writer, cfg *config.Config, version string) {
	s := DefaultStyles()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	fmt.Fprintln(w, s.Header.Render("branchstub "+version))
	rows := [][2]string{
		{"root", cfg.Root},
		{"language", cfg.Language},
		{"include private", strconv.FormatBool(cfg.IncludePrivate)},
		{"include protected", strconv.FormatBool(cfg.IncludeProtected)},
		{"verbose", strconv.FormatBool(cfg.Verbose)},
	}
	if len(cfg.Exclude) > 0 {
		rows = append(rows, [2]string{"exclude", strings.Join(cfg.Exclude, ", ")})
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s%s\n", s.SummaryLabel.Render(r[0]), r[1])
	}
	fmt.Fprintln(w)
}

// WriteText writes the run report as human-readable styled text.
// Output uses lipgloss for color and formatting when the output is a
// TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, rpt *generate.Report) error {
	s := DefaultStyles()
	if rpt == nil {
		rpt = &generate.Report{}
	}

	verb, done := "appended", "written"
	if rpt.Dry {
		verb, done = "would append", "planned"
	}

	for _, f := range rpt.Files {
		if !f.Written {
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n",
			s.Written.Render(verb),
			f.TestPath,
			s.Muted.Render(fmt.Sprintf("(%s)", f.Path)))
	}
	if len(rpt.Files) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, statsTable(rpt.Stats, s))

	st := rpt.Stats
	fmt.Fprintf(w, "\n%s\n", s.Header.Render(fmt.Sprintf(
		"%d test(s) %s to %d file(s), %s in %s",
		st.Rendered.Tests, done,
		st.FilesWritten, humanize.Bytes(uint64(st.BytesAppended)),
		st.Duration.Round(time.Millisecond))))

	return nil
}

// statsTable lays the counters out as a three-column table.
func statsTable(st generate.Stats, s Styles) string {
	type row struct {
		group, label string
		value        int
		skip         bool
	}
	rows := []row{
		{"files", "read", st.FilesRead, false},
		{"files", "written", st.FilesWritten, false},
		{"declarations", "methods", st.Methods, false},
		{"declarations", "functions", st.Functions, false},
		{"declarations", "lambdas", st.Lambdas, false},
		{"declarations", "ignored lambdas", st.IgnoredLambdas, false},
		{"branches", "then", st.Branches.Then, false},
		{"branches", "else", st.Branches.Else, false},
		{"branches", "else if", st.Branches.ElseIf, false},
		{"branches", "implicit else", st.Branches.ImplicitElse, false},
		{"branches", "sanitized", st.Sanitized, false},
		{"stubs", "functions", st.Rendered.Functions, false},
		{"stubs", "tests", st.Rendered.Tests, false},
		{"skipped", "already tested", st.Rendered.SkippedTested, true},
		{"skipped", "private", st.Rendered.SkippedPrivate, true},
		{"skipped", "protected", st.Rendered.SkippedProtected, true},
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.group, r.label, humanize.Comma(int64(r.value))})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == table.HeaderRow {
				return s.TableHeader
			}
			if col == 2 && r >= 0 && r < len(rows) {
				if rows[r].skip && rows[r].value > 0 {
					return s.Skipped
				}
				return s.Count
			}
			return s.TableCell
		}).
		Headers("GROUP", "COUNTER", "VALUE").
		Rows(cells...).
		String()
}
