// Package render turns sanitized branch forests into nested test-group
// source text. Indentation is a direct encoding of tree depth: every
// nesting level adds one Dialect.Indent unit and nothing is left to an
// external formatter.
package render

import (
	"strings"

	"github.com/unbound-force/branchstub/internal/branch"
)

// PendingName is the title of every generated placeholder test.
const PendingName = "should be implemented"

// Dialect describes how one test framework spells test groups and
// pending tests. Every method returns single lines without leading
// indentation.
type Dialect interface {
	// Indent is one indentation unit.
	Indent() string

	// OpenFunction opens the outer group for a function.
	OpenFunction(name string) string

	// CloseFunction closes the group opened by OpenFunction.
	CloseFunction() string

	// OpenBranch opens a nested group for one condition.
	OpenBranch(condition string) string

	// CloseBranch closes the group opened by OpenBranch.
	CloseBranch() string

	// Pending returns the lines of a placeholder test. Body lines
	// are already indented relative to the placeholder.
	Pending(body []string) []string
}

// Function renders one function as a block of text. The block starts
// with a blank line and ends with a newline, so blocks concatenate
// cleanly onto existing file content. body is the configured text of
// each pending test; it may be empty.
func Function(fn branch.Func, d Dialect, body string) string {
	w := &writer{indent: d.Indent(), body: splitBody(body, d.Indent())}

	w.blank()
	w.line(0, d.OpenFunction(fn.Name))
	if len(fn.Forest) == 0 {
		w.pending(1, d)
	} else {
		w.branches(1, fn.Forest, d)
	}
	w.line(0, d.CloseFunction())

	return w.sb.String()
}

type writer struct {
	sb     strings.Builder
	indent string
	body   []string
}

func (w *writer) blank() {
	w.sb.WriteByte('\n')
}

func (w *writer) line(depth int, s string) {
	if s == "" {
		w.blank()
		return
	}
	w.sb.WriteString(strings.Repeat(w.indent, depth))
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *writer) pending(depth int, d Dialect) {
	for _, l := range d.Pending(w.body) {
		w.line(depth, l)
	}
}

// branches writes sibling groups separated by a blank line.
func (w *writer) branches(depth int, bs []branch.Branch, d Dialect) {
	for i, b := range bs {
		if i > 0 {
			w.blank()
		}
		w.line(depth, d.OpenBranch(b.Condition))
		if b.IsLeaf() {
			w.pending(depth+1, d)
		} else {
			w.branches(depth+1, b.Children, d)
		}
		w.line(depth, d.CloseBranch())
	}
}

// splitBody breaks the configured pending body into lines indented one
// unit, dropping leading and trailing blank lines.
func splitBody(body, indent string) []string {
	body = strings.Trim(body, "\n")
	if strings.TrimSpace(body) == "" {
		return nil
	}
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l != "" {
			l = indent + l
		}
		lines[i] = l
	}
	return lines
}
