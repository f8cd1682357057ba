package generate

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// WriteDiff writes a line-oriented diff of a pending change to path:
// added lines are prefixed "+", removed lines "-" and unchanged lines
// are collapsed to a count.
func WriteDiff(w io.Writer, path, before, after string) error {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s\n", path, path); err != nil {
		return err
	}
	for _, d := range diffs {
		var err error
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			err = prefixLines(w, "+", d.Text)
		case diffmatchpatch.DiffDelete:
			err = prefixLines(w, "-", d.Text)
		case diffmatchpatch.DiffEqual:
			_, err = fmt.Fprintf(w, "  ... %d unchanged line(s)\n", countLines(d.Text))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func prefixLines(w io.Writer, prefix, text string) error {
	for _, l := range strings.SplitAfter(text, "\n") {
		if l == "" {
			continue
		}
		if _, err := fmt.Fprint(w, prefix+strings.TrimSuffix(l, "\n")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func countLines(text string) int {
	n := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
