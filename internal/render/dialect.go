package render

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Jasmine renders describe/xit blocks for Jasmine and Jest style
// TypeScript suites.
type Jasmine struct {
	// Unit overrides the two-space indentation unit when non-empty.
	Unit string
}

// Indent implements Dialect.
func (j Jasmine) Indent() string {
	if j.Unit != "" {
		return j.Unit
	}
	return "  "
}

// OpenFunction implements Dialect.
func (Jasmine) OpenFunction(name string) string {
	return "describe(`" + escapeTemplate(name) + "`, () => {"
}

// CloseFunction implements Dialect.
func (Jasmine) CloseFunction() string { return "});" }

// OpenBranch implements Dialect.
func (Jasmine) OpenBranch(condition string) string {
	return "describe(`when (" + escapeTemplate(condition) + ")`, () => {"
}

// CloseBranch implements Dialect.
func (Jasmine) CloseBranch() string { return "});" }

// Pending implements Dialect.
func (Jasmine) Pending(body []string) []string {
	lines := []string{"xit(`" + PendingName + "`, () => {"}
	lines = append(lines, body...)
	return append(lines, "});")
}

// escapeTemplate makes s safe inside a template literal.
func escapeTemplate(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return strings.ReplaceAll(s, "${", "\\${")
}

// GoTest renders go test functions with nested t.Run subtests; pending
// leaves call t.Skip.
type GoTest struct {
	// Unit overrides the tab indentation unit when non-empty.
	Unit string
}

// Indent implements Dialect.
func (g GoTest) Indent() string {
	if g.Unit != "" {
		return g.Unit
	}
	return "\t"
}

// OpenFunction implements Dialect.
func (GoTest) OpenFunction(name string) string {
	return "func " + TestFuncName(name) + "(t *testing.T) {"
}

// CloseFunction implements Dialect.
func (GoTest) CloseFunction() string { return "}" }

// OpenBranch implements Dialect.
func (GoTest) OpenBranch(condition string) string {
	return "t.Run(" + strconv.Quote("when ("+condition+")") + ", func(t *testing.T) {"
}

// CloseBranch implements Dialect.
func (GoTest) CloseBranch() string { return "})" }

// Pending implements Dialect. Body lines follow the skip call at the
// same depth, so the unit added by splitBody is removed again.
func (g GoTest) Pending(body []string) []string {
	lines := []string{"t.Skip(" + strconv.Quote(PendingName) + ")"}
	for _, l := range body {
		lines = append(lines, strings.TrimPrefix(l, g.Indent()))
	}
	return lines
}

// TestFuncName returns the go test function name for name: "Save"
// becomes "TestSave", "Store_Save" becomes "TestStore_Save" and
// "parse" becomes "Test_parse".
func TestFuncName(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return "Test" + name
	}
	return "Test_" + name
}
