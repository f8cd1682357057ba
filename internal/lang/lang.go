// Package lang defines the contract between the language-independent
// pipeline and the per-language frontends that parse source files,
// discover testable declarations and know the test-file conventions of
// their ecosystem.
package lang

import (
	"errors"

	"github.com/unbound-force/branchstub/internal/branch"
	"github.com/unbound-force/branchstub/internal/render"
	"github.com/unbound-force/branchstub/internal/syntax"
)

// ErrMalformed is wrapped by every Parse error caused by source text
// that is not valid syntax.
var ErrMalformed = errors.New("malformed source")

// Declaration is one function-like declaration found in a source file.
type Declaration struct {
	// Name is the identity used in test names; see branch.Func.Name.
	Name string

	// Kind is the declaration shape.
	Kind branch.Kind

	// Visibility is the access level.
	Visibility branch.Visibility

	// Line is the 1-based line of the declaration.
	Line int

	// Complexity is the cyclomatic complexity, or zero if unknown.
	Complexity int

	// Body is the function body, or nil for expression-bodied
	// lambdas and declarations without a body.
	Body syntax.Block
}

// Source is the result of parsing one file.
type Source struct {
	// Path is the file that was parsed.
	Path string

	// Package is the package or module name, when the language has
	// one. Used for test-file preambles.
	Package string

	// Declarations are the discovered declarations in document order.
	Declarations []Declaration

	// IgnoredLambdas counts lambdas not bound to a declaration.
	IgnoredLambdas int

	// Release frees parser resources backing the declaration bodies.
	// Nil when there is nothing to free.
	Release func()
}

// Close releases the parse tree. Declaration bodies must not be used
// afterwards. Close is safe to call more than once and on a nil Source.
func (s *Source) Close() {
	if s == nil || s.Release == nil {
		return
	}
	s.Release()
	s.Release = nil
}

// Frontend is implemented by each supported language.
type Frontend interface {
	// Name is the language name as reported by enry ("Go",
	// "TypeScript").
	Name() string

	// Accepts reports whether path is a source file this frontend
	// generates tests for. Test files themselves are rejected.
	Accepts(path string) bool

	// Parse parses src and discovers its declarations. The caller
	// must Close the returned Source once it is done with the bodies.
	Parse(path string, src []byte) (*Source, error)

	// CompanionPath returns the test file that belongs to path.
	CompanionPath(path string) string

	// Tested reports whether testContent already holds a test group
	// for the named function.
	Tested(name, testContent string) bool

	// Preamble returns the text a new, empty test file starts with.
	Preamble(src *Source) string

	// Dialect returns the stub dialect; indent overrides the default
	// indentation unit when non-empty.
	Dialect(indent string) render.Dialect
}
