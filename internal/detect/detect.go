// Package detect chooses the language frontend for a source file.
package detect

import (
	"fmt"

	"github.com/src-d/enry/v2"

	"github.com/unbound-force/branchstub/internal/config"
	"github.com/unbound-force/branchstub/internal/lang"
	"github.com/unbound-force/branchstub/internal/lang/golang"
	"github.com/unbound-force/branchstub/internal/lang/typescript"
)

// Registry maps enry language names to frontends.
type Registry struct {
	frontends map[string]lang.Frontend
	fixed     lang.Frontend
}

// New returns a registry for the configured language. "auto" detects
// the language of every file by extension; any other value pins one
// frontend for all files.
func New(language string) (*Registry, error) {
	r := &Registry{frontends: map[string]lang.Frontend{}}
	for _, f := range []lang.Frontend{golang.New(), typescript.New()} {
		r.frontends[f.Name()] = f
	}

	switch language {
	case "", config.LanguageAuto:
	case config.LanguageGo:
		r.fixed = r.frontends["Go"]
	case config.LanguageTypeScript:
		r.fixed = r.frontends["TypeScript"]
	default:
		return nil, fmt.Errorf("unsupported language %q", language)
	}
	return r, nil
}

// For returns the frontend that handles path, or false when the file
// is not a source file of a supported language.
func (r *Registry) For(path string) (lang.Frontend, bool) {
	f := r.fixed
	if f == nil {
		// ".ts" is ambiguous (TypeScript or Qt XML); take the first
		// candidate a frontend exists for.
		for _, name := range enry.GetLanguagesByExtension(path, nil, nil) {
			if cand, ok := r.frontends[name]; ok {
				f = cand
				break
			}
		}
		if f == nil {
			return nil, false
		}
	}
	if !f.Accepts(path) {
		return nil, false
	}
	return f, true
}

// Accept reports whether some frontend handles path. It has the shape
// finder.Options.Accept expects.
func (r *Registry) Accept(path string) bool {
	_, ok := r.For(path)
	return ok
}
