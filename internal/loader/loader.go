// Package loader wraps go/packages to resolve Go package patterns to
// the source files that belong to them.
package loader

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode is the minimum set of flags needed to list package files.
const LoadMode = packages.NeedName | packages.NeedFiles

// GoFiles resolves patterns (such as "./...") relative to dir and
// returns the non-test Go files of every matched package, sorted and
// de-duplicated. Packages with list errors fail the whole call.
func GoFiles(dir string, patterns ...string) ([]string, error) {
	cfg := &packages.Config{
		Mode:  LoadMode,
		Dir:   dir,
		Tests: false,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages %q: %w", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for patterns %q", patterns)
	}

	var errs []string
	seen := make(map[string]bool)
	var files []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e.Error())
		}
		for _, f := range pkg.GoFiles {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("packages %q have errors:\n  %s",
			patterns, strings.Join(errs, "\n  "))
	}

	sort.Strings(files)
	return files, nil
}
