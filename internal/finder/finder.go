// Package finder enumerates the source files of a directory tree.
package finder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// Options configures a Find invocation.
type Options struct {
	// Accept reports whether a file should be returned. Nil accepts
	// every file.
	Accept func(path string) bool

	// Exclude lists glob patterns matched against paths relative to
	// the root. See Match.
	Exclude []string

	// SkipVendored skips dependency directories: see VendorDirs.
	SkipVendored bool
}

// VendorDirs are the directory names holding third-party code.
var VendorDirs = []string{"vendor", "node_modules", "third_party", "bower_components"}

func vendored(name string) bool {
	return slices.Contains(VendorDirs, name)
}

// Find walks root and returns every accepted file, including those in
// subdirectories, in lexical order. Hidden directories are skipped.
// A missing root yields an error.
func Find(root string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if opts.SkipVendored && vendored(d.Name()) {
				return filepath.SkipDir
			}
			if excluded(rel, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if excluded(rel, opts.Exclude) {
			return nil
		}
		if opts.Accept != nil && !opts.Accept(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if Match(p, rel) {
			return true
		}
	}
	return false
}

// Match matches a slash-separated relative path against a glob
// pattern. "dir/**" matches dir and everything below it, and when dir
// is a single name it also matches below any directory of that name
// at any depth. Patterns
// without a slash also match against the base name, so "*.gen.go"
// excludes generated files at any depth.
func Match(pattern, rel string) bool {
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
		if strings.Contains(prefix, "/") {
			return false
		}
		for _, dir := range strings.Split(rel, "/") {
			if dir == prefix {
				return true
			}
		}
		return false
	}

	if matched, err := filepath.Match(pattern, rel); err == nil && matched {
		return true
	}

	if !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(rel))
		return err == nil && matched
	}
	return false
}
