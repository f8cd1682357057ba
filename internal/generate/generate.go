// Package generate runs the stub pipeline over source files: parse,
// extract and sanitize branch forests, render stubs, and append them to
// each file's companion test file.
//
// Processing is sequential. A parse, read or write failure aborts the
// run; there are no retries. A missing companion test file is an empty
// baseline, and a file is written only when its content would change.
package generate

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/unbound-force/branchstub/internal/branch"
	"github.com/unbound-force/branchstub/internal/config"
	"github.com/unbound-force/branchstub/internal/detect"
	"github.com/unbound-force/branchstub/internal/extract"
	"github.com/unbound-force/branchstub/internal/lang"
	"github.com/unbound-force/branchstub/internal/render"
)

// TestedFunc decides whether testContent already holds a test group for
// the named function.
type TestedFunc func(name, testContent string) bool

// Options configures a Generator.
type Options struct {
	// Config supplies filters, the pending body and verbosity. If nil,
	// config.DefaultConfig() is used.
	Config *config.Config

	// FS performs file access. Defaults to OSFileSystem.
	FS FileSystem

	// Logger receives progress and sanitizer notices. Defaults to a
	// logger that discards output.
	Logger *log.Logger

	// Tested overrides the frontend's already-tested check.
	Tested TestedFunc

	// DryRun computes every change without writing. Diffs of the
	// pending changes go to DiffOut when it is non-nil.
	DryRun  bool
	DiffOut io.Writer
}

// Generator runs the pipeline.
type Generator struct {
	cfg      *config.Config
	fs       FileSystem
	logger   *log.Logger
	tested   TestedFunc
	dryRun   bool
	diffOut  io.Writer
	registry *detect.Registry
}

// New returns a Generator for opts. It fails when the configured
// language has no frontend.
func New(opts Options) (*Generator, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.FS == nil {
		opts.FS = OSFileSystem{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	reg, err := detect.New(opts.Config.Language)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:      opts.Config,
		fs:       opts.FS,
		logger:   opts.Logger,
		tested:   opts.Tested,
		dryRun:   opts.DryRun,
		diffOut:  opts.DiffOut,
		registry: reg,
	}, nil
}

// Accept reports whether path is a source file the generator handles.
func (g *Generator) Accept(path string) bool {
	return g.registry.Accept(path)
}

// FileResult describes the outcome for one source file.
type FileResult struct {
	Path     string        `json:"path"`
	TestPath string        `json:"test_path"`
	Language string        `json:"language"`
	Funcs    []branch.Func `json:"functions"`

	// Appended is the text added to the test file, preamble included.
	Appended string `json:"appended,omitempty"`

	// Written is set when the test file changed (or would have, in a
	// dry run).
	Written bool `json:"written"`

	Stats Stats `json:"-"`
}

// Report is the outcome of a whole run.
type Report struct {
	Files []FileResult `json:"files"`
	Stats Stats        `json:"stats"`
	Dry   bool         `json:"dry_run"`
}

// Run processes paths in order and stops at the first error.
func (g *Generator) Run(paths []string) (*Report, error) {
	start := time.Now()
	rpt := &Report{Dry: g.dryRun}

	for _, p := range paths {
		res, err := g.File(p)
		if err != nil {
			return nil, err
		}
		rpt.Stats.Add(res.Stats)
		rpt.Files = append(rpt.Files, *res)
	}

	rpt.Stats.Started = start
	rpt.Stats.Duration = time.Since(start)
	return rpt, nil
}

// File processes one source file.
func (g *Generator) File(path string) (*FileResult, error) {
	start := time.Now()

	fe, ok := g.registry.For(path)
	if !ok {
		return nil, fmt.Errorf("no frontend for %s", path)
	}

	res := &FileResult{
		Path:     path,
		TestPath: fe.CompanionPath(path),
		Language: fe.Name(),
	}
	st := &res.Stats
	st.Started = start
	defer func() { st.Duration = time.Since(start) }()

	src, err := g.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	st.FilesRead++

	testContent, err := g.readCompanion(res.TestPath)
	if err != nil {
		return nil, err
	}

	parsed, err := fe.Parse(path, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer parsed.Close()
	st.IgnoredLambdas += parsed.IgnoredLambdas

	tested := g.tested
	if tested == nil {
		tested = fe.Tested
	}

	for _, d := range parsed.Declarations {
		res.Funcs = append(res.Funcs, g.record(d, testContent, tested, st))
	}

	if len(res.Funcs) == 0 {
		g.logger.Debug("no testable functions", "file", path)
		return res, nil
	}

	text, counts := render.File(res.Funcs, fe.Dialect(g.cfg.Indent), g.renderOptions())
	st.Rendered.Add(counts)
	if text == "" {
		return res, nil
	}

	if strings.TrimSpace(testContent) == "" {
		text = fe.Preamble(parsed) + text
	}
	res.Appended = text
	st.BytesAppended += len(text)

	updated := testContent + text
	if updated == testContent {
		return res, nil
	}

	if err := g.write(res.TestPath, testContent, updated); err != nil {
		return nil, err
	}
	res.Written = true
	st.FilesWritten++

	g.logger.Info("appended stubs",
		"file", res.TestPath,
		"functions", counts.Functions,
		"tests", counts.Tests)
	return res, nil
}

// record builds the Func for one declaration. Branch extraction is
// skipped for functions the visibility filter excludes.
func (g *Generator) record(d lang.Declaration, testContent string, tested TestedFunc, st *Stats) branch.Func {
	switch d.Kind {
	case branch.Method:
		st.Methods++
	case branch.Lambda:
		st.Lambdas++
	default:
		st.Functions++
	}

	fn := branch.Func{
		Name:          d.Name,
		Kind:          d.Kind,
		Visibility:    d.Visibility,
		Line:          d.Line,
		Complexity:    d.Complexity,
		AlreadyTested: tested(d.Name, testContent),
	}

	if reason := render.Skip(fn, g.renderOptions()); reason == "private" || reason == "protected" {
		return fn
	}

	forest := extract.Forest(d.Body, &st.Branches)
	fn.Forest = branch.SanitizeForest(forest, func(cond string) {
		st.Sanitized++
		if g.cfg.Verbose {
			g.logger.Warn("sanitized duplicated condition", "function", d.Name, "condition", cond)
		}
	})
	return fn
}

func (g *Generator) renderOptions() render.Options {
	return render.Options{
		IncludePrivate:   g.cfg.IncludePrivate,
		IncludeProtected: g.cfg.IncludeProtected,
		PendingBody:      g.cfg.PendingBody,
	}
}

// readCompanion returns the current test file content, or "" when the
// file does not exist yet.
func (g *Generator) readCompanion(path string) (string, error) {
	exists, err := g.fs.Exists(path)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if !exists {
		return "", nil
	}
	data, err := g.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func (g *Generator) write(path, before, after string) error {
	if g.dryRun {
		if g.diffOut != nil {
			return WriteDiff(g.diffOut, path, before, after)
		}
		return nil
	}
	if err := g.fs.WriteFile(path, []byte(after)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
