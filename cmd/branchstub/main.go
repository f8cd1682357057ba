package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/branchstub/internal/config"
	"github.com/unbound-force/branchstub/internal/finder"
	"github.com/unbound-force/branchstub/internal/generate"
	"github.com/unbound-force/branchstub/internal/loader"
	"github.com/unbound-force/branchstub/internal/render"
	"github.com/unbound-force/branchstub/internal/report"
	"github.com/unbound-force/branchstub/internal/scaffold"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "branchstub",
		Short: "branchstub: pending test stubs from conditional branches",
		Long: `branchstub scans source files, extracts the if / else-if / else
branch tree of every function, and appends nested pending test
groups for untested functions to each file's companion test file.`,
		Version: version,
	}

	root.AddCommand(newInitCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.FileName,
		Long: `Write a commented default configuration file into the given
directory (default: the current directory). An existing file is
kept unless --force is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			_, err := scaffold.Run(scaffold.Options{
				TargetDir: dir,
				Force:     force,
				Version:   version,
				Stdout:    cmd.OutOrStdout(),
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false,
		"overwrite an existing configuration file")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for branchstub generate output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of branchstub generate --format=json output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}

// generateParams holds the parsed flags for the generate command.
type generateParams struct {
	root       string
	configPath string
	format     string
	packages   []string
	dryRun     bool

	// Overrides applied on top of the loaded configuration; nil keeps
	// the configured value.
	language         *string
	includePrivate   *bool
	includeProtected *bool
	verbose          *bool

	interactive bool
	stdout      io.Writer
	stderr      io.Writer
}

// loadConfig resolves the configuration for a run: an explicit
// --config file, else the file in the root directory, else defaults.
// Flag overrides are applied last.
func loadConfig(p generateParams) (*config.Config, error) {
	root := p.root
	if root == "" {
		root = "."
	}

	var (
		cfg *config.Config
		err error
	)
	if p.configPath != "" {
		cfg, err = config.Load(p.configPath)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(cfg.Root) {
			cfg.Root = filepath.Join(filepath.Dir(p.configPath), cfg.Root)
		}
		if p.root != "" {
			cfg.Root = p.root
		}
	} else {
		var path string
		cfg, path, err = config.LoadDir(root)
		if err != nil {
			return nil, err
		}
		if path != "" {
			logger.Debug("loaded config", "path", path)
		}
	}

	if p.language != nil {
		cfg.Language = *p.language
	}
	if p.includePrivate != nil {
		cfg.IncludePrivate = *p.includePrivate
	}
	if p.includeProtected != nil {
		cfg.IncludeProtected = *p.includeProtected
	}
	if p.verbose != nil {
		cfg.Verbose = *p.verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sourceFiles lists the files of a run: the Go files of the given
// package patterns, or every accepted file under the root.
func sourceFiles(p generateParams, cfg *config.Config, g *generate.Generator) ([]string, error) {
	if len(p.packages) > 0 {
		files, err := loader.GoFiles(cfg.Root, p.packages...)
		if err != nil {
			return nil, err
		}
		accepted := files[:0]
		for _, f := range files {
			if g.Accept(f) {
				accepted = append(accepted, f)
			}
		}
		return accepted, nil
	}

	return finder.Find(cfg.Root, finder.Options{
		Accept:       g.Accept,
		Exclude:      cfg.Exclude,
		SkipVendored: cfg.SkipVendored,
	})
}

// runGenerate is the extracted, testable body of the generate command.
func runGenerate(p generateParams) error {
	if p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", p.format)
	}
	if p.stdout == nil {
		p.stdout = os.Stdout
	}
	if p.stderr == nil {
		p.stderr = os.Stderr
	}

	cfg, err := loadConfig(p)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}

	if p.format == "text" && !p.interactive {
		report.WriteBanner(p.stdout, cfg, version)
	}

	opts := generate.Options{
		Config: cfg,
		Logger: logger,
		DryRun: p.dryRun,
	}
	if p.dryRun && p.format == "text" && !p.interactive {
		opts.DiffOut = p.stdout
	}

	g, err := generate.New(opts)
	if err != nil {
		return err
	}

	files, err := sourceFiles(p, cfg, g)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("no source files found", "root", cfg.Root)
	}

	logger.Debug("generating stubs", "files", len(files), "dry_run", p.dryRun)
	rpt, err := g.Run(files)
	if err != nil {
		return err
	}

	logger.Info("generation complete",
		"files", len(rpt.Files),
		"written", rpt.Stats.FilesWritten)

	if p.interactive {
		return runInteractiveGenerate(rpt, render.Options{
			IncludePrivate:   cfg.IncludePrivate,
			IncludeProtected: cfg.IncludeProtected,
		})
	}

	switch p.format {
	case "json":
		return report.WriteJSON(p.stdout, rpt, version)
	default:
		return report.WriteText(p.stdout, rpt)
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		configPath       string
		format           string
		language         string
		packages         []string
		includePrivate   bool
		includeProtected bool
		verbose          bool
		dryRun           bool
		interactive      bool
	)

	cmd := &cobra.Command{
		Use:   "generate [root]",
		Short: "Append pending test stubs for untested functions",
		Long: `Scan the root directory (default: the configured root) for source
files and append pending test stubs, one nested group per branch,
to each file's companion test file. Existing test content is never
modified; a file is written only when stubs are added.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := generateParams{
				configPath:  configPath,
				format:      format,
				packages:    packages,
				dryRun:      dryRun,
				interactive: interactive,
				stdout:      cmd.OutOrStdout(),
				stderr:      cmd.ErrOrStderr(),
			}
			if len(args) == 1 {
				p.root = args[0]
			}

			flags := cmd.Flags()
			if flags.Changed("language") {
				p.language = &language
			}
			if flags.Changed("include-private") {
				p.includePrivate = &includePrivate
			}
			if flags.Changed("include-protected") {
				p.includeProtected = &includeProtected
			}
			if flags.Changed("verbose") {
				p.verbose = &verbose
			}
			return runGenerate(p)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "",
		"path to the configuration file (default: <root>/"+config.FileName+")")
	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text or json")
	cmd.Flags().StringVar(&language, "language", config.LanguageAuto,
		"frontend: auto, go or typescript")
	cmd.Flags().StringSliceVar(&packages, "packages", nil,
		"Go package patterns to process instead of walking the root")
	cmd.Flags().BoolVar(&includePrivate, "include-private", false,
		"generate stubs for private functions")
	cmd.Flags().BoolVar(&includeProtected, "include-protected", false,
		"generate stubs for protected functions")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log debug output and sanitizer notices")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"print the changes as diffs without writing")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing results")

	return cmd
}
