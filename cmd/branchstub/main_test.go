package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unbound-force/branchstub/internal/config"
)

const absSource = `package calc

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x int) int {
	if x > 10 {
		return 10
	}
	return x
}
`

const absWant = `package calc

import "testing"

func TestAbs(t *testing.T) {
	t.Run("when (x < 0)", func(t *testing.T) {
		t.Skip("should be implemented")
	})

	t.Run("when (!(x < 0))", func(t *testing.T) {
		t.Skip("should be implemented")
	})
}
`

// writeProject creates a directory holding calc.go and returns it.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "calc.go"), []byte(absSource), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// runGenerate tests
// ---------------------------------------------------------------------------

func TestRunGenerate_InvalidFormat(t *testing.T) {
	err := runGenerate(generateParams{
		root:   t.TempDir(),
		format: "yaml",
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if !strings.Contains(err.Error(), `invalid format "yaml"`) {
		t.Errorf("unexpected error message: %s", err)
	}
}

func TestRunGenerate_InvalidLanguage(t *testing.T) {
	err := runGenerate(generateParams{
		root:     t.TempDir(),
		format:   "text",
		language: stringPtr("cobol"),
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected error for invalid language")
	}
	if !strings.Contains(err.Error(), `invalid language "cobol"`) {
		t.Errorf("unexpected error message: %s", err)
	}
}

func TestRunGenerate_TextFormat(t *testing.T) {
	dir := writeProject(t)

	var stdout, stderr bytes.Buffer
	err := runGenerate(generateParams{
		root:   dir,
		format: "text",
		stdout: &stdout,
		stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, filepath.Join(dir, "calc_test.go"))
	if got != absWant {
		t.Errorf("companion mismatch\n--- got ---\n%s\n--- want ---\n%s", got, absWant)
	}

	out := stdout.String()
	if !strings.Contains(out, "branchstub dev") {
		t.Errorf("expected banner in output, got:\n%s", out)
	}
	if !strings.Contains(out, "calc_test.go") {
		t.Errorf("expected written file in output, got:\n%s", out)
	}
}

// TestRunGenerate_SecondRunIsNoop verifies the companion is unchanged
// once every function has a test group.
func TestRunGenerate_SecondRunIsNoop(t *testing.T) {
	dir := writeProject(t)
	p := generateParams{root: dir, format: "text", stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}

	if err := runGenerate(p); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := readFile(t, filepath.Join(dir, "calc_test.go"))

	if err := runGenerate(p); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second := readFile(t, filepath.Join(dir, "calc_test.go")); second != first {
		t.Errorf("second run changed the companion:\n%s", second)
	}
}

func TestRunGenerate_JSONFormat(t *testing.T) {
	dir := writeProject(t)

	var stdout bytes.Buffer
	err := runGenerate(generateParams{
		root:   dir,
		format: "json",
		stdout: &stdout,
		stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput:\n%s", err, stdout.String())
	}
	files, ok := parsed["files"].([]interface{})
	if !ok || len(files) != 1 {
		t.Fatalf("expected 1 file in JSON output, got %v", parsed["files"])
	}
	if _, ok := parsed["stats"]; !ok {
		t.Error("JSON output missing 'stats' key")
	}
}

func TestRunGenerate_DryRun(t *testing.T) {
	dir := writeProject(t)

	var stdout bytes.Buffer
	err := runGenerate(generateParams{
		root:   dir,
		format: "text",
		dryRun: true,
		stdout: &stdout,
		stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "calc_test.go")); !os.IsNotExist(err) {
		t.Errorf("dry run must not create the companion, stat err: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "+func TestAbs(t *testing.T) {") {
		t.Errorf("expected diff of the pending change, got:\n%s", out)
	}
	if !strings.Contains(out, "would append") {
		t.Errorf("expected dry-run wording, got:\n%s", out)
	}
}

func TestRunGenerate_IncludePrivateFlag(t *testing.T) {
	dir := writeProject(t)

	err := runGenerate(generateParams{
		root:           dir,
		format:         "text",
		includePrivate: boolPtr(true),
		stdout:         &bytes.Buffer{},
		stderr:         &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, filepath.Join(dir, "calc_test.go"))
	if !strings.Contains(got, "func Test_clamp(t *testing.T) {") {
		t.Errorf("expected private function stub, got:\n%s", got)
	}
}

// TestRunGenerate_ConfigFile verifies settings come from the root's
// config file and that flags override them.
func TestRunGenerate_ConfigFile(t *testing.T) {
	dir := writeProject(t)
	cfgBody := "include_private: true\npending_body: \"// TODO: write me\"\n"
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(cfgBody), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runGenerate(generateParams{
		root:   dir,
		format: "text",
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, filepath.Join(dir, "calc_test.go"))
	if !strings.Contains(got, "Test_clamp") {
		t.Errorf("config include_private not applied:\n%s", got)
	}
	if !strings.Contains(got, "\t\t// TODO: write me\n") {
		t.Errorf("config pending_body not applied:\n%s", got)
	}
}

func TestRunGenerate_ConfigOverride(t *testing.T) {
	dir := writeProject(t)
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("include_private: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runGenerate(generateParams{
		root:           dir,
		format:         "text",
		includePrivate: boolPtr(false),
		stdout:         &bytes.Buffer{},
		stderr:         &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, filepath.Join(dir, "calc_test.go"))
	if strings.Contains(got, "Test_clamp") {
		t.Errorf("flag should override include_private:\n%s", got)
	}
}

func TestRunGenerate_ExplicitConfig(t *testing.T) {
	dir := writeProject(t)
	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(cfgPath, []byte("include_private: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runGenerate(generateParams{
		root:       dir,
		configPath: cfgPath,
		format:     "text",
		stdout:     &bytes.Buffer{},
		stderr:     &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "calc_test.go")); !strings.Contains(got, "Test_clamp") {
		t.Errorf("explicit config not applied:\n%s", got)
	}
}

func TestRunGenerate_MalformedSourceFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.go"), []byte("package bad\nfunc ("), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runGenerate(generateParams{
		root:   dir,
		format: "text",
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected error for malformed source")
	}
	if !strings.Contains(err.Error(), "bad.go") {
		t.Errorf("error should name the file, got: %s", err)
	}
}

func TestRunGenerate_Packages(t *testing.T) {
	dir := writeProject(t)
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/calc\n\ngo 1.21\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runGenerate(generateParams{
		root:     dir,
		format:   "text",
		packages: []string{"./..."},
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "calc_test.go")); got != absWant {
		t.Errorf("companion mismatch\n--- got ---\n%s", got)
	}
}

// ---------------------------------------------------------------------------
// command wiring tests
// ---------------------------------------------------------------------------

func TestInitCmd_WritesConfig(t *testing.T) {
	dir := t.TempDir()

	cmd := newInitCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err != nil {
		t.Errorf("expected %s to be created: %v", config.FileName, err)
	}
	if !strings.Contains(out.String(), "created:") {
		t.Errorf("expected summary output, got:\n%s", out.String())
	}
}

func TestGenerateCmd_Flags(t *testing.T) {
	dir := writeProject(t)

	cmd := newGenerateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{dir, "--include-private", "--format", "json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "calc_test.go")); !strings.Contains(got, "Test_clamp") {
		t.Errorf("--include-private not applied:\n%s", got)
	}
	if !json.Valid(out.Bytes()) {
		t.Errorf("expected JSON output, got:\n%s", out.String())
	}
}

func TestSchemaCmd(t *testing.T) {
	cmd := newSchemaCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	if !json.Valid(out.Bytes()) {
		t.Errorf("schema output is not valid JSON:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "draft/2020-12") {
		t.Error("schema should declare draft 2020-12")
	}
}
