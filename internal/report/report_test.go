package report

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/unbound-force/branchstub/internal/branch"
	"github.com/unbound-force/branchstub/internal/config"
	"github.com/unbound-force/branchstub/internal/extract"
	"github.com/unbound-force/branchstub/internal/generate"
	"github.com/unbound-force/branchstub/internal/render"
)

func sampleReport() *generate.Report {
	return &generate.Report{
		Files: []generate.FileResult{
			{
				Path:     "src/store.ts",
				TestPath: "src/store.spec.ts",
				Language: "TypeScript",
				Funcs: []branch.Func{
					{
						Name:       "save",
						Kind:       branch.Method,
						Visibility: branch.Public,
						Line:       12,
						Forest: branch.Forest{
							{Condition: "item.id", Children: []branch.Branch{
								{Condition: "this.cache"},
								{Condition: "!(this.cache)"},
							}},
							{Condition: "!(item.id)"},
						},
					},
					{
						Name:          "load",
						Kind:          branch.Lambda,
						Visibility:    branch.Private,
						Line:          30,
						AlreadyTested: true,
					},
				},
				Appended: "\ndescribe(`save`, () => {\n});\n",
				Written:  true,
			},
			{
				Path:     "src/empty.ts",
				TestPath: "src/empty.spec.ts",
				Language: "TypeScript",
			},
		},
		Stats: generate.Stats{
			FilesRead:    2,
			FilesWritten: 1,
			Methods:      1,
			Lambdas:      1,
			Branches:     extract.Counts{Then: 2, ImplicitElse: 2},
			Rendered: render.Counts{
				Functions:     1,
				Tests:         3,
				SkippedTested: 1,
			},
			BytesAppended: 1536,
			Started:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Duration:      42 * time.Millisecond,
		},
	}
}

func TestWriteJSON_ValidJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport(), "0.1.0"); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput:\n%s", err, buf.String())
	}
}

func TestWriteJSON_HasVersionAndFiles(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport(), "0.1.0"); err != nil {
		t.Fatal(err)
	}

	var rpt JSONReport
	if err := json.Unmarshal(buf.Bytes(), &rpt); err != nil {
		t.Fatal(err)
	}
	if rpt.Version != "0.1.0" {
		t.Errorf("expected version 0.1.0, got %q", rpt.Version)
	}
	if len(rpt.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(rpt.Files))
	}
	if got := rpt.Files[0].Funcs[0].Forest.LeafCount(); got != 3 {
		t.Errorf("expected forest to survive the round trip with 3 leaves, got %d", got)
	}
}

func TestWriteJSON_NilReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"files": []`) {
		t.Errorf("expected empty files array, got:\n%s", out)
	}
	if !strings.Contains(out, `"version": "dev"`) {
		t.Errorf("expected dev version, got:\n%s", out)
	}
}

func TestWriteJSON_ContainsAllFields(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport(), "0.1.0"); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	requiredFields := []string{
		`"version"`, `"dry_run"`, `"files"`, `"stats"`,
		`"test_path"`, `"functions"`, `"forest"`, `"condition"`,
		`"children"`, `"visibility"`, `"already_tested"`,
		`"implicit_else"`, `"skipped_tested"`,
	}
	for _, field := range requiredFields {
		if !strings.Contains(output, field) {
			t.Errorf("JSON output missing field %s", field)
		}
	}
}

func TestSchema_ValidatesOutput(t *testing.T) {
	sch, err := jsonschema.UnmarshalJSON(strings.NewReader(Schema))
	if err != nil {
		t.Fatalf("failed to parse schema JSON: %v", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", sch); err != nil {
		t.Fatalf("failed to add schema resource: %v", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		t.Fatalf("failed to compile schema: %v", err)
	}

	for name, rpt := range map[string]*generate.Report{
		"sample": sampleReport(),
		"empty":  nil,
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteJSON(&buf, rpt, "0.1.0"); err != nil {
				t.Fatalf("WriteJSON failed: %v", err)
			}
			inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("failed to parse JSON output: %v", err)
			}
			if err := compiled.Validate(inst); err != nil {
				t.Errorf("JSON output does not conform to schema:\n%v", err)
			}
		})
	}
}

// ansiRe strips ANSI escape sequences so assertions see plain text.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestWriteText_ListsWrittenFiles(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}

	out := stripANSI(buf.String())
	if !strings.Contains(out, "appended src/store.spec.ts") {
		t.Errorf("expected written file to be listed, got:\n%s", out)
	}
	if strings.Contains(out, "src/empty.spec.ts") {
		t.Errorf("unwritten file should not be listed, got:\n%s", out)
	}
}

func TestWriteText_Summary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}

	out := stripANSI(buf.String())
	if !strings.Contains(out, "3 test(s) written to 1 file(s), 1.5 kB in 42ms") {
		t.Errorf("unexpected summary line, got:\n%s", out)
	}
	for _, label := range []string{"implicit else", "already tested", "ignored lambdas"} {
		if !strings.Contains(out, label) {
			t.Errorf("expected stats table to contain %q, got:\n%s", label, out)
		}
	}
}

func TestWriteText_DryRun(t *testing.T) {
	rpt := sampleReport()
	rpt.Dry = true

	var buf bytes.Buffer
	if err := WriteText(&buf, rpt); err != nil {
		t.Fatal(err)
	}

	out := stripANSI(buf.String())
	if !strings.Contains(out, "would append src/store.spec.ts") {
		t.Errorf("expected dry-run wording, got:\n%s", out)
	}
	if !strings.Contains(out, "planned to 1 file(s)") {
		t.Errorf("expected planned summary, got:\n%s", out)
	}
}

func TestWriteBanner(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.IncludePrivate = true

	var buf bytes.Buffer
	WriteBanner(&buf, cfg, "1.2.3")

	out := stripANSI(buf.String())
	if !strings.Contains(out, "branchstub 1.2.3") {
		t.Errorf("expected version in banner, got:\n%s", out)
	}
	if !strings.Contains(out, "include private") || !strings.Contains(out, "true") {
		t.Errorf("expected include private setting, got:\n%s", out)
	}
	if !strings.Contains(out, "node_modules/**") {
		t.Errorf("expected exclude patterns, got:\n%s", out)
	}
}
