package rowsummary

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rowsummary/pkg/inputrow"
	"github.com/goliatone/go-rowsummary/pkg/schema"
	"github.com/goliatone/go-rowsummary/pkg/testsupport"
)

func loadRulesConfig(t *testing.T) *schema.GlobalConfig {
	t.Helper()
	return testsupport.MustLoadGlobalConfig(t, filepath.Join("testdata", "globalConfig.json"))
}

func TestSummarize_UsesDefaultGroupingTable(t *testing.T) {
	cfg := loadRulesConfig(t)
	record := Record{
		"name":       "rules",
		"account":    "prod",
		"region":     `["us-east-1","us-west-2"]`,
		"rule_names": `["s3-bucket-versioning",""]`,
	}

	pairs, err := Summarize(cfg, "aws_config_rule", record)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	want := []TermPair{
		{Name: "AWS Account", Value: "prod", Style: inputrow.StyleEllipsis},
		{Name: "Name", Value: "rules", Style: inputrow.StyleEllipsis},
		{Name: "Region", Value: "Config Rules", Style: inputrow.StyleLabel},
		{Name: "us-east-1", Value: "s3-bucket-versioning", Style: inputrow.StyleDetail},
		{Name: "us-west-2", Value: "ALL", Style: inputrow.StyleDetail},
	}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_MatchesGolden(t *testing.T) {
	cfg := loadRulesConfig(t)
	record := Record{
		"name":       "rules",
		"account":    "prod",
		"region":     `["us-east-1","us-west-2"]`,
		"rule_names": `["s3-bucket-versioning",null]`,
	}

	pairs, err := Summarize(cfg, "aws_config_rule", record)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	goldenPath := filepath.Join("testdata", "summary.golden.json")
	got := testsupport.MarshalGolden(t, pairs)
	if testsupport.WriteMaybeGolden(t, goldenPath, got) {
		return
	}

	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, string(got)); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHTML_TemplateOverrides(t *testing.T) {
	cfg := loadRulesConfig(t)
	record := Record{"name": "rules", "region": `[]`, "rule_names": `[]`}

	files := fstest.MapFS{
		"templates/row.tpl":  {Data: []byte(`<td><dl class="custom-definition-list"></dl></td>`)},
		"templates/term.tpl": {Data: []byte(`<dt>{{ name }}</dt><dd>{{ value }}</dd>`)},
	}
	out, err := RenderHTML(cfg, "aws_config_rule", record, WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<td><dl class="custom-definition-list"><dt>Name</dt><dd>rules</dd><dt>Region</dt><dd>Config Rules</dd></dl></td>`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "templates", "term.tpl"), []byte(`<dt>{{ name }}!</dt><dd>{{ value }}</dd>`), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	out, err = RenderHTML(cfg, "aws_config_rule", record, WithTemplatesFS(files), WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<dt>Name!</dt>") || !strings.HasPrefix(out, "<td><dl") {
		t.Fatalf("expected directory term over fs shell, got %q", out)
	}
}

func TestRenderHTML_WritesDefinitionList(t *testing.T) {
	cfg := loadRulesConfig(t)
	record := Record{
		"name":       "<b>rules</b>",
		"region":     `["us-east-1"]`,
		"rule_names": `["r1"]`,
	}

	out, err := RenderHTML(cfg, "aws_config_rule", record, WithColumnSpan(4), WithSanitizer(true))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, fragment := range []string{
		`<td colspan="4">`,
		`class="custom-definition-list"`,
		`&lt;b&gt;rules&lt;/b&gt;`,
		`>us-east-1</dt>`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q, got:\n%s", fragment, out)
		}
	}
	if strings.Contains(out, "<b>") {
		t.Fatalf("expected record markup to be escaped, got:\n%s", out)
	}
}

func TestRenderHTML_MismatchKeepsShell(t *testing.T) {
	cfg := loadRulesConfig(t)
	record := Record{
		"name":       "rules",
		"region":     `["us-east-1","us-west-2"]`,
		"rule_names": `["r1"]`,
	}

	out, err := RenderHTML(cfg, "aws_config_rule", record)
	if !errors.Is(err, inputrow.ErrGroupLengthMismatch) {
		t.Fatalf("expected ErrGroupLengthMismatch, got %v", err)
	}
	if !strings.Contains(out, "custom-definition-list") || strings.Contains(out, "<dt") {
		t.Fatalf("expected empty shell, got:\n%s", out)
	}
}

func TestRenderHTML_UnknownService(t *testing.T) {
	cfg := loadRulesConfig(t)
	if _, err := RenderHTML(cfg, "aws_kinesis", Record{}); !errors.Is(err, schema.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestEmbeddedTemplatesContainsRowTemplates(t *testing.T) {
	fsys := EmbeddedTemplates()
	for _, name := range []string{"templates/row.tpl", "templates/term.tpl"} {
		if _, err := fs.ReadFile(fsys, name); err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
	}
}
