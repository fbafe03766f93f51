package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"github.com/goliatone/go-rowsummary/pkg/render"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestServicesCommand(t *testing.T) {
	out, err := execute(t, "", "services", "--config", filepath.Join("testdata", "globalConfig.json"))
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	if diff := cmp.Diff("aws_sqs\nsplunk_ta_aws_sqs\n", out); diff != "" {
		t.Fatalf("services output mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeCommand_GroupedService(t *testing.T) {
	out, err := execute(t, "",
		"summarize",
		"--config", filepath.Join("testdata", "globalConfig.json"),
		"--service", "splunk_ta_aws_sqs",
		"--record", filepath.Join("testdata", "record.json"),
	)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	var got []map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	want := []map[string]string{
		{"name": "Name", "value": "queue-input", "style": "ellipsis"},
		{"name": "Region", "value": "SQS Queues", "style": "label"},
		{"name": "us-east-1", "value": "orders", "style": "detail"},
		{"name": "eu-west-1", "value": "ALL", "style": "detail"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCommand_RecordFromStdin(t *testing.T) {
	record, err := os.ReadFile(filepath.Join("testdata", "record.json"))
	if err != nil {
		t.Fatalf("read record: %v", err)
	}

	out, err := execute(t, string(record),
		"render",
		"--config", filepath.Join("testdata", "globalConfig.json"),
		"--service", "aws_sqs",
		"--record", "-",
		"--colspan", "3",
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{`<td colspan="3">`, ">Interval</dt>", ">300</dd>", ">SQS Queues</dt>"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
}

func TestRenderCommand_OutputFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "row.html")
	t.Setenv("ROWSUMMARY_OUTPUT", target)

	out, err := execute(t, "",
		"render",
		"--config", filepath.Join("testdata", "globalConfig.json"),
		"--service", "aws_sqs",
		"--record", filepath.Join("testdata", "record.json"),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `<td colspan="9">`) {
		t.Fatalf("unexpected output file content:\n%s", data)
	}
}

func TestRenderCommand_ServiceRequiredWithoutTerminal(t *testing.T) {
	_, err := execute(t, "",
		"render",
		"--config", filepath.Join("testdata", "globalConfig.json"),
		"--record", filepath.Join("testdata", "record.json"),
	)
	if err == nil || !strings.Contains(err.Error(), "--service is required") {
		t.Fatalf("expected missing service error, got %v", err)
	}
}

func TestApp_ServicePromptsOnTerminal(t *testing.T) {
	var offered []string
	a := &app{
		v:          viper.New(),
		isTerminal: func() bool { return true },
		prompt: func(_ context.Context, services []string) (string, error) {
			offered = services
			return services[len(services)-1], nil
		},
	}

	got, err := a.service(context.Background(), []string{"aws_sqs", "splunk_ta_aws_sqs"})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	if got != "splunk_ta_aws_sqs" {
		t.Fatalf("expected prompted service, got %q", got)
	}
	if diff := cmp.Diff([]string{"aws_sqs", "splunk_ta_aws_sqs"}, offered); diff != "" {
		t.Fatalf("offered services mismatch (-want +got):\n%s", diff)
	}

	a.v.Set(flagService, "aws_sqs")
	got, err = a.service(context.Background(), nil)
	if err != nil || got != "aws_sqs" {
		t.Fatalf("expected explicit service, got %q, %v", got, err)
	}
}

func TestRenderCommand_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	term := "<dt class=\"{{ dt_class }}\">{{ name }}</dt><dd>{{ value }}</dd>"
	if err := os.WriteFile(filepath.Join(dir, "templates", "term.tpl"), []byte(term), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	out, err := execute(t, "",
		"render",
		"--config", filepath.Join("testdata", "globalConfig.json"),
		"--service", "aws_sqs",
		"--record", filepath.Join("testdata", "record.json"),
		"--templates", dir,
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<dt class="custom-term-ellipsis">Interval</dt><dd>300</dd>`) {
		t.Fatalf("expected directory term template in output:\n%s", out)
	}
	if strings.Contains(out, "margin-left") {
		t.Fatalf("expected embedded term template to be overridden:\n%s", out)
	}
}

func TestRenderCommand_UnknownMarkup(t *testing.T) {
	_, err := execute(t, "",
		"render",
		"--config", filepath.Join("testdata", "globalConfig.json"),
		"--service", "aws_sqs",
		"--record", filepath.Join("testdata", "record.json"),
		"--markup", "table",
	)
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}
