package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rowsummary/pkg/inputrow"
	"github.com/goliatone/go-rowsummary/pkg/schema"
)

// MustLoadGlobalConfig reads a globalConfig fixture.
func MustLoadGlobalConfig(t *testing.T, path string) *schema.GlobalConfig {
	t.Helper()

	cfg, err := schema.LoadFile(path)
	if err != nil {
		t.Fatalf("load global config: %v", err)
	}
	return cfg
}

// MustLoadRecord reads a JSON record fixture.
func MustLoadRecord(t *testing.T, path string) inputrow.Record {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	record, err := inputrow.DecodeRecord(data)
	if err != nil {
		t.Fatalf("decode record: %v", err)
	}
	return record
}

// MarshalGolden encodes value the way JSON goldens are stored: two-space
// indentation and a trailing newline.
func MarshalGolden(t *testing.T, value any) []byte {
	t.Helper()

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	return append(payload, '\n')
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
