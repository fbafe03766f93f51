package grouping

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load parses a table document keyed by service name. JSON is attempted
// first, then YAML.
func Load(data []byte, source string) (Table, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("grouping: file %s is empty", source)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		table = nil
		if yerr := yaml.Unmarshal(data, &table); yerr != nil {
			return nil, fmt.Errorf("grouping: parse %s: invalid JSON or YAML", source)
		}
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("grouping: file %s: %w", source, err)
	}
	return table, nil
}

// LoadFS reads a table document from fsys.
func LoadFS(fsys fs.FS, path string) (Table, error) {
	if fsys == nil {
		return nil, fmt.Errorf("grouping: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("grouping: read %s: %w", path, err)
	}
	return Load(data, path)
}

// LoadFile reads a table document from disk.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grouping: read %s: %w", path, err)
	}
	return Load(data, path)
}

// Merge returns a copy of base with overrides applied per service.
func Merge(base Table, overrides Table) Table {
	out := base.Clone()
	if out == nil {
		out = make(Table, len(overrides))
	}
	for name, cfg := range overrides {
		out[name] = cfg.Clone()
	}
	return out
}
