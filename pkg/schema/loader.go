package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load parses a globalConfig document. JSON is attempted first, then YAML.
// The source is only used to annotate errors.
func Load(data []byte, source string) (*GlobalConfig, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: file %s is empty", source)
	}

	var cfg GlobalConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = GlobalConfig{}
		if yerr := yaml.Unmarshal(data, &cfg); yerr != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, source)
	}
	return &cfg, nil
}

// LoadFS reads and parses a globalConfig document from fsys.
func LoadFS(fsys fs.FS, path string) (*GlobalConfig, error) {
	if fsys == nil {
		return nil, fmt.Errorf("schema: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Load(data, path)
}

// LoadFile reads and parses a globalConfig document from disk.
func LoadFile(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Load(data, path)
}
