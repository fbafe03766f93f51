// Package grouping declares which services render a zipped sub-table of
// parallel array fields beneath their generic summary.
package grouping

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned for grouping declarations the renderer
// cannot zip.
var ErrInvalidConfig = errors.New("grouping: invalid config")

// Column names one grouped field and its display label.
type Column struct {
	Label string `json:"label" yaml:"label"`
	Field string `json:"field" yaml:"field"`
}

// Config declares a grouped sub-table. Fields[0] holds the key array and
// Fields[1] the value array; further fields are only excluded from the
// generic listing.
type Config struct {
	Label        string   `json:"label" yaml:"label"`
	AccountField string   `json:"accountField,omitempty" yaml:"accountField,omitempty"`
	Fields       []Column `json:"fields" yaml:"fields"`
}

// Table maps service names to grouping declarations.
type Table map[string]Config

// DefaultTable returns the grouping declarations for the AWS inputs that
// store regions alongside queue or rule lists.
func DefaultTable() Table {
	return Table{
		"aws_config": {
			Label: "SQS Configuration",
			Fields: []Column{
				{Label: "Region", Field: "aws_region"},
				{Label: "SQS Queue", Field: "sqs_queue"},
			},
		},
		"aws_config_rule": {
			Label:        "Rules Configuration",
			AccountField: "account",
			Fields: []Column{
				{Label: "Region", Field: "region"},
				{Label: "Config Rules", Field: "rule_names"},
			},
		},
		"splunk_ta_aws_sqs": {
			Label: "SQS Configuration",
			Fields: []Column{
				{Label: "Region", Field: "aws_region"},
				{Label: "SQS Queues", Field: "sqs_queues"},
			},
		},
	}
}

// Lookup returns the declaration for service, if any.
func (t Table) Lookup(service string) (Config, bool) {
	if t == nil {
		return Config{}, false
	}
	cfg, ok := t[service]
	return cfg, ok
}

// Services lists the services with a grouping declaration.
func (t Table) Services() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	return names
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for name, cfg := range t {
		out[name] = cfg.Clone()
	}
	return out
}

// Validate checks every declaration in the table.
func (t Table) Validate() error {
	for name, cfg := range t {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty service name", ErrInvalidConfig)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("service %q: %w", name, err)
		}
	}
	return nil
}

// Clone returns a copy of the config that shares no slices.
func (c Config) Clone() Config {
	out := c
	out.Fields = append([]Column(nil), c.Fields...)
	return out
}

// Empty reports whether the config declares no grouped fields.
func (c Config) Empty() bool {
	return len(c.Fields) == 0
}

// FieldNames returns the grouped field keys in declaration order.
func (c Config) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for _, column := range c.Fields {
		names = append(names, column.Field)
	}
	return names
}

// KeyColumn is the column holding row names.
func (c Config) KeyColumn() Column {
	if len(c.Fields) == 0 {
		return Column{}
	}
	return c.Fields[0]
}

// ValueColumn is the column holding row values.
func (c Config) ValueColumn() Column {
	if len(c.Fields) < 2 {
		return Column{}
	}
	return c.Fields[1]
}

// Validate accepts an empty config or one with at least a key and a value
// column, each naming a distinct field.
func (c Config) Validate() error {
	if c.Empty() {
		return nil
	}
	if len(c.Fields) < 2 {
		return fmt.Errorf("%w: need key and value fields, got %d", ErrInvalidConfig, len(c.Fields))
	}
	seen := make(map[string]struct{}, len(c.Fields))
	for idx, column := range c.Fields {
		field := strings.TrimSpace(column.Field)
		if field == "" {
			return fmt.Errorf("%w: field %d has an empty key", ErrInvalidConfig, idx)
		}
		if _, exists := seen[field]; exists {
			return fmt.Errorf("%w: field %q declared twice", ErrInvalidConfig, field)
		}
		seen[field] = struct{}{}
	}
	return nil
}
