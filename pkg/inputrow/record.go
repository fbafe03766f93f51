package inputrow

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one configuration row keyed by field name. Array and object
// valued fields hold their JSON encoding. An empty string is treated as a
// missing value.
type Record map[string]string

// Has reports whether the record carries the field at all.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// DecodeRecord converts a JSON object into a Record. Strings are kept
// verbatim; null, false, 0 and "" collapse to the empty value; anything
// else keeps its compact JSON text.
func DecodeRecord(data []byte) (Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("inputrow: decode record: %w", err)
	}

	record := make(Record, len(raw))
	for field, value := range raw {
		record[field] = recordValue(value)
	}
	return record, nil
}

func recordValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "false", `""`:
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil && n == 0 {
		return ""
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}
