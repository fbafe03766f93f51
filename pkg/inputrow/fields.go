package inputrow

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	missingValue      = "N/A"
	allValue          = "ALL"
	groupHeaderName   = "Region"
	namespaceField    = "metric_namespace"
	maxValueRunes     = 100
	truncationMarker  = "..."
	emptyGroupedValue = "[]"
)

// DefaultIgnoredFields are never listed as generic fields.
var DefaultIgnoredFields = []string{"metric_dimensions", "metric_names", "statistics"}

type fieldKind int

const (
	kindScalar fieldKind = iota
	kindNamespace
	kindGrouped
	kindIgnored
)

func (s *RowSummarizer) kindOf(field string) fieldKind {
	if _, grouped := s.groupedFields[field]; grouped {
		return kindGrouped
	}
	if _, ignored := s.ignore[field]; ignored {
		return kindIgnored
	}
	if field == namespaceField {
		return kindNamespace
	}
	return kindScalar
}

func (s *RowSummarizer) displayValue(kind fieldKind, field, raw string) string {
	value := raw
	if value == "" {
		value = missingValue
	}
	if kind == kindNamespace {
		if keys, ok := jsonKeys(value); ok {
			value = strings.Join(keys, ", ")
		} else {
			s.logger.Debug().Str("field", field).Msg("namespace value is not JSON; showing raw value")
		}
	}
	return truncate(value)
}

func truncate(value string) string {
	if utf8.RuneCountInString(value) <= maxValueRunes {
		return value
	}
	runes := []rune(value)
	return string(runes[:maxValueRunes]) + truncationMarker
}

// jsonKeys returns the own enumerable keys of a JSON document the way a
// browser lists them: integer-like object keys ascending, then the other
// keys in document order; array and string indices; nothing for numbers,
// booleans and null. ok is false when raw is not valid JSON.
func jsonKeys(raw string) ([]string, bool) {
	if !json.Valid([]byte(raw)) {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}

	switch v := tok.(type) {
	case string:
		return indices(utf8.RuneCountInString(v)), true
	case json.Delim:
		if v == '[' {
			count := 0
			for ; dec.More(); count++ {
				var skip json.RawMessage
				if err := dec.Decode(&skip); err != nil {
					return nil, false
				}
			}
			return indices(count), true
		}
	default:
		return []string{}, true
	}

	var indexKeys []uint64
	named := []string{}
	seen := make(map[string]struct{})
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, _ := keyTok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, false
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if idx, ok := arrayIndex(key); ok {
			indexKeys = append(indexKeys, idx)
			continue
		}
		named = append(named, key)
	}

	slices.Sort(indexKeys)
	keys := make([]string, 0, len(indexKeys)+len(named))
	for _, idx := range indexKeys {
		keys = append(keys, strconv.FormatUint(idx, 10))
	}
	return append(keys, named...), true
}

func indices(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// arrayIndex reports whether key is a canonical array index (0 to 2^32-2,
// no sign or leading zeros).
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.ParseUint(key, 10, 64)
	if err != nil || idx > math.MaxUint32-1 {
		return 0, false
	}
	return idx, true
}

// parseGrouped decodes a grouped field as a JSON array. Missing, malformed
// and non-array values all yield an empty array.
func parseGrouped(raw string) ([]any, bool) {
	if raw == "" {
		raw = emptyGroupedValue
	}
	if !json.Valid([]byte(raw)) {
		return []any{}, false
	}
	var items []any
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		return []any{}, false
	}
	if items == nil {
		items = []any{}
	}
	return items, true
}

// groupedText stringifies an element of a grouped array.
func groupedText(item any) string {
	switch v := item.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return v.String()
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

// groupedFalsy mirrors the placeholder rule for grouped values.
func groupedFalsy(item any) bool {
	switch v := item.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}
