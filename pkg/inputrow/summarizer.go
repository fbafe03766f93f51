package inputrow

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-rowsummary/pkg/grouping"
	"github.com/goliatone/go-rowsummary/pkg/schema"
)

// RowSummarizer renders the detail summary of one service's records into a
// target element. The entity list, grouping declaration and ignore set are
// resolved once at construction; Render may be called repeatedly and each
// call replaces the previous output. A RowSummarizer must not be rendered
// from several goroutines at once.
type RowSummarizer struct {
	service  string
	entities []schema.FieldDescriptor
	group    grouping.Config
	target   Element
	markup   Markup
	logger   zerolog.Logger
	row      any

	groupingTable grouping.Table
	groupedFields map[string]struct{}
	ignore        map[string]struct{}
}

// New binds a summarizer to the entities accessor returns for service and
// to target. A Markup must be supplied with WithMarkup.
func New(accessor schema.Accessor, service string, target Element, opts ...Option) (*RowSummarizer, error) {
	if accessor == nil {
		return nil, errors.New("inputrow: schema accessor is required")
	}
	if target == nil {
		return nil, errors.New("inputrow: target element is required")
	}

	s := &RowSummarizer{
		service: service,
		target:  target,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.markup == nil {
		return nil, errors.New("inputrow: markup renderer is required")
	}

	entities, err := accessor.Entities(service)
	if err != nil {
		return nil, fmt.Errorf("inputrow: resolve entities for %q: %w", service, err)
	}
	s.entities = entities

	if cfg, ok := s.groupingTable.Lookup(service); ok {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("inputrow: grouping for %q: %w", service, err)
		}
		s.group = cfg.Clone()
	}

	s.groupedFields = make(map[string]struct{}, len(s.group.Fields))
	s.ignore = make(map[string]struct{}, len(DefaultIgnoredFields)+len(s.group.Fields))
	for _, field := range DefaultIgnoredFields {
		s.ignore[field] = struct{}{}
	}
	for _, field := range s.group.FieldNames() {
		s.groupedFields[field] = struct{}{}
		s.ignore[field] = struct{}{}
	}

	return s, nil
}

// Service returns the service name the summarizer was built for.
func (s *RowSummarizer) Service() string {
	return s.service
}

// Grouping returns the active grouping declaration, empty when the service
// has none.
func (s *RowSummarizer) Grouping() grouping.Config {
	return s.group.Clone()
}

// RowContext returns the value passed with WithRowContext.
func (s *RowSummarizer) RowContext() any {
	return s.row
}

// Ignored reports whether field is excluded from the generic listing.
func (s *RowSummarizer) Ignored(field string) bool {
	_, ok := s.ignore[field]
	return ok
}

// Render resets the target to an empty list shell and fills it with the
// record summary. On error the target keeps the empty shell.
func (s *RowSummarizer) Render(record Record) (*RowSummarizer, error) {
	shell, err := s.markup.Shell()
	if err != nil {
		return s, fmt.Errorf("inputrow: render shell: %w", err)
	}
	if err := s.target.SetInnerHTML(shell); err != nil {
		return s, fmt.Errorf("inputrow: reset target: %w", err)
	}

	pairs, err := s.Summarize(record)
	if err != nil {
		return s, err
	}

	terms, err := s.markup.Terms(pairs)
	if err != nil {
		return s, fmt.Errorf("inputrow: render terms: %w", err)
	}
	if err := s.target.SetChildHTML(s.markup.ListSelector(), terms); err != nil {
		return s, fmt.Errorf("inputrow: fill list: %w", err)
	}
	return s, nil
}

// Summarize computes the term pairs for record: generic fields sorted by
// label, then the grouped header and zipped rows when the service declares
// a grouping.
func (s *RowSummarizer) Summarize(record Record) ([]TermPair, error) {
	pairs := s.genericPairs(record)
	if s.group.Empty() {
		return pairs, nil
	}

	rows, err := s.groupedPairs(record)
	if err != nil {
		s.logger.Warn().Err(err).Str("service", s.service).Msg("grouped fields do not line up")
		return nil, err
	}

	pairs = append(pairs, TermPair{
		Name:  groupHeaderName,
		Value: s.group.ValueColumn().Label,
		Style: StyleLabel,
	})
	return append(pairs, rows...), nil
}

func (s *RowSummarizer) genericPairs(record Record) []TermPair {
	candidates := make([]schema.FieldDescriptor, 0, len(s.entities))
	for _, entity := range s.entities {
		if !record.Has(entity.Field) {
			continue
		}
		if kind := s.kindOf(entity.Field); kind == kindIgnored || kind == kindGrouped {
			continue
		}
		if !entity.Visible() || !entity.Labelled() {
			continue
		}
		candidates = append(candidates, entity)
	}

	slices.SortStableFunc(candidates, func(a, b schema.FieldDescriptor) int {
		return strings.Compare(a.Label, b.Label)
	})

	pairs := make([]TermPair, 0, len(candidates))
	for _, entity := range candidates {
		pairs = append(pairs, TermPair{
			Name:  entity.Label,
			Value: s.displayValue(s.kindOf(entity.Field), entity.Field, record[entity.Field]),
			Style: StyleEllipsis,
		})
	}
	return pairs
}

func (s *RowSummarizer) groupedPairs(record Record) ([]TermPair, error) {
	columns := make([][]any, 0, len(s.group.Fields))
	expected := -1
	for _, field := range s.group.FieldNames() {
		items, ok := parseGrouped(record[field])
		if !ok {
			s.logger.Debug().Str("field", field).Msg("grouped value is not a JSON array; treating as empty")
		}
		if expected == -1 {
			expected = len(items)
		} else if len(items) != expected {
			return nil, fmt.Errorf("%w: field %q has %d entries, expected %d", ErrGroupLengthMismatch, field, len(items), expected)
		}
		columns = append(columns, items)
	}

	keys, values := columns[0], columns[1]
	rows := make([]TermPair, 0, expected)
	for idx := 0; idx < expected; idx++ {
		value := allValue
		if !groupedFalsy(values[idx]) {
			value = groupedText(values[idx])
		}
		rows = append(rows, TermPair{
			Name:  groupedText(keys[idx]),
			Value: value,
			Style: StyleDetail,
		})
	}
	return rows, nil
}
