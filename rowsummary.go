package rowsummary

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-rowsummary/pkg/dom"
	"github.com/goliatone/go-rowsummary/pkg/grouping"
	"github.com/goliatone/go-rowsummary/pkg/inputrow"
	"github.com/goliatone/go-rowsummary/pkg/renderers/deflist"
	"github.com/goliatone/go-rowsummary/pkg/schema"
)

// Record aliases inputrow.Record for callers of the top-level package.
type Record = inputrow.Record

// TermPair aliases inputrow.TermPair.
type TermPair = inputrow.TermPair

// Option configures the top-level helpers.
type Option func(*config)

type config struct {
	groupingTable grouping.Table
	markup        inputrow.Markup
	columnSpan    int
	templatesDir  string
	templatesFS   fs.FS
	sanitize      bool
	containerTag  string
	logger        zerolog.Logger
	rowContext    any
}

// WithGroupingTable replaces the built-in grouping declarations.
func WithGroupingTable(table grouping.Table) Option {
	return func(cfg *config) {
		cfg.groupingTable = table
	}
}

// WithMarkup swaps the definition-list renderer for another markup.
func WithMarkup(markup inputrow.Markup) Option {
	return func(cfg *config) {
		cfg.markup = markup
	}
}

// WithColumnSpan sets the colspan of the detail cell.
func WithColumnSpan(span int) Option {
	return func(cfg *config) {
		if span > 0 {
			cfg.columnSpan = span
		}
	}
}

// WithTemplatesDir overrides the embedded templates with those found under
// dir (templates/row.tpl, templates/term.tpl).
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		cfg.templatesDir = dir
	}
}

// WithTemplatesFS replaces the embedded template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templatesFS = files
	}
}

// WithSanitizer filters markup written to elements created by RenderHTML
// through dom.DefinitionListPolicy.
func WithSanitizer(enabled bool) Option {
	return func(cfg *config) {
		cfg.sanitize = enabled
	}
}

// WithContainerTag sets the element RenderHTML renders into. Defaults to tr.
func WithContainerTag(tag string) Option {
	return func(cfg *config) {
		if tag != "" {
			cfg.containerTag = tag
		}
	}
}

// WithLogger attaches a logger to the summarizer.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithRowContext passes an opaque row value through to the summarizer.
func WithRowContext(row any) Option {
	return func(cfg *config) {
		cfg.rowContext = row
	}
}

func newConfig(options []Option) config {
	cfg := config{
		groupingTable: grouping.DefaultTable(),
		columnSpan:    deflist.DefaultColumnSpan,
		containerTag:  "tr",
		logger:        zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// NewRowSummarizer builds a summarizer wired to the definition-list markup
// and the built-in grouping table.
func NewRowSummarizer(accessor schema.Accessor, service string, target inputrow.Element, options ...Option) (*inputrow.RowSummarizer, error) {
	cfg := newConfig(options)

	markup := cfg.markup
	if markup == nil {
		renderer, err := deflist.New(
			deflist.WithColumnSpan(cfg.columnSpan),
			deflist.WithTemplatesFS(cfg.templatesFS),
			deflist.WithTemplatesDir(cfg.templatesDir),
		)
		if err != nil {
			return nil, fmt.Errorf("rowsummary: configure markup: %w", err)
		}
		markup = renderer
	}

	return inputrow.New(accessor, service, target,
		inputrow.WithMarkup(markup),
		inputrow.WithGroupingTable(cfg.groupingTable),
		inputrow.WithLogger(cfg.logger),
		inputrow.WithRowContext(cfg.rowContext),
	)
}

// RenderHTML renders record into a fresh container element and returns its
// inner HTML. When the grouped fields do not line up the empty shell is
// returned together with the error.
func RenderHTML(accessor schema.Accessor, service string, record Record, options ...Option) (string, error) {
	cfg := newConfig(options)

	var elementOpts []dom.Option
	if cfg.sanitize {
		elementOpts = append(elementOpts, dom.WithSanitizer(dom.DefinitionListPolicy()))
	}
	target := dom.New(cfg.containerTag, elementOpts...)

	summarizer, err := NewRowSummarizer(accessor, service, target, options...)
	if err != nil {
		return "", err
	}

	_, renderErr := summarizer.Render(record)
	if renderErr != nil && !errors.Is(renderErr, inputrow.ErrGroupLengthMismatch) {
		return "", renderErr
	}

	out, err := target.InnerHTML()
	if err != nil {
		return "", fmt.Errorf("rowsummary: serialize container: %w", err)
	}
	return out, renderErr
}

// Summarize returns the term pairs for record without rendering markup.
func Summarize(accessor schema.Accessor, service string, record Record, options ...Option) ([]TermPair, error) {
	summarizer, err := NewRowSummarizer(accessor, service, dom.New("tr"), options...)
	if err != nil {
		return nil, err
	}
	return summarizer.Summarize(record)
}
