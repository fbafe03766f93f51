package inputrow

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-rowsummary/pkg/grouping"
)

// Element is the mutable container a row renders into.
type Element interface {
	// SetInnerHTML replaces the container contents.
	SetInnerHTML(markup string) error
	// SetChildHTML replaces the contents of the first descendant matching
	// selector.
	SetChildHTML(selector, markup string) error
}

// Markup produces the HTML written into an Element. Implementations must
// escape every name and value they interpolate.
type Markup interface {
	// Shell returns the empty definition-list container.
	Shell() (string, error)
	// ListSelector locates the list inside the shell.
	ListSelector() string
	// Terms renders the term pairs in order.
	Terms(pairs []TermPair) (string, error)
}

// Option customises a RowSummarizer.
type Option func(*RowSummarizer)

// WithGroupingTable supplies the service to grouping declarations used to
// pick this row's grouped sub-table.
func WithGroupingTable(table grouping.Table) Option {
	return func(s *RowSummarizer) {
		s.groupingTable = table
	}
}

// WithMarkup sets the markup renderer used by Render.
func WithMarkup(markup Markup) Option {
	return func(s *RowSummarizer) {
		if markup != nil {
			s.markup = markup
		}
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *RowSummarizer) {
		s.logger = logger
	}
}

// WithRowContext stores an opaque value describing the table row the
// summary belongs to. It is never read by the summary itself.
func WithRowContext(row any) Option {
	return func(s *RowSummarizer) {
		s.row = row
	}
}
