package render

import (
	"github.com/goliatone/go-rowsummary/pkg/inputrow"
)

// Renderer is a named row markup.
type Renderer interface {
	inputrow.Markup
	Name() string
	ContentType() string
}

// Options carries the settings a Factory may honour.
type Options struct {
	// ColumnSpan is the colspan of the detail cell; zero keeps the
	// renderer default.
	ColumnSpan int
	// TemplatesDir is a directory whose templates override the embedded
	// ones; empty keeps the embedded bundle.
	TemplatesDir string
}

// Factory builds a renderer for one set of options.
type Factory func(opts Options) (Renderer, error)
