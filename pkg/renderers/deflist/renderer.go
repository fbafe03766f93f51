// Package deflist renders row summaries as an HTML definition list wrapped
// in a table cell, using autoescaping templates for every name and value.
package deflist

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-rowsummary/pkg/inputrow"
	rendertemplate "github.com/goliatone/go-rowsummary/pkg/render/template"
	gotemplate "github.com/goliatone/go-rowsummary/pkg/render/template/gotemplate"
)

// Name identifies the renderer in a render.Registry.
const Name = "deflist"

// ListSelector locates the definition list inside the shell.
const ListSelector = ".custom-definition-list"

// DefaultColumnSpan matches the column count of the inputs table.
const DefaultColumnSpan = 9

// Option customises a Renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	columnSpan       int
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The
// bundle must contain templates/row.tpl and templates/term.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates
// missing from the directory fall back to the configured fs.FS, so a
// directory holding only templates/term.tpl overrides just the terms.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithColumnSpan sets the colspan of the wrapping cell.
func WithColumnSpan(span int) Option {
	return func(cfg *config) {
		if span > 0 {
			cfg.columnSpan = span
		}
	}
}

// Renderer implements inputrow.Markup.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	columnSpan int
}

// Ensure Renderer implements the inputrow.Markup interface.
var _ inputrow.Markup = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		columnSpan: DefaultColumnSpan,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("deflist renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, columnSpan: cfg.columnSpan}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// ListSelector implements inputrow.Markup.
func (r *Renderer) ListSelector() string {
	return ListSelector
}

// Shell renders the empty list container.
func (r *Renderer) Shell() (string, error) {
	if r.templates == nil {
		return "", fmt.Errorf("deflist renderer: template renderer is nil")
	}
	out, err := r.templates.RenderTemplate(shellTemplate, map[string]any{
		"colspan": r.columnSpan,
	})
	if err != nil {
		return "", fmt.Errorf("deflist renderer: render shell: %w", err)
	}
	return out, nil
}

// Terms renders one dt/dd pair per term, in order.
func (r *Renderer) Terms(pairs []inputrow.TermPair) (string, error) {
	if r.templates == nil {
		return "", fmt.Errorf("deflist renderer: template renderer is nil")
	}

	var builder strings.Builder
	for _, pair := range pairs {
		dtClass, ddClass := pair.Style.Classes()
		out, err := r.templates.RenderTemplate(termTemplate, map[string]any{
			"dt_class": dtClass,
			"dd_class": ddClass,
			"name":     pair.Name,
			"value":    pair.Value,
		})
		if err != nil {
			return "", fmt.Errorf("deflist renderer: render term %q: %w", pair.Name, err)
		}
		builder.WriteString(out)
	}
	return builder.String(), nil
}
