package template

import (
	"io"
)

// TemplateRenderer is the engine seam used by markup renderers. Every
// implementation must autoescape interpolated values.
type TemplateRenderer interface {
	// RenderTemplate renders the named template with data, copying the
	// result to each writer in out.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
