package rowsummary

import (
	"io/fs"

	"github.com/goliatone/go-rowsummary/pkg/renderers/deflist"
)

// EmbeddedTemplates exposes the built-in definition-list templates so callers
// can copy or override them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return deflist.TemplatesFS()
}
