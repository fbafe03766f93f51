package deflist

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	shellTemplate = "templates/row.tpl"
	termTemplate  = "templates/term.tpl"
)

// TemplatesFS exposes the embedded shell and term templates so callers can
// copy or extend them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
