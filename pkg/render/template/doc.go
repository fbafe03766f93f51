// Package template defines the renderer-agnostic template engine contract.
// Markup packages depend on TemplateRenderer so the engine can be swapped
// without touching the summary logic.
package template
