// Package inputrow summarizes one configured input as a label/value
// definition list for the expandable detail row of an inputs table.
//
// A RowSummarizer is bound to a service's entity schema, an optional
// grouping declaration and a target element. Summarize computes the
// ordered TermPairs for a record; Render writes them into the element
// through a Markup implementation (see pkg/renderers/deflist).
package inputrow
