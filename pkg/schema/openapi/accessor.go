// Package openapi exposes component schemas of an OpenAPI document as row
// summary entities, so services described by an API contract can be
// summarized without a globalConfig document.
//
// Each component schema is a service; its properties become fields. The
// property title is the label, x-display: false hides a field and x-order
// fixes the position (properties without it follow, sorted by name).
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-rowsummary/pkg/schema"
)

const (
	displayExtension = "x-display"
	orderExtension   = "x-order"
)

// Accessor implements schema.Accessor over a parsed OpenAPI document.
type Accessor struct {
	doc *openapi3.T
}

// Ensure the implementation satisfies the public interface.
var _ schema.Accessor = (*Accessor)(nil)

// Load parses an OpenAPI document (JSON or YAML).
func Load(ctx context.Context, data []byte) (*Accessor, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi accessor: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi accessor: load document: %w", err)
	}
	return New(doc), nil
}

// New wraps an already loaded document.
func New(doc *openapi3.T) *Accessor {
	return &Accessor{doc: doc}
}

// Services lists the component schema names, sorted.
func (a *Accessor) Services() []string {
	schemas := a.schemas()
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entities converts the properties of the named component schema.
func (a *Accessor) Entities(service string) ([]schema.FieldDescriptor, error) {
	ref, ok := a.schemas()[service]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", schema.ErrServiceNotFound, service)
	}

	type property struct {
		name  string
		order float64
		desc  schema.FieldDescriptor
	}

	properties := make([]property, 0, len(ref.Value.Properties))
	for name, propRef := range ref.Value.Properties {
		prop := property{name: name, order: math.Inf(1)}
		prop.desc = schema.FieldDescriptor{Field: name}
		if propRef != nil && propRef.Value != nil {
			value := propRef.Value
			prop.desc.Label = value.Title
			prop.desc.Type = schemaType(value)
			if display, ok := extensionBool(value.Extensions, displayExtension); ok {
				prop.desc.Options = &schema.FieldOptions{Display: &display}
			}
			if order, ok := extensionNumber(value.Extensions, orderExtension); ok {
				prop.order = order
			}
		}
		properties = append(properties, prop)
	}

	sort.SliceStable(properties, func(i, j int) bool {
		if properties[i].order != properties[j].order {
			return properties[i].order < properties[j].order
		}
		return properties[i].name < properties[j].name
	})

	out := make([]schema.FieldDescriptor, 0, len(properties))
	for _, prop := range properties {
		out = append(out, prop.desc)
	}
	return out, nil
}

func (a *Accessor) schemas() openapi3.Schemas {
	if a == nil || a.doc == nil || a.doc.Components == nil {
		return nil
	}
	return a.doc.Components.Schemas
}

func schemaType(value *openapi3.Schema) string {
	if value.Type == nil || len(value.Type.Slice()) == 0 {
		return ""
	}
	return value.Type.Slice()[0]
}

func extensionBool(extensions map[string]any, key string) (bool, bool) {
	raw, ok := extensions[key]
	if !ok {
		return false, false
	}
	switch v := raw.(type) {
	case bool:
		return v, true
	case json.RawMessage:
		var b bool
		if err := json.Unmarshal(v, &b); err == nil {
			return b, true
		}
	}
	return false, false
}

func extensionNumber(extensions map[string]any, key string) (float64, bool) {
	raw, ok := extensions[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case json.RawMessage:
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			return f, true
		}
	}
	return 0, false
}
