package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrServiceNotFound is returned when an accessor has no entry for the
// requested service name.
var ErrServiceNotFound = errors.New("schema: service not found")

// Accessor resolves the ordered entity descriptors for a service.
type Accessor interface {
	Entities(service string) ([]FieldDescriptor, error)
}

// FieldOptions carries per-field presentation flags.
type FieldOptions struct {
	Display *bool `json:"display,omitempty" yaml:"display,omitempty"`
}

// FieldDescriptor describes one configurable field of a service.
type FieldDescriptor struct {
	Field   string        `json:"field" yaml:"field"`
	Label   string        `json:"label" yaml:"label"`
	Type    string        `json:"type,omitempty" yaml:"type,omitempty"`
	Options *FieldOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

// Visible reports whether the descriptor may be displayed. Only an explicit
// display=false hides a field.
func (f FieldDescriptor) Visible() bool {
	if f.Options == nil || f.Options.Display == nil {
		return true
	}
	return *f.Options.Display
}

// Labelled reports whether the descriptor carries a usable label.
func (f FieldDescriptor) Labelled() bool {
	return f.Label != ""
}

// Service is a named group of entity descriptors.
type Service struct {
	Name   string            `json:"name" yaml:"name"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Entity []FieldDescriptor `json:"entity" yaml:"entity"`
}

// GlobalConfig mirrors the parts of a globalConfig document the row
// summary needs.
type GlobalConfig struct {
	Pages Pages `json:"pages" yaml:"pages"`
}

// Pages holds the input and configuration sections.
type Pages struct {
	Inputs        InputsPage        `json:"inputs" yaml:"inputs"`
	Configuration ConfigurationPage `json:"configuration" yaml:"configuration"`
}

type InputsPage struct {
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Services []Service `json:"services" yaml:"services"`
}

type ConfigurationPage struct {
	Title string    `json:"title,omitempty" yaml:"title,omitempty"`
	Tabs  []Service `json:"tabs" yaml:"tabs"`
}

// Ensure GlobalConfig implements the Accessor interface.
var _ Accessor = (*GlobalConfig)(nil)

// Entities returns a copy of the descriptors for the named service. Input
// services take precedence over configuration tabs with the same name.
func (c *GlobalConfig) Entities(service string) ([]FieldDescriptor, error) {
	svc, ok := c.Service(service)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, service)
	}
	out := make([]FieldDescriptor, len(svc.Entity))
	copy(out, svc.Entity)
	return out, nil
}

// Service looks up a service by name.
func (c *GlobalConfig) Service(name string) (Service, bool) {
	if c == nil {
		return Service{}, false
	}
	name = strings.TrimSpace(name)
	for _, svc := range c.Pages.Inputs.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	for _, tab := range c.Pages.Configuration.Tabs {
		if tab.Name == name {
			return tab, true
		}
	}
	return Service{}, false
}

// Services lists the input service names in document order.
func (c *GlobalConfig) Services() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Pages.Inputs.Services))
	for _, svc := range c.Pages.Inputs.Services {
		names = append(names, svc.Name)
	}
	return names
}

// Validate checks that service names are present and that field keys are
// unique within each service.
func (c *GlobalConfig) Validate() error {
	check := func(section string, services []Service) error {
		for idx, svc := range services {
			if strings.TrimSpace(svc.Name) == "" {
				return fmt.Errorf("schema: %s entry %d has an empty name", section, idx)
			}
			seen := make(map[string]struct{}, len(svc.Entity))
			for _, entity := range svc.Entity {
				if strings.TrimSpace(entity.Field) == "" {
					return fmt.Errorf("schema: service %q declares an entity without a field", svc.Name)
				}
				if _, exists := seen[entity.Field]; exists {
					return fmt.Errorf("schema: service %q declares duplicate field %q", svc.Name, entity.Field)
				}
				seen[entity.Field] = struct{}{}
			}
		}
		return nil
	}
	if err := check("inputs.services", c.Pages.Inputs.Services); err != nil {
		return err
	}
	return check("configuration.tabs", c.Pages.Configuration.Tabs)
}
