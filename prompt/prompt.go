/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package prompt

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"maps"
)

// literal only accepts untyped string constants, which keeps template text
// under developer control. Runtime data enters through the Bind methods.
type literal string

// Template is a prompt template with {{name}} placeholders. Templates are
// immutable; every bind returns a new Template and the original stays usable.
type Template struct {
	text     string
	bindings map[string]binding
}

// New parses a template literal and registers its placeholders.
func New(text literal) (*Template, error) {
	bindings := make(map[string]binding)
	walked, err := walk(string(text), func(name string) (string, error) {
		if _, ok := bindings[name]; !ok {
			bindings[name] = unbound(name)
		}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}
	return &Template{text: walked, bindings: bindings}, nil
}

// Placeholders returns the set of placeholder names in the template.
func (t *Template) Placeholders() map[string]struct{} {
	names := make(map[string]struct{}, len(t.bindings))
	for name := range t.bindings {
		names[name] = struct{}{}
	}
	return names
}

// Bind attaches a string value to a placeholder. The value lands in the
// output verbatim; placeholders inside it are not expanded.
func (t *Template) Bind(name, value string) (*Template, error) {
	return t.bind(name, stringValue(value))
}

// BindXML marshals data as indented XML into a placeholder. Untrusted text
// should enter prompts this way so markup in the value arrives escaped.
func (t *Template) BindXML(name string, data any) (*Template, error) {
	return t.bind(name, xmlValue{data: data})
}

// BindJSON marshals data as indented JSON into a placeholder.
func (t *Template) BindJSON(name string, data any) (*Template, error) {
	return t.bind(name, jsonValue{data: data})
}

func (t *Template) bind(name string, b binding) (*Template, error) {
	current, ok := t.bindings[name]
	if !ok {
		return nil, fmt.Errorf("no placeholder %q in template", name)
	}
	if _, open := current.(unbound); !open {
		return nil, fmt.Errorf("placeholder %q already bound", name)
	}
	next := &Template{text: t.text, bindings: maps.Clone(t.bindings)}
	next.bindings[name] = b
	return next, nil
}

// Build renders the template. It fails if any placeholder is still unbound
// or a bound value refuses to marshal.
func (t *Template) Build() (string, error) {
	values := make(map[string]string, len(t.bindings))
	for name, b := range t.bindings {
		v, err := b.render()
		if err != nil {
			return "", err
		}
		values[name] = v
	}
	return walk(t.text, func(name string) (string, error) {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("internal: placeholder %q missing from bindings", name)
		}
		return v, nil
	})
}

// binding renders the value substituted for one placeholder.
type binding interface {
	render() (string, error)
}

type unbound string

func (u unbound) render() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", string(u))
}

type stringValue string

func (s stringValue) render() (string, error) { return string(s), nil }

type xmlValue struct {
	data any
}

func (x xmlValue) render() (string, error) {
	b, err := xml.MarshalIndent(x.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling %T as XML: %w", x.data, err)
	}
	return string(b), nil
}

type jsonValue struct {
	data any
}

func (j jsonValue) render() (string, error) {
	b, err := json.MarshalIndent(j.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling %T as JSON: %w", j.data, err)
	}
	return string(b), nil
}
