/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package prompt

// Helpers that panic on error, for package-level template variables whose
// validity is known at compile time.

// Must panics if err is non-nil, otherwise returns t. Intended for chaining:
//
//	var tmpl = prompt.Must(prompt.New(`Hello {{name}}`))
func Must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}

// MustNew parses a template literal and panics on error.
func MustNew(text literal) *Template {
	return Must(New(text))
}

// MustBind binds a string value and panics on error.
func (t *Template) MustBind(name, value string) *Template {
	return Must(t.Bind(name, value))
}

// MustBindXML binds data as XML and panics on error.
func (t *Template) MustBindXML(name string, data any) *Template {
	return Must(t.BindXML(name, data))
}

// MustBindJSON binds data as JSON and panics on error.
func (t *Template) MustBindJSON(name string, data any) *Template {
	return Must(t.BindJSON(name, data))
}
