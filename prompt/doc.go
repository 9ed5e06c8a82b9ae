/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

/*
Package prompt builds judge prompts from templates with typed placeholders.

Templates are compile-time string literals with {{name}} placeholders. Values
bind one at a time, each bind returning a new immutable template, and Build
refuses to render while any placeholder is still unbound. Substitution is a
single pass: brace sequences inside bound values are never re-expanded, so
untrusted text cannot splice new placeholders into a prompt.

	var scoring = prompt.MustNew(`Score the following explanation.

	{{context}}

	Respond with JSON matching:
	{{schema}}`)

	text, err := scoring.
		MustBindXML("context", evalContext).
		MustBindJSON("schema", replySchema).
		Build()

BindXML exists for untrusted input: the value arrives in the prompt as
escaped markup inside named tags, which keeps result rows and query text from
reading as instructions.
*/
package prompt
