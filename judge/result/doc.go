/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

/*
Package result decodes judge replies into score sets.

Judge models are instructed to answer with a single JSON object, but in
practice replies arrive in several shapes: the bare object, the object inside
a markdown code fence, a fence with a language tag, or the object padded with
prose. This package normalizes those shapes and performs a strict decode, so
callers only ever see a well-formed score set or an explicit parse failure.

# Basic Usage

	set, err := result.Parse(reply)
	if err != nil {
		var parseErr *result.ParseError
		if errors.As(err, &parseErr) {
			// Drop this judge from the round; the others proceed.
		}
		return err
	}
	fmt.Println(set.Score(score.Faithfulness))

# Reply Shapes

All of the following decode to the same score set:

	{"faithfulness": 5, "confidence": 4}

	```json
	{"faithfulness": 5, "confidence": 4}
	```

	Here is my assessment:
	```
	{"faithfulness": 5, "confidence": 4}
	```

A reply that carries no JSON object at all, or a fenced block that does not
decode, yields a *ParseError carrying a bounded snippet of the offending text
for logs.

# Thread Safety

All functions operate on immutable inputs and keep no shared state. They are
safe for concurrent use across a judge panel.
*/
package result
