// Package llmjson normalizes and decodes JSON produced by a language model.
//
// Models frequently wrap JSON in a fenced code block with an optional
// language tag despite being instructed not to. StripFences removes that
// markup best-effort; Decode combines stripping with unmarshalling and
// reports failures as a *ParseError carrying the offending raw text, so
// callers can log or persist exactly what the model said.
package llmjson

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports that model output could not be decoded as JSON.
// Raw holds the unmodified model output (before fence stripping).
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StripFences removes a leading ``` fence line (with optional language tag)
// and a trailing ``` fence, then trims surrounding whitespace. Input without
// fences is returned trimmed. The result is not guaranteed to be valid JSON.
func StripFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}

	out = strings.TrimPrefix(out, "```")
	out = strings.TrimLeftFunc(out, func(r rune) bool {
		// Language tag, e.g. "json" in "```json".
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}

// Decode strips fence markup from raw and unmarshals the remainder into v.
// On failure it returns a *ParseError wrapping the unmarshal error and
// carrying the original raw text.
func Decode(raw string, v any) error {
	clean := StripFences(raw)
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}

// Indent renders v as indented JSON for embedding into a prompt. Marshal
// failures degrade to an empty object so prompt construction never fails.
func Indent(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
