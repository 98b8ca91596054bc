package domain

import (
	"encoding/json"
	"fmt"
)

// Output is the tagged union carried by the "output" field of a turn
// response: either a single string or an ordered list of strings. The
// model may answer with either shape, and the frontend renders them
// differently, so the distinction is preserved through the pipeline.
type Output struct {
	text  string
	lines []string
	list  bool
}

// TextOutput returns an Output holding a single string.
func TextOutput(s string) Output {
	return Output{text: s}
}

// LinesOutput returns an Output holding an ordered list of strings.
func LinesOutput(ss []string) Output {
	return Output{lines: ss, list: true}
}

// IsList reports whether the output is the list variant.
func (o Output) IsList() bool { return o.list }

// Text returns the string variant's value. Empty for the list variant.
func (o Output) Text() string { return o.text }

// Lines returns the list variant's value. Nil for the string variant.
func (o Output) Lines() []string { return o.lines }

// IsEmpty reports whether the output carries no content at all.
func (o Output) IsEmpty() bool {
	if o.list {
		return len(o.lines) == 0
	}
	return o.text == ""
}

// Collapse applies the normalization rule for model-produced lists:
// an empty list becomes the empty string, a one-element list unwraps to
// that element, and anything else is preserved as-is.
func (o Output) Collapse() Output {
	if !o.list {
		return o
	}
	switch len(o.lines) {
	case 0:
		return TextOutput("")
	case 1:
		return TextOutput(o.lines[0])
	default:
		return o
	}
}

// Flatten joins the output into a single string for prompt context,
// regardless of variant.
func (o Output) Flatten() string {
	if !o.list {
		return o.text
	}
	joined := ""
	for i, line := range o.lines {
		if i > 0 {
			joined += "\n"
		}
		joined += line
	}
	return joined
}

// MarshalJSON encodes the string variant as a JSON string and the list
// variant as a JSON array (never null).
func (o Output) MarshalJSON() ([]byte, error) {
	if o.list {
		if o.lines == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(o.lines)
	}
	return json.Marshal(o.text)
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (o *Output) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = TextOutput(s)
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*o = LinesOutput(ss)
		return nil
	}
	return fmt.Errorf("output must be a string or a list of strings")
}
