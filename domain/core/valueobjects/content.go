package valueobjects

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Content is a value object for a node's free-form text payload.
// Any text is admissible, including the empty string; whether a proposal
// is accepted is decided by the inspector chain, never by its content.
type Content struct {
	text string
}

// NewContent creates a content value from raw text.
func NewContent(text string) Content {
	return Content{text: text}
}

// Text returns the raw text.
func (c Content) Text() string {
	return c.text
}

// IsEmpty checks if content is empty.
func (c Content) IsEmpty() bool {
	return strings.TrimSpace(c.text) == ""
}

// Equals checks if two contents are equal.
func (c Content) Equals(other Content) bool {
	return c.text == other.text
}

// Matches reports whether the content contains the query as a
// case-insensitive substring.
func (c Content) Matches(query string) bool {
	return strings.Contains(strings.ToLower(c.text), strings.ToLower(query))
}

// WordCount returns the approximate word count.
func (c Content) WordCount() int {
	return len(strings.Fields(c.text))
}

// Summary returns a truncated summary of the content.
func (c Content) Summary(maxLength int) string {
	if maxLength <= 0 {
		return ""
	}

	if utf8.RuneCountInString(c.text) <= maxLength {
		return c.text
	}

	runes := []rune(c.text)
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}

// MarshalJSON implements json.Marshaler
func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.text)
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Content) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.text)
}
