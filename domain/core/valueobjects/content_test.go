package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentMatches(t *testing.T) {
	c := NewContent("The restaurant is open on Sundays")

	t.Run("case-insensitive substring", func(t *testing.T) {
		assert.True(t, c.Matches("restaurant"))
		assert.True(t, c.Matches("RESTAURANT"))
		assert.True(t, c.Matches("open on sun"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.False(t, c.Matches("closed"))
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.True(t, c.Matches(""))
	})
}

func TestContentIsEmpty(t *testing.T) {
	assert.True(t, NewContent("").IsEmpty())
	assert.True(t, NewContent("   \t").IsEmpty())
	assert.False(t, NewContent("x").IsEmpty())
}

func TestContentSummary(t *testing.T) {
	c := NewContent("a fairly long piece of content")

	assert.Equal(t, "a fairly...", c.Summary(11))
	assert.Equal(t, c.Text(), c.Summary(100))
	assert.Equal(t, "", c.Summary(0))
}

func TestContentWordCount(t *testing.T) {
	assert.Equal(t, 3, NewContent("one two three").WordCount())
	assert.Equal(t, 0, NewContent("").WordCount())
}
