package completion

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("  Invoice 42 is due in May.  ", " When is it due? ")
	assert.Contains(t, p, "Invoice 42 is due in May.\n")
	assert.True(t, strings.HasSuffix(p, "Question: When is it due?\nAnswer:"))
}

func TestBuildPromptTruncatesDocument(t *testing.T) {
	p := BuildPrompt(strings.Repeat("x", maxContextChars+500), "q")
	assert.Equal(t, maxContextChars, strings.Count(p, "x"))
}

func TestNewGeminiCompleterRequiresKey(t *testing.T) {
	_, err := NewGeminiCompleter(context.Background(), Options{})
	require.Error(t, err)
}

func TestBuildPromptKeepsRunesWhole(t *testing.T) {
	p := BuildPrompt("a"+strings.Repeat("é", maxContextChars), "q")
	assert.True(t, utf8.ValidString(p))
	assert.Equal(t, (maxContextChars-1)/2, strings.Count(p, "é"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "a", truncate("aé", 2))
	assert.Equal(t, "aé", truncate("aé", 3))
	assert.Equal(t, "", truncate("日本", 2))
}
