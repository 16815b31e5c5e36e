// Package completion answers free-form questions through a hosted language model.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"
)

// ErrEmptyPrompt is returned when there is nothing to ask.
var ErrEmptyPrompt = errors.New("prompt is empty")

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options configures the Gemini completer.
type Options struct {
	APIKey      string
	Model       string
	MaxTokens   int32
	Temperature float32
}

// GeminiCompleter generates completions using Google's Gemini API.
type GeminiCompleter struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiCompleter creates a completer. Model defaults to gemini-2.5-flash.
func NewGeminiCompleter(ctx context.Context, opts Options) (*GeminiCompleter, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 256
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	temperature := opts.Temperature
	return &GeminiCompleter{
		client: client,
		model:  opts.Model,
		config: &genai.GenerateContentConfig{
			Temperature:     &temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}, nil
}

// Complete sends prompt to the model and returns the trimmed response text.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// maxContextChars bounds, in bytes, how much document text is placed in a prompt.
const maxContextChars = 60000

// BuildPrompt wraps a question with the document it is about.
func BuildPrompt(document, question string) string {
	document = strings.TrimSpace(document)
	document = truncate(document, maxContextChars)

	var b strings.Builder
	b.WriteString("Answer the question using the document below. ")
	b.WriteString("If the document does not contain the answer, say so.\n\n")
	b.WriteString("Document:\n\"\"\"\n")
	b.WriteString(document)
	b.WriteString("\n\"\"\"\n\nQuestion: ")
	b.WriteString(strings.TrimSpace(question))
	b.WriteString("\nAnswer:")
	return b.String()
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
