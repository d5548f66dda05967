package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nvr-ai/tranquil-trails/generation"
	"github.com/pkg/errors"
)

// ErrEmptyPrompt is returned for a blank chat question; the generator is not called.
var ErrEmptyPrompt = errors.New("prompt is empty")

// Chat answers one free-text question per call. No history is kept.
type Chat struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewChat creates the chat use case.
func NewChat(generator generation.Generator, logger *slog.Logger) *Chat {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chat{generator: generator, logger: logger}
}

// Reply sends the prompt verbatim to the generator in exactly one call.
//
// Arguments:
//   - ctx: The request context.
//   - prompt: The user question.
//
// Returns:
//   - string: The generated text.
//   - error: ErrEmptyPrompt for blank input, or the generator error.
func (c *Chat) Reply(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	start := time.Now()
	text, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, "chat generation")
	}

	c.logger.Info("chat",
		"prompt_length", len(prompt),
		"response_length", len(text),
		"elapsed", time.Since(start))

	return text, nil
}
