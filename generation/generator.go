package generation

import (
	"context"

	"github.com/nvr-ai/tranquil-trails/util"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyResponse is returned when the backend produced no text.
	ErrEmptyResponse = errors.New("generation returned no text")
	// ErrMissingAPIKey is returned when the backend needs a key that is not configured.
	ErrMissingAPIKey = errors.New("generation API key is empty")
)

// Generator produces a continuation for a free-text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Lazy is a Generator constructed on first use and shared afterwards.
type Lazy struct {
	lazy *util.Lazy[Generator]
}

// NewLazy memoizes the generator returned by load.
func NewLazy(load func() (Generator, error)) *Lazy {
	return &Lazy{lazy: util.NewLazy(load)}
}

// Load constructs the generator if needed and returns the load error.
func (l *Lazy) Load() error {
	_, err := l.lazy.Get()
	return err
}

// Generate delegates to the memoized generator.
func (l *Lazy) Generate(ctx context.Context, prompt string) (string, error) {
	g, err := l.lazy.Get()
	if err != nil {
		return "", errors.Wrap(err, "loading generator")
	}
	return g.Generate(ctx, prompt)
}

// Loads reports how many times the generator was constructed.
func (l *Lazy) Loads() int {
	return l.lazy.Loads()
}

// Close closes the generator if it was constructed and holds resources.
func (l *Lazy) Close() error {
	if !l.lazy.Loaded() {
		return nil
	}
	g, err := l.lazy.Get()
	if err != nil {
		return nil
	}
	if c, ok := g.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
