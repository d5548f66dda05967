package generation

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Params  Params
	Timeout time.Duration
}

// Gemini generates text with the Google Gemini API.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGemini creates a Gemini client with the sampling parameters applied.
//
// Arguments:
//   - ctx: The context for the client setup.
//   - cfg: The backend configuration.
//
// Returns:
//   - *Gemini: The generator.
//   - error: ErrMissingAPIKey, invalid parameters, or a client error.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		name = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "gemini: creating client")
	}

	m := client.GenerativeModel(name)
	ApplyParams(m, cfg.Params)

	return &Gemini{client: client, model: m, timeout: cfg.Timeout}, nil
}

// ApplyParams copies the sampling parameters onto a Gemini model.
func ApplyParams(m *genai.GenerativeModel, p Params) {
	m.SetMaxOutputTokens(p.MaxTokens)
	m.SetCandidateCount(p.Candidates)
	m.SetTopK(p.TopK)
	m.SetTopP(p.TopP)
	if p.Sample {
		m.SetTemperature(1)
	} else {
		m.SetTemperature(0)
	}
}

// Generate sends the prompt verbatim in a single call and returns the generated text.
//
// Arguments:
//   - ctx: The context for the call.
//   - prompt: The user prompt.
//
// Returns:
//   - string: The text of the first candidate.
//   - error: ErrEmptyResponse if no text came back, or the API error.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "gemini: generate content")
	}
	return ResponseText(resp)
}

// Close releases the client connection.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// ResponseText concatenates the text parts of the first candidate.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
