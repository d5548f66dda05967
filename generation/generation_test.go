package generation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, int32(150), p.MaxTokens)
	assert.Equal(t, int32(50), p.TopK)
	assert.InDelta(t, 0.95, p.TopP, 1e-6)
	assert.Equal(t, int32(1), p.Candidates)
	assert.True(t, p.Sample)
	assert.NoError(t, p.Validate())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{name: "zero tokens", mutate: func(p *Params) { p.MaxTokens = 0 }},
		{name: "zero top-k", mutate: func(p *Params) { p.TopK = 0 }},
		{name: "top-p above one", mutate: func(p *Params) { p.TopP = 1.5 }},
		{name: "two candidates", mutate: func(p *Params) { p.Candidates = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestApplyParams(t *testing.T) {
	m := &genai.GenerativeModel{}
	ApplyParams(m, DefaultParams())

	require.NotNil(t, m.MaxOutputTokens)
	assert.Equal(t, int32(150), *m.MaxOutputTokens)
	require.NotNil(t, m.TopK)
	assert.Equal(t, int32(50), *m.TopK)
	require.NotNil(t, m.TopP)
	assert.InDelta(t, 0.95, *m.TopP, 1e-6)
	require.NotNil(t, m.CandidateCount)
	assert.Equal(t, int32(1), *m.CandidateCount)
	require.NotNil(t, m.Temperature)
	assert.InDelta(t, 1.0, *m.Temperature, 1e-6)

	greedy := DefaultParams()
	greedy.Sample = false
	ApplyParams(m, greedy)
	require.NotNil(t, m.Temperature)
	assert.Zero(t, *m.Temperature)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Padi "), genai.Text("butuh air.")}},
		}},
	}
	text, err := ResponseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Padi butuh air.", text)

	for _, empty := range []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}}}}},
	} {
		_, err := ResponseText(empty)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), GeminiConfig{APIKey: " ", Params: DefaultParams()})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	return "echo: " + prompt, nil
}

func TestLazyLoadsOnce(t *testing.T) {
	l := NewLazy(func() (Generator, error) { return echoGenerator{}, nil })
	assert.Equal(t, 0, l.Loads())
	assert.NoError(t, l.Close())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := l.Generate(context.Background(), "halo")
			assert.NoError(t, err)
			assert.Equal(t, "echo: halo", out)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, l.Loads())
	assert.NoError(t, l.Load())
	assert.Equal(t, 1, l.Loads())
}

func TestLazyLoadError(t *testing.T) {
	l := NewLazy(func() (Generator, error) { return nil, errors.New("no network") })
	_, err := l.Generate(context.Background(), "halo")
	assert.ErrorContains(t, err, "no network")
	assert.Error(t, l.Load())
	assert.Equal(t, 1, l.Loads())
}
