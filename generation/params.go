// Package generation - Text generation for the chat page.
package generation

import "github.com/pkg/errors"

// Params are the sampling parameters of every chat generation call.
type Params struct {
	// MaxTokens bounds the generated length.
	MaxTokens int32 `json:"max_tokens" yaml:"max_tokens"`
	// TopK keeps the K most likely tokens at each step.
	TopK int32 `json:"top_k" yaml:"top_k"`
	// TopP keeps the smallest token set whose probability mass reaches P.
	TopP float32 `json:"top_p" yaml:"top_p"`
	// Candidates is the number of returned sequences.
	Candidates int32 `json:"candidates" yaml:"candidates"`
	// Sample enables stochastic decoding; false decodes greedily.
	Sample bool `json:"sample" yaml:"sample"`
}

// DefaultParams returns the fixed chat parameters: 150 tokens, sampling with
// top-k 50 and top-p 0.95, one sequence.
func DefaultParams() Params {
	return Params{
		MaxTokens:  150,
		TopK:       50,
		TopP:       0.95,
		Candidates: 1,
		Sample:     true,
	}
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	switch {
	case p.MaxTokens <= 0:
		return errors.Errorf("max_tokens must be positive, got %d", p.MaxTokens)
	case p.TopK <= 0:
		return errors.Errorf("top_k must be positive, got %d", p.TopK)
	case p.TopP <= 0 || p.TopP > 1:
		return errors.Errorf("top_p must be in (0, 1], got %v", p.TopP)
	case p.Candidates != 1:
		return errors.Errorf("candidates must be 1, got %d", p.Candidates)
	}
	return nil
}
