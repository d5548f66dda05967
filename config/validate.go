package config

import (
	"fmt"

	"github.com/nvr-ai/tranquil-trails/generation"
	"github.com/nvr-ai/tranquil-trails/inference/providers"
	"github.com/nvr-ai/tranquil-trails/models"
)

// Validate returns the first configuration problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	if c.Server.MaxUploadBytes <= 0 {
		return ErrInvalidUploadLimit
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return ErrInvalidTimeout
	}

	backend, err := providers.ParseBackend(string(c.Runtime.Provider.Backend))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProvider, err)
	}
	c.Runtime.Provider.Backend = backend

	for _, crop := range models.Crops() {
		m, _ := c.Detection.Model(crop)
		if m.Path == "" {
			return fmt.Errorf("%w: %s", ErrMissingModelPath, crop)
		}
		if m.InputSize <= 0 || m.InputSize%32 != 0 {
			return fmt.Errorf("%w: %s", ErrInvalidInputSize, crop)
		}
		if !inUnitInterval(m.ConfidenceThreshold) || !inUnitInterval(m.IoUThreshold) {
			return fmt.Errorf("%w: %s", ErrInvalidThreshold, crop)
		}
	}

	if c.Generation.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Generation.Params != generation.DefaultParams() {
		return fmt.Errorf("%w: chat sampling parameters are fixed", ErrInvalidSamplingParam)
	}

	if c.Log.Format != LogFormatText && c.Log.Format != LogFormatJSON {
		return ErrInvalidLogFormat
	}

	return nil
}

func inUnitInterval(v float32) bool {
	return v > 0 && v <= 1
}
