package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nvr-ai/tranquil-trails/config"
	"github.com/nvr-ai/tranquil-trails/generation"
	"github.com/nvr-ai/tranquil-trails/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// loadConfig reads the configuration selected by the persistent flags and installs
// the default logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "configuration error")
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Verbose = true
	}

	log := logger.New(os.Stderr, cfg.Log.Format, cfg.Log.Verbose)
	slog.SetDefault(log)
	log.Debug("configuration loaded",
		"port", cfg.Server.Port,
		"provider", cfg.Runtime.Provider.Backend,
		"generation_model", cfg.Generation.Model,
		"api_key", cfg.Generation.APIKey)

	return cfg, log, nil
}

// newGenerator memoizes the Gemini backend described by cfg.
func newGenerator(ctx context.Context, cfg config.GenerationConfig) *generation.Lazy {
	return generation.NewLazy(func() (generation.Generator, error) {
		g, err := generation.NewGemini(ctx, generation.GeminiConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Params:  cfg.Params,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
