package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the working directory.
const DefaultConfigFile = "tranquil.yaml"

// Environment variables that override the file configuration.
const (
	EnvPort         = "PORT"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGeminiModel  = "GEMINI_MODEL"
	EnvOnnxRuntime  = "ONNXRUNTIME_LIB"
	EnvModelDir     = "TT_MODEL_DIR"
)

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for tranquil.yaml in the current directory
// 3. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	if _, err := os.Stat(XDGConfigFile()); err == nil {
		return XDGConfigFile()
	}

	return ""
}

// Load builds the configuration from defaults, the first configuration file found
// and the environment, then validates it.
//
// Arguments:
//   - configPath: An explicit file path, or empty to search the default locations.
//
// Returns:
//   - *Config: The configuration.
//   - error: ErrConfigNotFound for a missing explicit file, a parse error or a validation error.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if configPath != "" && path == "" {
		return nil, errors.Wrap(ErrConfigNotFound, configPath)
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return nil
}

// ApplyEnv overlays environment overrides onto c. lookup is os.LookupEnv outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidPort, "%s=%q", EnvPort, v)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvGeminiAPIKey); ok && v != "" {
		c.Generation.APIKey = v
	}
	if v, ok := lookup(EnvGeminiModel); ok && v != "" {
		c.Generation.Model = v
	}
	if v, ok := lookup(EnvOnnxRuntime); ok && v != "" {
		c.Runtime.Library = v
	}
	if v, ok := lookup(EnvModelDir); ok && v != "" {
		c.Detection.ModelDir = v
	}
	return nil
}
