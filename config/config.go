// Package config - Application configuration: defaults, YAML file and environment overrides.
package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nvr-ai/tranquil-trails/generation"
	"github.com/nvr-ai/tranquil-trails/inference/providers"
	"github.com/nvr-ai/tranquil-trails/models"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "tranquil-trails"

	DefaultAddress         = "0.0.0.0"
	DefaultPort            = 8501
	DefaultMaxUploadBytes  = 50 << 20
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 2 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second

	DefaultConfidenceThreshold = 0.25
	DefaultIoUThreshold        = 0.45
	DefaultInputSize           = 640

	DefaultGenerationTimeout = time.Minute

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds every setting of the application.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Runtime    RuntimeConfig    `yaml:"runtime"`
	Detection  DetectionConfig  `yaml:"detection"`
	Generation GenerationConfig `yaml:"generation"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	Port            int           `yaml:"port"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RuntimeConfig configures onnxruntime.
type RuntimeConfig struct {
	// Library is the onnxruntime shared library path; empty uses the platform default.
	Library  string           `yaml:"library"`
	Provider providers.Config `yaml:"provider"`
}

// DetectionConfig configures the three crop models.
type DetectionConfig struct {
	// ModelDir is prepended to relative model paths.
	ModelDir string      `yaml:"model_dir"`
	Paddy    ModelConfig `yaml:"paddy"`
	Chili    ModelConfig `yaml:"chili"`
	Onion    ModelConfig `yaml:"onion"`
}

// ModelConfig configures one crop model.
type ModelConfig struct {
	Path                string   `yaml:"path"`
	Classes             []string `yaml:"classes"`
	InputSize           int      `yaml:"input_size"`
	ConfidenceThreshold float32  `yaml:"confidence_threshold"`
	IoUThreshold        float32  `yaml:"iou_threshold"`
	ClassAgnosticNMS    bool     `yaml:"class_agnostic_nms"`
}

// GenerationConfig configures the chat backend.
type GenerationConfig struct {
	Model   string        `yaml:"model"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`

	// Params are always generation.DefaultParams(); they are not read from the file.
	Params generation.Params `yaml:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         DefaultAddress,
			Port:            DefaultPort,
			MaxUploadBytes:  DefaultMaxUploadBytes,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Runtime: RuntimeConfig{
			Provider: providers.DefaultConfig(),
		},
		Detection: DetectionConfig{
			ModelDir: ".",
			Paddy:    defaultModel(models.CropPaddy),
			Chili:    defaultModel(models.CropChili),
			Onion:    defaultModel(models.CropOnion),
		},
		Generation: GenerationConfig{
			Model:   generation.DefaultModel,
			Timeout: DefaultGenerationTimeout,
			Params:  generation.DefaultParams(),
		},
		Log: LogConfig{
			Format: LogFormatText,
		},
	}
}

func defaultModel(crop models.Crop) ModelConfig {
	return ModelConfig{
		Path:                crop.ModelFile(),
		InputSize:           DefaultInputSize,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		IoUThreshold:        DefaultIoUThreshold,
	}
}

// Model returns the model configuration of a crop.
func (d *DetectionConfig) Model(crop models.Crop) (ModelConfig, bool) {
	switch crop {
	case models.CropPaddy:
		return d.Paddy, true
	case models.CropChili:
		return d.Chili, true
	case models.CropOnion:
		return d.Onion, true
	default:
		return ModelConfig{}, false
	}
}

// ModelPath resolves a model path against ModelDir.
func (d *DetectionConfig) ModelPath(path string) string {
	if path == "" || filepath.IsAbs(path) || d.ModelDir == "" {
		return path
	}
	return filepath.Join(d.ModelDir, path)
}

// XDGConfigFile returns the per-user configuration file path.
// On Linux: ~/.config/tranquil-trails/config.yaml
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}
