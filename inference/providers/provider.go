// Package providers - Execution provider selection for onnxruntime sessions.
package providers

import (
	"fmt"
	"strings"
)

// ProviderBackend represents different ONNX Runtime execution providers.
type ProviderBackend string

const (
	// CPUProviderBackend runs on the default onnxruntime CPU kernels.
	CPUProviderBackend ProviderBackend = "cpu"
	// CUDAProviderBackend uses NVIDIA CUDA for GPU acceleration.
	CUDAProviderBackend ProviderBackend = "cuda"
	// CoreMLProviderBackend uses Apple CoreML for macOS acceleration.
	CoreMLProviderBackend ProviderBackend = "coreml"
	// OpenVINOProviderBackend uses Intel OpenVINO for inference optimization.
	OpenVINOProviderBackend ProviderBackend = "openvino"
)

// Backends lists every supported backend.
var Backends = []ProviderBackend{
	CPUProviderBackend,
	CUDAProviderBackend,
	CoreMLProviderBackend,
	OpenVINOProviderBackend,
}

// ParseBackend resolves a backend name; empty selects the CPU backend.
//
// Arguments:
//   - s: The backend name, case-insensitive.
//
// Returns:
//   - ProviderBackend: The matching backend.
//   - error: An error if the name is not a supported backend.
func ParseBackend(s string) (ProviderBackend, error) {
	name := ProviderBackend(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return CPUProviderBackend, nil
	}
	for _, b := range Backends {
		if b == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("unsupported execution provider: %q", s)
}

// Config selects the execution provider and threading for every session.
type Config struct {
	// Backend specifies the backend to use.
	Backend ProviderBackend `json:"backend" yaml:"backend"`
	// IntraOpThreads parallelizes execution within graph nodes. 0 keeps the runtime default.
	IntraOpThreads int `json:"intra_op_threads" yaml:"intra_op_threads"`
	// InterOpThreads parallelizes execution across graph nodes. 0 keeps the runtime default.
	InterOpThreads int `json:"inter_op_threads" yaml:"inter_op_threads"`
	// CUDA holds the options applied when Backend is cuda.
	CUDA CUDAOptions `json:"cuda" yaml:"cuda"`
	// CoreML holds the options applied when Backend is coreml.
	CoreML CoreMLOptions `json:"coreml" yaml:"coreml"`
	// OpenVINO holds the options applied when Backend is openvino.
	OpenVINO OpenVINOOptions `json:"openvino" yaml:"openvino"`
}

// DefaultConfig returns a CPU configuration with runtime-chosen thread counts.
func DefaultConfig() Config {
	return Config{
		Backend:  CPUProviderBackend,
		OpenVINO: DefaultOpenVINOOptions(),
	}
}
