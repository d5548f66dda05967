package providers

import (
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// NewSessionOptions builds onnxruntime session options with threading, the extended
// graph optimization level and the configured execution provider appended.
//
// The caller owns the returned options and must Destroy them once the session
// has been created.
//
// Arguments:
//   - cfg: The provider configuration.
//
// Returns:
//   - *ort.SessionOptions: The session options.
//   - error: An error if the runtime rejects an option or the provider is unavailable.
func NewSessionOptions(cfg Config) (*ort.SessionOptions, error) {
	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "error creating ORT session options")
	}

	if err := applyConfig(options, cfg); err != nil {
		options.Destroy()
		return nil, err
	}

	return options, nil
}

func applyConfig(options *ort.SessionOptions, cfg Config) error {
	if cfg.IntraOpThreads > 0 {
		if err := options.SetIntraOpNumThreads(cfg.IntraOpThreads); err != nil {
			return errors.Wrap(err, "error setting intra-op threads")
		}
	}
	if cfg.InterOpThreads > 0 {
		if err := options.SetInterOpNumThreads(cfg.InterOpThreads); err != nil {
			return errors.Wrap(err, "error setting inter-op threads")
		}
	}
	if err := options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended); err != nil {
		return errors.Wrap(err, "error setting graph optimization level")
	}

	switch cfg.Backend {
	case CPUProviderBackend, "":
		return nil
	case CUDAProviderBackend:
		cudaOptions, err := cfg.CUDA.ToNativeProviderOptions()
		if err != nil {
			return errors.Wrap(err, "error creating CUDA provider options")
		}
		defer cudaOptions.Destroy()
		if err := options.AppendExecutionProviderCUDA(cudaOptions); err != nil {
			return errors.Wrap(err, "error enabling CUDA")
		}
	case CoreMLProviderBackend:
		if err := options.AppendExecutionProviderCoreML(cfg.CoreML.Flags()); err != nil {
			return errors.Wrap(err, "error enabling CoreML")
		}
	case OpenVINOProviderBackend:
		if err := options.AppendExecutionProviderOpenVINO(cfg.OpenVINO.Values()); err != nil {
			return errors.Wrap(err, "error enabling OpenVINO")
		}
	default:
		return errors.Errorf("unsupported execution provider: %s", cfg.Backend)
	}

	return nil
}
