package providers

// CoreML flags, see coreml_provider_factory.h in onnxruntime.
const (
	coreMLFlagUseCPUOnly           uint32 = 0x001
	coreMLFlagOnlyAllowStaticShape uint32 = 0x008
	coreMLFlagCreateMLProgram      uint32 = 0x010
)

// CoreMLOptions contains arguments for the CoreML provider.
// See: https://onnxruntime.ai/docs/execution-providers/CoreML-ExecutionProvider.html
type CoreMLOptions struct {
	// Limit CoreML to running on CPU only.
	CPUOnly bool `json:"cpu_only" yaml:"cpu_only"`
	// Only allow nodes with static input shapes.
	RequireStaticInputShapes bool `json:"require_static_input_shapes" yaml:"require_static_input_shapes"`
	// Create an MLProgram format model. Requires macOS 12+.
	MLProgram bool `json:"ml_program" yaml:"ml_program"`
}

// Flags packs the options into the bit set passed to onnxruntime.
func (o CoreMLOptions) Flags() uint32 {
	var flags uint32
	if o.CPUOnly {
		flags |= coreMLFlagUseCPUOnly
	}
	if o.RequireStaticInputShapes {
		flags |= coreMLFlagOnlyAllowStaticShape
	}
	if o.MLProgram {
		flags |= coreMLFlagCreateMLProgram
	}
	return flags
}
