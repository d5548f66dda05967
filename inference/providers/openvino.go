package providers

import "strconv"

// OpenVINOOptions contains arguments for the OpenVINO provider.
// See:
// https://onnxruntime.ai/docs/execution-providers/OpenVINO-ExecutionProvider.html#summary-of-options
type OpenVINOOptions struct {
	// Overrides the accelerator hardware type, e.g. CPU, GPU or NPU.
	DeviceType string `json:"device_type" yaml:"device_type"`
	// FP32, FP16 or ACCURACY.
	Precision string `json:"precision" yaml:"precision"`
	// Overrides the default number of inference threads. 0 keeps the default.
	NumOfThreads int `json:"num_of_threads" yaml:"num_of_threads"`
}

// DefaultOpenVINOOptions targets the CPU device at full precision.
func DefaultOpenVINOOptions() OpenVINOOptions {
	return OpenVINOOptions{DeviceType: "CPU", Precision: "FP32"}
}

// Values returns the options as the string map onnxruntime expects.
func (o OpenVINOOptions) Values() map[string]string {
	values := map[string]string{}
	if o.DeviceType != "" {
		values["device_type"] = o.DeviceType
	}
	if o.Precision != "" {
		values["precision"] = o.Precision
	}
	if o.NumOfThreads > 0 {
		values["num_of_threads"] = strconv.Itoa(o.NumOfThreads)
	}
	return values
}
