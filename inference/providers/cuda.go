package providers

import (
	"strconv"

	ort "github.com/yalue/onnxruntime_go"
)

// CUDAOptions contains arguments for the CUDA provider.
// See:
// https://onnxruntime.ai/docs/execution-providers/CUDA-ExecutionProvider.html#configuration-options
type CUDAOptions struct {
	// The device ID.
	DeviceID int `json:"device_id" yaml:"device_id"`
	// The size limit of the device memory arena in bytes. 0 keeps the runtime default.
	GPUMemLimit int64 `json:"gpu_mem_limit" yaml:"gpu_mem_limit"`
	// The type of search done for cuDNN convolution algorithms.
	// 0: EXHAUSTIVE, 1: HEURISTIC, 2: DEFAULT.
	CudnnConvAlgoSearch int `json:"cudnn_conv_algo_search" yaml:"cudnn_conv_algo_search"`
}

// Values returns the options as the string map onnxruntime expects.
func (o CUDAOptions) Values() map[string]string {
	values := map[string]string{
		"device_id": strconv.Itoa(o.DeviceID),
	}
	if o.GPUMemLimit > 0 {
		values["gpu_mem_limit"] = strconv.FormatInt(o.GPUMemLimit, 10)
	}
	switch o.CudnnConvAlgoSearch {
	case 1:
		values["cudnn_conv_algo_search"] = "HEURISTIC"
	case 2:
		values["cudnn_conv_algo_search"] = "DEFAULT"
	default:
		values["cudnn_conv_algo_search"] = "EXHAUSTIVE"
	}
	return values
}

// ToNativeProviderOptions converts the CUDA options to onnxruntime CUDA provider options.
// The caller owns the returned options and must Destroy them.
func (o CUDAOptions) ToNativeProviderOptions() (*ort.CUDAProviderOptions, error) {
	opts, err := ort.NewCUDAProviderOptions()
	if err != nil {
		return nil, err
	}

	if err := opts.Update(o.Values()); err != nil {
		opts.Destroy()
		return nil, err
	}

	return opts, nil
}
