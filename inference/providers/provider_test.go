package providers

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    ProviderBackend
		wantErr bool
	}{
		{in: "", want: CPUProviderBackend},
		{in: "cpu", want: CPUProviderBackend},
		{in: " CUDA ", want: CUDAProviderBackend},
		{in: "CoreML", want: CoreMLProviderBackend},
		{in: "openvino", want: OpenVINOProviderBackend},
		{in: "tensorrt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoreMLFlags(t *testing.T) {
	assert.Equal(t, uint32(0), CoreMLOptions{}.Flags())
	assert.Equal(t, uint32(0x019), CoreMLOptions{
		CPUOnly:                  true,
		RequireStaticInputShapes: true,
		MLProgram:                true,
	}.Flags())
}

func TestOpenVINOValues(t *testing.T) {
	assert.Equal(t, map[string]string{
		"device_type": "CPU",
		"precision":   "FP32",
	}, DefaultOpenVINOOptions().Values())

	assert.Equal(t, "4", OpenVINOOptions{NumOfThreads: 4}.Values()["num_of_threads"])
}

func TestCUDAValues(t *testing.T) {
	values := CUDAOptions{DeviceID: 1, GPUMemLimit: 1 << 30, CudnnConvAlgoSearch: 1}.Values()
	assert.Equal(t, "1", values["device_id"])
	assert.Equal(t, "1073741824", values["gpu_mem_limit"])
	assert.Equal(t, "HEURISTIC", values["cudnn_conv_algo_search"])

	_, ok := CUDAOptions{}.Values()["gpu_mem_limit"]
	assert.False(t, ok)
}

func TestGetSharedLibPath(t *testing.T) {
	path := GetSharedLibPath()
	assert.True(t, strings.HasPrefix(path, "./third_party/"))
	if runtime.GOOS == "linux" {
		assert.True(t, strings.HasSuffix(path, ".so"))
	}
}
