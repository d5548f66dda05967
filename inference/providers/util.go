package providers

import "runtime"

// GetSharedLibPath returns the conventional onnxruntime shared library location for the
// current platform, relative to the working directory.
//
// Returns:
//   - string: The path to the shared library.
func GetSharedLibPath() string {
	switch runtime.GOOS {
	case "windows":
		return "./third_party/onnxruntime.dll"
	case "darwin":
		return "./third_party/libonnxruntime.dylib"
	default:
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.so"
		}
		return "./third_party/onnxruntime.so"
	}
}
