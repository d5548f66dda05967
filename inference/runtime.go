// Package inference - onnxruntime sessions, detection engines and the per-crop detector set.
package inference

import (
	"log/slog"
	"os"
	"sync"

	"github.com/nvr-ai/tranquil-trails/inference/providers"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

var runtimeMu sync.Mutex

// InitializeRuntime loads the onnxruntime shared library and prepares the environment.
// It is required once per process; later calls are no-ops.
//
// Arguments:
//   - libPath: Path to the onnxruntime shared library, empty for the platform default.
//
// Returns:
//   - error: An error if the library is missing or fails to initialize.
func InitializeRuntime(libPath string) error {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()

	if ort.IsInitialized() {
		return nil
	}

	if libPath == "" {
		libPath = providers.GetSharedLibPath()
	}
	if _, err := os.Stat(libPath); err != nil {
		return errors.Wrapf(err, "ONNX Runtime library not found at %s", libPath)
	}

	ort.SetSharedLibraryPath(libPath)
	if err := ort.InitializeEnvironment(); err != nil {
		return errors.Wrap(err, "error initializing ORT environment")
	}

	slog.Debug("onnxruntime initialized", "library", libPath)
	return nil
}

// DestroyRuntime releases the onnxruntime environment after every session is closed.
func DestroyRuntime() error {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()

	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}
