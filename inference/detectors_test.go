package inference

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nvr-ai/tranquil-trails/common"
	"github.com/nvr-ai/tranquil-trails/inference/providers"
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/nvr-ai/tranquil-trails/models/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	path   string
	closed atomic.Bool
}

func (e *stubEngine) Predict(context.Context, image.Image) ([]common.BoundingBox, error) {
	return nil, nil
}

func (e *stubEngine) Close() error {
	e.closed.Store(true)
	return nil
}

func cropConfigs() []DetectorConfig {
	var configs []DetectorConfig
	for _, crop := range models.Crops() {
		configs = append(configs, DetectorConfig{
			Crop:  crop,
			Model: model.NewModelArgs{Path: filepath.Join("models", crop.ModelFile())},
		})
	}
	return configs
}

func TestLoadDetectorSetMapsCropsToModels(t *testing.T) {
	build := func(_ providers.Config, cfg DetectorConfig) (Engine, error) {
		return &stubEngine{path: cfg.Model.Path}, nil
	}

	set, err := LoadDetectorSet(context.Background(), providers.DefaultConfig(), cropConfigs(), build)
	require.NoError(t, err)

	expected := map[models.Crop]string{
		models.CropPaddy: "best1.onnx",
		models.CropChili: "best2.onnx",
		models.CropOnion: "best3.onnx",
	}
	for crop, file := range expected {
		e, err := set.Engine(crop)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("models", file), e.(*stubEngine).path)
	}

	_, err = set.Engine(models.Crop("corn"))
	assert.ErrorIs(t, err, models.ErrUnknownCrop)
}

func TestLoadDetectorSetClosesOnFailure(t *testing.T) {
	var mu sync.Mutex
	var built []*stubEngine
	build := func(_ providers.Config, cfg DetectorConfig) (Engine, error) {
		if cfg.Crop == models.CropOnion {
			return nil, errors.New("corrupt model")
		}
		e := &stubEngine{path: cfg.Model.Path}
		mu.Lock()
		built = append(built, e)
		mu.Unlock()
		return e, nil
	}

	_, err := LoadDetectorSet(context.Background(), providers.DefaultConfig(), cropConfigs(), build)
	require.Error(t, err)
	assert.ErrorContains(t, err, "corrupt model")

	for _, e := range built {
		assert.True(t, e.closed.Load())
	}
}

func TestLoadDetectorSetRejectsUnknownCropBeforeBuilding(t *testing.T) {
	var builds atomic.Int32
	build := func(_ providers.Config, cfg DetectorConfig) (Engine, error) {
		builds.Add(1)
		return &stubEngine{path: cfg.Model.Path}, nil
	}

	configs := append(cropConfigs(), DetectorConfig{
		Crop:  models.Crop("corn"),
		Model: model.NewModelArgs{Path: "corn.onnx"},
	})

	_, err := LoadDetectorSet(context.Background(), providers.DefaultConfig(), configs, build)
	assert.ErrorIs(t, err, models.ErrUnknownCrop)
	assert.Zero(t, builds.Load(), "no engine is built when a crop is invalid")
}

func TestDetectorsLoadOnce(t *testing.T) {
	var builds atomic.Int32
	build := func(_ providers.Config, cfg DetectorConfig) (Engine, error) {
		builds.Add(1)
		return &stubEngine{path: cfg.Model.Path}, nil
	}

	d := NewDetectors(providers.DefaultConfig(), cropConfigs(), build)
	assert.Equal(t, 0, d.Loads())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			crop := models.Crops()[i%3]
			_, err := d.Engine(crop)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, d.Loads())
	assert.Equal(t, int32(3), builds.Load())

	require.NoError(t, d.Close())
}

func TestDetectorsCloseBeforeLoad(t *testing.T) {
	d := NewDetectors(providers.DefaultConfig(), cropConfigs(), BuildONNX)
	assert.NoError(t, d.Close())
	assert.Equal(t, 0, d.Loads())
}

func TestBuildONNXWithRealModel(t *testing.T) {
	modelPath := filepath.Join("..", "models", "best1.onnx")
	if _, err := os.Stat(modelPath); err != nil {
		t.Skip("best1.onnx not present")
	}
	if err := InitializeRuntime(os.Getenv("ONNXRUNTIME_LIB")); err != nil {
		t.Skipf("onnxruntime unavailable: %v", err)
	}

	e, err := BuildONNX(providers.DefaultConfig(), DetectorConfig{
		Crop:  models.CropPaddy,
		Model: model.NewModelArgs{Path: modelPath},
	})
	require.NoError(t, err)
	defer e.Close()

	_, err = e.Predict(context.Background(), image.NewRGBA(image.Rect(0, 0, 320, 240)))
	require.NoError(t, err)
}
