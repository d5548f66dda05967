package inference

import (
	"context"
	"log/slog"
	"time"

	"github.com/nvr-ai/tranquil-trails/inference/providers"
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/nvr-ai/tranquil-trails/models/model"
	"github.com/nvr-ai/tranquil-trails/util"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// DetectorConfig binds one crop to its trained model.
type DetectorConfig struct {
	Crop  models.Crop
	Model model.NewModelArgs
}

// BuildFunc constructs the engine for one detector.
type BuildFunc func(provider providers.Config, cfg DetectorConfig) (Engine, error)

// BuildONNX builds an onnxruntime-backed engine.
func BuildONNX(provider providers.Config, cfg DetectorConfig) (Engine, error) {
	return NewEngineBuilder().
		WithProvider(provider).
		WithModel(cfg.Model).
		Build()
}

// DetectorSet holds one engine per crop. It is read-only once loaded.
type DetectorSet struct {
	engines map[models.Crop]Engine
}

// NewDetectorSet wraps prebuilt engines.
func NewDetectorSet(engines map[models.Crop]Engine) *DetectorSet {
	return &DetectorSet{engines: engines}
}

// LoadDetectorSet builds every configured engine concurrently. If any engine fails
// to build, the ones already built are closed and the first error is returned.
//
// Arguments:
//   - ctx: Cancels the pending builds.
//   - provider: The execution provider shared by all engines.
//   - configs: One entry per crop.
//   - build: The engine constructor, BuildONNX in production.
//
// Returns:
//   - *DetectorSet: The loaded detectors.
//   - error: The first build error.
func LoadDetectorSet(
	ctx context.Context,
	provider providers.Config,
	configs []DetectorConfig,
	build BuildFunc,
) (*DetectorSet, error) {
	for _, cfg := range configs {
		if !cfg.Crop.Valid() {
			return nil, errors.Wrapf(models.ErrUnknownCrop, "%q", cfg.Crop)
		}
	}

	built := make([]Engine, len(configs))
	g, ctx := errgroup.WithContext(ctx)

	for i, cfg := range configs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			e, err := build(provider, cfg)
			if err != nil {
				return errors.Wrapf(err, "loading %s model %s", cfg.Crop, cfg.Model.Path)
			}
			built[i] = e
			slog.Info("detection model loaded",
				"crop", cfg.Crop,
				"model", cfg.Model.Path,
				"elapsed", time.Since(start))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, e := range built {
			if e != nil {
				e.Close()
			}
		}
		return nil, err
	}

	engines := make(map[models.Crop]Engine, len(configs))
	for i, cfg := range configs {
		engines[cfg.Crop] = built[i]
	}
	return &DetectorSet{engines: engines}, nil
}

// Engine returns the engine for a crop.
//
// Arguments:
//   - crop: The crop selection.
//
// Returns:
//   - Engine: The engine.
//   - error: ErrUnknownCrop if no engine serves the crop.
func (s *DetectorSet) Engine(crop models.Crop) (Engine, error) {
	e, ok := s.engines[crop]
	if !ok {
		return nil, errors.Wrapf(models.ErrUnknownCrop, "no detector loaded for %q", crop)
	}
	return e, nil
}

// Close closes every engine and returns the first error.
func (s *DetectorSet) Close() error {
	var first error
	for crop, e := range s.engines {
		if err := e.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "closing %s detector", crop)
		}
	}
	return first
}

// Detectors memoizes a DetectorSet so it is built at most once per process.
type Detectors struct {
	lazy *util.Lazy[*DetectorSet]
}

// NewDetectors creates a memoized detector set that loads on first use.
func NewDetectors(provider providers.Config, configs []DetectorConfig, build BuildFunc) *Detectors {
	return &Detectors{
		lazy: util.NewLazy(func() (*DetectorSet, error) {
			return LoadDetectorSet(context.Background(), provider, configs, build)
		}),
	}
}

// Get returns the loaded set, building it on the first call.
func (d *Detectors) Get() (*DetectorSet, error) {
	return d.lazy.Get()
}

// Engine returns the engine for a crop, loading the set on the first call.
func (d *Detectors) Engine(crop models.Crop) (Engine, error) {
	set, err := d.lazy.Get()
	if err != nil {
		return nil, err
	}
	return set.Engine(crop)
}

// Loads reports how many times the set was built.
func (d *Detectors) Loads() int {
	return d.lazy.Loads()
}

// Close closes the set if it was loaded.
func (d *Detectors) Close() error {
	if !d.lazy.Loaded() {
		return nil
	}
	set, err := d.lazy.Get()
	if err != nil {
		return nil
	}
	return set.Close()
}
