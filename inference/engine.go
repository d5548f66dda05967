package inference

import (
	"context"
	"image"
	"sync"

	"github.com/nvr-ai/tranquil-trails/common"
	"github.com/nvr-ai/tranquil-trails/inference/providers"
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/nvr-ai/tranquil-trails/models/model"
	"github.com/pkg/errors"
)

// Engine defines the interface for detection inference engines.
type Engine interface {
	// Predict detects objects in img. Boxes are in the pixel space of img.
	Predict(ctx context.Context, img image.Image) ([]common.BoundingBox, error)
	// Close releases the native resources held by the engine.
	Close() error
}

// runner executes one forward pass over a preallocated input.
type runner interface {
	Run(input []float32) ([]float32, []int64, error)
	Close() error
}

// engine implements the Engine interface over a model contract and a session.
type engine struct {
	mu      sync.Mutex
	model   model.Model
	session runner
	classes *models.OutputClassSet
}

// Predict predicts the detections of the model.
//
// Arguments:
//   - ctx: The context for the prediction.
//   - img: The image to predict.
//
// Returns:
//   - []common.BoundingBox: The detections, highest confidence first.
//   - error: The error if any.
func (e *engine) Predict(ctx context.Context, img image.Image) ([]common.BoundingBox, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, err := e.model.PreProcess(img)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare input")
	}

	e.mu.Lock()
	output, dims, err := e.session.Run(input)
	e.mu.Unlock()
	if err != nil {
		return nil, errors.Wrap(err, "failed to run inference")
	}

	bounds := img.Bounds()
	results, err := e.model.PostProcess(output, dims, bounds.Size())
	if err != nil {
		return nil, errors.Wrap(err, "failed to process output")
	}

	boxes := make([]common.BoundingBox, 0, len(results))
	for _, r := range results {
		boxes = append(boxes, common.BoundingBox{
			ClassID:    r.Class,
			Label:      e.classes.Name(r.Class),
			Confidence: r.Score,
			X1:         float32(r.Box.X1 + bounds.Min.X),
			Y1:         float32(r.Box.Y1 + bounds.Min.Y),
			X2:         float32(r.Box.X2 + bounds.Min.X),
			Y2:         float32(r.Box.Y2 + bounds.Min.Y),
		})
	}

	return boxes, nil
}

// Close closes the session.
func (e *engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Close()
}

// EngineBuilder assembles an Engine with a fluent API.
type EngineBuilder struct {
	provider providers.Config
	model    model.Model
	classes  *models.OutputClassSet
	session  runner
	err      error
}

// NewEngineBuilder creates a new engine builder on the CPU provider.
//
// Returns:
//   - *EngineBuilder: The engine builder.
func NewEngineBuilder() *EngineBuilder {
	return &EngineBuilder{provider: providers.DefaultConfig()}
}

// WithProvider sets the execution provider for the engine.
//
// Arguments:
//   - cfg: The provider configuration.
//
// Returns:
//   - *EngineBuilder: The engine builder.
func (b *EngineBuilder) WithProvider(cfg providers.Config) *EngineBuilder {
	if b.HasError() {
		return b
	}
	b.provider = cfg
	return b
}

// WithModel sets the model for the engine. Class labels default to the model classes.
//
// Arguments:
//   - args: The model arguments.
//
// Returns:
//   - *EngineBuilder: The engine builder.
func (b *EngineBuilder) WithModel(args model.NewModelArgs) *EngineBuilder {
	if b.HasError() {
		return b
	}
	m, err := models.NewModel(args)
	if err != nil {
		b.err = err
		return b
	}
	b.model = m
	b.classes = models.NewOutputClassSet(args.Classes)
	return b
}

// withRunner replaces the onnxruntime session, used by tests.
func (b *EngineBuilder) withRunner(r runner) *EngineBuilder {
	b.session = r
	return b
}

// HasError checks if the engine builder has errors.
//
// Returns:
//   - bool: True if there are errors, false otherwise.
func (b *EngineBuilder) HasError() bool {
	return b.err != nil
}

// Build opens the session and builds the engine.
//
// Returns:
//   - Engine: The engine.
//   - error: The error if any.
func (b *EngineBuilder) Build() (Engine, error) {
	if b.HasError() {
		return nil, b.err
	}
	if b.model == nil {
		return nil, errors.New("model not configured")
	}

	session := b.session
	if session == nil {
		opts := b.model.Options()
		s, err := NewSession(NewSessionArgs{
			ModelPath:  opts.Path,
			InputShape: opts.InputShape,
			Provider:   b.provider,
		})
		if err != nil {
			return nil, err
		}
		session = s
	}

	return &engine{
		model:   b.model,
		session: session,
		classes: b.classes,
	}, nil
}

// MustBuild builds the engine and panics if there is an error.
//
// Returns:
//   - Engine: The engine.
func (b *EngineBuilder) MustBuild() Engine {
	e, err := b.Build()
	if err != nil {
		panic(err)
	}
	return e
}
