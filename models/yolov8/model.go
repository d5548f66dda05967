// Package yolov8 - YOLOv8 detection head exported to ONNX by ultralytics.
package yolov8

import (
	"fmt"
	"image"

	"github.com/nvr-ai/tranquil-trails/models/model"
	"github.com/nvr-ai/tranquil-trails/models/postprocess"
)

// DefaultInputSize is the square input resolution ultralytics exports by default.
const DefaultInputSize = 640

// DefaultConfidenceThreshold matches the ultralytics predict default.
const DefaultConfidenceThreshold = 0.25

// YOLOv8 is the instance of the YOLOv8 model.
type YOLOv8 struct {
	options model.BaseModel
}

// Options returns the options for the YOLOv8 model.
//
// Returns:
//   - The options for the YOLOv8 model.
func (m *YOLOv8) Options() model.BaseModel {
	return m.options
}

// NewModel creates a new model.
//
// Arguments:
//   - args: The arguments for creating a new model.
//
// Returns:
//   - The model.
//   - An error if the arguments are invalid.
func NewModel(args model.NewModelArgs) (*YOLOv8, error) {
	if args.Path == "" {
		return nil, fmt.Errorf("NewModel requires path to be set")
	}

	shape := args.InputShape
	if shape == (image.Point{}) {
		shape = image.Pt(DefaultInputSize, DefaultInputSize)
	}
	if shape.X <= 0 || shape.Y <= 0 {
		return nil, fmt.Errorf("NewModel requires a positive input shape, got %v", shape)
	}

	threshold := args.ConfidenceThreshold
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}

	nms := args.NMS
	if nms == nil {
		nms = postprocess.DefaultNMSConfig()
	}

	return &YOLOv8{
		options: model.BaseModel{
			Name:                model.ModelNameYOLOv8,
			Family:              model.ModelFamilyYOLO,
			Path:                args.Path,
			InputShape:          shape,
			Classes:             args.Classes,
			ConfidenceThreshold: threshold,
			NMS:                 nms,
		},
	}, nil
}
