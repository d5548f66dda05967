// Package model - Contract shared by the detection model families.
package model

import (
	"image"

	"github.com/nvr-ai/tranquil-trails/models/postprocess"
)

// Family is the family of models.
type Family string

const (
	// ModelFamilyYOLO is the YOLO model family.
	ModelFamilyYOLO Family = "yolo"
)

// Name is the unique identifier of a model architecture.
type Name string

const (
	// ModelNameYOLOv8 is the name of the YOLOv8 detection head (ultralytics export).
	ModelNameYOLOv8 Name = "yolov8"
)

// BaseModel is the base model for all models.
type BaseModel struct {
	Name                Name
	Family              Family
	Path                string
	InputShape          image.Point
	Classes             []string
	ConfidenceThreshold float32
	NMS                 *postprocess.NMSConfig
}

// Model is a detection model that knows how to turn an image into an input tensor
// and a raw output tensor into detections.
type Model interface {
	// Options returns the model settings.
	Options() BaseModel
	// PreProcess converts an image into a CHW float32 tensor of Options().InputShape.
	PreProcess(img image.Image) ([]float32, error)
	// PostProcess decodes the output tensor of shape dims into detections scaled to
	// the original image size.
	PostProcess(output []float32, dims []int64, original image.Point) ([]postprocess.Result, error)
}

// NewModelArgs is the arguments for creating a new model.
type NewModelArgs struct {
	Name                Name                   `json:"name" yaml:"name"`
	Path                string                 `json:"path" yaml:"path"`
	NMS                 *postprocess.NMSConfig `json:"nms" yaml:"nms"`
	Classes             []string               `json:"classes" yaml:"classes"`
	InputShape          image.Point            `json:"input_shape" yaml:"input_shape"`
	ConfidenceThreshold float32                `json:"confidence_threshold" yaml:"confidence_threshold"`
}
