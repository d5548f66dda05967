// Package service - Detection, chat and login use cases behind the pages.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/nvr-ai/tranquil-trails/common"
	"github.com/nvr-ai/tranquil-trails/images"
	"github.com/nvr-ai/tranquil-trails/inference"
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/pkg/errors"
)

// Detectors resolves the engine serving a crop.
type Detectors interface {
	Engine(crop models.Crop) (inference.Engine, error)
}

// DetectionResult is everything the detect page shows for one upload.
type DetectionResult struct {
	Crop      models.Crop
	Original  images.Image
	Annotated images.Image
	Boxes     []common.BoundingBox
	Metadata  images.Metadata
	Checksum  string
	Elapsed   time.Duration
}

// Detection runs the selected crop model over an uploaded image.
type Detection struct {
	detectors Detectors
	logger    *slog.Logger
}

// NewDetection creates the detection use case.
func NewDetection(detectors Detectors, logger *slog.Logger) *Detection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detection{detectors: detectors, logger: logger}
}

// Detect decodes the upload, runs the crop model and draws the detections on a copy.
//
// The original bytes are returned unchanged for display. Nothing is stored.
//
// Arguments:
//   - ctx: The request context.
//   - crop: The selected crop.
//   - data: The uploaded JPEG or PNG bytes.
//
// Returns:
//   - *DetectionResult: The original and annotated images with the detections.
//   - error: ErrEmptyImage, ErrUnsupportedFormat, a decode error or an inference error.
func (s *Detection) Detect(ctx context.Context, crop models.Crop, data []byte) (*DetectionResult, error) {
	format, err := images.SniffFormat(data)
	if err != nil {
		return nil, err
	}

	engine, err := s.detectors.Engine(crop)
	if err != nil {
		return nil, err
	}

	mat, err := images.Decode(data)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	img, err := images.ToImage(mat)
	if err != nil {
		return nil, err
	}

	checksum := images.ComputeMatChecksum(mat)

	start := time.Now()
	boxes, err := engine.Predict(ctx, img)
	if err != nil {
		return nil, errors.Wrapf(err, "%s detection", crop)
	}
	elapsed := time.Since(start)

	annotatedMat := images.Annotate(mat, boxes)
	defer annotatedMat.Close()

	annotated, err := images.EncodeJPEG(annotatedMat)
	if err != nil {
		return nil, err
	}

	s.logger.Info("detection",
		"crop", crop,
		"checksum", checksum,
		"width", mat.Cols(),
		"height", mat.Rows(),
		"detections", len(boxes),
		"elapsed", elapsed)

	return &DetectionResult{
		Crop: crop,
		Original: images.Image{
			Format: format,
			Data:   data,
			Width:  mat.Cols(),
			Height: mat.Rows(),
		},
		Annotated: annotated,
		Boxes:     boxes,
		Metadata:  images.ReadMetadata(data),
		Checksum:  checksum,
		Elapsed:   elapsed,
	}, nil
}
