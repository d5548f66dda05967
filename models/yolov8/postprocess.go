package yolov8

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/nvr-ai/tranquil-trails/images"
	"github.com/nvr-ai/tranquil-trails/models/postprocess"
)

// PostProcess decodes the transposed YOLOv8 head output.
//
// The tensor has shape [1, 4+nc, N]: rows 0..3 hold cx, cy, w, h in input pixels
// for every anchor and the remaining nc rows hold per-class scores. Boxes are
// scaled back to the original image, filtered by the confidence threshold and
// reduced with greedy NMS.
//
// Arguments:
//   - output: The flattened output tensor.
//   - dims: The output tensor shape.
//   - original: The original image size.
//
// Returns:
//   - []postprocess.Result: Detections sorted by descending score.
//   - error: An error if the tensor shape is inconsistent.
func (m *YOLOv8) PostProcess(output []float32, dims []int64, original image.Point) ([]postprocess.Result, error) {
	if len(dims) != 3 || dims[0] != 1 {
		return nil, fmt.Errorf("unexpected output shape %v, want [1, 4+nc, N]", dims)
	}
	rows, anchors := int(dims[1]), int(dims[2])
	if rows <= 4 || anchors <= 0 {
		return nil, fmt.Errorf("unexpected output shape %v, want [1, 4+nc, N]", dims)
	}
	if len(output) < rows*anchors {
		return nil, fmt.Errorf("output holds %d floats, shape %v needs %d", len(output), dims, rows*anchors)
	}
	numClasses := rows - 4

	scaleX := float32(original.X) / float32(m.options.InputShape.X)
	scaleY := float32(original.Y) / float32(m.options.InputShape.Y)
	maxX, maxY := float32(original.X), float32(original.Y)

	results := make([]postprocess.Result, 0, 64)
	for idx := 0; idx < anchors; idx++ {
		classID := 0
		probability := float32(-1)
		for col := 0; col < numClasses; col++ {
			p := output[anchors*(col+4)+idx]
			if p > probability {
				probability = p
				classID = col
			}
		}
		if probability < m.options.ConfidenceThreshold {
			continue
		}

		xc, yc := output[idx], output[anchors+idx]
		w, h := output[2*anchors+idx], output[3*anchors+idx]

		x1 := math32.Max(0, (xc-w/2)*scaleX)
		y1 := math32.Max(0, (yc-h/2)*scaleY)
		x2 := math32.Min(maxX, (xc+w/2)*scaleX)
		y2 := math32.Min(maxY, (yc+h/2)*scaleY)
		if x2 <= x1 || y2 <= y1 {
			continue
		}

		results = append(results, postprocess.Result{
			Box: images.Rect{
				X1: int(math32.Round(x1)),
				Y1: int(math32.Round(y1)),
				X2: int(math32.Round(x2)),
				Y2: int(math32.Round(y2)),
			},
			Score: probability,
			Class: classID,
		})
	}

	postprocess.SortByScore(results)
	return postprocess.ApplyGreedyNMS(results, m.options.NMS), nil
}
