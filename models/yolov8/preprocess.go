package yolov8

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// PreProcess resizes the image to the model input shape and lays it out as a
// CHW float32 tensor with RGB values scaled to [0, 1].
//
// Arguments:
//   - img: The image to prepare.
//
// Returns:
//   - []float32: The tensor data, 3*H*W values.
//   - error: An error if the image is nil or empty.
func (m *YOLOv8) PreProcess(img image.Image) ([]float32, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	if img.Bounds().Empty() {
		return nil, errors.New("image has no pixels")
	}

	width, height := m.options.InputShape.X, m.options.InputShape.Y
	channelSize := width * height
	data := make([]float32, channelSize*3)
	red := data[0:channelSize]
	green := data[channelSize : channelSize*2]
	blue := data[channelSize*2 : channelSize*3]

	resized := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	bounds := resized.Bounds()

	i := 0
	for y := bounds.Min.Y; y < bounds.Min.Y+height; y++ {
		for x := bounds.Min.X; x < bounds.Min.X+width; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			red[i] = float32(r>>8) / 255.0
			green[i] = float32(g>>8) / 255.0
			blue[i] = float32(b>>8) / 255.0
			i++
		}
	}

	return data, nil
}
