package common

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBoundingBoxString verifies that bounding box string formatting works correctly.
func TestBoundingBoxString(t *testing.T) {
	tests := []struct {
		name     string
		box      BoundingBox
		expected string
	}{
		{
			name: "leaf blast with high confidence",
			box: BoundingBox{
				Label:      "blast",
				Confidence: 0.95,
				X1:         100.123,
				Y1:         200.456,
				X2:         300.789,
				Y2:         400.012,
			},
			expected: "Object blast (confidence 0.950000): (100.12, 200.46), (300.79, 400.01)",
		},
		{
			name: "zero sized box",
			box: BoundingBox{
				Label:      "onion",
				Confidence: 0.5,
			},
			expected: "Object onion (confidence 0.500000): (0.00, 0.00), (0.00, 0.00)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.box.String())
		})
	}
}

func TestBoundingBoxCaption(t *testing.T) {
	box := BoundingBox{Label: "chili", Confidence: 0.876}
	assert.Equal(t, "chili 0.88", box.Caption())
}

func TestBoundingBoxToRect(t *testing.T) {
	box := BoundingBox{X1: 200.7, Y1: 300.2, X2: 100.5, Y2: 100.5}
	assert.Equal(t, image.Rect(100, 100, 200, 300), box.ToRect())
}

func TestBoundingBoxIoU(t *testing.T) {
	tests := []struct {
		name     string
		a, b     BoundingBox
		expected float32
	}{
		{
			name:     "partial overlap",
			a:        BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100},
			b:        BoundingBox{X1: 50, Y1: 50, X2: 150, Y2: 150},
			expected: 2500.0 / 17500.0,
		},
		{
			name:     "identical",
			a:        BoundingBox{X1: 10, Y1: 10, X2: 20, Y2: 20},
			b:        BoundingBox{X1: 10, Y1: 10, X2: 20, Y2: 20},
			expected: 1,
		},
		{
			name:     "disjoint",
			a:        BoundingBox{X1: 0, Y1: 0, X2: 10, Y2: 10},
			b:        BoundingBox{X1: 20, Y1: 20, X2: 30, Y2: 30},
			expected: 0,
		},
		{
			name:     "both empty",
			a:        BoundingBox{},
			b:        BoundingBox{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.a.IoU(&tt.b), 1e-4)
		})
	}
}
