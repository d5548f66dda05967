// Package common - Detection value types shared by inference, rendering and reporting.
package common

import (
	"fmt"
	"image"
)

// BoundingBox represents a detected object with its label, confidence, and coordinates
// in the pixel space of the original image.
type BoundingBox struct {
	ClassID        int
	Label          string
	Confidence     float32
	X1, Y1, X2, Y2 float32
}

// String formats the bounding box information for display.
//
// Returns:
// - A formatted string containing object class, confidence, and coordinates.
//
// @example
// box := BoundingBox{Label: "blast", Confidence: 0.95, X1: 100, Y1: 100, X2: 200, Y2: 300}
// fmt.Println(box.String()) // Output: Object blast (confidence 0.950000): (100.00, 100.00), (200.00, 300.00)
func (b *BoundingBox) String() string {
	return fmt.Sprintf("Object %s (confidence %f): (%.2f, %.2f), (%.2f, %.2f)",
		b.Label, b.Confidence, b.X1, b.Y1, b.X2, b.Y2)
}

// Caption is the short text drawn next to the box on the annotated image.
func (b *BoundingBox) Caption() string {
	return fmt.Sprintf("%s %.2f", b.Label, b.Confidence)
}

// ToRect converts the bounding box to an image.Rectangle.
//
// This method converts floating-point coordinates to integer coordinates
// suitable for drawing operations.
//
// Returns:
// - An image.Rectangle with canonicalized coordinates.
func (b *BoundingBox) ToRect() image.Rectangle {
	return image.Rect(int(b.X1), int(b.Y1), int(b.X2), int(b.Y2)).Canon()
}

// Intersection calculates the intersection area between two bounding boxes.
//
// Arguments:
// - other: The other bounding box to calculate intersection with.
//
// Returns:
// - The area of intersection in pixels as float32.
func (b *BoundingBox) Intersection(other *BoundingBox) float32 {
	r1 := b.ToRect()
	r2 := other.ToRect()
	intersected := r1.Intersect(r2).Canon().Size()
	return float32(intersected.X * intersected.Y)
}

// Union calculates the union area between two bounding boxes.
//
// Arguments:
// - other: The other bounding box to calculate union with.
//
// Returns:
// - The area of union in pixels as float32.
func (b *BoundingBox) Union(other *BoundingBox) float32 {
	intersectArea := b.Intersection(other)
	size1 := b.ToRect().Size()
	size2 := other.ToRect().Size()
	totalArea := float32(size1.X*size1.Y + size2.X*size2.Y)
	return totalArea - intersectArea
}

// IoU calculates the Intersection over Union between two bounding boxes.
//
// Returns 0 when both boxes are empty.
//
// @example
// box1 := BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100}
// box2 := BoundingBox{X1: 50, Y1: 50, X2: 150, Y2: 150}
// iou := box1.IoU(&box2) // Returns ~0.143 (2500/17500)
func (b *BoundingBox) IoU(other *BoundingBox) float32 {
	union := b.Union(other)
	if union <= 0 {
		return 0
	}
	return b.Intersection(other) / union
}
