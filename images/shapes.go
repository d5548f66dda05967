package images

// Rect is a lightweight bounding box.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 int
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Clamp restricts the rectangle to the [0,width)x[0,height) image plane.
//
// Arguments:
//   - width: The image width.
//   - height: The image height.
//
// Returns:
//   - Rect: The clamped rectangle.
func (r Rect) Clamp(width, height int) Rect {
	return Rect{
		X1: min(max(r.X1, 0), width),
		Y1: min(max(r.Y1, 0), height),
		X2: min(max(r.X2, 0), width),
		Y2: min(max(r.Y2, 0), height),
	}
}

// CalculateIoU measures the overlap between two rectangles as
// Area(Intersection) / Area(Union), a value in [0, 1].
//
// Non-overlapping and degenerate rectangles yield 0.
//
// Example Usage:
// ```go
//
//	rect1 := Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}
//	rect2 := Rect{X1: 5, Y1: 5, X2: 15, Y2: 15}
//	iouScore := CalculateIoU(rect1, rect2) // 25 / 175 = 0.142857
//
// ```
func CalculateIoU(r, o Rect) float32 {
	ix1 := max(r.X1, o.X1)
	iy1 := max(r.Y1, o.Y1)
	ix2 := min(r.X2, o.X2)
	iy2 := min(r.Y2, o.Y2)

	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0.0
	}
	interArea := interW * interH

	// Union(A, B) = Area(A) + Area(B) - Intersection(A, B)
	areaR := (r.X2 - r.X1) * (r.Y2 - r.Y1)
	areaO := (o.X2 - o.X1) * (o.Y2 - o.Y1)
	unionArea := areaR + areaO - interArea
	if unionArea <= 0 {
		return 0.0
	}

	return float32(interArea) / float32(unionArea)
}
