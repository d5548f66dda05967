package images

import (
	"image"
	"image/color"
	"math"

	"github.com/nvr-ai/tranquil-trails/common"
	"gocv.io/x/gocv"
)

// palette is the per-class box color cycle used on annotated images.
var palette = []color.RGBA{
	{0xFF, 0x38, 0x38, 0}, {0xFF, 0x9D, 0x97, 0}, {0xFF, 0x70, 0x1F, 0}, {0xFF, 0xB2, 0x1D, 0},
	{0xCF, 0xD2, 0x31, 0}, {0x48, 0xF9, 0x0A, 0}, {0x92, 0xCC, 0x17, 0}, {0x3D, 0xDB, 0x86, 0},
	{0x1A, 0x93, 0x34, 0}, {0x00, 0xD4, 0xBB, 0}, {0x2C, 0x99, 0xA8, 0}, {0x00, 0xC2, 0xFF, 0},
	{0x34, 0x45, 0x93, 0}, {0x64, 0x73, 0xFF, 0}, {0x00, 0x18, 0xEC, 0}, {0x84, 0x38, 0xFF, 0},
	{0x52, 0x00, 0x85, 0}, {0xCB, 0x38, 0xFF, 0}, {0xFF, 0x95, 0xC8, 0}, {0xFF, 0x37, 0xC7, 0},
}

var textColor = color.RGBA{255, 255, 255, 0}

// ClassColor returns the overlay color for a class index.
func ClassColor(classID int) color.RGBA {
	if classID < 0 {
		classID = -classID
	}
	return palette[classID%len(palette)]
}

// LineWidth returns the box stroke width for an image of the given size,
// proportional to its mean side and never below 2 pixels.
func LineWidth(width, height int) int {
	return max(int(math.Round(float64(width+height)/2*0.003)), 2)
}

// Annotate draws every bounding box with its caption on a copy of src.
//
// The source Mat is left untouched; the caller owns the returned Mat.
//
// Arguments:
//   - src: The decoded image.
//   - boxes: The detections in src pixel space.
//
// Returns:
//   - gocv.Mat: The annotated copy.
func Annotate(src gocv.Mat, boxes []common.BoundingBox) gocv.Mat {
	out := src.Clone()

	thickness := LineWidth(out.Cols(), out.Rows())
	fontThickness := max(thickness-1, 1)
	fontScale := float64(thickness) / 3

	for i := range boxes {
		box := &boxes[i]
		rect := box.ToRect().Intersect(image.Rect(0, 0, out.Cols(), out.Rows()))
		if rect.Empty() {
			continue
		}
		c := ClassColor(box.ClassID)
		gocv.Rectangle(&out, rect, c, thickness)

		caption := box.Caption()
		size := gocv.GetTextSize(caption, gocv.FontHersheySimplex, fontScale, fontThickness)

		// Captions sit above the box unless that would leave the image.
		top := rect.Min.Y - size.Y - 3
		if top < 0 {
			top = rect.Min.Y
		}
		background := image.Rect(rect.Min.X, top, rect.Min.X+size.X, top+size.Y+3)
		gocv.Rectangle(&out, background, c, -1)
		gocv.PutText(&out, caption, image.Pt(rect.Min.X, top+size.Y+1),
			gocv.FontHersheySimplex, fontScale, textColor, fontThickness)
	}

	return out
}
