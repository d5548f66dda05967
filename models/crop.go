// Package models - Crop selection and detection model registry.
package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Crop selects which preloaded detection model serves a request.
type Crop string

const (
	// CropPaddy selects the rice plant model (model 1).
	CropPaddy Crop = "paddy"
	// CropChili selects the chili plant model (model 2).
	CropChili Crop = "chili"
	// CropOnion selects the onion plant model (model 3).
	CropOnion Crop = "onion"
)

// ErrUnknownCrop is returned when a crop selection is outside the closed set.
var ErrUnknownCrop = errors.New("unknown crop")

// Crops returns every crop in menu order.
func Crops() []Crop {
	return []Crop{CropPaddy, CropChili, CropOnion}
}

// ParseCrop maps a form value to a Crop. English slugs and the Indonesian labels
// are accepted case-insensitively; an empty value selects the first crop.
//
// Arguments:
//   - s: The raw selection.
//
// Returns:
//   - Crop: The selected crop.
//   - error: ErrUnknownCrop if s names no crop.
func ParseCrop(s string) (Crop, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "paddy", "padi":
		return CropPaddy, nil
	case "chili", "cabai":
		return CropChili, nil
	case "onion", "bawang":
		return CropOnion, nil
	default:
		return "", errors.Wrapf(ErrUnknownCrop, "%q", s)
	}
}

// ModelIndex returns the 1-based index of the model artifact trained for the crop
// (best1 for paddy, best2 for chili, best3 for onion), or 0 for an invalid crop.
func (c Crop) ModelIndex() int {
	switch c {
	case CropPaddy:
		return 1
	case CropChili:
		return 2
	case CropOnion:
		return 3
	default:
		return 0
	}
}

// ModelFile returns the default artifact name of the crop model, e.g. best2.onnx.
func (c Crop) ModelFile() string {
	return fmt.Sprintf("best%d.onnx", c.ModelIndex())
}

// DisplayName returns the label shown in the UI.
func (c Crop) DisplayName() string {
	switch c {
	case CropPaddy:
		return "Padi"
	case CropChili:
		return "Cabai"
	case CropOnion:
		return "Bawang"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of Crops().
func (c Crop) Valid() bool {
	return c.ModelIndex() != 0
}

func (c Crop) String() string {
	return string(c)
}
