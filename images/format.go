package images

import (
	"bytes"

	"github.com/pkg/errors"
)

// ImageFormat represents supported image formats
type ImageFormat string

// ImageFormat constants
const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
)

var (
	// ErrEmptyImage is returned when an image buffer has no bytes.
	ErrEmptyImage = errors.New("image data is empty")
	// ErrUnsupportedFormat is returned when the bytes are neither JPEG nor PNG.
	ErrUnsupportedFormat = errors.New("unsupported image format: expected jpeg or png")
)

var (
	jpegMagic = []byte{0xFF, 0xD8}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// MIME returns the media type of the format.
func (f ImageFormat) MIME() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// SniffFormat detects the image format from the leading magic bytes.
//
// Arguments:
//   - data: The raw image bytes.
//
// Returns:
//   - ImageFormat: The detected format.
//   - error: ErrEmptyImage or ErrUnsupportedFormat.
func SniffFormat(data []byte) (ImageFormat, error) {
	switch {
	case len(data) == 0:
		return "", ErrEmptyImage
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG, nil
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG, nil
	default:
		return "", ErrUnsupportedFormat
	}
}
