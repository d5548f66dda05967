package images

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ErrDecodeFailed is returned when OpenCV cannot decode the buffer into pixels.
var ErrDecodeFailed = errors.New("image decoding failed")

// Decode decodes a JPEG or PNG buffer into a three-channel BGR Mat.
//
// The caller owns the returned Mat and must Close it.
//
// Arguments:
//   - data: The raw image bytes.
//
// Returns:
//   - gocv.Mat: The decoded pixels.
//   - error: ErrEmptyImage or ErrDecodeFailed.
func Decode(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.NewMat(), ErrEmptyImage
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(ErrDecodeFailed, err.Error())
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), ErrDecodeFailed
	}

	return mat, nil
}

// ToImage converts a BGR Mat to a Go-native RGB image for tensor preparation.
//
// Arguments:
//   - mat: The decoded Mat.
//
// Returns:
//   - image.Image: The converted image.
//   - error: An error if the conversion fails.
func ToImage(mat gocv.Mat) (image.Image, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "mat to image conversion failed")
	}
	return img, nil
}

// EncodeJPEG encodes the Mat as JPEG.
//
// Arguments:
//   - mat: The Mat to encode.
//
// Returns:
//   - Image: The encoded image with its dimensions.
//   - error: An error if the encoding fails.
func EncodeJPEG(mat gocv.Mat) (Image, error) {
	if mat.Empty() {
		return Image{}, ErrEmptyImage
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return Image{}, errors.Wrap(err, "jpeg encoding failed")
	}
	defer buf.Close()

	// The native buffer is released on Close, so the bytes are copied out.
	data := append([]byte(nil), buf.GetBytes()...)

	return Image{
		Format: FormatJPEG,
		Data:   data,
		Width:  mat.Cols(),
		Height: mat.Rows(),
	}, nil
}
