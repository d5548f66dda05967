// Package images - Image decoding, annotation and encoding for detection pages.
package images

import "encoding/base64"

// Image represents an encoded image with a format, data, width, and height.
type Image struct {
	// The format of the image.
	Format ImageFormat `json:"format" yaml:"format"`
	// The data of the image.
	Data []byte `json:"data" yaml:"data"`
	// The width of the image.
	Width int `json:"width" yaml:"width"`
	// The height of the image.
	Height int `json:"height" yaml:"height"`
}

// DataURL returns the image as a base64 data URL suitable for an <img> src attribute.
func (i Image) DataURL() string {
	return "data:" + i.Format.MIME() + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Empty reports whether the image carries no data.
func (i Image) Empty() bool {
	return len(i.Data) == 0
}
