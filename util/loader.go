package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedImageExtensions lists the upload extensions accepted by the detection page.
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png"}

// ImageFile represents an image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
}

// HasSupportedExtension reports whether name ends with one of SupportedImageExtensions.
func HasSupportedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedImageExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// LoadImageFile reads a single image file.
//
// Arguments:
// - path: Path of the image file.
//
// Returns:
// - ImageFile: The loaded image file.
// - error: Error if the file cannot be read.
func LoadImageFile(path string) (ImageFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return ImageFile{}, err
	}
	return ImageFile{Path: path, Data: data}, nil
}

// LoadDirectoryImageFiles reads all supported image files from a directory.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: Slice of ImageFile sorted by path, each containing the raw bytes of an image file.
// - error: Error if loading fails.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []ImageFile
	for _, file := range files {
		if file.IsDir() || !HasSupportedExtension(file.Name()) {
			continue
		}

		img, err := LoadImageFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Path < images[j].Path
	})

	return images, nil
}
