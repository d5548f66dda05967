package images

import (
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// Metadata is the subset of EXIF information shown next to an uploaded photo.
type Metadata struct {
	CameraMake  string
	CameraModel string
	Taken       string
	Software    string
	HasGPS      bool
}

// Empty reports whether no field was found.
func (m Metadata) Empty() bool {
	return m == Metadata{}
}

// ReadMetadata extracts camera metadata from the raw image bytes.
//
// Images without EXIF (most PNGs, screenshots) return an empty Metadata.
//
// Arguments:
//   - data: The raw image bytes.
//
// Returns:
//   - Metadata: The extracted metadata.
func ReadMetadata(data []byte) Metadata {
	var md Metadata

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return md
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return md
	}

	for _, entry := range entries {
		value := strings.TrimSpace(entry.Formatted)
		switch entry.TagName {
		case "Make":
			md.CameraMake = value
		case "Model":
			md.CameraModel = value
		case "DateTimeOriginal":
			md.Taken = value
		case "DateTime":
			if md.Taken == "" {
				md.Taken = value
			}
		case "Software":
			md.Software = value
		case "GPSLatitude", "GPSLongitude":
			md.HasGPS = true
		}
	}

	return md
}
