package imageloader

import (
	"bytes"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// exifSummary describes the camera and capture date recorded in the EXIF
// block of data. It returns "" when data carries no EXIF (PNG, GIF, ...).
func exifSummary(data []byte) string {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return ""
	}

	var parts []string
	if model, err := x.Get(exif.Model); err == nil {
		if s, err := model.StringVal(); err == nil && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	if taken, err := x.DateTime(); err == nil {
		parts = append(parts, taken.Format("2006-01-02 15:04"))
	}
	return strings.Join(parts, ", ")
}
