// Package imageloader decodes image files from various sources,
// including images stored inside archives (ZIP, 7z, gzip, tar.gz, RAR).
package imageloader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// Maximum encoded image size (256MB safety limit)
const maxImageSize = 256 * 1024 * 1024

// ErrNoImageFile is returned when no supported image is found in an archive
var ErrNoImageFile = errors.New("no image file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrFileTooLarge is returned when extracted content exceeds size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// imageExtensions lists the file extensions with a registered decoder
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// formatType represents the detected container format
type formatType int

const (
	formatUnknown formatType = iota
	formatRawImage
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// Image is a decoded picture and what is known about where it came from.
type Image struct {
	Pixels  image.Image
	Name    string // File name of the image, the archive entry name for archives
	Format  string // Decoder name reported by image.Decode
	Summary string // Short EXIF description, empty when unavailable
}

// Loader decodes images on demand. OnLoad, when set, is called after every
// successful Decode.
type Loader struct {
	OnLoad func(img *Image)
}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Decode loads and decodes the image at path.
func (l *Loader) Decode(path string) (image.Image, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	if l.OnLoad != nil {
		l.OnLoad(img)
	}
	return img.Pixels, nil
}

// LoadImage loads an image from a file path. It automatically detects and
// extracts from archives.
func LoadImage(path string) (*Image, error) {
	data, name, err := readImageData(path)
	if err != nil {
		return nil, err
	}
	return decodeData(data, name)
}

// readImageData returns the encoded bytes of the image at path and its name.
func readImageData(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	// Read header for magic byte detection
	header := make([]byte, 16)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	format := detectFormat(header, path)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("failed to seek file: %w", err)
	}

	switch format {
	case formatRawImage:
		data, err := limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read image: %w", err)
		}
		return data, filepath.Base(path), nil

	case formatZIP:
		return extractFromZIP(path)

	case format7z:
		return extractFrom7z(path)

	case formatGzip:
		return extractFromGzip(path)

	case formatRAR:
		return extractFromRAR(path)

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// decodeData decodes encoded image bytes.
func decodeData(data []byte, name string) (*Image, error) {
	pixels, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return &Image{
		Pixels:  pixels,
		Name:    name,
		Format:  format,
		Summary: exifSummary(data),
	}, nil
}

// detectFormat determines the file format based on magic bytes and extension
func detectFormat(header []byte, path string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	// Check magic bytes first (more reliable)
	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	// Fall back to extension
	switch ext {
	case ".zip", ".cbz":
		return formatZIP
	case ".7z", ".cb7":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar", ".cbr":
		return formatRAR
	}
	if isImageFile(path) {
		return formatRawImage
	}

	// Unknown extension: let the image decoders sniff it
	if _, _, err := image.DecodeConfig(bytes.NewReader(header)); !errors.Is(err, image.ErrFormat) {
		return formatRawImage
	}
	return formatUnknown
}

// isImageFile checks if a filename has a supported image extension (case-insensitive)
func isImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// limitedRead reads from r up to maxImageSize bytes, returning an error if exceeded
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxImageSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
