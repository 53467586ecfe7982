package imagefile

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// MIMETypeJPEG is the content type of JPEG encoded files.
const MIMETypeJPEG = "image/jpeg"

// Format describes one supported raster encoding: how to recognise it, how to
// decode it and how to encode pixels back into it.
//
// Validation and decoding both consult the same registry entry, so a content
// type is accepted if and only if a decoder and an encoder exist for it.
type Format struct {
	// MIME is the content type as reported by content sniffing.
	MIME string

	// Name is a short lowercase name ("jpeg").
	Name string

	// Extension is the canonical file extension including the leading dot.
	Extension string

	// TypeCode follows the conventional image-type numbering
	// (GIF=1, JPEG=2, PNG=3).
	TypeCode int

	// Decode reads a complete image.
	Decode func(r io.Reader) (image.Image, error)

	// DecodeConfig reads only the header.
	DecodeConfig func(r io.Reader) (image.Config, error)

	// Encode writes img. quality is in the range 1-100 and ignored by
	// lossless formats.
	Encode func(w io.Writer, img image.Image, quality int) error
}

var jpegFormat = Format{
	MIME:      MIMETypeJPEG,
	Name:      "jpeg",
	Extension: ".jpg",
	TypeCode:  2,
	Decode: func(r io.Reader) (image.Image, error) {
		return imaging.Decode(r)
	},
	DecodeConfig: jpeg.DecodeConfig,
	Encode: func(w io.Writer, img image.Image, quality int) error {
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	},
}

// formats is keyed by MIME type. Adding a format is a matter of adding an
// entry here.
var formats = map[string]Format{
	jpegFormat.MIME: jpegFormat,
}

// SupportedMIMETypes returns the registered content types in sorted order.
func SupportedMIMETypes() []string {
	types := make([]string, 0, len(formats))
	for mime := range formats {
		types = append(types, mime)
	}
	sort.Strings(types)
	return types
}

// LookupFormat returns the registry entry for a content type.
func LookupFormat(mime string) (Format, bool) {
	f, ok := formats[mime]
	return f, ok
}

// sniffFormat determines the file's content type from its bytes and maps it
// onto a registered format. The file name is never consulted.
func sniffFormat(path string) (Format, error) {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return Format{}, fmt.Errorf("failed to detect content type: %w", err)
	}

	for _, mime := range SupportedMIMETypes() {
		if detected.Is(mime) {
			return formats[mime], nil
		}
	}

	return Format{}, fmt.Errorf("content type %s is not supported", detected.String())
}
