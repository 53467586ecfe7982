package imagefile

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"
)

// MaxDimension is the largest width or height Scale will produce.
const MaxDimension = 16384

// Image is a decoded raster image bound to a local file path.
//
// A handle is only ever produced by successful validation (AtLocalPath), by a
// successful scale, or explicitly through FromImage. It owns its pixel buffer
// exclusively and is never mutated after construction, apart from the
// one-time population of its metadata.
type Image struct {
	img    image.Image
	path   string
	format Format
	loader *Loader

	metaOnce sync.Once
	meta     Metadata
}

// Image returns the decoded pixel buffer. Callers must not modify it.
func (i *Image) Image() image.Image {
	return i.img
}

// Path returns the file path the handle is bound to.
func (i *Image) Path() string {
	return i.path
}

// Filename returns the final "/" separated segment of Path. It works whether
// the handle was created from a bare name or a full path.
func (i *Image) Filename() string {
	return i.path[strings.LastIndex(i.path, "/")+1:]
}

// Format returns the registry entry used to decode and encode this image.
func (i *Image) Format() Format {
	return i.format
}

// Scale resizes the image by factor, saves the result to destination and
// returns a handle for it.
//
// The target width is the current width multiplied by factor and truncated;
// the height follows proportionally. Fails with ErrFailedToScaleImage when
// resampling yields nothing (including a target width below one pixel) or
// either result dimension would exceed MaxDimension, and
// with ErrFailedToSaveAfterScaling when the result cannot be written.
func (i *Image) Scale(factor float64, destination string) (*Image, error) {
	// The epsilon absorbs float drift in factors derived from a division,
	// so ScaleToWidth(n) lands on n rather than n-1.
	b := i.img.Bounds()
	target := float64(b.Dx())*factor + 1e-9
	if target > MaxDimension ||
		(target >= 1 && proportionalHeight(b.Dx(), b.Dy(), int(target)) > MaxDimension) {
		i.loader.log.Warn().Float64("factor", factor).Str("path", i.path).Msg("scaled image exceeds maximum dimension")
		return nil, ErrFailedToScaleImage
	}
	width := int(target)

	resized, err := i.loader.resampler.Resize(i.img, width)
	if err != nil {
		i.loader.log.Warn().Err(err).Float64("factor", factor).Str("path", i.path).Msg("failed to scale image")
		return nil, ErrFailedToScaleImage
	}

	scaled := i.loader.fromImage(resized, destination, i.format)
	if err := scaled.Save(destination); err != nil {
		i.loader.log.Warn().Err(err).Str("destination", destination).Msg("failed to save scaled image")
		return nil, ErrFailedToSaveAfterScaling
	}

	i.loader.log.Debug().
		Str("source", i.path).
		Str("destination", destination).
		Int("width", resized.Bounds().Dx()).
		Int("height", resized.Bounds().Dy()).
		Msg("scaled image")

	return scaled, nil
}

// ScaleToWidth scales so the result is exactly width pixels wide.
func (i *Image) ScaleToWidth(width int, destination string) (*Image, error) {
	current := i.img.Bounds().Dx()
	if current == 0 {
		return nil, ErrFailedToScaleImage
	}
	return i.Scale(float64(width)/float64(current), destination)
}

// ScaleToHeight scales so the result is approximately height pixels high.
// Because the width is computed first and truncated, the resulting height
// may be off by one.
func (i *Image) ScaleToHeight(height int, destination string) (*Image, error) {
	current := i.img.Bounds().Dy()
	if current == 0 {
		return nil, ErrFailedToScaleImage
	}
	return i.Scale(float64(height)/float64(current), destination)
}

// Save encodes the image to destination, creating missing parent directories.
func (i *Image) Save(destination string) error {
	return i.SaveTo(destination, true)
}

// SaveTo encodes the image to destination with the handle's format encoder.
// When createDirectories is false a missing parent directory is an error.
func (i *Image) SaveTo(destination string, createDirectories bool) error {
	if createDirectories {
		if err := i.loader.ensureDirFor(destination); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := i.format.Encode(f, i.img, i.loader.quality); err != nil {
		f.Close()
		os.Remove(destination)
		return fmt.Errorf("failed to encode %s: %w", i.format.Name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
