package imagefile

import (
	"fmt"
	"image/color"
	"os"
)

// Metadata describes an encoded image file as found on disk.
//
// The zero value is what every accessor reports when the file could not be
// inspected.
type Metadata struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Type is the numeric image-type code of the encoding (JPEG=2).
	Type int `json:"type"`

	// Attr is the dimension string `width="W" height="H"`, ready to be
	// dropped into an HTML img tag.
	Attr string `json:"attr"`

	// Bits is the sample precision per channel.
	Bits int `json:"bits"`

	// Channels is the number of color components (1 gray, 3 YCbCr/RGB, 4 CMYK).
	Channels int `json:"channels"`

	// MIME is the sniffed content type.
	MIME string `json:"mime"`
}

// inspectFile reads the header of the file at path. Only the header is
// decoded; the pixel data is never touched.
func inspectFile(path string) (Metadata, error) {
	format, err := sniffFormat(path)
	if err != nil {
		return Metadata{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, err := format.DecodeConfig(f)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to decode image header: %w", err)
	}

	channels, bits := componentsOf(cfg.ColorModel)

	return Metadata{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Type:     format.TypeCode,
		Attr:     fmt.Sprintf(`width="%d" height="%d"`, cfg.Width, cfg.Height),
		Bits:     bits,
		Channels: channels,
		MIME:     format.MIME,
	}, nil
}

// componentsOf maps a color model onto its channel count and per-channel
// precision.
func componentsOf(model color.Model) (channels, bits int) {
	if _, ok := model.(color.Palette); ok {
		return 3, 8
	}
	switch model {
	case color.GrayModel:
		return 1, 8
	case color.Gray16Model:
		return 1, 16
	case color.YCbCrModel, color.NYCbCrAModel:
		return 3, 8
	case color.CMYKModel:
		return 4, 8
	case color.RGBAModel, color.NRGBAModel:
		return 4, 8
	case color.RGBA64Model, color.NRGBA64Model:
		return 4, 16
	}
	return 0, 0
}

// Metadata returns the on-disk metadata of the image file, inspecting it the
// first time any accessor is used. A failed inspection leaves every field at
// its zero value for the lifetime of the handle.
func (i *Image) Metadata() Metadata {
	i.metaOnce.Do(func() {
		meta, err := i.loader.inspect(i.path)
		if err != nil {
			i.loader.log.Debug().Err(err).Str("path", i.path).Msg("metadata inspection failed")
			return
		}
		i.meta = meta
	})
	return i.meta
}

// Width returns the image width in pixels, or 0 if the file could not be inspected.
func (i *Image) Width() int { return i.Metadata().Width }

// Height returns the image height in pixels, or 0 if the file could not be inspected.
func (i *Image) Height() int { return i.Metadata().Height }

// Type returns the numeric image-type code.
func (i *Image) Type() int { return i.Metadata().Type }

// Attr returns the `width="W" height="H"` attribute string.
func (i *Image) Attr() string { return i.Metadata().Attr }

// Bits returns the per-channel sample precision.
func (i *Image) Bits() int { return i.Metadata().Bits }

// Channels returns the number of color components.
func (i *Image) Channels() int { return i.Metadata().Channels }

// MIME returns the sniffed content type.
func (i *Image) MIME() string { return i.Metadata().MIME }
