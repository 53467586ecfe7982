package imagefile

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// Resampler resizes an image to a target width. The height is derived from
// the source aspect ratio by the resampler itself.
type Resampler interface {
	Resize(img image.Image, width int) (image.Image, error)
}

// Resampler engines accepted by NewResampler.
const (
	EngineImaging = "imaging"
	EngineBild    = "bild"
)

// DefaultFilter is the resampling filter used when none is configured.
const DefaultFilter = "lanczos"

var imagingFilters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"gaussian":   imaging.Gaussian,
	"mitchell":   imaging.MitchellNetravali,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

var bildFilters = map[string]transform.ResampleFilter{
	"nearest":    transform.NearestNeighbor,
	"box":        transform.Box,
	"linear":     transform.Linear,
	"gaussian":   transform.Gaussian,
	"mitchell":   transform.MitchellNetravali,
	"catmullrom": transform.CatmullRom,
	"lanczos":    transform.Lanczos,
}

// NewResampler returns a resampler for the named engine and filter. Empty
// names select the defaults (imaging, lanczos).
func NewResampler(engine, filter string) (Resampler, error) {
	if filter == "" {
		filter = DefaultFilter
	}

	switch engine {
	case "", EngineImaging:
		f, ok := imagingFilters[filter]
		if !ok {
			return nil, fmt.Errorf("unknown resampling filter: %s", filter)
		}
		return imagingResampler{filter: f}, nil
	case EngineBild:
		f, ok := bildFilters[filter]
		if !ok {
			return nil, fmt.Errorf("unknown resampling filter: %s", filter)
		}
		return bildResampler{filter: f}, nil
	default:
		return nil, fmt.Errorf("unknown resampler engine: %s", engine)
	}
}

type imagingResampler struct {
	filter imaging.ResampleFilter
}

func (r imagingResampler) Resize(img image.Image, width int) (image.Image, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid target width %d", width)
	}
	// A zero height makes imaging preserve the aspect ratio.
	out := imaging.Resize(img, width, 0, r.filter)
	if out.Bounds().Empty() {
		return nil, fmt.Errorf("resize to width %d produced an empty image", width)
	}
	return out, nil
}

type bildResampler struct {
	filter transform.ResampleFilter
}

func (r bildResampler) Resize(img image.Image, width int) (image.Image, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid target width %d", width)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("cannot resize an empty image")
	}
	out := transform.Resize(img, width, proportionalHeight(b.Dx(), b.Dy(), width), r.filter)
	if out.Bounds().Empty() {
		return nil, fmt.Errorf("resize to width %d produced an empty image", width)
	}
	return out, nil
}

// proportionalHeight rounds the same way imaging does so both engines agree.
func proportionalHeight(srcW, srcH, dstW int) int {
	h := float64(dstW) * float64(srcH) / float64(srcW)
	return int(math.Max(1.0, math.Floor(h+0.5)))
}
