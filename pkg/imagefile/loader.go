package imagefile

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/image-scaler/internal/fetch"
)

// DefaultJPEGQuality is the encoder quality used when none is configured.
const DefaultJPEGQuality = 90

// DefaultDirMode is the permission mode for directories created on demand.
const DefaultDirMode os.FileMode = 0o777

// DefaultFetchTimeout bounds a single remote copy.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher copies the bytes behind a source locator to a local file.
type Fetcher interface {
	Copy(ctx context.Context, from, to string) error
}

// Loader acquires images and produces handles. A Loader carries the settings
// every handle it creates shares: logger, encoder quality, resampler and the
// remote-fetch capability.
//
// The zero value is not usable; construct one with New.
type Loader struct {
	log         zerolog.Logger
	allowRemote bool
	quality     int
	dirMode     os.FileMode
	resampler   Resampler
	fetcher     Fetcher
	inspect     func(path string) (Metadata, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. Loaders are silent by default.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithRemoteFetch switches the remote-fetch capability on or off. It is on
// by default.
func WithRemoteFetch(enabled bool) Option {
	return func(l *Loader) { l.allowRemote = enabled }
}

// WithJPEGQuality sets the encoder quality (1-100). Out of range values are
// ignored.
func WithJPEGQuality(quality int) Option {
	return func(l *Loader) {
		if quality >= 1 && quality <= 100 {
			l.quality = quality
		}
	}
}

// WithDirMode sets the permission mode of directories created on demand.
func WithDirMode(mode os.FileMode) Option {
	return func(l *Loader) { l.dirMode = mode }
}

// WithResampler replaces the resize primitive.
func WithResampler(r Resampler) Option {
	return func(l *Loader) {
		if r != nil {
			l.resampler = r
		}
	}
}

// WithFetcher replaces the copy primitive used by FromURLToLocalPath and
// CopyToLocalPath.
func WithFetcher(f Fetcher) Option {
	return func(l *Loader) {
		if f != nil {
			l.fetcher = f
		}
	}
}

// New creates a Loader with the given options applied over the defaults.
func New(opts ...Option) *Loader {
	resampler, _ := NewResampler(EngineImaging, DefaultFilter)
	l := &Loader{
		log:         zerolog.Nop(),
		allowRemote: true,
		quality:     DefaultJPEGQuality,
		dirMode:     DefaultDirMode,
		resampler:   resampler,
		inspect:     inspectFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fetcher == nil {
		l.fetcher = fetch.New(fetch.Options{Timeout: DefaultFetchTimeout, Logger: l.log})
	}
	return l
}

var defaultLoader = New()

// AtLocalPath validates and decodes the file at path using a default Loader.
func AtLocalPath(path string) (*Image, error) {
	return defaultLoader.AtLocalPath(path)
}

// FromURLToLocalPath copies source to destination and loads the result using
// a default Loader.
func FromURLToLocalPath(ctx context.Context, source, destination string) (*Image, error) {
	return defaultLoader.FromURLToLocalPath(ctx, source, destination)
}

// CopyToLocalPath performs a guarded copy using a default Loader.
func CopyToLocalPath(ctx context.Context, from, to string, createDirectories bool) (bool, error) {
	return defaultLoader.CopyToLocalPath(ctx, from, to, createDirectories)
}

// FromImage wraps decoded pixels using a default Loader.
func FromImage(img image.Image, path string) *Image {
	return defaultLoader.FromImage(img, path)
}

// AtLocalPath validates the file at path and decodes it into a handle.
//
// It fails with ErrFileNotFound when path is not a regular file and with
// ErrUnsupportedMimeType when the content type (sniffed from the bytes, not
// the name) is not registered or the file does not decode.
func (l *Loader) AtLocalPath(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, ErrFileNotFound
	}

	format, err := sniffFormat(path)
	if err != nil {
		l.log.Debug().Err(err).Str("path", path).Msg("rejected image")
		return nil, ErrUnsupportedMimeType
	}

	img, err := decodeFile(path, format)
	if err != nil {
		l.log.Debug().Err(err).Str("path", path).Str("mime", format.MIME).Msg("failed to decode image")
		return nil, ErrUnsupportedMimeType
	}

	return l.fromImage(img, path, format), nil
}

// FromImage wraps already decoded pixels as a handle bound to path without
// any validation. The handle encodes as JPEG when saved.
func (l *Loader) FromImage(img image.Image, path string) *Image {
	return l.fromImage(img, path, jpegFormat)
}

func (l *Loader) fromImage(img image.Image, path string, format Format) *Image {
	return &Image{
		img:    img,
		path:   path,
		format: format,
		loader: l,
	}
}

func decodeFile(path string, format Format) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return format.Decode(f)
}

// ensureDirFor creates the parent directory of file when it is missing.
func (l *Loader) ensureDirFor(file string) error {
	dir := filepath.Dir(file)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	}
	return os.MkdirAll(dir, l.dirMode)
}
