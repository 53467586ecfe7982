package imagefile

import "errors"

// EnvironmentError reports that a precondition about the execution
// environment or the filesystem was violated.
//
// EnvironmentError values are never wrapped. Compare them directly against
// the exported constants or use errors.As to discriminate them from
// ImageError.
type EnvironmentError int

const (
	// ErrRemoteFetchDisabled is returned when a remote source is copied while
	// the remote-fetch capability is switched off.
	ErrRemoteFetchDisabled EnvironmentError = iota + 1

	// ErrCopyDestinationMustBeLocal is returned when the copy destination is
	// itself a remote locator.
	ErrCopyDestinationMustBeLocal

	// ErrFailedToCreateDestinationDirectory is returned when the parent
	// directory of a copy destination could not be created.
	ErrFailedToCreateDestinationDirectory

	// ErrFailedToParseURL is returned when a source locator is not a valid URL.
	ErrFailedToParseURL

	// ErrURLPathNotFound is returned when a parsed URL has no path component.
	ErrURLPathNotFound
)

func (e EnvironmentError) Error() string {
	switch e {
	case ErrRemoteFetchDisabled:
		return "tried to copy file from URL with remote fetch disabled"
	case ErrCopyDestinationMustBeLocal:
		return "tried to copy file to URL"
	case ErrFailedToCreateDestinationDirectory:
		return "tried to copy file to directory that could not be created"
	case ErrFailedToParseURL:
		return "tried to copy file from URL and could not parse url"
	case ErrURLPathNotFound:
		return "url path component not found"
	default:
		return "unknown environment error"
	}
}

// ImageError reports a domain-level failure while acquiring, validating,
// scaling or saving an image.
type ImageError int

const (
	// ErrFailedToCopyFromURL is returned when the copy primitive reported failure.
	ErrFailedToCopyFromURL ImageError = iota + 1

	// ErrFileNotFound is returned when a path does not reference a regular file.
	ErrFileNotFound

	// ErrUnsupportedMimeType is returned when the sniffed content type is not
	// registered or the file fails to decode.
	ErrUnsupportedMimeType

	// ErrFailedToScaleImage is returned when resampling produced no image.
	ErrFailedToScaleImage

	// ErrFailedToSaveAfterScaling is returned when a freshly scaled image
	// could not be written to its destination.
	ErrFailedToSaveAfterScaling
)

func (e ImageError) Error() string {
	switch e {
	case ErrFailedToCopyFromURL:
		return "failed to copy from url"
	case ErrFileNotFound:
		return "file not found"
	case ErrUnsupportedMimeType:
		return "unsupported mime type"
	case ErrFailedToScaleImage:
		return "failed to scale image"
	case ErrFailedToSaveAfterScaling:
		return "failed to save after scaling"
	default:
		return "unknown image error"
	}
}

// IsEnvironmentError reports whether err is an EnvironmentError.
func IsEnvironmentError(err error) bool {
	var e EnvironmentError
	return errors.As(err, &e)
}

// IsImageError reports whether err is an ImageError.
func IsImageError(err error) bool {
	var e ImageError
	return errors.As(err, &e)
}
