// Package imagefile acquires raster images, validates them and writes scaled
// copies to disk.
//
// The typical flow is: acquire a local file (either directly with AtLocalPath
// or by copying a remote source with FromURLToLocalPath), then produce resized
// copies with Scale, ScaleToWidth or ScaleToHeight. Every scale writes its
// result to disk and returns a new handle bound to the written file.
//
// # Formats
//
// Content types are determined by sniffing file contents, never by file
// extension. Supported types live in a registry that pairs each MIME type with
// its decoder and encoder; a type validates if and only if it can be decoded
// and encoded. JPEG is currently the only registered format.
//
// # Errors
//
// Every fallible operation returns exactly one of two flat error kinds:
//
//   - EnvironmentError: the environment or filesystem violated a precondition
//     (remote fetch disabled, remote destination, directory creation failed,
//     unparsable URL, URL without a path).
//   - ImageError: the image itself could not be acquired or produced (copy
//     failed, file not found, unsupported MIME type, scale or save failed).
//
// Errors are never wrapped. Compare against the exported constants or use
// errors.As:
//
//	img, err := imagefile.AtLocalPath("upload.jpg")
//	switch {
//	case errors.Is(err, imagefile.ErrFileNotFound):
//	    // ...
//	case imagefile.IsEnvironmentError(err):
//	    // ...
//	}
//
// Underlying causes are logged through the Loader's zerolog logger before the
// flat error is returned.
//
// # Metadata
//
// Width, Height, Type, Attr, Bits, Channels and MIME describe the file on disk,
// not the in-memory buffer. The header is inspected once, the first time any
// accessor is called. If inspection fails every accessor returns its zero
// value instead of an error.
//
// # Thread Safety
//
// Handles are immutable after construction apart from metadata memoisation,
// which is guarded by sync.Once. Concurrent writers targeting the same
// destination path race; that is left to the caller.
package imagefile
