package imagefile

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FromURLToLocalPath copies source (a URL or a local path) to destination and
// loads the copy. An existing file at destination is overwritten.
//
// A destination whose final path segment contains no dot is treated as a
// directory, and the file name is taken from the last segment of the source
// URL path; a source path ending in "/" fails with ErrFailedToCopyFromURL.
// A directory literally named like "v1.2" is taken for a file name.
func (l *Loader) FromURLToLocalPath(ctx context.Context, source, destination string) (*Image, error) {
	if !hasFileName(destination) {
		name, err := FilenameFromURL(source)
		if err != nil {
			return nil, err
		}
		// A path ending in "/" names no file to copy into the directory.
		if name == "" {
			l.log.Warn().Str("source", source).Str("destination", destination).Msg("source names no file")
			return nil, ErrFailedToCopyFromURL
		}
		destination = filepath.Join(destination, name)
	}

	copied, err := l.CopyToLocalPath(ctx, source, destination, true)
	if err != nil {
		return nil, err
	}
	if !copied {
		return nil, ErrFailedToCopyFromURL
	}

	return l.AtLocalPath(destination)
}

// CopyToLocalPath copies the bytes behind from into the local file to.
//
// The returned error is always an EnvironmentError: remote fetch disabled for
// a remote source, a remote destination, or a parent directory that could not
// be created. Failure of the copy itself is reported as false with a nil
// error; the caller decides what that means.
func (l *Loader) CopyToLocalPath(ctx context.Context, from, to string, createDirectories bool) (bool, error) {
	if IsRemote(from) && !l.allowRemote {
		return false, ErrRemoteFetchDisabled
	}

	if IsRemote(to) {
		return false, ErrCopyDestinationMustBeLocal
	}

	if _, err := os.Stat(to); err != nil && createDirectories {
		if err := l.ensureDirFor(to); err != nil {
			l.log.Warn().Err(err).Str("destination", to).Msg("failed to create destination directory")
			return false, ErrFailedToCreateDestinationDirectory
		}
	}

	if err := l.fetcher.Copy(ctx, from, to); err != nil {
		l.log.Warn().Err(err).Str("source", from).Str("destination", to).Msg("copy failed")
		return false, nil
	}

	l.log.Debug().Str("source", from).Str("destination", to).Msg("copied")
	return true, nil
}

// FilenameFromURL returns the last "/" separated segment of the URL's path.
// The segment is empty when the path ends in a slash.
func FilenameFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrFailedToParseURL
	}
	if u.Path == "" {
		return "", ErrURLPathNotFound
	}
	return u.Path[strings.LastIndex(u.Path, "/")+1:], nil
}

// IsRemote reports whether locator names a remote resource. Detection is by
// prefix: anything starting with "http", "ftp" or "sftp" is remote.
func IsRemote(locator string) bool {
	return strings.HasPrefix(locator, "http") ||
		strings.HasPrefix(locator, "ftp") ||
		strings.HasPrefix(locator, "sftp")
}

// hasFileName reports whether the final "/" separated segment of destination
// contains a dot.
func hasFileName(destination string) bool {
	last := destination[strings.LastIndex(destination, "/")+1:]
	return strings.Contains(last, ".")
}
