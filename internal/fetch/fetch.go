package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures a Client.
type Options struct {
	// Timeout bounds connection setup and, for HTTP, the whole request.
	// Zero means no timeout.
	Timeout time.Duration

	// SFTPUser and SFTPPassword are used when an sftp URL carries no
	// credentials of its own.
	SFTPUser     string
	SFTPPassword string

	// KnownHostsFile verifies SFTP host keys. When empty, ~/.ssh/known_hosts
	// is used if it exists.
	KnownHostsFile string

	// InsecureIgnoreHostKey skips host key verification when no known_hosts
	// file is available. Without it such connections are refused.
	InsecureIgnoreHostKey bool

	Logger zerolog.Logger
}

// Client copies remote or local sources to local files.
type Client struct {
	opts Options
	http *http.Client
	log  zerolog.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
		log:  opts.Logger,
	}
}

// Copy streams from into the local file to, replacing any existing file. A
// partially written file is removed when the transfer fails.
func (c *Client) Copy(ctx context.Context, from, to string) error {
	src, err := c.Open(ctx, from)
	if err != nil {
		return err
	}
	defer src.Close()

	// Creating the destination would truncate a source that is the same file.
	if f, ok := src.(*os.File); ok {
		if si, err := f.Stat(); err == nil {
			if di, err := os.Stat(to); err == nil && os.SameFile(si, di) {
				return fmt.Errorf("source and destination are the same file: %s", to)
			}
		}
	}

	dst, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(to)
		return fmt.Errorf("failed to copy %s: %w", from, err)
	}

	c.log.Debug().Str("source", from).Int64("bytes", n).Msg("fetched")
	return nil
}

// Open returns a reader for the bytes behind locator.
func (c *Client) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	u, err := url.Parse(locator)
	// A single letter scheme is a Windows drive, not a URL.
	if err != nil || len(u.Scheme) <= 1 {
		return openLocal(locator)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return openLocal(u.Path)
	case "http", "https":
		return c.openHTTP(ctx, u)
	case "ftp":
		return c.openFTP(ctx, u)
	case "sftp":
		return c.openSFTP(u)
	default:
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
}

func openLocal(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	return f, nil
}

func (c *Client) openHTTP(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/*, */*")
	req.Header.Set("User-Agent", "image-scaler/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return resp.Body, nil
}
