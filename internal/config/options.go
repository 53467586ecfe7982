package config

import (
	"github.com/rs/zerolog"

	"github.com/ironsheep/image-scaler/internal/fetch"
	"github.com/ironsheep/image-scaler/pkg/imagefile"
)

// NewImageLoader builds an image loader configured from c.
func (c *Config) NewImageLoader(log zerolog.Logger) (*imagefile.Loader, error) {
	resampler, err := imagefile.NewResampler(c.Resampler, c.Filter)
	if err != nil {
		return nil, err
	}
	dirMode, err := c.ParsedDirMode()
	if err != nil {
		return nil, err
	}

	fetcher := fetch.New(fetch.Options{
		Timeout:               c.FetchTimeout,
		SFTPUser:              c.SFTP.User,
		SFTPPassword:          c.SFTP.Password,
		KnownHostsFile:        c.SFTP.KnownHosts,
		InsecureIgnoreHostKey: c.SFTP.InsecureIgnoreHostKey,
		Logger:                log.With().Str("component", "fetch").Logger(),
	})

	return imagefile.New(
		imagefile.WithLogger(log.With().Str("component", "imagefile").Logger()),
		imagefile.WithRemoteFetch(c.AllowRemote),
		imagefile.WithJPEGQuality(c.JPEGQuality),
		imagefile.WithDirMode(dirMode),
		imagefile.WithResampler(resampler),
		imagefile.WithFetcher(fetcher),
	), nil
}
