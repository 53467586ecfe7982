// Package config manages application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/image-scaler/pkg/imagefile"
)

// Config represents the application configuration.
type Config struct {
	// AllowRemote enables copying from http, ftp and sftp sources.
	AllowRemote bool `yaml:"allow_remote"`

	JPEGQuality int    `yaml:"jpeg_quality"`
	Resampler   string `yaml:"resampler"`
	Filter      string `yaml:"filter"`

	// DirMode is the octal permission mode for created directories.
	DirMode string `yaml:"dir_mode"`

	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	SFTP         SFTPConfig    `yaml:"sftp"`
	LogLevel     string        `yaml:"log_level"`
}

// SFTPConfig holds fallback credentials for sftp sources.
type SFTPConfig struct {
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	KnownHosts string `yaml:"known_hosts,omitempty"`

	// InsecureIgnoreHostKey allows connections without host key
	// verification when no known_hosts file is found.
	InsecureIgnoreHostKey bool `yaml:"insecure_ignore_host_key"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AllowRemote:  true,
		JPEGQuality:  imagefile.DefaultJPEGQuality,
		Resampler:    imagefile.EngineImaging,
		Filter:       imagefile.DefaultFilter,
		DirMode:      "0777",
		FetchTimeout: imagefile.DefaultFetchTimeout,
		SFTP: SFTPConfig{
			User:     "${IMAGE_SCALER_SFTP_USER}",
			Password: "${IMAGE_SCALER_SFTP_PASSWORD}",
		},
		LogLevel: "info",
	}
}

// ApplyEnv overrides fields from IMAGE_SCALER_* environment variables.
// Malformed values are reported rather than ignored.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("IMAGE_SCALER_ALLOW_REMOTE"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid IMAGE_SCALER_ALLOW_REMOTE: %q", v)
		}
		c.AllowRemote = b
	}
	if v := os.Getenv("IMAGE_SCALER_JPEG_QUALITY"); v != "" {
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid IMAGE_SCALER_JPEG_QUALITY: %q", v)
		}
		c.JPEGQuality = q
	}
	if v := os.Getenv("IMAGE_SCALER_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid IMAGE_SCALER_FETCH_TIMEOUT: %q", v)
		}
		c.FetchTimeout = d
	}
	if v := os.Getenv("IMAGE_SCALER_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.TrimSpace(v)
	}
	return nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100 (got %d)", c.JPEGQuality)
	}
	if _, err := imagefile.NewResampler(c.Resampler, c.Filter); err != nil {
		return err
	}
	if _, err := c.ParsedDirMode(); err != nil {
		return err
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %s)", c.FetchTimeout)
	}
	return nil
}

// ParsedDirMode returns DirMode as a file mode.
func (c *Config) ParsedDirMode() (os.FileMode, error) {
	if c.DirMode == "" {
		return imagefile.DefaultDirMode, nil
	}
	m, err := strconv.ParseUint(c.DirMode, 8, 32)
	if err != nil || m > 0o777 {
		return 0, fmt.Errorf("invalid dir_mode: %q", c.DirMode)
	}
	return os.FileMode(m), nil
}
