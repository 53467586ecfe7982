// Package cli implements the image-scaler command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-scaler/internal/config"
	"github.com/ironsheep/image-scaler/internal/logging"
	"github.com/ironsheep/image-scaler/internal/server"
	"github.com/ironsheep/image-scaler/pkg/imagefile"
)

var (
	version    = "dev"
	buildTime  = "unknown"
	gitCommit  = "unknown"
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "image-scaler",
	Short: "Fetch, inspect and scale JPEG images",
	Long: `image-scaler copies images from local paths or http, ftp and sftp
locations, reports their metadata and writes scaled JPEG copies.

Run without a subcommand it serves the same operations as MCP tools
over stdin/stdout.

Configuration file: ~/.image-scaler/config.yaml

Environment variables:
  IMAGE_SCALER_ALLOW_REMOTE=false   Refuse remote sources
  IMAGE_SCALER_JPEG_QUALITY=90      Encoder quality (1-100)
  IMAGE_SCALER_FETCH_TIMEOUT=30s    Remote copy timeout
  IMAGE_SCALER_LOG_LEVEL=debug      Log level`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.image-scaler/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

// SetVersion sets the version reported by the CLI and the MCP server.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
	server.Version = v
}

// SetBuildInfo records the build time and commit printed by "version".
func SetBuildInfo(builtAt, commit string) {
	buildTime = builtAt
	gitCommit = commit
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func newConfigLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	return config.NewLoader()
}

func loadConfig() (*config.Config, error) {
	loader, err := newConfigLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// setup loads configuration and builds the logger and image loader shared
// by every subcommand. Logs always go to stderr.
func setup(console bool) (*imagefile.Loader, zerolog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel, console)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	loader, err := cfg.NewImageLoader(log)
	if err != nil {
		return nil, log, err
	}
	return loader, log, nil
}
