package download

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/lrstanley/go-ytdlp"

	"audiomatch/internal/config"
	"audiomatch/internal/logging"
	"audiomatch/internal/services"
)

// runnerFunc executes the actual download for one URL into the output
// template. Swapped out in tests so no external binary runs.
type runnerFunc func(ctx context.Context, url, outputTemplate, audioFormat string) error

// Fetcher downloads a matched track into the configured library directory.
type Fetcher struct {
	libraryDir  string
	audioFormat string
	logger      *slog.Logger
	run         runnerFunc
}

// Option customises the Fetcher.
type Option func(*Fetcher)

// WithRunner replaces the yt-dlp invocation, for tests.
func WithRunner(run runnerFunc) Option {
	return func(f *Fetcher) {
		if run != nil {
			f.run = run
		}
	}
}

// NewFetcher builds a Fetcher from configuration.
func NewFetcher(cfg *config.Config, logger *slog.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		libraryDir:  cfg.Paths.LibraryDir,
		audioFormat: cfg.Download.AudioFormat,
		logger:      logging.NewComponentLogger(logger, "download"),
		run:         runYtdlp,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func runYtdlp(ctx context.Context, url, outputTemplate, audioFormat string) error {
	cmd := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat(audioFormat).
		NoPlaylist().
		NoProgress().
		Output(outputTemplate)
	_, err := cmd.Run(ctx, url)
	return err
}

// Fetch downloads the track at url and returns the final audio file path.
// baseName seeds the file name and is sanitized for the filesystem; the
// extension follows the configured audio format.
func (f *Fetcher) Fetch(ctx context.Context, url, baseName string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", services.Wrap(services.ErrValidation, "download", "validate input", "url must not be empty", nil)
	}

	if err := os.MkdirAll(f.libraryDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "download", "ensure library dir", f.libraryDir, err)
	}

	base := SanitizeBaseName(baseName)
	outputTemplate := filepath.Join(f.libraryDir, base+".%(ext)s")
	finalPath := filepath.Join(f.libraryDir, base+"."+f.audioFormat)

	f.logger.Info("downloading track",
		logging.String("url", url),
		logging.String("output", finalPath))

	if err := f.run(ctx, url, outputTemplate, f.audioFormat); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", services.Wrap(services.ErrExternalTool, "download", "run yt-dlp", url, err)
	}

	f.logger.Info("download complete", logging.String("output", finalPath))
	return finalPath, nil
}

// SanitizeBaseName strips filesystem-hostile characters from a candidate file
// name and collapses whitespace. An empty result falls back to "track".
func SanitizeBaseName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "", "\"", "", "<", "", ">", "", "|", "-",
	)
	name = replacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, ". ")
	if name == "" {
		return "track"
	}
	return name
}
