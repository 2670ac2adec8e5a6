package config

const (
	defaultLibraryDir        = "~/music"
	defaultStateDir          = "~/.local/share/audiomatch"
	defaultLogDir            = "~/.local/share/audiomatch/logs"
	defaultCatalogBaseURL    = "https://music.youtube.com"
	defaultRequestTimeout    = 15
	defaultMaxResultsPerMode = 10
	defaultAudioFormat       = "mp3"
	defaultCacheTTLMinutes   = 60
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			StateDir:   defaultStateDir,
			LogDir:     defaultLogDir,
		},
		Search: Search{
			BaseURL:           defaultCatalogBaseURL,
			RequestTimeout:    defaultRequestTimeout,
			MaxResultsPerMode: defaultMaxResultsPerMode,
		},
		Download: Download{
			Enabled:     true,
			AudioFormat: defaultAudioFormat,
		},
		Cache: Cache{
			Enabled:    true,
			TTLMinutes: defaultCacheTTLMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
