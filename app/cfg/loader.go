package cfg

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

const DefaultUserAgent = "ytm-rss-builder/1.0 (+https://github.com/)"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	ConfigFile string `long:"config" short:"c" env:"CONFIG_FILE" default:"config.yaml" description:"Settings file (.yaml, .yml or .toml)"`
	OutputDir  string `long:"output-dir" env:"OUTPUT_DIR" default:"public" description:"Directory the rebuilt feed is written to"`
	LockFile   string `long:"lock-file" env:"LOCK_FILE" description:"Lock file preventing overlapping runs (default: <tmp>/rss-rebuilder.lock)"`
	DryRun     bool   `long:"dry-run" env:"DRY_RUN" description:"Print the rebuilt episodes instead of writing the feed"`

	// Fetch configuration
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"ytm-rss-builder/1.0 (+https://github.com/)" description:"User agent string for HTTP requests"`
	FetchTimeout int    `long:"timeout" env:"FETCH_TIMEOUT" default:"60" description:"Fetch timeout in seconds"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return parse(os.Args[1:])
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.FetchTimeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %d", raw.FetchTimeout)
	}

	cfg := &Cfg{
		ConfigFile:   raw.ConfigFile,
		OutputDir:    raw.OutputDir,
		LockFile:     cmp.Or(raw.LockFile, filepath.Join(os.TempDir(), "rss-rebuilder.lock")),
		DryRun:       raw.DryRun,
		UserAgent:    cmp.Or(raw.UserAgent, DefaultUserAgent),
		FetchTimeout: time.Duration(raw.FetchTimeout) * time.Second,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	return cfg, nil
}
