package cfg

import "time"

type Cfg struct {
	// Application configuration
	ConfigFile string
	OutputDir  string
	LockFile   string
	DryRun     bool

	// Fetch configuration
	UserAgent    string
	FetchTimeout time.Duration

	// Application metadata
	Debug   bool
	Version string
}

// Settings is the per-feed settings file (config.yaml or config.toml).
type Settings struct {
	SourceFeed   string `yaml:"source_feed" toml:"source_feed"`
	OutputFile   string `yaml:"output_file" toml:"output_file"`
	SiteBasePath string `yaml:"site_base_path" toml:"site_base_path"`
}
