package cfg

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputFile   = "podcast.xml"
	DefaultSiteBasePath = "/"
)

// LoadSettings reads the settings file at path. The format is picked from the
// file extension: .yaml and .yml are YAML, .toml is TOML.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&settings); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported settings file extension %q", ext)
	}

	setDefaults(&settings)

	if err := validate(&settings); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}

	return &settings, nil
}

func setDefaults(settings *Settings) {
	if strings.TrimSpace(settings.OutputFile) == "" {
		settings.OutputFile = DefaultOutputFile
	}
	if strings.TrimSpace(settings.SiteBasePath) == "" {
		settings.SiteBasePath = DefaultSiteBasePath
	}
}

func validate(settings *Settings) error {
	if settings.SourceFeed == "" {
		return fmt.Errorf("source_feed is required")
	}

	u, err := url.Parse(settings.SourceFeed)
	if err != nil {
		return fmt.Errorf("source_feed is not a valid URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("source_feed must be an http(s) URL, got scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("source_feed must include a host")
	}

	if filepath.Base(settings.OutputFile) != settings.OutputFile || settings.OutputFile == "." || settings.OutputFile == ".." {
		return fmt.Errorf("output_file must be a file name, got %q", settings.OutputFile)
	}

	return nil
}
