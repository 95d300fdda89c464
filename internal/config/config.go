package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

func homeDirOrFallback() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}

// Config holds all user-configurable settings.
type Config struct {
	// BaseURL is the root URL of the site serving the video directory.
	BaseURL string `json:"base_url"`
	// VideoDir is the directory under BaseURL that holds the videos.
	VideoDir string `json:"video_dir"`
	// ManifestName is the JSON manifest file looked for inside VideoDir.
	ManifestName string `json:"manifest_name"`
	// MediaExtension is the file extension accepted from directory listings.
	MediaExtension string `json:"media_extension"`
	// SensitiveMarker flags an entry as sensitive when found in its name or URL.
	SensitiveMarker string `json:"sensitive_marker"`
	// RequestsPerSecond rate-limits HTTP requests to the site.
	RequestsPerSecond float64 `json:"requests_per_second"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "http://localhost:8080/",
		VideoDir:          "videos",
		ManifestName:      "videos.json",
		MediaExtension:    ".mp4",
		SensitiveMarker:   "nsfw",
		RequestsPerSecond: 5.0,
	}
}

// ManifestURL is the full URL of the declared manifest.
func (c *Config) ManifestURL() string {
	return c.siteRoot() + c.dir() + "/" + c.ManifestName
}

// ListingURL is the full URL of the video directory listing.
func (c *Config) ListingURL() string {
	return c.siteRoot() + c.dir() + "/"
}

func (c *Config) siteRoot() string {
	return strings.TrimRight(c.BaseURL, "/") + "/"
}

func (c *Config) dir() string {
	return strings.Trim(c.VideoDir, "/")
}

// ConfigDir returns the directory where config and data files are stored.
func ConfigDir() string {
	if dir := os.Getenv("VIDSHELF_CONFIG_DIR"); dir != "" {
		return dir
	}
	home := homeDirOrFallback()
	return filepath.Join(home, ".config", "vidshelf")
}

// DBPath returns the path to the SQLite database.
func DBPath() string {
	return filepath.Join(ConfigDir(), "index.db")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load reads config from disk, returning defaults if the file doesn't exist.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.Save(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0o644)
}
