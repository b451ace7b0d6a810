package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultServerURL = "http://localhost:5000/api"
	// Generous request timeout; the backend's plan-generation endpoints can
	// take well over a minute.
	defaultRequestTimeout = 2 * time.Minute
)

// Config holds runtime settings for the fitterm client.
type Config struct {
	// ServerURL is the base URL of the REST backend, including any path
	// prefix (e.g. "https://api.example.com/api").
	ServerURL string `yaml:"server_url"`

	// RequestTimeout bounds every HTTP request.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Dir is the state directory holding the session file, the library
	// cache database, and the TUI log. Not read from the file.
	Dir string `yaml:"-"`
}

func (c Config) SessionPath() string { return filepath.Join(c.Dir, "session.json") }
func (c Config) CachePath() string   { return filepath.Join(c.Dir, "library-cache.db") }
func (c Config) LogPath() string     { return filepath.Join(c.Dir, "fitterm.log") }

// Load builds a Config from defaults, then the YAML file in the state
// directory, then environment variables, then the --server flag value.
// Later sources take precedence.
func Load(serverFlag string) (Config, error) {
	dir, err := stateDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServerURL:      defaultServerURL,
		RequestTimeout: defaultRequestTimeout,
		Dir:            dir,
	}

	path := filepath.Join(dir, "config.yaml")
	if payload, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(payload, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if v := os.Getenv("FITTERM_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}

	if cfg.ServerURL == "" {
		return Config{}, fmt.Errorf("server url is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	return cfg, nil
}

func stateDir() (string, error) {
	if v := os.Getenv("FITTERM_DIR"); v != "" {
		return v, os.MkdirAll(v, 0o755)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	dir := filepath.Join(base, "fitterm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}
