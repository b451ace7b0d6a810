package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fitterm/internal/platform/config"
)

func TestLoadPrecedenceDefaultsFileEnvFlag(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FITTERM_DIR", dir)
	t.Setenv("FITTERM_SERVER", "")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.ServerURL != "http://localhost:5000/api" {
		t.Fatalf("unexpected default server: %s", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 2*time.Minute {
		t.Fatalf("unexpected default timeout: %s", cfg.RequestTimeout)
	}

	file := []byte("server_url: https://file.example.com/api\nrequest_timeout: 30s\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), file, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	cfg, err = config.Load("")
	if err != nil {
		t.Fatalf("load with file: %v", err)
	}
	if cfg.ServerURL != "https://file.example.com/api" {
		t.Fatalf("file value not applied: %s", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("file timeout not applied: %s", cfg.RequestTimeout)
	}

	t.Setenv("FITTERM_SERVER", "https://env.example.com/api")
	cfg, err = config.Load("")
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if cfg.ServerURL != "https://env.example.com/api" {
		t.Fatalf("env did not override file: %s", cfg.ServerURL)
	}

	cfg, err = config.Load("https://flag.example.com/api")
	if err != nil {
		t.Fatalf("load with flag: %v", err)
	}
	if cfg.ServerURL != "https://flag.example.com/api" {
		t.Fatalf("flag did not override env: %s", cfg.ServerURL)
	}
}

func TestStatePathsLiveInStateDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FITTERM_DIR", dir)
	t.Setenv("FITTERM_SERVER", "")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, p := range []string{cfg.SessionPath(), cfg.CachePath(), cfg.LogPath()} {
		if filepath.Dir(p) != dir {
			t.Fatalf("state file %s not under %s", p, dir)
		}
	}
}
