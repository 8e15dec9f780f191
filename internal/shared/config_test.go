package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	t.Run("selects the youtube-transcript-api backend", func(t *testing.T) {
		if config.Transcript.Backend != "youtube-transcript-api" {
			t.Errorf("expected youtube-transcript-api backend, got %q", config.Transcript.Backend)
		}
	})

	t.Run("prefers English captions", func(t *testing.T) {
		if len(config.Transcript.Languages) != 1 || config.Transcript.Languages[0] != "en" {
			t.Errorf("expected [en], got %v", config.Transcript.Languages)
		}
	})

	t.Run("disables throttling", func(t *testing.T) {
		if config.Transcript.RateLimit != 0 {
			t.Errorf("expected rate limit 0, got %v", config.Transcript.RateLimit)
		}
	})

	t.Run("disables the cache so plain runs persist nothing", func(t *testing.T) {
		if config.Cache.Enabled {
			t.Error("expected cache to be disabled by default")
		}
		if config.Cache.Path == "" {
			t.Error("expected a default cache path")
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads a valid config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[transcript]
backend = "youtube-transcript-api"
languages = ["de", "en"]
rate_limit = 2.5

[cache]
enabled = true
path = "custom.db"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(config.Transcript.Languages) != 2 || config.Transcript.Languages[0] != "de" {
			t.Errorf("expected [de en], got %v", config.Transcript.Languages)
		}
		if config.Transcript.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.Transcript.RateLimit)
		}
		if !config.Cache.Enabled {
			t.Error("expected cache to be enabled")
		}
		if config.Cache.Path != "custom.db" {
			t.Errorf("expected custom.db, got %q", config.Cache.Path)
		}
	})

	t.Run("fails for a missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Fatalf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("fails for invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes the example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected created file to parse, got %v", err)
		}
		if config.Transcript.Backend != "youtube-transcript-api" {
			t.Errorf("expected default backend, got %q", config.Transcript.Backend)
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Fatal("expected error for existing file")
		}
	})
}
