package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[api]
base_url = "http://flick.example:4000"

[tmdb]
api_key = "key-1"

[storage]
path = "custom.db"
max_open_conns = 2
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.API.BaseURL != "http://flick.example:4000" {
			t.Errorf("unexpected base URL %q", config.API.BaseURL)
		}
		if config.TMDb.APIKey != "key-1" {
			t.Errorf("unexpected api key %q", config.TMDb.APIKey)
		}
		if config.Storage.Path != "custom.db" || config.Storage.MaxOpenConns != 2 {
			t.Errorf("unexpected storage config %+v", config.Storage)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte("not [valid toml"), 0644)

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.API.BaseURL == "" {
		t.Error("embedded default must set a base URL")
	}
	if config.TMDb.SearchURL == "" || config.TMDb.ImageHost == "" {
		t.Error("embedded default must set TMDb endpoints")
	}
	if config.Storage.Path == "" {
		t.Error("embedded default must set a storage path")
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("Writes Example Config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("written config must parse: %v", err)
		}
		if config.API.BaseURL == "" {
			t.Error("written config must carry defaults")
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte("existing"), 0644)

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file exists")
		}
	})
}
