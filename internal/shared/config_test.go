package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		contents := `
[credentials.spotify]
client_id = "cid"
client_secret = "secret"
redirect_uri = "http://localhost:4000/auth/callback"

[planner]
url = "http://planner:8000"

[session]
secret = "0123456789abcdef0123456789abcdef"
secure = true

[server]
host = "0.0.0.0"
port = 9000
client_origin = "https://app.example.com"
`
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "cid" {
			t.Errorf("unexpected client id: %q", config.Credentials.Spotify.ClientID)
		}
		if config.Planner.URL != "http://planner:8000" {
			t.Errorf("unexpected planner URL: %q", config.Planner.URL)
		}
		if !config.Session.Secure {
			t.Error("expected secure session flag")
		}
		if got := config.Server.Addr(); got != "0.0.0.0:9000" {
			t.Errorf("unexpected listen address: %q", got)
		}
		if config.Server.ClientOrigin != "https://app.example.com" {
			t.Errorf("unexpected client origin: %q", config.Server.ClientOrigin)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not = [valid"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Server.Port != 4000 {
		t.Errorf("unexpected default port: %d", config.Server.Port)
	}
	if config.Server.ClientOrigin != "http://localhost:3000" {
		t.Errorf("unexpected default client origin: %q", config.Server.ClientOrigin)
	}
	if config.Planner.URL != "http://localhost:8000" {
		t.Errorf("unexpected default planner URL: %q", config.Planner.URL)
	}
	if len(config.Session.Secret) < 32 {
		t.Error("default session secret should satisfy the codec minimum")
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("Creates File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created file should parse: %v", err)
		}
		if config.Server.Port != 4000 {
			t.Errorf("unexpected port in created file: %d", config.Server.Port)
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file exists")
		}
	})
}
