// ABOUTME: Tests for configuration loading, env expansion, and validation
// ABOUTME: Uses temp-dir YAML files to exercise the full Load path

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes YAML content to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskgate.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

const validConfig = `
server:
  http_addr: ":8080"
database:
  path: "/tmp/taskgate.db"
auth:
  jwt_secret: "config-test-secret-32-bytes-long"
logging:
  level: "debug"
  format: "json"
metrics:
  enabled: true
`

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.Server.HTTPAddr)
	}
	if cfg.Database.Path != "/tmp/taskgate.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true")
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want default /metrics", cfg.Metrics.Path)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TASKGATE_TEST_SECRET", "env-expanded-secret-32-bytes-long")

	path := writeConfig(t, `
server:
  http_addr: ":8080"
database:
  path: "/tmp/taskgate.db"
auth:
  jwt_secret: "${TASKGATE_TEST_SECRET}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.JWTSecret != "env-expanded-secret-32-bytes-long" {
		t.Errorf("JWTSecret = %q, env var was not expanded", cfg.Auth.JWTSecret)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing http_addr",
			content: `
database:
  path: "/tmp/t.db"
auth:
  jwt_secret: "config-test-secret-32-bytes-long"
`,
			wantErr: "server.http_addr",
		},
		{
			name: "missing database path",
			content: `
server:
  http_addr: ":8080"
auth:
  jwt_secret: "config-test-secret-32-bytes-long"
`,
			wantErr: "database.path",
		},
		{
			name: "missing jwt secret",
			content: `
server:
  http_addr: ":8080"
database:
  path: "/tmp/t.db"
`,
			wantErr: "auth.jwt_secret",
		},
		{
			name: "short jwt secret",
			content: `
server:
  http_addr: ":8080"
database:
  path: "/tmp/t.db"
auth:
  jwt_secret: "too-short"
`,
			wantErr: "at least",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should have failed validation")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not: valid")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail for malformed YAML")
	}
}
