package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse_Full(t *testing.T) {
	t.Setenv("LUACENE_PORT", "9090")
	cfg, err := Parse([]byte(`
index:
  max_buffered_docs: 50
  lock_timeout: 250ms
  default_field: body
codec:
  charset: ISO-8859-1
  strict: true
logging:
  level: warn
http:
  port: ${LUACENE_PORT}
metrics:
  enabled: true
mcp:
  transport: ${LUACENE_TRANSPORT:-http}
scripts:
  concurrency: 3
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Index.MaxBufferedDocs != 50 {
		t.Errorf("max_buffered_docs = %d", cfg.Index.MaxBufferedDocs)
	}
	if cfg.Index.LockTimeout != 250*time.Millisecond {
		t.Errorf("lock_timeout = %v", cfg.Index.LockTimeout)
	}
	if cfg.Index.DefaultField != "body" {
		t.Errorf("default_field = %q", cfg.Index.DefaultField)
	}
	if cfg.Codec.Charset != "ISO-8859-1" || !cfg.Codec.Strict {
		t.Errorf("codec = %+v", cfg.Codec)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("http.port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.MCP.Transport != "http" {
		t.Errorf("mcp.transport = %q, want http", cfg.MCP.Transport)
	}
	if !cfg.Metrics.Enabled || cfg.Scripts.Concurrency != 3 || cfg.Logging.Level != "warn" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Index.MaxBufferedDocs != 1000 {
		t.Errorf("max_buffered_docs = %d, want 1000", cfg.Index.MaxBufferedDocs)
	}
	if cfg.Index.LockTimeout != time.Second {
		t.Errorf("lock_timeout = %v, want 1s", cfg.Index.LockTimeout)
	}
	if cfg.Index.DefaultField != "contents" {
		t.Errorf("default_field = %q, want contents", cfg.Index.DefaultField)
	}
	if cfg.MCP.Transport != "stdio" || cfg.HTTP.Port != 8080 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Scripts.Concurrency < 1 {
		t.Errorf("scripts.concurrency = %d", cfg.Scripts.Concurrency)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too high", func(c *Config) { c.HTTP.Port = 70000 }},
		{"negative port", func(c *Config) { c.HTTP.Port = -1 }},
		{"transport", func(c *Config) { c.MCP.Transport = "sse" }},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"default field", func(c *Config) { c.Index.DefaultField = "a:b" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte("mcp:\n  transport: http\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.MCP.Transport != "http" {
		t.Errorf("transport = %q", cfg.MCP.Transport)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("http: [\n"), 0o600)
	if _, err := LoadFile(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_RepositoryConfigs(t *testing.T) {
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			if _, err := Load(env); err != nil {
				t.Fatalf("Load(%q) error = %v", env, err)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LUACENE_SET", "value")
	tests := []struct {
		in, want string
	}{
		{"${LUACENE_SET}", "value"},
		{"${LUACENE_UNSET_VAR}", ""},
		{"${LUACENE_UNSET_VAR:-fallback}", "fallback"},
		{"${LUACENE_SET:-fallback}", "value"},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		if got := string(expandEnvVars([]byte(tc.in))); got != tc.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
