package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the luacene runtime configuration.
type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Codec   CodecConfig   `yaml:"codec"`
	Logging LoggingConfig `yaml:"logging"`
	HTTP    HTTPConfig    `yaml:"http"`
	Metrics MetricsConfig `yaml:"metrics"`
	MCP     MCPConfig     `yaml:"mcp"`
	Scripts ScriptsConfig `yaml:"scripts"`
}

// IndexConfig holds writer and reader settings.
type IndexConfig struct {
	MaxBufferedDocs int           `yaml:"max_buffered_docs"`
	LockTimeout     time.Duration `yaml:"lock_timeout"`
	DefaultField    string        `yaml:"default_field"`
}

// CodecConfig selects the host charset.
type CodecConfig struct {
	Charset string `yaml:"charset"` // empty: derived from the locale
	Strict  bool   `yaml:"strict"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port           int `yaml:"port"`
	ReadTimeoutSec int `yaml:"read_timeout_sec"`
	ShutdownSec    int `yaml:"shutdown_timeout_sec"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MCPConfig selects the MCP transport.
type MCPConfig struct {
	Transport string `yaml:"transport"` // stdio, http (default: stdio)
}

// ScriptsConfig bounds concurrent Lua script execution.
type ScriptsConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from the YAML file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} and ${VAR:-default}.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Index.MaxBufferedDocs <= 0 {
		c.Index.MaxBufferedDocs = 1000
	}
	if c.Index.LockTimeout <= 0 {
		c.Index.LockTimeout = time.Second
	}
	if c.Index.DefaultField == "" {
		c.Index.DefaultField = "contents"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.MCP.Transport == "" {
		c.MCP.Transport = "stdio"
	}
	if c.Scripts.Concurrency <= 0 {
		c.Scripts.Concurrency = runtime.GOMAXPROCS(0)
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.MCP.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("mcp.transport must be \"stdio\" or \"http\", got %q", c.MCP.Transport)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	if strings.ContainsAny(c.Index.DefaultField, " \t:") {
		return fmt.Errorf("index.default_field must be a single field name, got %q", c.Index.DefaultField)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
