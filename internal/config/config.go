package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nrjt/eduplatform/internal/types"
)

// Defaults used when a config file leaves a field empty
const (
	DefaultDBPath       = "./eduplatform.db"
	DefaultHost         = "localhost"
	DefaultPort         = 8086
	DefaultResourceBase = "/NRJT-EDU-PLATFROM"
	DefaultDateLayout   = "1/2/2006"
	DefaultIdleTimeout  = 30 * time.Minute
)

// Environment variables that override file values
const (
	EnvDBPath    = "EDU_DB_PATH"
	EnvAPIHost   = "EDU_API_HOST"
	EnvAPIPort   = "EDU_API_PORT"
	EnvLogLevel  = "EDU_LOG_LEVEL"
	EnvLogFormat = "EDU_LOG_FORMAT"
)

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() types.Config {
	return types.Config{
		Store: types.StoreConfig{
			DBPath: DefaultDBPath,
		},
		API: types.APIConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Seed: types.SeedConfig{
			Enabled:  false,
			Seed:     42,
			Folders:  2,
			MaxFiles: 3,
		},
		Paths: types.PathConfig{
			ResourceBase: DefaultResourceBase,
			DateLayout:   DefaultDateLayout,
		},
		Logging: types.LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Sessions: types.SessionConfig{
			IdleTimeout: types.Duration{Duration: DefaultIdleTimeout},
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(configPath string) (*types.Config, error) {
	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so partial files stay usable
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Ensure DB path is absolute
	if !filepath.IsAbs(cfg.Store.DBPath) {
		absPath, err := filepath.Abs(cfg.Store.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
		cfg.Store.DBPath = absPath
	}

	return &cfg, nil
}

// Load reads the config file when one is given, falls back to defaults
// otherwise, then applies environment overrides.
func Load(configPath string) (*types.Config, error) {
	var cfg *types.Config
	if configPath == "" {
		def := DefaultConfig()
		cfg = &def
	} else {
		loaded, err := LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := ApplyEnv(cfg, ""); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv loads dotEnvPath (when it exists) into the process environment
// and overrides config values from EDU_* variables. An empty dotEnvPath
// means ".env" in the working directory.
func ApplyEnv(cfg *types.Config, dotEnvPath string) error {
	if dotEnvPath == "" {
		dotEnvPath = ".env"
	}
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return fmt.Errorf("failed to load %s: %w", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", dotEnvPath, err)
	}

	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Store.DBPath = v
	}
	if v := os.Getenv(EnvAPIHost); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv(EnvAPIPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAPIPort, v, err)
		}
		cfg.API.Port = port
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}

	return Validate(cfg)
}

func applyDefaults(cfg *types.Config) {
	if cfg.Store.DBPath == "" {
		cfg.Store.DBPath = DefaultDBPath
	}
	if cfg.API.Host == "" {
		cfg.API.Host = DefaultHost
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = DefaultPort
	}
	if cfg.Paths.ResourceBase == "" {
		cfg.Paths.ResourceBase = DefaultResourceBase
	}
	if cfg.Paths.DateLayout == "" {
		cfg.Paths.DateLayout = DefaultDateLayout
	}
	if cfg.Sessions.IdleTimeout.Duration == 0 {
		cfg.Sessions.IdleTimeout.Duration = DefaultIdleTimeout
	}
}

// Validate checks that the configuration parameters are valid
func Validate(cfg *types.Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if cfg.API.Port < 1 || cfg.API.Port > 65535 {
		return fmt.Errorf("API port must be between 1 and 65535, got %d", cfg.API.Port)
	}

	if cfg.Seed.Folders < 0 {
		return fmt.Errorf("seed folders must be non-negative, got %d", cfg.Seed.Folders)
	}
	if cfg.Seed.MaxFiles < 0 {
		return fmt.Errorf("seed max_files must be non-negative, got %d", cfg.Seed.MaxFiles)
	}

	if !strings.HasPrefix(cfg.Paths.ResourceBase, "/") {
		return fmt.Errorf("resource_base must be an absolute path, got %q", cfg.Paths.ResourceBase)
	}

	if pinned := cfg.Paths.PinnedScope; pinned != nil && pinned.Standard == "" {
		return fmt.Errorf("pinned_scope requires a standard")
	}

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", cfg.Logging.Format)
	}

	if cfg.Sessions.IdleTimeout.Duration < 0 {
		return fmt.Errorf("session idle_timeout must be non-negative, got %s", cfg.Sessions.IdleTimeout)
	}

	return nil
}

// SaveToFile saves configuration to a JSON file
func SaveToFile(cfg *types.Config, configPath string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
