package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "BULLETIN_SCANNER_CONFIG"
	indexURLEnv    = "BULLETIN_INDEX_URL"
	baseURLEnv     = "BULLETIN_BASE_URL"
	outputPathEnv  = "BULLETIN_OUTPUT_PATH"
	archivePathEnv = "BULLETIN_ARCHIVE_PATH"
	dashAddrEnv    = "BULLETIN_DASHBOARD_ADDR"
	logLevelEnv    = "BULLETIN_LOG_LEVEL"

	defaultTimeoutSeconds = 30
)

// Config holds high-level settings required across the application.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Output    OutputConfig    `yaml:"output"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SourceConfig describes the site the bulletins are scraped from.
type SourceConfig struct {
	Name           string `yaml:"name"`
	BaseURL        string `yaml:"baseUrl"`
	IndexURL       string `yaml:"indexUrl"`
	UserAgent      string `yaml:"userAgent"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the configured request timeout, defaulting when unset.
func (s SourceConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// OutputConfig locates the dataset document written each run.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// ArchiveConfig points at the SQLite archive; an empty path disables it.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// DashboardConfig drives the serve command. AssetsDir points at the static
// dashboard files; empty exposes only the dataset document.
type DashboardConfig struct {
	Addr      string `yaml:"addr"`
	AssetsDir string `yaml:"assetsDir"`
}

// LoggingConfig controls log verbosity and output shape.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(indexURLEnv); v != "" {
		c.Source.IndexURL = v
	}
	if v := os.Getenv(baseURLEnv); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv(outputPathEnv); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv(archivePathEnv); v != "" {
		c.Archive.Path = v
	}
	if v := os.Getenv(dashAddrEnv); v != "" {
		c.Dashboard.Addr = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Source.Name != "" {
		base.Source.Name = override.Source.Name
	}
	if override.Source.BaseURL != "" {
		base.Source.BaseURL = override.Source.BaseURL
	}
	if override.Source.IndexURL != "" {
		base.Source.IndexURL = override.Source.IndexURL
	}
	if override.Source.UserAgent != "" {
		base.Source.UserAgent = override.Source.UserAgent
	}
	if override.Source.TimeoutSeconds > 0 {
		base.Source.TimeoutSeconds = override.Source.TimeoutSeconds
	}

	if override.Output.Path != "" {
		base.Output.Path = override.Output.Path
	}
	if override.Archive.Path != "" {
		base.Archive.Path = override.Archive.Path
	}
	if override.Dashboard.Addr != "" {
		base.Dashboard.Addr = override.Dashboard.Addr
	}
	if override.Dashboard.AssetsDir != "" {
		base.Dashboard.AssetsDir = override.Dashboard.AssetsDir
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Name:           "travel.state.gov",
			BaseURL:        "https://travel.state.gov",
			IndexURL:       "https://travel.state.gov/content/travel/en/legal/visa-law0/visa-bulletin.html",
			UserAgent:      "BulletinScanner/1.0",
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Output:    OutputConfig{Path: "visa_bulletins.all.json"},
		Archive:   ArchiveConfig{Path: ""},
		Dashboard: DashboardConfig{Addr: ":8080", AssetsDir: ""},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}
