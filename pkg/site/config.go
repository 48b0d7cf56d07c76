package site

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/quietpress/quill/pkg/core"
)

// DefaultConfigFile is the config filename looked up in the working
// directory when no explicit path is given.
const DefaultConfigFile = "quill.yaml"

// Config is the site configuration, normally loaded from quill.yaml.
type Config struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	BaseURL     string            `yaml:"base_url"`
	Language    string            `yaml:"language"`
	Author      core.Author       `yaml:"author"`
	Social      []core.SocialLink `yaml:"social"`
	Groups      []core.Group      `yaml:"groups"`

	ContentDir string   `yaml:"content_dir"`
	StaticDir  string   `yaml:"static_dir"`
	OutputDir  string   `yaml:"output_dir"`
	SystemDir  string   `yaml:"system_dir"`
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude"`

	RecentCount int `yaml:"recent_count"`

	Feed struct {
		Enabled *bool `yaml:"enabled"`
		Limit   int   `yaml:"limit"`
	} `yaml:"feed"`

	Markdown struct {
		Mermaid bool `yaml:"mermaid"`
		KaTeX   bool `yaml:"katex"`
	} `yaml:"markdown"`
}

// DefaultConfig returns the configuration used when quill.yaml omits a field.
func DefaultConfig() Config {
	cfg := Config{
		Title:       "Quill Site",
		Language:    "en-us",
		ContentDir:  "content",
		StaticDir:   "static",
		OutputDir:   "public",
		SystemDir:   ".quill",
		RecentCount: 5,
	}
	cfg.Feed.Limit = 20
	return cfg
}

// LoadConfig reads the config file, layers it over the defaults, then applies
// QUILL_* environment overrides. A .env file next to the working directory is
// honored if present.
func LoadConfig(path string, logger *slog.Logger) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if logger != nil {
			logger.Debug("no config file, using defaults", "path", path)
		}
	} else if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()
	cfg.applyEnv()

	if cfg.BaseURL == "" {
		return cfg, fmt.Errorf("base_url is required (set it in %s or QUILL_BASE_URL)", path)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Title = getEnv("QUILL_TITLE", c.Title)
	c.Description = getEnv("QUILL_DESCRIPTION", c.Description)
	c.BaseURL = getEnv("QUILL_BASE_URL", c.BaseURL)
	c.ContentDir = getEnv("QUILL_CONTENT_DIR", c.ContentDir)
	c.StaticDir = getEnv("QUILL_STATIC_DIR", c.StaticDir)
	c.OutputDir = getEnv("QUILL_OUTPUT_DIR", c.OutputDir)
	c.RecentCount = getEnvInt("QUILL_RECENT_COUNT", c.RecentCount)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// FeedEnabled reports whether RSS generation is on. It defaults to true.
func (c Config) FeedEnabled() bool {
	return c.Feed.Enabled == nil || *c.Feed.Enabled
}
