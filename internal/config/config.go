// Package config loads the chart compiler settings from an optional YAML
// file and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Sources SourcesConfig `yaml:"sources"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
}

// PathsConfig holds local file locations.
type PathsConfig struct {
	Secrets string `yaml:"secrets" env:"CHART_SECRETS_PATH" env-default:"secrets.json"`
	Cache   string `yaml:"cache"   env:"CHART_CACHE_PATH"   env-default:".http_cache.sqlite"`
	Output  string `yaml:"output"  env:"CHART_OUTPUT_DIR"   env-default:"recordings"`
}

// SourcesConfig holds the upstream pages.
type SourcesConfig struct {
	ChartURL   string `yaml:"chart_url"    env:"CHART_SOURCE_URL"   env-default:"https://resources.allsetlearning.com/chinese/pronunciation/Pinyin_chart"`
	YaleURL    string `yaml:"yale_url"     env:"CHART_YALE_URL"     env-default:"http://pinyin.info/romanization/yale/basic.html"`
	WikiAPIURL string `yaml:"wiki_api_url" env:"CHART_WIKI_API_URL" env-default:"https://en.wikipedia.org/w/api.php"`
}

// HTTPConfig holds outbound request settings. A zero timeout leaves the
// client without one.
type HTTPConfig struct {
	UserAgent string        `yaml:"user_agent" env:"CHART_USER_AGENT"   env-default:"pinyin-beginners-anki-deck chart compiler"`
	Timeout   time.Duration `yaml:"timeout"    env:"CHART_HTTP_TIMEOUT" env-default:"0s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is determined by CONFIG_PATH env (fallback "./config.yaml").
// If the file does not exist and CONFIG_PATH was not set explicitly,
// configuration is loaded from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"sources.chart_url":    c.Sources.ChartURL,
		"sources.yale_url":     c.Sources.YaleURL,
		"sources.wiki_api_url": c.Sources.WikiAPIURL,
	} {
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if strings.TrimSpace(c.Paths.Secrets) == "" {
		return fmt.Errorf("paths.secrets must not be empty")
	}
	if strings.TrimSpace(c.Paths.Cache) == "" {
		return fmt.Errorf("paths.cache must not be empty")
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		return fmt.Errorf("paths.output must not be empty")
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must be >= 0 (got %s)", c.HTTP.Timeout)
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
