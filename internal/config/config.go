package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Feed is one RSS source the aggregation agent pulls from.
type Feed struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// SupabaseConfig points at the hosted data store. URL and key may also be
// supplied through SUPABASE_URL / SUPABASE_KEY.
type SupabaseConfig struct {
	URL string `yaml:"url,omitempty"`
	Key string `yaml:"key,omitempty"`
}

// NewsAPIConfig tunes the supplementary NewsAPI source. The API key comes
// from NEWS_API_KEY; an empty key disables the source.
type NewsAPIConfig struct {
	Query       string `yaml:"query"`
	Language    string `yaml:"language"`
	DaysBack    int    `yaml:"days_back"`
	MaxArticles int    `yaml:"max_articles"`
}

// AIConfig selects the Gemini model for briefing generation. The API key
// comes from GEMINI_API_KEY; an empty key skips briefing generation.
type AIConfig struct {
	Model string `yaml:"model"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	RefreshInterval string         `yaml:"refresh_interval"`
	Retention       string         `yaml:"retention"`
	Supabase        SupabaseConfig `yaml:"supabase"`
	NewsAPI         NewsAPIConfig  `yaml:"news_api"`
	AI              AIConfig       `yaml:"ai"`
	Server          ServerConfig   `yaml:"server"`
	Keywords        []string       `yaml:"keywords"`
	Feeds           []Feed         `yaml:"feeds"`
}

// SupabaseURL resolves the data store URL (config first, then env).
func (c *Config) SupabaseURL() string {
	if c.Supabase.URL != "" {
		return c.Supabase.URL
	}
	return os.Getenv("SUPABASE_URL")
}

// SupabaseKey resolves the data store API key (config first, then env).
func (c *Config) SupabaseKey() string {
	if c.Supabase.Key != "" {
		return c.Supabase.Key
	}
	return os.Getenv("SUPABASE_KEY")
}

func (c *Config) NewsAPIKey() string {
	return os.Getenv("NEWS_API_KEY")
}

func (c *Config) GeminiKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func (c *Config) RefreshDuration() time.Duration {
	d, err := parseDays(c.RefreshInterval)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

func (c *Config) RetentionDuration() time.Duration {
	d, err := parseDays(c.Retention)
	if err != nil {
		return 90 * 24 * time.Hour
	}
	return d
}

// parseDays accepts Go durations plus an "Nd" day syntax.
func parseDays(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func (c *Config) EnabledFeeds() []Feed {
	var out []Feed
	for _, f := range c.Feeds {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}

func (c *Config) ServerAddr() string {
	if c.Server.Addr == "" {
		return ":8080"
	}
	return c.Server.Addr
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "cleanbrief", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.CacheHome, "cleanbrief", "history.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	for i, f := range cfg.Feeds {
		if f.Name == "" {
			return fmt.Errorf("feed %d: name is required", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feed %q: url is required", f.Name)
		}
		u, err := url.Parse(f.URL)
		if err != nil {
			return fmt.Errorf("feed %q: invalid url: %w", f.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("feed %q: url scheme must be http or https, got %q", f.Name, u.Scheme)
		}
	}
	if u := cfg.Supabase.URL; u != "" {
		parsed, err := url.Parse(u)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("supabase url %q is not a valid http(s) url", u)
		}
	}
	return nil
}
