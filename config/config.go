package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"itproger-bot/fetcher"
	"itproger-bot/parser"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// BotTokenEnv is the environment variable holding the Telegram bot token
const BotTokenEnv = "BOT_TOKEN"

// Config represents the bot and scraper configuration
type Config struct {
	Site struct {
		BaseURL   string        `yaml:"base_url"`
		NewsPath  string        `yaml:"news_path"`
		UserAgent string        `yaml:"user_agent"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"site"`

	Pagination struct {
		// FallbackTotalPages is used whenever the pager does not reveal the real count
		FallbackTotalPages int `yaml:"fallback_total_pages"`
	} `yaml:"pagination"`

	Limits struct {
		DescriptionChars int `yaml:"description_chars"`
		FullTextChars    int `yaml:"full_text_chars"`
		ArticlesPerPage  int `yaml:"articles_per_page"`
	} `yaml:"limits"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Rules parser.Rules `yaml:"rules"`

	// BotToken comes from the environment only
	BotToken string `yaml:"-"`
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Load loads the config file when it exists and falls back to defaults otherwise
func Load(path string) (*Config, error) {
	if path == "" {
		return GetDefaultConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return GetDefaultConfig(), nil
	}
	return LoadConfig(path)
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Site.BaseURL = "https://itproger.com"
	cfg.Site.NewsPath = "/news"
	cfg.Site.UserAgent = fetcher.DefaultUserAgent
	cfg.Site.Timeout = fetcher.DefaultTimeout
	cfg.Pagination.FallbackTotalPages = parser.DefaultFallbackPages
	cfg.Limits.DescriptionChars = parser.DefaultDescriptionLimit
	cfg.Limits.FullTextChars = parser.DefaultFullTextLimit
	cfg.Limits.ArticlesPerPage = 10
	cfg.Log.Level = "info"
	cfg.Rules = parser.DefaultRules()
	return cfg
}

// LoadEnv reads secrets from the environment, loading envFile first when it exists.
// Variables already set in the environment win over the file.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}
	c.BotToken = strings.TrimSpace(os.Getenv(BotTokenEnv))
	return nil
}

// Validate checks the configuration for values the scraper cannot work with
func (c *Config) Validate() error {
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("site.base_url must be an absolute URL, got %q", c.Site.BaseURL)
	}
	if !strings.HasPrefix(c.Site.NewsPath, "/") {
		return fmt.Errorf("site.news_path must start with '/', got %q", c.Site.NewsPath)
	}
	if c.Pagination.FallbackTotalPages < 1 {
		return fmt.Errorf("pagination.fallback_total_pages must be at least 1, got %d", c.Pagination.FallbackTotalPages)
	}
	if c.Limits.DescriptionChars < 1 || c.Limits.FullTextChars < 1 || c.Limits.ArticlesPerPage < 1 {
		return fmt.Errorf("limits must be positive")
	}
	if _, err := c.Rules.Compile(); err != nil {
		return fmt.Errorf("invalid extraction rules: %w", err)
	}
	return nil
}

// NewsURL is the first listing page
func (c *Config) NewsURL() string {
	return strings.TrimRight(c.Site.BaseURL, "/") + c.Site.NewsPath
}
