package config

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone  = "UTC"
	configPathEnv    = "COWSAY_NEWS_CONFIG"
	newsAPIKeyEnv    = "NEWS_API_KEY"
	geminiAPIKeyEnv  = "GEMINI_API_KEY"
	ghostAdminKeyEnv = "GHOST_ADMIN_API_KEY"
	ghostURLEnv      = "GHOST_URL"
	ghostAuthorEnv   = "GHOST_AUTHOR_ID"
	logLevelEnv      = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
// It is built once at startup and passed by value; no component reads
// ambient environment state directly.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	News      NewsConfig      `yaml:"news"`
	Model     ModelConfig     `yaml:"model"`
	Ghost     GhostConfig     `yaml:"ghost"`
	Filter    FilterConfig    `yaml:"filter"`
	Classify  ClassifyConfig  `yaml:"classify"`
	Summary   SummaryConfig   `yaml:"summary"`
}

// LoggingConfig controls console output verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SchedulerConfig defines when daemon mode runs the pipeline.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NewsConfig describes the top-headlines source.
type NewsConfig struct {
	BaseURL     string        `yaml:"baseUrl"`
	Country     string        `yaml:"country"`
	PageSize    int           `yaml:"pageSize"`
	MaxAttempts int           `yaml:"maxAttempts"`
	RetryDelay  time.Duration `yaml:"retryDelay"`
	APIKey      string        `yaml:"-"`
}

// ModelConfig defines how to contact the generative-language API.
type ModelConfig struct {
	BaseURL   string        `yaml:"baseUrl"`
	Model     string        `yaml:"model"`
	PaceDelay time.Duration `yaml:"paceDelay"`
	APIKey    string        `yaml:"-"`
}

// GhostConfig wires the publishing target's admin API.
type GhostConfig struct {
	BaseURL           string `yaml:"-"`
	KeyID             string `yaml:"-"`
	KeySecret         []byte `yaml:"-"`
	AuthorID          string `yaml:"-"`
	DefaultNewsletter string `yaml:"defaultNewsletter"`
}

// FilterConfig drives headline normalization and exclusion.
type FilterConfig struct {
	SourceSeparator string   `yaml:"sourceSeparator"`
	BlockedKeywords []string `yaml:"blockedKeywords"`
	BlockedDomains  []string `yaml:"blockedDomains"`
}

// ClassifyConfig bounds per-category accumulation.
type ClassifyConfig struct {
	CategoryCap int `yaml:"categoryCap"`
	OtherCap    int `yaml:"otherCap"`
}

// SummaryConfig selects the punny-title input strategy.
type SummaryConfig struct {
	TitleStrategy string `yaml:"titleStrategy"`
}

// Load reads YAML configuration (if present), applies environment
// overrides, and validates required credentials. A missing or malformed
// credential is a fatal startup error.
func Load() (Config, error) {
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

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.bindTimezone()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	c.News.APIKey = os.Getenv(newsAPIKeyEnv)
	if c.News.APIKey == "" {
		return fmt.Errorf("config: %s is required", newsAPIKeyEnv)
	}

	c.Model.APIKey = os.Getenv(geminiAPIKeyEnv)
	if c.Model.APIKey == "" {
		return fmt.Errorf("config: %s is required", geminiAPIKeyEnv)
	}

	c.Ghost.BaseURL = strings.TrimSuffix(os.Getenv(ghostURLEnv), "/")
	if c.Ghost.BaseURL == "" {
		return fmt.Errorf("config: %s is required", ghostURLEnv)
	}

	adminKey := os.Getenv(ghostAdminKeyEnv)
	if adminKey == "" {
		return fmt.Errorf("config: %s is required", ghostAdminKeyEnv)
	}
	keyID, secret, err := splitAdminKey(adminKey)
	if err != nil {
		return err
	}
	c.Ghost.KeyID = keyID
	c.Ghost.KeySecret = secret

	c.Ghost.AuthorID = os.Getenv(ghostAuthorEnv)

	return nil
}

// splitAdminKey parses the "id:secret" admin key, decoding the secret
// from hex as the signing material.
func splitAdminKey(key string) (string, []byte, error) {
	id, secret, ok := strings.Cut(key, ":")
	if !ok || id == "" || secret == "" {
		return "", nil, fmt.Errorf("config: %s is not in id:secret format", ghostAdminKeyEnv)
	}

	raw, err := hex.DecodeString(secret)
	if err != nil {
		return "", nil, fmt.Errorf("config: %s secret is not hex-encoded: %w", ghostAdminKeyEnv, err)
	}

	return id, raw, nil
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.News.BaseURL != "" {
		base.News.BaseURL = override.News.BaseURL
	}
	if override.News.Country != "" {
		base.News.Country = override.News.Country
	}
	if override.News.PageSize > 0 {
		base.News.PageSize = override.News.PageSize
	}
	if override.News.MaxAttempts > 0 {
		base.News.MaxAttempts = override.News.MaxAttempts
	}
	if override.News.RetryDelay > 0 {
		base.News.RetryDelay = override.News.RetryDelay
	}

	if override.Model.BaseURL != "" {
		base.Model.BaseURL = override.Model.BaseURL
	}
	if override.Model.Model != "" {
		base.Model.Model = override.Model.Model
	}
	if override.Model.PaceDelay > 0 {
		base.Model.PaceDelay = override.Model.PaceDelay
	}

	if override.Ghost.DefaultNewsletter != "" {
		base.Ghost.DefaultNewsletter = override.Ghost.DefaultNewsletter
	}

	if override.Filter.SourceSeparator != "" {
		base.Filter.SourceSeparator = override.Filter.SourceSeparator
	}
	if len(override.Filter.BlockedKeywords) > 0 {
		base.Filter.BlockedKeywords = override.Filter.BlockedKeywords
	}
	if len(override.Filter.BlockedDomains) > 0 {
		base.Filter.BlockedDomains = override.Filter.BlockedDomains
	}

	if override.Classify.CategoryCap > 0 {
		base.Classify.CategoryCap = override.Classify.CategoryCap
	}
	if override.Classify.OtherCap > 0 {
		base.Classify.OtherCap = override.Classify.OtherCap
	}

	if override.Summary.TitleStrategy != "" {
		base.Summary.TitleStrategy = override.Summary.TitleStrategy
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{CronExpression: "0 12 * * *", Timezone: defaultTimezone, location: tz},
		News: NewsConfig{
			BaseURL:     "https://newsapi.org",
			Country:     "us",
			PageSize:    20,
			MaxAttempts: 3,
			RetryDelay:  30 * time.Second,
		},
		Model: ModelConfig{
			BaseURL:   "https://generativelanguage.googleapis.com",
			Model:     "gemini-2.5-flash",
			PaceDelay: time.Second,
		},
		Ghost: GhostConfig{},
		Filter: FilterConfig{
			SourceSeparator: " - ",
			BlockedKeywords: []string{"horoscope"},
			BlockedDomains:  []string{"facebook.com", "twitter.com", "instagram.com", ".gov"},
		},
		Classify: ClassifyConfig{CategoryCap: 8, OtherCap: 8},
		Summary:  SummaryConfig{TitleStrategy: "headlines"},
	}
}
