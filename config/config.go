package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the site service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Articles  ArticlesConfig  `mapstructure:"articles"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Editor    EditorConfig    `mapstructure:"editor"`
	Site      SiteConfig      `mapstructure:"site"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	// Debug turns on echo debug mode and per-request access logs.
	Debug bool `mapstructure:"debug"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Normalize applies the default listen address and cleans the origin list.
// An empty origin list allows any origin.
func (s ServerConfig) Normalize() ServerConfig {
	s.AllowedOrigins = normalizeOrigins(s.AllowedOrigins)
	if len(s.AllowedOrigins) == 0 {
		s.AllowedOrigins = []string{AnyOrigin}
	}
	s.Address = strings.TrimSpace(s.Address)
	if s.Address == "" {
		s.Address = ":10001"
	}
	if s.Address[0] != ':' && !strings.Contains(s.Address, ":") {
		s.Address = ":" + s.Address
	}
	return s
}

// Fallback modes used when the article document cannot be loaded.
const (
	FallbackEmpty = "empty"
	FallbackDemo  = "demo"
)

// ArticlesConfig controls where the article snapshot comes from and how often it is refreshed.
type ArticlesConfig struct {
	SourceURL       string        `mapstructure:"source_url"`
	SourcePath      string        `mapstructure:"source_path"`
	Fallback        string        `mapstructure:"fallback"`
	IncludeLocal    bool          `mapstructure:"include_local"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	PageSize        int           `mapstructure:"page_size"`
}

// Normalize applies defaults for unset article values.
func (a ArticlesConfig) Normalize() ArticlesConfig {
	a.SourceURL = strings.TrimSpace(a.SourceURL)
	a.SourcePath = strings.TrimSpace(a.SourcePath)
	if a.SourceURL == "" && a.SourcePath == "" {
		a.SourcePath = "data/articles.json"
	}
	a.Fallback = strings.ToLower(strings.TrimSpace(a.Fallback))
	if a.Fallback == "" {
		a.Fallback = FallbackEmpty
	}
	if a.RefreshInterval <= 0 {
		a.RefreshInterval = 300 * time.Second
	}
	if a.FetchTimeout <= 0 {
		a.FetchTimeout = 10 * time.Second
	}
	if a.PageSize <= 0 {
		a.PageSize = 10
	}
	return a
}

// Validate checks the article source configuration.
func (a ArticlesConfig) Validate() error {
	switch a.Fallback {
	case FallbackEmpty, FallbackDemo:
	default:
		return fmt.Errorf("articles.fallback must be %q or %q", FallbackEmpty, FallbackDemo)
	}
	if a.RefreshInterval < time.Second {
		return fmt.Errorf("articles.refresh_interval must be at least 1s")
	}
	if a.PageSize > 100 {
		return fmt.Errorf("articles.page_size cannot exceed 100")
	}
	return nil
}

// Storage backends for the local key/value store.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// StorageConfig contains storage and persistence settings
type StorageConfig struct {
	Backend  string         `mapstructure:"backend"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// Validate checks the selected backend has what it needs.
func (s StorageConfig) Validate() error {
	switch s.Backend {
	case "", BackendMemory:
		return nil
	case BackendRedis:
		return s.Redis.Validate()
	case BackendPostgres:
		return s.Postgres.Validate()
	default:
		return fmt.Errorf("storage.backend %q is not supported", s.Backend)
	}
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Prefix   string        `mapstructure:"prefix"`
}

func (r RedisConfig) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("storage.redis.host required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("storage.redis.port required")
	}
	return nil
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// PostgresConfig contains Postgres connection settings
type PostgresConfig struct {
	URL      string        `mapstructure:"url"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	DBName   string        `mapstructure:"dbname"`
	SSLMode  string        `mapstructure:"sslmode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (p PostgresConfig) Validate() error {
	if strings.TrimSpace(p.URL) != "" {
		return nil
	}
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("storage.postgres.host required when url is not provided")
	}
	if strings.TrimSpace(p.DBName) == "" {
		return fmt.Errorf("storage.postgres.dbname required when url is not provided")
	}
	return nil
}

// DSN builds a connection string, preferring the explicit URL.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl)
}

// EditorConfig controls the article editor.
type EditorConfig struct {
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
}

// Normalize applies the default autosave cadence.
func (e EditorConfig) Normalize() EditorConfig {
	if e.AutosaveInterval <= 0 {
		e.AutosaveInterval = 30 * time.Second
	}
	return e
}

// SiteConfig captures presentation defaults shared by every page.
type SiteConfig struct {
	Name             string   `mapstructure:"name"`
	BaseURL          string   `mapstructure:"base_url"`
	Timezone         string   `mapstructure:"timezone"`
	DefaultLocale    string   `mapstructure:"default_locale"`
	SupportedLocales []string `mapstructure:"supported_locales"`
	PublishCron      string   `mapstructure:"publish_cron"`
}

// Normalize applies sensible defaults when values are omitted.
func (c SiteConfig) Normalize() SiteConfig {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		c.Name = "TechNote"
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:10001"
	}
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = "Asia/Tokyo"
	}
	c.DefaultLocale = strings.TrimSpace(c.DefaultLocale)
	if c.DefaultLocale == "" {
		c.DefaultLocale = "ja"
	}
	seen := make(map[string]struct{}, len(c.SupportedLocales)+1)
	var dedup []string
	for _, locale := range c.SupportedLocales {
		locale = strings.TrimSpace(locale)
		if locale == "" {
			continue
		}
		if _, ok := seen[locale]; ok {
			continue
		}
		seen[locale] = struct{}{}
		dedup = append(dedup, locale)
	}
	if _, ok := seen[c.DefaultLocale]; !ok {
		dedup = append([]string{c.DefaultLocale}, dedup...)
	}
	c.SupportedLocales = dedup
	if strings.TrimSpace(c.PublishCron) == "" {
		c.PublishCron = "0 5,17,23 * * *"
	}
	return c
}

// Validate checks the site configuration.
func (c SiteConfig) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("site.timezone: %w", err)
	}
	if strings.TrimSpace(c.DefaultLocale) == "" {
		return fmt.Errorf("site.default_locale required")
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c SiteConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TelemetryConfig contains metrics settings
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// MetricsPort serves /metrics on its own listener when non-zero;
	// otherwise /metrics shares the main listener.
	MetricsPort int `mapstructure:"metrics_port"`
}

func (t TelemetryConfig) Validate() error {
	if t.MetricsPort < 0 || t.MetricsPort > 65535 {
		return fmt.Errorf("telemetry.metrics_port must be between 0 and 65535")
	}
	return nil
}

// MetricsAddr is the listen address for the dedicated metrics listener, or
// "" when metrics share the main listener.
func (t TelemetryConfig) MetricsAddr() string {
	if t.MetricsPort == 0 {
		return ""
	}
	return fmt.Sprintf(":%d", t.MetricsPort)
}

// Normalize applies defaults to every section.
func (c *Config) Normalize() {
	c.Server = c.Server.Normalize()
	c.Articles = c.Articles.Normalize()
	c.Editor = c.Editor.Normalize()
	c.Site = c.Site.Normalize()
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendMemory
	}
	if c.Storage.Redis.Prefix == "" {
		c.Storage.Redis.Prefix = "technote:"
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validateOrigins(c.Server.AllowedOrigins); err != nil {
		return err
	}
	if err := c.Articles.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	return nil
}

// Default returns a normalized config without reading any file.
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Load reads the config file (JSON) and TECHNOTE_* environment overrides.
// A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.SetDefault("server.address", ":10001")
	v.SetDefault("articles.fallback", FallbackEmpty)
	v.SetDefault("articles.refresh_interval", "300s")
	v.SetDefault("articles.page_size", 10)
	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.redis.port", "6379")
	v.SetDefault("editor.autosave_interval", "30s")
	v.SetDefault("site.timezone", "Asia/Tokyo")
	v.SetDefault("site.default_locale", "ja")

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		v.AddConfigPath(exeDir)
		v.AddConfigPath(filepath.Join(exeDir, "..", "config"))
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("TECHNOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads config from file and panics when it is unusable.
func LoadConfig(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	return cfg
}
