// Package config handles loading and validating the client configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration. The mapstructure tags
// let the CLI decode the same struct from viper.
type Config struct {
	API           APIConfig           `yaml:"api"           mapstructure:"api"`
	OAuth         OAuthConfig         `yaml:"oauth"         mapstructure:"oauth"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"    mapstructure:"rate_limit"`
	Journal       JournalConfig       `yaml:"journal"       mapstructure:"journal"`
	Sync          SyncConfig          `yaml:"sync"          mapstructure:"sync"`
	Notifications NotificationsConfig `yaml:"notifications" mapstructure:"notifications"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"     mapstructure:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"       mapstructure:"logging"`
}

// APIConfig defines the Ad Posting API endpoint.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   mapstructure:"base_url"`
	Vendor    string        `yaml:"vendor"     mapstructure:"vendor"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"    mapstructure:"timeout"`
	// LogBodies includes response bodies in the debug request log.
	LogBodies bool `yaml:"log_bodies" mapstructure:"log_bodies"`
}

// OAuthConfig defines how access tokens are obtained. A static Token takes
// precedence over the client credentials flow.
type OAuthConfig struct {
	TokenURL     string   `yaml:"token_url"     mapstructure:"token_url"`
	ClientID     string   `yaml:"client_id"     mapstructure:"client_id"`
	ClientSecret string   `yaml:"client_secret" mapstructure:"client_secret"`
	Scopes       []string `yaml:"scopes"        mapstructure:"scopes"`
	Token        string   `yaml:"token"         mapstructure:"token"`
}

// RateLimitConfig defines client-side request throttling.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"  mapstructure:"per_second"`
	Burst      int     `yaml:"burst"       mapstructure:"burst"`
	DailyLimit int64   `yaml:"daily_limit" mapstructure:"daily_limit"` // 0 disables the quota
}

// JournalConfig selects the submission journal backend.
type JournalConfig struct {
	Backend  string         `yaml:"backend"  mapstructure:"backend"` // bbolt, postgres, none
	Path     string         `yaml:"path"     mapstructure:"path"`
	DSN      string         `yaml:"dsn"      mapstructure:"dsn"`
	Postgres DatabaseConfig `yaml:"postgres" mapstructure:"postgres"`
}

// ConnString returns the explicit DSN, or one built from the postgres block.
func (j *JournalConfig) ConnString() string {
	if j.DSN != "" {
		return j.DSN
	}
	return j.Postgres.DSN()
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"     mapstructure:"host"`
	Port     int    `yaml:"port"     mapstructure:"port"`
	Name     string `yaml:"name"     mapstructure:"name"`
	User     string `yaml:"user"     mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	SSLMode  string `yaml:"sslmode"  mapstructure:"sslmode"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// SyncConfig defines the status sync schedule.
type SyncConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	Limit    int           `yaml:"limit"    mapstructure:"limit"`
	Stagger  time.Duration `yaml:"stagger"  mapstructure:"stagger"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord" mapstructure:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"     mapstructure:"enabled"`
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// TelemetryConfig defines OpenTelemetry export. An empty endpoint disables it.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" mapstructure:"otlp_endpoint"`
	Insecure     bool   `yaml:"insecure"      mapstructure:"insecure"`
	ServiceName  string `yaml:"service_name"  mapstructure:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"  mapstructure:"level"`  // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults and validates a Config decoded elsewhere.
func (c *Config) Finalize() error {
	applyDefaults(c)

	if err := validate(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(&cfg.API)
	applyOAuthDefaults(&cfg.OAuth, cfg.API.BaseURL)
	applyRateLimitDefaults(&cfg.RateLimit)
	applyJournalDefaults(&cfg.Journal)
	applySyncDefaults(&cfg.Sync)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyAPIDefaults(a *APIConfig) {
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	if a.Vendor == "" {
		a.Vendor = "seek"
	}
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
}

func applyOAuthDefaults(o *OAuthConfig, baseURL string) {
	if o.TokenURL == "" && baseURL != "" {
		o.TokenURL = baseURL + "/oauth2/token"
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
}

func applyJournalDefaults(j *JournalConfig) {
	if j.Backend == "" {
		j.Backend = "bbolt"
	}
	if j.Path == "" {
		j.Path = "adpost-journal.db"
	}
	if j.Postgres.Port == 0 {
		j.Postgres.Port = 5432
	}
	if j.Postgres.SSLMode == "" {
		j.Postgres.SSLMode = "disable"
	}
}

func applySyncDefaults(s *SyncConfig) {
	if s.Interval == 0 {
		s.Interval = 5 * time.Minute
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "adpost"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	} else if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL (got %q)", cfg.API.BaseURL))
	}

	if cfg.OAuth.Token == "" {
		if cfg.OAuth.ClientID == "" {
			errs = append(errs, fmt.Errorf("oauth.client_id is required when oauth.token is not set"))
		}
		if cfg.OAuth.ClientSecret == "" {
			errs = append(errs, fmt.Errorf("oauth.client_secret is required when oauth.token is not set"))
		}
	}

	if cfg.RateLimit.PerSecond < 0 || cfg.RateLimit.Burst < 0 || cfg.RateLimit.DailyLimit < 0 {
		errs = append(errs, fmt.Errorf("rate_limit values must not be negative"))
	}

	switch cfg.Journal.Backend {
	case "bbolt", "none":
	case "postgres":
		if cfg.Journal.DSN == "" && cfg.Journal.Postgres.Host == "" {
			errs = append(
				errs,
				fmt.Errorf("journal.dsn or journal.postgres.host is required when backend is postgres"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"journal.backend must be one of: bbolt, postgres, none (got %q)",
				cfg.Journal.Backend,
			),
		)
	}

	if cfg.Sync.Interval < time.Second {
		errs = append(errs, fmt.Errorf("sync.interval must be at least 1s (got %s)", cfg.Sync.Interval))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	return errors.Join(errs...)
}
