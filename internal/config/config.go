package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devSessionSecret = "chaosshop-dev-secret"

// Config holds environment-driven configuration.
type Config struct {
	Addr string
	Env  string

	InventoryURL    string
	OrderURL        string
	UpstreamTimeout time.Duration

	Session SessionConfig
	Log     LogConfig

	CORSAllowOrigins string
}

// SessionConfig controls anonymous session tokens.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load reads configuration from .env, an optional storefront.yaml and
// STOREFRONT_* environment variables, in increasing priority.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Addr:            v.GetString("addr"),
		Env:             v.GetString("env"),
		InventoryURL:    strings.TrimRight(v.GetString("inventory.url"), "/"),
		OrderURL:        strings.TrimRight(v.GetString("order.url"), "/"),
		UpstreamTimeout: v.GetDuration("upstream.timeout"),
		Session: SessionConfig{
			Secret: v.GetString("session.secret"),
			TTL:    v.GetDuration("session.ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		CORSAllowOrigins: v.GetString("cors.allow_origins"),
	}

	if cfg.Session.Secret == "" && !cfg.IsProduction() {
		cfg.Session.Secret = devSessionSecret
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("env", "development")
	v.SetDefault("inventory.url", "http://localhost:3001")
	v.SetDefault("order.url", "http://localhost:8000")
	v.SetDefault("upstream.timeout", 0)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 72*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("cors.allow_origins", "*")
}

// IsProduction reports whether the storefront runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) validate() error {
	if err := validateServiceURL("inventory.url", c.InventoryURL); err != nil {
		return err
	}
	if err := validateServiceURL("order.url", c.OrderURL); err != nil {
		return err
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret is required in %s", c.Env)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("upstream.timeout must not be negative, got %s", c.UpstreamTimeout)
	}
	return nil
}

func validateServiceURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: expected http(s)://host[:port]", key, raw)
	}
	return nil
}
