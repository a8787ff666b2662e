package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Store     StoreConfig     `yaml:"store"`
	Freshness FreshnessConfig `yaml:"freshness"`
	Cache     CacheConfig     `yaml:"cache"`
	Blog      BlogConfig      `yaml:"blog"`
	Video     VideoConfig     `yaml:"video"`
	Sync      SyncConfig      `yaml:"sync"`
	Notify    NotifyConfig    `yaml:"notify"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	LogLevel  string          `yaml:"log_level"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	AdminToken      string        `yaml:"admin_token"`
	AdminTokenHash  string        `yaml:"admin_token_hash"` // bcrypt, wins over AdminToken
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	// DSN selects the backend: file://dir, memory://, postgres://..., sqlite3://path.
	DSN   string `yaml:"dsn"`
	Watch bool   `yaml:"watch"`
}

type FreshnessConfig struct {
	Window time.Duration `yaml:"window"`
}

type CacheConfig struct {
	MemoTTL time.Duration `yaml:"memo_ttl"`
}

type BlogConfig struct {
	// Mode is "api" or "feed".
	Mode       string        `yaml:"mode"`
	BaseURL    string        `yaml:"base_url"`
	BlogID     string        `yaml:"blog_id"`
	APIKey     string        `yaml:"api_key"`
	FeedURL    string        `yaml:"feed_url"`
	PageSize   int           `yaml:"page_size"`
	Categories []string      `yaml:"categories"`
	Timeout    time.Duration `yaml:"timeout"`
	Retry      RetryConfig   `yaml:"retry"`
}

type VideoConfig struct {
	BaseURL     string        `yaml:"base_url"`
	ChannelID   string        `yaml:"channel_id"`
	Token       string        `yaml:"token"`
	PageSize    int           `yaml:"page_size"`
	MinDuration time.Duration `yaml:"min_duration"`
	Timeout     time.Duration `yaml:"timeout"`
	Retry       RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type SyncConfig struct {
	MaxPagesPerSync int           `yaml:"max_pages_per_sync"`
	Timeout         time.Duration `yaml:"timeout"`
}

type NotifyConfig struct {
	QueueSize     int           `yaml:"queue_size"`
	Workers       int           `yaml:"workers"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 60 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 15 * time.Second
	}
	if c.Store.DSN == "" {
		c.Store.DSN = "file://data"
	}
	if c.Freshness.Window == 0 {
		c.Freshness.Window = 24 * time.Hour
	}
	if c.Cache.MemoTTL == 0 {
		c.Cache.MemoTTL = time.Minute
	}
	if c.Blog.Mode == "" {
		c.Blog.Mode = "api"
	}
	if c.Blog.PageSize == 0 {
		c.Blog.PageSize = 50
	}
	if c.Blog.Timeout == 0 {
		c.Blog.Timeout = 30 * time.Second
	}
	c.Blog.Retry.setDefaults()
	if c.Video.PageSize == 0 {
		c.Video.PageSize = 50
	}
	if c.Video.MinDuration == 0 {
		c.Video.MinDuration = 60 * time.Second
	}
	if c.Video.Timeout == 0 {
		c.Video.Timeout = 30 * time.Second
	}
	c.Video.Retry.setDefaults()
	if c.Sync.MaxPagesPerSync == 0 {
		c.Sync.MaxPagesPerSync = 10
	}
	if c.Sync.Timeout == 0 {
		c.Sync.Timeout = 2 * time.Minute
	}
	if c.Notify.QueueSize == 0 {
		c.Notify.QueueSize = 16
	}
	if c.Notify.Workers == 0 {
		c.Notify.Workers = 1
	}
	if c.Notify.SweepInterval == 0 {
		c.Notify.SweepInterval = 15 * time.Minute
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "content_mirror"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "campaigns"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "campaign_requests"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (r *RetryConfig) setDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 3
	}
	if r.InitialBackoff == 0 {
		r.InitialBackoff = 1 * time.Second
	}
	if r.MaxBackoff == 0 {
		r.MaxBackoff = 30 * time.Second
	}
}

func (c *Config) validate() error {
	switch c.Blog.Mode {
	case "api", "feed":
	default:
		return fmt.Errorf("unknown blog mode %q", c.Blog.Mode)
	}
	if c.Freshness.Window < 0 {
		return fmt.Errorf("freshness window must be positive")
	}
	if c.Notify.Workers < 0 || c.Notify.QueueSize < 0 {
		return fmt.Errorf("notify workers and queue size must be positive")
	}
	if c.Notify.SweepInterval <= 0 {
		return fmt.Errorf("notify sweep interval must be positive, got %s", c.Notify.SweepInterval)
	}
	return nil
}

// BlogEnabled reports whether enough is configured to reach the blog provider.
func (c *Config) BlogEnabled() bool {
	if c.Blog.Mode == "feed" {
		return c.Blog.FeedURL != ""
	}
	return c.Blog.BlogID != ""
}

func (c *Config) VideoEnabled() bool {
	return c.Video.ChannelID != ""
}
