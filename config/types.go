package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Event         EventConfig         `mapstructure:"event"`
	Sheet         SheetConfig         `mapstructure:"sheet"`
	Form          FormConfig          `mapstructure:"form"`
	Chat          ChatConfig          `mapstructure:"chat"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Nats          NatsConfig          `mapstructure:"nats"`
	Email         EmailConfig         `mapstructure:"email"`
	SMS           SMSConfig           `mapstructure:"sms"`
	S3            S3Config            `mapstructure:"s3"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int        `mapstructure:"port"`
	TimeoutSeconds int        `mapstructure:"timeout_seconds"`
	Environment    string     `mapstructure:"environment"`
	BodyLimitBytes int        `mapstructure:"body_limit_bytes"`
	AdminAPIKeys   []string   `mapstructure:"admin_api_keys"`
	CORS           CORSConfig `mapstructure:"cors"`
	RateLimit      RateLimit  `mapstructure:"rate_limit"`
}

type CORSConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type RateLimit struct {
	Enabled           bool `mapstructure:"enabled"`
	Max               int  `mapstructure:"max"`
	ExpirationSeconds int  `mapstructure:"expiration_seconds"`
}

// EventConfig describes the celebration itself. Start and End use the
// "2006-01-02T15:04:05" layout interpreted in Location.
type EventConfig struct {
	Title       string `mapstructure:"title"`
	Couple      string `mapstructure:"couple"`
	Description string `mapstructure:"description"`
	Venue       string `mapstructure:"venue"`
	MapURL      string `mapstructure:"map_url"`
	Start       string `mapstructure:"start"`
	End         string `mapstructure:"end"`
	Location    string `mapstructure:"location"`
	DressCode   string `mapstructure:"dress_code"`
}

type SheetConfig struct {
	Driver     string         `mapstructure:"driver"` // memory, sqlite, postgres, redis
	Name       string         `mapstructure:"name"`
	SQLitePath string         `mapstructure:"sqlite_path"`
	Postgres   DatabaseConfig `mapstructure:"postgres"`
	RedisKey   string         `mapstructure:"redis_key"`
}

type DatabaseConfig struct {
	Host     string             `mapstructure:"host"`
	Port     int                `mapstructure:"port"`
	User     string             `mapstructure:"user"`
	Password string             `mapstructure:"password"`
	DBName   string             `mapstructure:"dbname"`
	SSLMode  string             `mapstructure:"sslmode"`
	Pool     DatabasePoolConfig `mapstructure:"pool"`
}

type DatabasePoolConfig struct {
	MaxOpenConns       int `mapstructure:"max_open_conns"`
	MaxIdleConns       int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int `mapstructure:"conn_max_lifetime_minutes"`
}

// FormConfig is used by the rsvp CLI acting as the form controller.
type FormConfig struct {
	EndpointURL     string `mapstructure:"endpoint_url"`
	ContactField    string `mapstructure:"contact_field"` // whatsapp or email
	ConfettiSeconds int    `mapstructure:"confetti_seconds"`
}

type ChatConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	Endpoint       string `mapstructure:"endpoint"` // empty uses the SDK default host
	APIVersion     string `mapstructure:"api_version"`
	BotName        string `mapstructure:"bot_name"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type NatsConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

type EmailConfig struct {
	Enabled    bool       `mapstructure:"enabled"`
	From       string     `mapstructure:"from"`
	Organizers []string   `mapstructure:"organizers"`
	SMTP       SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	UseTLS         bool   `mapstructure:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SMSConfig struct {
	Enabled       bool        `mapstructure:"enabled"`
	DefaultRegion string      `mapstructure:"default_region"`
	SMSIR         SMSIRConfig `mapstructure:"smsir"`
}

type SMSIRConfig struct {
	APIKey     string `mapstructure:"api_key"`
	SecretKey  string `mapstructure:"secret_key"`
	TemplateID string `mapstructure:"template_id"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	PresignTTLSec   int    `mapstructure:"presign_ttl_seconds"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // e.g. "http://localhost:3100"
	Username string `mapstructure:"username"` // for Grafana Cloud basic auth
	Password string `mapstructure:"password"`
}

// ChatTimeout returns the provider call timeout.
func (c ChatConfig) ChatTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Sheet.Driver) {
	case "memory", "sqlite", "postgres", "redis":
	default:
		return fmt.Errorf("sheet.driver %q is not one of memory, sqlite, postgres, redis", c.Sheet.Driver)
	}
	if strings.EqualFold(c.Sheet.Driver, "redis") && !c.Redis.Enabled {
		return fmt.Errorf("sheet.driver redis requires redis.enabled")
	}
	switch c.Form.ContactField {
	case "whatsapp", "email":
	default:
		return fmt.Errorf("form.contact_field must be whatsapp or email, got %q", c.Form.ContactField)
	}
	if c.Event.Start != "" {
		if _, err := c.Event.StartTime(); err != nil {
			return fmt.Errorf("event.start: %w", err)
		}
	}
	return nil
}
