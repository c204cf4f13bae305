// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultSMTPPort is the default SMTP submission port.
	DefaultSMTPPort = 587

	// DefaultDispatchBatchSize is the default number of emails per batch.
	DefaultDispatchBatchSize = 50

	// DefaultSendAttempts is the default number of delivery attempts per email.
	DefaultSendAttempts = 3

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App        AppConfig        `koanf:"app"        validate:"required"`
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Log        LogConfig        `koanf:"log"        validate:"required"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
	Auth       AuthConfig       `koanf:"auth"       validate:"required"`
	Webhook    WebhookConfig    `koanf:"webhook"`
	Storage    StorageConfig    `koanf:"storage"    validate:"required"`
	SMTP       SMTPConfig       `koanf:"smtp"       validate:"required"`
	Scheduler  SchedulerConfig  `koanf:"scheduler"`
	Dispatcher DispatcherConfig `koanf:"dispatcher" validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig contains token signing settings for admin and unsubscribe tokens.
type AuthConfig struct {
	// Secret signs admin and unsubscribe JWTs. Must be long enough that
	// HS256 brute-forcing is not practical.
	Secret string `koanf:"secret" validate:"required,min=32"`

	AdminTokenTTL       time.Duration `koanf:"admin_token_ttl"       validate:"omitempty,min=1m"`
	UnsubscribeTokenTTL time.Duration `koanf:"unsubscribe_token_ttl" validate:"omitempty,min=1h"`
}

// WebhookConfig contains the QStash signing keys used to verify webhook
// requests. NextSigningKey covers the rotation window.
type WebhookConfig struct {
	CurrentSigningKey string `koanf:"current_signing_key" validate:"required"`
	NextSigningKey    string `koanf:"next_signing_key"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=postgres sqlite"`

	// DSN is the Postgres connection string. Required for the postgres driver.
	DSN string `koanf:"dsn" validate:"required_if=Driver postgres"`

	// Path is the SQLite database file path. Required for the sqlite driver.
	Path string `koanf:"path" validate:"required_if=Driver sqlite"`
}

// SMTPConfig contains the mail relay settings.
type SMTPConfig struct {
	Host     string `koanf:"host"      validate:"required"`
	Port     int    `koanf:"port"      validate:"required,min=1,max=65535"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"      validate:"required,email"`
	FromName string `koanf:"from_name"`

	// BaseURL is the public URL of this service, used to build
	// unsubscribe links embedded in emails.
	BaseURL string `koanf:"base_url" validate:"required,url"`
}

// SchedulerConfig contains settings for the in-process delivery trigger.
type SchedulerConfig struct {
	// Enabled starts the internal per-minute cron trigger. Disable when an
	// external scheduler calls the webhook instead.
	Enabled bool `koanf:"enabled"`

	DeliveryHour   int `koanf:"delivery_hour"   validate:"min=0,max=23"`
	DeliveryMinute int `koanf:"delivery_minute" validate:"min=0,max=59"`

	// TickTimeout bounds one tick's dispatch work. A cohort is batched
	// with pauses and per-send retries, so this is minutes, not seconds.
	TickTimeout time.Duration `koanf:"tick_timeout" validate:"omitempty,min=1m"`
}

// DispatcherConfig contains email dispatch settings.
type DispatcherConfig struct {
	BatchSize     int           `koanf:"batch_size"     validate:"required,min=1,max=500"`
	BatchPause    time.Duration `koanf:"batch_pause"    validate:"omitempty,min=0"`
	SendAttempts  int           `koanf:"send_attempts"  validate:"required,min=1,max=10"`
	BackoffBase   time.Duration `koanf:"backoff_base"   validate:"omitempty,min=10ms"`
	MaxConcurrent int           `koanf:"max_concurrent" validate:"omitempty,min=1,max=500"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "dailyjobboost",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "dailyjobboost",
		"telemetry.sampling_rate": 1.0,

		"auth.secret":                "",
		"auth.admin_token_ttl":       "12h",
		"auth.unsubscribe_token_ttl": "2160h", // 90 days

		"webhook.current_signing_key": "",
		"webhook.next_signing_key":    "",

		"storage.driver": "sqlite",
		"storage.dsn":    "",
		"storage.path":   "./data/dailyjobboost.db",

		"smtp.host":      "",
		"smtp.port":      DefaultSMTPPort,
		"smtp.username":  "",
		"smtp.password":  "",
		"smtp.from":      "",
		"smtp.from_name": "Daily Job Boost",
		"smtp.base_url":  "http://localhost:8080",

		"scheduler.enabled":         true,
		"scheduler.delivery_hour":   9,
		"scheduler.delivery_minute": 0,
		"scheduler.tick_timeout":    "5m",

		"dispatcher.batch_size":     DefaultDispatchBatchSize,
		"dispatcher.batch_pause":    "1s",
		"dispatcher.send_attempts":  DefaultSendAttempts,
		"dispatcher.backoff_base":   "1s",
		"dispatcher.max_concurrent": DefaultDispatchBatchSize,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.Provider("APP_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "APP_")),
			"_",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
