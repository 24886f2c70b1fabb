// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// DashboardAuthConfig provides the credentials accepted by the dashboard.
type DashboardAuthConfig interface {
	GetDashboardSecretToken() string
	GetDashboardJWTSecret() string
}

// NotificationConfig provides settings for new-submission notifications.
type NotificationConfig interface {
	GetDiscordWebhookURL() string
	GetPhoneDefaultRegion() string
	GetDefaultLocale() string
}

// EmailConfig provides SMTP settings for the owner notification email.
type EmailConfig interface {
	GetNotifyEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUser() string
	GetSMTPPass() string
	GetNotifyEmailFrom() string
	GetNotifyEmailTo() string
}

// SchedulerConfig provides settings for queued notification delivery.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetNotifyMaxRetry() int
}

// LocaleConfig provides the fallback locale for server-rendered text.
type LocaleConfig interface {
	GetDefaultLocale() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowAll         bool
	CORSOrigins          []string
	DashboardSecretToken string
	DashboardJWTSecret   string
	DiscordWebhookURL    string
	PhoneDefaultRegion   string
	DefaultLocale        string
	NotifyEmailEnabled   bool
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPPass             string
	NotifyEmailFrom      string
	NotifyEmailTo        string
	RedisURL             string
	RedisTLSInsecure     bool
	AsynqQueueName       string
	AsynqConcurrency     int
	NotifyMaxRetry       int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// DashboardAuthConfig implementation
func (c *Config) GetDashboardSecretToken() string { return c.DashboardSecretToken }
func (c *Config) GetDashboardJWTSecret() string   { return c.DashboardJWTSecret }

// NotificationConfig implementation
func (c *Config) GetDiscordWebhookURL() string  { return c.DiscordWebhookURL }
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }
func (c *Config) GetDefaultLocale() string      { return c.DefaultLocale }

// EmailConfig implementation
func (c *Config) GetNotifyEmailEnabled() bool { return c.NotifyEmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUser() string         { return c.SMTPUser }
func (c *Config) GetSMTPPass() string         { return c.SMTPPass }
func (c *Config) GetNotifyEmailFrom() string  { return c.NotifyEmailFrom }
func (c *Config) GetNotifyEmailTo() string    { return c.NotifyEmailTo }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }
func (c *Config) GetNotifyMaxRetry() int    { return c.NotifyMaxRetry }

// IsQueuedDeliveryEnabled reports whether notifications go through the asynq queue.
func (c *Config) IsQueuedDeliveryEnabled() bool { return c.RedisURL != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := fromEnv()

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if err := validateEmail(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWorker reads configuration for the standalone notification worker,
// which needs Redis but no database.
func LoadWorker() (*Config, error) {
	cfg := fromEnv()

	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if err := validateEmail(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateEmail(cfg *Config) error {
	if !cfg.NotifyEmailEnabled {
		return nil
	}
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return fmt.Errorf("SMTP_HOST, SMTP_USER and SMTP_PASS are required when NOTIFY_EMAIL_ENABLED is true")
	}
	if cfg.NotifyEmailTo == "" {
		return fmt.Errorf("NOTIFY_EMAIL_TO is required when NOTIFY_EMAIL_ENABLED is true")
	}
	return nil
}

// fromEnv builds a Config from the environment without validating it.
func fromEnv() *Config {
	loadDotEnv()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpUser := getEnv("SMTP_USER", "")

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		DashboardSecretToken: getEnv("DASHBOARD_SECRET_TOKEN", ""),
		DashboardJWTSecret:   getEnv("DASHBOARD_JWT_SECRET", ""),
		DiscordWebhookURL:    getEnv("DISCORD_WEBHOOK_URL", ""),
		PhoneDefaultRegion:   strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "BR")),
		DefaultLocale:        getEnv("DEFAULT_LOCALE", "en-US"),
		NotifyEmailEnabled:   strings.EqualFold(getEnv("NOTIFY_EMAIL_ENABLED", "false"), "true"),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUser:             smtpUser,
		SMTPPass:             getEnv("SMTP_PASS", ""),
		NotifyEmailFrom:      getEnv("NOTIFY_EMAIL_FROM", smtpUser),
		NotifyEmailTo:        getEnv("NOTIFY_EMAIL_TO", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:     mustInt(getEnv("ASYNQ_CONCURRENCY", "4")),
		NotifyMaxRetry:       mustInt(getEnv("NOTIFY_MAX_RETRY", "0")),
	}

	return cfg
}

// ClientConfig holds settings for the terminal clients.
type ClientConfig struct {
	Env        string
	APIBaseURL string
	Locale     string
}

// LoadClient reads the terminal client configuration.
func LoadClient() (*ClientConfig, error) {
	loadDotEnv()

	baseURL := strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be empty")
	}

	return &ClientConfig{
		Env:        getEnv("APP_ENV", "development"),
		APIBaseURL: baseURL,
		Locale:     getEnv("LOCALE", getEnv("LANG", "")),
	}, nil
}

// loadDotEnv reads a local .env file when present. A missing file is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
