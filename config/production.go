// Package config provides configuration management and environment variable handling for the application
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ProductionConfig holds all configuration for production environment
type ProductionConfig struct {
	Database  DatabaseConfig  `json:"database"`
	Server    ServerConfig    `json:"server"`
	Cache     CacheConfig     `json:"cache"`
	WhatsApp  WhatsAppConfig  `json:"whatsapp"`
	SMS       SMSConfig       `json:"sms"`
	Voice     VoiceConfig     `json:"voice"`
	Email     EmailConfig     `json:"email"`
	Agent     AgentConfig     `json:"agent"`
	OCR       OCRConfig       `json:"ocr"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Platform  PlatformConfig  `json:"platform"`
}

type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
}

type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	BodyLimit       int           `json:"body_limit"`
	EnableMetrics   bool          `json:"enable_metrics"`
}

type CacheConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
}

// WhatsAppConfig configures the WhatsApp gateway account
type WhatsAppConfig struct {
	AccountSID string        `json:"account_sid"`
	AuthToken  string        `json:"auth_token"`
	APIDomain  string        `json:"api_domain"`
	Timeout    time.Duration `json:"timeout"`
}

// SMSConfig configures the SMS gateway account
type SMSConfig struct {
	APIKey         string        `json:"api_key"`
	ProviderDomain string        `json:"provider_domain"`
	Timeout        time.Duration `json:"timeout"`
	RetryCount     int           `json:"retry_count"`
	ValidityPeriod int           `json:"validity_period"`
}

// VoiceConfig configures the voice/IVR gateway account
type VoiceConfig struct {
	AccountSID string        `json:"account_sid"`
	AuthToken  string        `json:"auth_token"`
	APIDomain  string        `json:"api_domain"`
	Voice      string        `json:"voice"`
	Language   string        `json:"language"`
	Timeout    time.Duration `json:"timeout"`
}

type EmailConfig struct {
	SMTPHost  string        `json:"smtp_host"`
	SMTPPort  int           `json:"smtp_port"`
	Username  string        `json:"username"`
	Password  string        `json:"password"`
	FromEmail string        `json:"from_email"`
	FromName  string        `json:"from_name"`
	Timeout   time.Duration `json:"timeout"`
}

// AgentConfig configures the LLM collection agent
type AgentConfig struct {
	APIKey      string        `json:"api_key"`
	BaseURL     string        `json:"base_url"`
	Model       string        `json:"model"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"`
}

// OCRConfig configures the image-to-text provider used on inbound images
type OCRConfig struct {
	APIKey    string        `json:"api_key"`
	APIDomain string        `json:"api_domain"`
	Timeout   time.Duration `json:"timeout"`
}

type SchedulerConfig struct {
	DrainInterval time.Duration `json:"drain_interval"`
}

// PlatformConfig holds platform-wide identifiers, notably the shared
// service number superadmin campaigns send from.
type PlatformConfig struct {
	ServiceNumber string `json:"service_number"`
	Environment   string `json:"environment"`
}

// LoadProductionConfig loads configuration from environment variables
func LoadProductionConfig() (*ProductionConfig, error) {
	loadEnvFile(".env")

	config := &ProductionConfig{
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "cobra"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			BodyLimit:       getEnvAsInt("SERVER_BODY_LIMIT", 8*1024*1024),
			EnableMetrics:   getEnvAsBool("SERVER_ENABLE_METRICS", true),
		},
		Cache: CacheConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "cobra"),
		},
		WhatsApp: WhatsAppConfig{
			AccountSID: getEnv("WHATSAPP_ACCOUNT_SID", ""),
			AuthToken:  getEnv("WHATSAPP_AUTH_TOKEN", ""),
			APIDomain:  getEnv("WHATSAPP_API_DOMAIN", "api.twilio.com"),
			Timeout:    getEnvAsDuration("WHATSAPP_TIMEOUT", 30*time.Second),
		},
		SMS: SMSConfig{
			APIKey:         getEnv("SMS_API_KEY", ""),
			ProviderDomain: getEnv("SMS_PROVIDER_DOMAIN", ""),
			Timeout:        getEnvAsDuration("SMS_TIMEOUT", 30*time.Second),
			RetryCount:     getEnvAsInt("SMS_RETRY_COUNT", 2),
			ValidityPeriod: getEnvAsInt("SMS_VALIDITY_PERIOD", 3600),
		},
		Voice: VoiceConfig{
			AccountSID: getEnv("VOICE_ACCOUNT_SID", ""),
			AuthToken:  getEnv("VOICE_AUTH_TOKEN", ""),
			APIDomain:  getEnv("VOICE_API_DOMAIN", "api.twilio.com"),
			Voice:      getEnv("VOICE_VOICE", "Polly.Mia"),
			Language:   getEnv("VOICE_LANGUAGE", "es-MX"),
			Timeout:    getEnvAsDuration("VOICE_TIMEOUT", 30*time.Second),
		},
		Email: EmailConfig{
			SMTPHost:  getEnv("SMTP_HOST", ""),
			SMTPPort:  getEnvAsInt("SMTP_PORT", 587),
			Username:  getEnv("SMTP_USERNAME", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("SMTP_FROM_EMAIL", ""),
			FromName:  getEnv("SMTP_FROM_NAME", "Cobra"),
			Timeout:   getEnvAsDuration("SMTP_TIMEOUT", 30*time.Second),
		},
		Agent: AgentConfig{
			APIKey:      getEnv("AGENT_API_KEY", ""),
			BaseURL:     getEnv("AGENT_BASE_URL", ""),
			Model:       getEnv("AGENT_MODEL", "gpt-4o-mini"),
			Temperature: float32(getEnvAsFloat("AGENT_TEMPERATURE", 0.2)),
			MaxTokens:   getEnvAsInt("AGENT_MAX_TOKENS", 1024),
			Timeout:     getEnvAsDuration("AGENT_TIMEOUT", 60*time.Second),
		},
		OCR: OCRConfig{
			APIKey:    getEnv("OCR_API_KEY", ""),
			APIDomain: getEnv("OCR_API_DOMAIN", "api.ocr.space"),
			Timeout:   getEnvAsDuration("OCR_TIMEOUT", 30*time.Second),
		},
		Scheduler: SchedulerConfig{
			DrainInterval: getEnvAsDuration("SCHEDULER_DRAIN_INTERVAL", time.Hour),
		},
		Platform: PlatformConfig{
			ServiceNumber: getEnv("PLATFORM_SERVICE_NUMBER", ""),
			Environment:   getEnv("APP_ENV", "production"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is complete enough to start
func (c *ProductionConfig) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if c.Scheduler.DrainInterval <= 0 {
		return fmt.Errorf("scheduler drain interval must be positive")
	}
	return nil
}

// DSN builds the postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisAddr builds the redis address
func (c *CacheConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// loadEnvFile reads KEY=VALUE pairs from a file into the environment,
// without overriding variables that are already set.
func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
