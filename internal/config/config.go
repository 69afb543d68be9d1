package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Storage      StorageConfig
	Attendance   AttendanceConfig
	SMTP         SMTPConfig
	SMS          SMSConfig
	Notification NotificationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// StorageConfig points at the root holding templates, uploads and reports
type StorageConfig struct {
	BasePath string
}

type AttendanceConfig struct {
	IDColumn         string
	MaxBacktrackDays int
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	FromName  string
	Signature string
}

// SMSConfig holds the HTTP gateway credentials and DLT registration values
type SMSConfig struct {
	URL        string
	User       string
	Password   string
	SenderID   string
	Channel    string
	Route      string
	PEID       string
	TemplateID string
	Signature  string
}

type NotificationConfig struct {
	EmailQuota int
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "absentee_monitor"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./data"),
	}

	// Attendance configuration
	maxBacktrack, err := strconv.Atoi(getEnv("MAX_BACKTRACK_DAYS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_BACKTRACK_DAYS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		IDColumn:         getEnv("ID_COLUMN", "Ticket. No."),
		MaxBacktrackDays: maxBacktrack,
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:      getEnv("SMTP_HOST", ""),
		Port:      smtpPort,
		Username:  getEnv("SMTP_USERNAME", ""),
		Password:  getEnv("SMTP_PASSWORD", ""),
		From:      getEnv("SMTP_FROM", ""),
		FromName:  getEnv("SMTP_FROM_NAME", "HR"),
		Signature: getEnv("SMTP_SIGNATURE", "HR Department"),
	}

	// SMS gateway configuration
	config.SMS = SMSConfig{
		URL:        getEnv("SMS_GATEWAY_URL", ""),
		User:       getEnv("SMS_GATEWAY_USER", ""),
		Password:   getEnv("SMS_GATEWAY_PASSWORD", ""),
		SenderID:   getEnv("SMS_GATEWAY_SENDER_ID", ""),
		Channel:    getEnv("SMS_GATEWAY_CHANNEL", "Trans"),
		Route:      getEnv("SMS_GATEWAY_ROUTE", "02"),
		PEID:       getEnv("SMS_GATEWAY_PEID", ""),
		TemplateID: getEnv("SMS_GATEWAY_TEMPLATE_ID", ""),
		Signature:  getEnv("SMS_GATEWAY_SIGNATURE", ""),
	}

	emailQuota, err := strconv.Atoi(getEnv("EMAIL_QUOTA", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_QUOTA: %w", err)
	}
	config.Notification = NotificationConfig{EmailQuota: emailQuota}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the values every entry point needs
func (c *Config) Validate() error {
	if c.Storage.BasePath == "" {
		return fmt.Errorf("STORAGE_BASE_PATH is required")
	}
	if strings.TrimSpace(c.Attendance.IDColumn) == "" {
		return fmt.Errorf("ID_COLUMN is required")
	}
	if c.Attendance.MaxBacktrackDays <= 0 {
		return fmt.Errorf("MAX_BACKTRACK_DAYS must be positive")
	}
	if c.Notification.EmailQuota <= 0 {
		return fmt.Errorf("EMAIL_QUOTA must be positive")
	}
	return nil
}

// ValidateServer checks the values the HTTP API needs on top of Validate
func (c *Config) ValidateServer() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// ParseLogLevel maps LOG_LEVEL style names onto slog levels
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
}
