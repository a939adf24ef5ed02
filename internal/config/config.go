package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// SMTPConfig holds outbound mail transport settings for the contact form.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// To is the mailbox that receives contact-form messages. Defaults to User.
	To string
}

// SessionConfig holds admin session settings.
type SessionConfig struct {
	// ExpirationHours is the absolute session lifetime.
	ExpirationHours int
	CookieName      string
}

// AdminConfig holds the initial admin account seeded at startup.
// Seeding is skipped when Email is empty.
type AdminConfig struct {
	Email    string
	Password string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port string
	// BaseURL is the public URL prefix encoded into QR validation links.
	BaseURL  string
	Database DatabaseConfig
	MinIO    MinIOConfig
	SMTP     SMTPConfig
	Session  SessionConfig
	Admin    AdminConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	port := getEnv("PORT", "4000")
	return &AppConfig{
		Port:    port,
		BaseURL: getEnv("BASE_URL", "http://localhost:"+port),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("EMAIL_HOST", ""),
			Port:     getEnvInt("EMAIL_PORT", 587),
			User:     getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
			To:       getEnv("EMAIL_TO", getEnv("EMAIL_USER", "")),
		},
		Session: SessionConfig{
			ExpirationHours: getEnvInt("SESSION_EXPIRATION_HOURS", 8),
			CookieName:      getEnv("SESSION_COOKIE_NAME", "session_id"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
