package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Verification VerificationConfig
	Transport    TransportConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// VerificationConfig controls the code pipeline: which backend keeps
// records, how long a code lives, how often the SQL sweeper runs, and
// how aggressively issuance is throttled per recipient.
type VerificationConfig struct {
	Store          string // "redis" or "postgres"
	CodeTTL        time.Duration
	SweepInterval  time.Duration
	IssuePerMinute int
	IssueBurst     int
}

// TransportConfig holds delivery provider configuration
type TransportConfig struct {
	SNSRegion       string
	MailerSendKey   string
	MailerFromName  string
	MailerFromEmail string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "veriflow"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		},
		Verification: VerificationConfig{
			Store:          getEnv("VERIFY_STORE", "redis"),
			CodeTTL:        getEnvAsDuration("VERIFY_CODE_TTL", 5*time.Minute),
			SweepInterval:  getEnvAsDuration("VERIFY_SWEEP_INTERVAL", time.Minute),
			IssuePerMinute: getEnvAsInt("VERIFY_ISSUE_PER_MINUTE", 3),
			IssueBurst:     getEnvAsInt("VERIFY_ISSUE_BURST", 3),
		},
		Transport: TransportConfig{
			SNSRegion:       getEnv("SNS_REGION", "us-east-1"),
			MailerSendKey:   getEnv("MAILERSEND_API_KEY", ""),
			MailerFromName:  getEnv("MAILERSEND_FROM_NAME", "Veriflow"),
			MailerFromEmail: getEnv("MAILERSEND_FROM_EMAIL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
