package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	RateLimit     RateLimitConfig
	AntiScraping  AntiScrapingConfig
	Storage       StorageConfig
	Mail          MailConfig
	PasswordReset PasswordResetConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// IsProduction reports whether error details must be suppressed
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// RateLimitConfig selects the limiter store and its budget
type RateLimitConfig struct {
	Enabled  bool
	Backend  string // memory | redis
	Requests int
	Window   time.Duration
}

// AntiScrapingConfig holds the user agent block list
type AntiScrapingConfig struct {
	Enabled       bool
	BlockedAgents []string
}

// StorageConfig holds image hosting settings
type StorageConfig struct {
	GCSBucket       string
	CredentialsFile string
	PublicBaseURL   string
	MaxUploadBytes  int64
}

// MailConfig holds outbound email settings
type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

// PasswordResetConfig bounds reset code lifetime and guessing
type PasswordResetConfig struct {
	CodeTTL     time.Duration
	MaxAttempts int
}

var defaultBlockedAgents = []string{
	"curl", "wget", "python-requests", "scrapy", "httpclient", "go-http-client", "headless",
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "obraconnect"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 7*24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Enabled:  getEnvAsBool("RATE_LIMIT_ENABLED", true),
			Backend:  getEnv("RATE_LIMIT_BACKEND", "memory"),
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		AntiScraping: AntiScrapingConfig{
			Enabled:       getEnvAsBool("ANTI_SCRAPING_ENABLED", true),
			BlockedAgents: getEnvAsList("BLOCKED_USER_AGENTS", defaultBlockedAgents),
		},
		Storage: StorageConfig{
			GCSBucket:       getEnv("GCS_BUCKET", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			PublicBaseURL:   getEnv("GCS_PUBLIC_BASE_URL", "https://storage.googleapis.com"),
			MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_BYTES", 5<<20)),
		},
		Mail: MailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("MAIL_FROM_EMAIL", "no-reply@obraconnect.com.br"),
			FromName:       getEnv("MAIL_FROM_NAME", "Obra Connect"),
		},
		PasswordReset: PasswordResetConfig{
			CodeTTL:     getEnvAsDuration("RESET_CODE_TTL", 15*time.Minute),
			MaxAttempts: getEnvAsInt("RESET_CODE_MAX_ATTEMPTS", 5),
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
