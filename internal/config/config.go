package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Drafts   DraftConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	NotificationLog    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	DraftEventsTopic   string
}

type DatabaseConfig struct {
	Connection string
	Verbose    bool
}

type AuthConfig struct {
	JWTSecret string
	// LoginPath is where anonymous users are sent when they lack a permission.
	LoginPath string
}

type DraftConfig struct {
	// Store selects the draft backend: "memory" or "redis".
	Store           string
	TTL             time.Duration
	CleanupInterval time.Duration
	// ParentWait bounds how long a request waits for the parent work package.
	ParentWait time.Duration
	CacheTTL   time.Duration
}

// TracingConfig enables the OTLP exporter; tracing is off by default.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			NotificationLog:    getEnv("NOTIFICATION_LOG_FILE_PATH", "logs/notification.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:4200"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			DraftEventsTopic:   getEnv("DRAFT_EVENTS_TOPIC", "work_package_drafts"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Verbose:    getEnvAsBool("DB_VERBOSE", false),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			LoginPath: getEnv("LOGIN_PATH", "/login"),
		},
		Drafts: DraftConfig{
			Store:           getEnv("DRAFT_STORE", "memory"),
			TTL:             getEnvAsDuration("DRAFT_TTL", 12*time.Hour),
			CleanupInterval: getEnvAsDuration("DRAFT_CLEANUP_INTERVAL", 10*time.Minute),
			ParentWait:      getEnvAsDuration("DRAFT_PARENT_WAIT", 2*time.Second),
			CacheTTL:        getEnvAsDuration("WORK_PACKAGE_CACHE_TTL", time.Hour),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "workpackage-backend"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
