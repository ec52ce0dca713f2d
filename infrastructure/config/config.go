package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Storage configuration
	StorageDriver string // "memory" or "sqlite"
	SQLitePath    string // file path, or ":memory:"

	// Authentication
	JWTSecret     string
	JWTIssuer     string
	SessionTTL    time.Duration
	AuthRateLimit int // requests per minute per IP on login/register

	// Simulation tunables (also hot-reloadable via TunablesFile)
	SimulatedLatency time.Duration
	PaymentURL       string
	TunablesFile     string

	// Logging and features
	LogLevel         string
	MetricsNamespace string
	EnableMetrics    bool
	EnableCORS       bool
	AllowedOrigins   []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "meumuseu.db"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTIssuer:     getEnv("JWT_ISSUER", "meumuseu"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		AuthRateLimit: getEnvInt("AUTH_RATE_LIMIT", 30),

		SimulatedLatency: getEnvDuration("SIMULATED_LATENCY", 800*time.Millisecond),
		PaymentURL:       getEnv("PAYMENT_URL", "https://pay.example.com/premium"),
		TunablesFile:     getEnv("TUNABLES_FILE", ""),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "meumuseu"),
		EnableMetrics:    getEnvBool("ENABLE_METRICS", true),
		EnableCORS:       getEnvBool("ENABLE_CORS", true),
		AllowedOrigins:   getEnvList("ALLOWED_ORIGINS", []string{"*"}),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want memory or sqlite)", c.StorageDriver)
	}

	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.StorageDriver == "sqlite" && c.SQLitePath == ":memory:" {
			return fmt.Errorf("SQLITE_PATH must be a file path in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value.
// Accepts Go duration strings ("800ms") or bare integers read as milliseconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable with a default value
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
