package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Geo          GeoConfig
	Label        LabelConfig
	Bootstrap    BootstrapConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret            string
	StaffTokenTTLMinutes int
	VendorTokenTTLHours  int
	TokenHeader          string
	BcryptCost           int
}

// GeoConfig configures the IP geolocation lookup used at parcel intake.
type GeoConfig struct {
	BaseURL         string
	TimeoutSeconds  int
	MaxRetries      int
	CacheTTLMinutes int
}

// LabelConfig controls QR label rendering.
type LabelConfig struct {
	QRSize  int
	QRLevel string
}

// BootstrapConfig seeds the first admin account.
type BootstrapConfig struct {
	AdminName     string
	AdminPassword string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "parcel-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:            os.Getenv("AUTH_JWT_SECRET"),
			StaffTokenTTLMinutes: getEnvAsInt("AUTH_STAFF_TOKEN_TTL_MINUTES", 30),
			VendorTokenTTLHours:  getEnvAsInt("AUTH_VENDOR_TOKEN_TTL_HOURS", 24),
			TokenHeader:          getEnv("AUTH_TOKEN_HEADER", "x-access-token"),
			BcryptCost:           getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Geo: GeoConfig{
			BaseURL:         getEnv("GEO_BASE_URL", "http://ip-api.com/json"),
			TimeoutSeconds:  getEnvAsInt("GEO_TIMEOUT_SECONDS", 5),
			MaxRetries:      getEnvAsInt("GEO_MAX_RETRIES", 2),
			CacheTTLMinutes: getEnvAsInt("GEO_CACHE_TTL_MINUTES", 60),
		},
		Label: LabelConfig{
			QRSize:  getEnvAsInt("LABEL_QR_SIZE", 256),
			QRLevel: strings.ToUpper(getEnv("LABEL_QR_LEVEL", "M")),
		},
		Bootstrap: BootstrapConfig{
			AdminName:     os.Getenv("BOOTSTRAP_ADMIN_NAME"),
			AdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		if !cfg.App.IsDevelopment() {
			return nil, errors.New("AUTH_JWT_SECRET is required outside development")
		}
		cfg.Auth.JWTSecret = "dev-secret"
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsDevelopment reports whether the service runs with development defaults.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development")
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// StaffTokenTTL is the lifetime of tokens issued at staff login.
func (a AuthConfig) StaffTokenTTL() time.Duration {
	if a.StaffTokenTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(a.StaffTokenTTLMinutes) * time.Minute
}

// VendorTokenTTL is the lifetime of tokens issued at vendor login.
func (a AuthConfig) VendorTokenTTL() time.Duration {
	if a.VendorTokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.VendorTokenTTLHours) * time.Hour
}

// Timeout bounds a single geolocation attempt.
func (g GeoConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long a resolved city is cached.
func (g GeoConfig) CacheTTL() time.Duration {
	if g.CacheTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(g.CacheTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
