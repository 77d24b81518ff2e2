package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type LookupFunc func(string) (string, bool)

type Profile string

const (
	ProfileDev  Profile = "dev"
	ProfileTest Profile = "test"
	ProfileProd Profile = "prod"
)

type Config struct {
	Profile       Profile
	App           AppConfig
	HTTP          HTTPConfig
	Security      SecurityConfig
	Metrics       MetricsConfig
	Readiness     ReadinessConfig
	Database      DatabaseConfig
	Cache         CacheConfig
	ObjectStore   ObjectStoreConfig
	Observability ObservabilityConfig
}

type AppConfig struct {
	Name    string
	Version string
}

type HTTPConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type SecurityConfig struct {
	// AllowedHosts is a comma-separated Host header allowlist.
	// Empty or "*" trusts every host.
	AllowedHosts string
	GzipMinSize  int
}

type MetricsConfig struct {
	Enabled bool
}

type ReadinessConfig struct {
	Timeout time.Duration
}

// DatabaseConfig describes the optional Postgres readiness dependency.
// The probe is wired only when DSN is non-empty.
type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// CacheConfig describes the optional Redis readiness dependency.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
}

// ObjectStoreConfig describes the optional S3 readiness dependency.
type ObjectStoreConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

type ObservabilityConfig struct {
	LogLevel slog.Level
	LogJSON  bool
}

func LoadFromEnv(appName string) (Config, error) {
	return Load(appName, os.LookupEnv)
}

func Load(appName string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	profile := ProfileDev
	if raw, ok := lookup("SECUREAPI_PROFILE"); ok {
		profile = Profile(strings.ToLower(strings.TrimSpace(raw)))
	}
	if !isValidProfile(profile) {
		return Config{}, fmt.Errorf("invalid SECUREAPI_PROFILE: %q", profile)
	}

	cfg := defaultsForProfile(profile)
	if appName != "" {
		cfg.App.Name = appName
	}

	if err := applyString(lookup, "SECUREAPI_APP_NAME", &cfg.App.Name); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_APP_VERSION", &cfg.App.Version); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_HTTP_ADDR", &cfg.HTTP.Address); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SECUREAPI_HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SECUREAPI_HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SECUREAPI_HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_ALLOWED_HOSTS", &cfg.Security.AllowedHosts); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SECUREAPI_GZIP_MIN_SIZE", &cfg.Security.GzipMinSize); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SECUREAPI_METRICS_ENABLED", &cfg.Metrics.Enabled); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SECUREAPI_READINESS_TIMEOUT", &cfg.Readiness.Timeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_DB_DSN", &cfg.Database.DSN); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SECUREAPI_DB_MAX_OPEN_CONNS", &cfg.Database.MaxOpenConns); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SECUREAPI_DB_MAX_IDLE_CONNS", &cfg.Database.MaxIdleConns); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SECUREAPI_DB_CONN_MAX_IDLE_TIME", &cfg.Database.ConnMaxIdleTime); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SECUREAPI_DB_CONN_MAX_LIFETIME", &cfg.Database.ConnMaxLifetime); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_CACHE_ADDR", &cfg.Cache.Addr); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_CACHE_PASSWORD", &cfg.Cache.Password); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SECUREAPI_CACHE_DB", &cfg.Cache.DB); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_OBJECTSTORE_ENDPOINT", &cfg.ObjectStore.Endpoint); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_OBJECTSTORE_REGION", &cfg.ObjectStore.Region); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_OBJECTSTORE_BUCKET", &cfg.ObjectStore.Bucket); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_OBJECTSTORE_ACCESS_KEY", &cfg.ObjectStore.AccessKeyID); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SECUREAPI_OBJECTSTORE_SECRET_KEY", &cfg.ObjectStore.SecretAccessKey); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SECUREAPI_OBJECTSTORE_USE_SSL", &cfg.ObjectStore.UseSSL); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SECUREAPI_LOG_JSON", &cfg.Observability.LogJSON); err != nil {
		return Config{}, err
	}
	if err := applyLogLevel(lookup, "SECUREAPI_LOG_LEVEL", &cfg.Observability.LogLevel); err != nil {
		return Config{}, err
	}

	if cfg.App.Name == "" {
		return Config{}, fmt.Errorf("app name is required")
	}
	if cfg.HTTP.Address == "" {
		return Config{}, fmt.Errorf("http address is required")
	}
	return cfg, nil
}

func defaultsForProfile(profile Profile) Config {
	cfg := Config{
		Profile: profile,
		App: AppConfig{
			Name:    "secure-api",
			Version: "1.0.0",
		},
		HTTP: HTTPConfig{
			Address:      ":8000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Security: SecurityConfig{
			AllowedHosts: "localhost,127.0.0.1",
			GzipMinSize:  512,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Readiness: ReadinessConfig{
			Timeout: 2 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: 30 * time.Minute,
		},
		ObjectStore: ObjectStoreConfig{
			Region: "us-east-1",
		},
		Observability: ObservabilityConfig{
			LogLevel: slog.LevelDebug,
			LogJSON:  true,
		},
	}

	switch profile {
	case ProfileTest:
		cfg.HTTP.Address = ":18000"
		cfg.Observability.LogLevel = slog.LevelWarn
	case ProfileProd:
		cfg.Observability.LogLevel = slog.LevelInfo
		cfg.ObjectStore.UseSSL = true
	}

	return cfg
}

func isValidProfile(profile Profile) bool {
	switch profile {
	case ProfileDev, ProfileTest, ProfileProd:
		return true
	default:
		return false
	}
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyDuration(lookup LookupFunc, key string, dst *time.Duration) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyBool(lookup LookupFunc, key string, dst *bool) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyLogLevel(lookup LookupFunc, key string, dst *slog.Level) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	level := strings.ToLower(strings.TrimSpace(raw))
	switch level {
	case "debug":
		*dst = slog.LevelDebug
	case "info":
		*dst = slog.LevelInfo
	case "warn", "warning":
		*dst = slog.LevelWarn
	case "error":
		*dst = slog.LevelError
	default:
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	return nil
}
