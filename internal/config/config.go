package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	Fetch     FetchConfig
	Raster    RasterConfig
	Pipeline  PipelineConfig
	Extractor ExtractorConfig
	Auth      AuthConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the optional run history.
// An empty Host disables persistence entirely.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Enabled reports whether a database has been configured.
func (d *DBConfig) Enabled() bool {
	return d.Host != ""
}

// S3Config holds AWS S3 settings for s3:// document references.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FetchConfig holds document download settings.
type FetchConfig struct {
	TimeoutSecs int   `mapstructure:"timeout_secs"`
	MaxSizeMB   int64 `mapstructure:"max_size_mb"`
}

// RasterConfig holds page rendering settings.
type RasterConfig struct {
	// DPI balances model-input fidelity against payload size; this is
	// deliberately well below print resolution.
	DPI         int `mapstructure:"dpi"`
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// PipelineConfig holds extraction fan-out settings.
type PipelineConfig struct {
	// Concurrency is the number of page extractions allowed in flight at
	// once; it is the sole backpressure against provider rate limits.
	Concurrency int `mapstructure:"concurrency"`
	// QueueDepth bounds how many rendered pages may wait for a worker, so
	// peak decoded-page memory stays O(concurrency), not O(pages).
	QueueDepth int `mapstructure:"queue_depth"`
}

// ProviderConfig holds settings for a single vision-model provider.
type ProviderConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds vision-model extractor settings with an optional
// secondary provider used when the primary is rate limited.
type ExtractorConfig struct {
	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not
// configured.
func (e *ExtractorConfig) SecondaryConfig() *ProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// AuthConfig holds bearer-token settings. An empty Secret leaves the API
// open, matching the original public deployment.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the BILLEX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// DB defaults (history disabled unless a host is set)
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billex")
	v.SetDefault("db.password", "billex_secret")
	v.SetDefault("db.name", "billex_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Fetch defaults
	v.SetDefault("fetch.timeout_secs", 10)
	v.SetDefault("fetch.max_size_mb", 50)

	// Raster defaults
	v.SetDefault("raster.dpi", 150)
	v.SetDefault("raster.jpeg_quality", 80)

	// Pipeline defaults
	v.SetDefault("pipeline.concurrency", 3)
	v.SetDefault("pipeline.queue_depth", 3)

	// Extractor defaults
	v.SetDefault("extractor.primary.provider", "groq")
	v.SetDefault("extractor.primary.api_key", "")
	v.SetDefault("extractor.primary.model", "meta-llama/llama-4-scout-17b-16e-instruct")
	v.SetDefault("extractor.primary.timeout_secs", 60)
	v.SetDefault("extractor.secondary.provider", "")
	v.SetDefault("extractor.secondary.api_key", "")
	v.SetDefault("extractor.secondary.model", "")
	v.SetDefault("extractor.secondary.timeout_secs", 60)

	// Auth defaults
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "billex")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "BILLEX_SERVER_PORT",
		"server.read_timeout":              "BILLEX_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "BILLEX_SERVER_WRITE_TIMEOUT",
		"server.environment":               "BILLEX_SERVER_ENVIRONMENT",
		"db.host":                          "BILLEX_DB_HOST",
		"db.port":                          "BILLEX_DB_PORT",
		"db.user":                          "BILLEX_DB_USER",
		"db.password":                      "BILLEX_DB_PASSWORD",
		"db.name":                          "BILLEX_DB_NAME",
		"db.sslmode":                       "BILLEX_DB_SSLMODE",
		"db.max_open":                      "BILLEX_DB_MAX_OPEN",
		"db.max_idle":                      "BILLEX_DB_MAX_IDLE",
		"s3.region":                        "BILLEX_S3_REGION",
		"s3.endpoint":                      "BILLEX_S3_ENDPOINT",
		"s3.access_key":                    "BILLEX_S3_ACCESS_KEY",
		"s3.secret_key":                    "BILLEX_S3_SECRET_KEY",
		"log.level":                        "BILLEX_LOG_LEVEL",
		"log.format":                       "BILLEX_LOG_FORMAT",
		"fetch.timeout_secs":               "BILLEX_FETCH_TIMEOUT_SECS",
		"fetch.max_size_mb":                "BILLEX_FETCH_MAX_SIZE_MB",
		"raster.dpi":                       "BILLEX_RASTER_DPI",
		"raster.jpeg_quality":              "BILLEX_RASTER_JPEG_QUALITY",
		"pipeline.concurrency":             "BILLEX_PIPELINE_CONCURRENCY",
		"pipeline.queue_depth":             "BILLEX_PIPELINE_QUEUE_DEPTH",
		"extractor.primary.provider":       "BILLEX_EXTRACTOR_PRIMARY_PROVIDER",
		"extractor.primary.api_key":        "BILLEX_EXTRACTOR_PRIMARY_API_KEY",
		"extractor.primary.model":          "BILLEX_EXTRACTOR_PRIMARY_MODEL",
		"extractor.primary.timeout_secs":   "BILLEX_EXTRACTOR_PRIMARY_TIMEOUT_SECS",
		"extractor.secondary.provider":     "BILLEX_EXTRACTOR_SECONDARY_PROVIDER",
		"extractor.secondary.api_key":      "BILLEX_EXTRACTOR_SECONDARY_API_KEY",
		"extractor.secondary.model":        "BILLEX_EXTRACTOR_SECONDARY_MODEL",
		"extractor.secondary.timeout_secs": "BILLEX_EXTRACTOR_SECONDARY_TIMEOUT_SECS",
		"auth.secret":                      "BILLEX_AUTH_SECRET",
		"auth.issuer":                      "BILLEX_AUTH_ISSUER",
		"cors.allowed_origins":             "BILLEX_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLEX_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLEX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Fetch = FetchConfig{
		TimeoutSecs: v.GetInt("fetch.timeout_secs"),
		MaxSizeMB:   v.GetInt64("fetch.max_size_mb"),
	}
	cfg.Raster = RasterConfig{
		DPI:         v.GetInt("raster.dpi"),
		JPEGQuality: v.GetInt("raster.jpeg_quality"),
	}
	cfg.Pipeline = PipelineConfig{
		Concurrency: v.GetInt("pipeline.concurrency"),
		QueueDepth:  v.GetInt("pipeline.queue_depth"),
	}
	cfg.Extractor = ExtractorConfig{
		Primary: ProviderConfig{
			Provider:    v.GetString("extractor.primary.provider"),
			APIKey:      v.GetString("extractor.primary.api_key"),
			Model:       v.GetString("extractor.primary.model"),
			TimeoutSecs: v.GetInt("extractor.primary.timeout_secs"),
		},
		Secondary: ProviderConfig{
			Provider:    v.GetString("extractor.secondary.provider"),
			APIKey:      v.GetString("extractor.secondary.api_key"),
			Model:       v.GetString("extractor.secondary.model"),
			TimeoutSecs: v.GetInt("extractor.secondary.timeout_secs"),
		},
	}
	cfg.Auth = AuthConfig{
		Secret: v.GetString("auth.secret"),
		Issuer: v.GetString("auth.issuer"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
