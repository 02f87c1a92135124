package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Estimator EstimatorConfig `yaml:"estimator"`
	Reference ReferenceConfig `yaml:"reference"`
	Notify    NotifyConfig    `yaml:"notify"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds bearer token validation settings. Tokens are issued by
// an external identity service sharing the secret.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"carbontrack"`
}

// EstimatorConfig holds the emissions estimation API client settings.
type EstimatorConfig struct {
	BaseURL string        `yaml:"base_url" env:"ESTIMATOR_BASE_URL" env-default:"https://www.carboninterface.com/api/v1"`
	APIKey  string        `yaml:"api_key"  env:"ESTIMATOR_API_KEY"`
	Timeout time.Duration `yaml:"timeout"  env:"ESTIMATOR_TIMEOUT"  env-default:"10s"`
}

// ReferenceConfig controls caching of reference lookups. A zero CacheTTL
// disables the cache.
type ReferenceConfig struct {
	CacheTTL  time.Duration `yaml:"cache_ttl"  env:"REFERENCE_CACHE_TTL"  env-default:"1h"`
	CacheSize int           `yaml:"cache_size" env:"REFERENCE_CACHE_SIZE" env-default:"256"`
}

// NotifyConfig holds notification channel settings. An empty TopicARN
// routes alerts to the application log instead of SNS.
type NotifyConfig struct {
	Region   string `yaml:"region"    env:"NOTIFY_REGION"    env-default:"us-east-1"`
	TopicARN string `yaml:"topic_arn" env:"NOTIFY_TOPIC_ARN"`
	Endpoint string `yaml:"endpoint"  env:"NOTIFY_ENDPOINT"`
}

// MonitorConfig holds threshold monitor settings.
type MonitorConfig struct {
	Frequency   string        `yaml:"frequency"   env:"MONITOR_FREQUENCY"   env-default:"Monthly"`
	Concurrency int           `yaml:"concurrency" env:"MONITOR_CONCURRENCY" env-default:"4"`
	Timeout     time.Duration `yaml:"timeout"     env:"MONITOR_TIMEOUT"     env-default:"5m"`
}

// RateLimitConfig limits requests that reach the estimation API.
type RateLimitConfig struct {
	CalculatePerMinute int           `yaml:"calculate_per_minute" env:"RATE_LIMIT_CALCULATE_PER_MINUTE" env-default:"30"`
	CleanupInterval    time.Duration `yaml:"cleanup_interval"     env:"RATE_LIMIT_CLEANUP_INTERVAL"     env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// NotificationsEnabled reports whether alerts go to a real topic.
func (n NotifyConfig) NotificationsEnabled() bool {
	return n.TopicARN != ""
}
