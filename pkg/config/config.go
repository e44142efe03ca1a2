package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "MEDIMARKET"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
	JWT     JWTConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MEDIMARKET_APP_ENV" required:"true"`
	Port         string `envconfig:"MEDIMARKET_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MEDIMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDIMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the marketplace REST backend that owns persistence.
type BackendConfig struct {
	BaseURL        string        `envconfig:"MEDIMARKET_BACKEND_BASE_URL" required:"true"`
	Timeout        time.Duration `envconfig:"MEDIMARKET_BACKEND_TIMEOUT" default:"15s"`
	ReadMaxRetries uint64        `envconfig:"MEDIMARKET_BACKEND_READ_MAX_RETRIES" default:"3"`
	ReadRetryBase  time.Duration `envconfig:"MEDIMARKET_BACKEND_READ_RETRY_BASE" default:"200ms"`
}

func (b BackendConfig) validate() error {
	parsed, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend base url must be http(s), got %q", b.BaseURL)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MEDIMARKET_REDIS_URL"`
	Address      string        `envconfig:"MEDIMARKET_REDIS_ADDR"`
	Password     string        `envconfig:"MEDIMARKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEDIMARKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEDIMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEDIMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEDIMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEDIMARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEDIMARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies bearer tokens minted by the external auth service.
type JWTConfig struct {
	Secret string `envconfig:"MEDIMARKET_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"MEDIMARKET_JWT_ISSUER" required:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MEDIMARKET_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
