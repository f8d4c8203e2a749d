package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	HTTPAddr      string  `env:"HTTP_ADDR,           default=127.0.0.1:3000"`
	SubmitRatePer float64 `env:"SUBMIT_RATE_PER_SEC, default=5"`

	API     APIConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:5000/api"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

type SessionConfig struct {
	Backend               string        `env:"SESSION_BACKEND,         default=file"`
	Profile               string        `env:"SESSION_PROFILE,         default=default"`
	Dir                   string        `env:"SESSION_DIR"`
	TokenSecret           string        `env:"TOKEN_SECRET"`
	LoginRedirectDelay    time.Duration `env:"LOGIN_REDIRECT_DELAY,    default=1s"`
	RegisterRedirectDelay time.Duration `env:"REGISTER_REDIRECT_DELAY, default=2s"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=visafrontend"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr      string        `env:"REDIS_ADDR,       default=localhost:6379"`
	DB        int           `env:"REDIS_DB,         default=0"`
	Password  string        `env:"REDIS_PASSWORD"`
	KeyPrefix string        `env:"REDIS_KEY_PREFIX, default=visafrontend"`
	Timeout   time.Duration `env:"REDIS_TIMEOUT,    default=5s"`
}

// Load reads an optional .env file, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express in tags.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("SESSION_BACKEND: unknown backend %q", c.Session.Backend)
	}

	if c.Session.Profile == "" || strings.ContainsAny(c.Session.Profile, `/\`) || strings.HasPrefix(c.Session.Profile, ".") {
		return fmt.Errorf("SESSION_PROFILE: invalid profile name %q", c.Session.Profile)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL: must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT: must be positive, got %s", c.API.Timeout)
	}
	if c.SubmitRatePer < 0 {
		return fmt.Errorf("SUBMIT_RATE_PER_SEC: must not be negative, got %v", c.SubmitRatePer)
	}
	if c.Session.LoginRedirectDelay <= 0 {
		return fmt.Errorf("LOGIN_REDIRECT_DELAY: must be positive, got %s", c.Session.LoginRedirectDelay)
	}
	if c.Session.RegisterRedirectDelay <= 0 {
		return fmt.Errorf("REGISTER_REDIRECT_DELAY: must be positive, got %s", c.Session.RegisterRedirectDelay)
	}
	return nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
