package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string
	LogLevel  string
	Server    ServerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Stripe    StripeConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User        string
	Password    string
	Name        string
	Host        string
	Port        int
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

// DSN builds the pgx connection URL.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Name, p.SSLMode,
	)
}

type RateLimitConfig struct {
	BookingsPerMinute int
}

type StripeConfig struct {
	SecretKey string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

type raw struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	ServerHost  string `mapstructure:"SERVER_HOST"`
	ServerPort  int    `mapstructure:"SERVER_PORT"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	PostgresUser        string `mapstructure:"POSTGRES_USER"`
	PostgresPassword    string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB          string `mapstructure:"POSTGRES_DB"`
	PostgresHost        string `mapstructure:"POSTGRES_HOST"`
	PostgresPort        int    `mapstructure:"POSTGRES_PORT"`
	PostgresSSLMode     string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresMaxConns    int32  `mapstructure:"POSTGRES_MAX_CONNS"`
	PostgresAutoMigrate bool   `mapstructure:"POSTGRES_AUTO_MIGRATE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	RateLimitPerMin int `mapstructure:"RATE_LIMIT_PER_MIN"`

	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SERVER_HOST", "localhost")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("CORS_ORIGINS", "")

	// Unset keys still need a default so AutomaticEnv picks them up on Unmarshal.
	v.SetDefault("POSTGRES_USER", "")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("POSTGRES_DB", "")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("POSTGRES_MAX_CONNS", 0)
	v.SetDefault("POSTGRES_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_ADDR", "localhost:6380")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RATE_LIMIT_PER_MIN", 10)

	v.SetDefault("STRIPE_SECRET_KEY", "")
}

// New reads .env (if present), then an optional config.yaml from the working
// directory or ./config, then the environment. Later sources win.
func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	cfg, err := load(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

func load(v *viper.Viper) (*Config, error) {
	defaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var r raw
	if err := v.Unmarshal(&r); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	for _, req := range []struct{ key, val string }{
		{"POSTGRES_USER", r.PostgresUser},
		{"POSTGRES_PASSWORD", r.PostgresPassword},
		{"POSTGRES_DB", r.PostgresDB},
	} {
		if req.val == "" {
			return nil, fmt.Errorf("missing %s", req.key)
		}
	}

	if r.ServerPort <= 0 || r.ServerPort > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT: %d", r.ServerPort)
	}
	if r.RateLimitPerMin <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MIN: %d", r.RateLimitPerMin)
	}

	return &Config{
		Env:      r.AppEnv,
		LogLevel: r.LogLevel,
		Server: ServerConfig{
			Host:        r.ServerHost,
			Port:        r.ServerPort,
			CORSOrigins: splitList(r.CORSOrigins),
		},
		Postgres: PostgresConfig{
			User:        r.PostgresUser,
			Password:    r.PostgresPassword,
			Name:        r.PostgresDB,
			Host:        r.PostgresHost,
			Port:        r.PostgresPort,
			SSLMode:     r.PostgresSSLMode,
			MaxConns:    r.PostgresMaxConns,
			AutoMigrate: r.PostgresAutoMigrate,
		},
		Redis: RedisConfig{
			Addr:     r.RedisAddr,
			Password: r.RedisPassword,
			DB:       r.RedisDB,
		},
		RateLimit: RateLimitConfig{BookingsPerMinute: r.RateLimitPerMin},
		Stripe:    StripeConfig{SecretKey: r.StripeSecretKey},
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
