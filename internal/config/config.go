package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the register service. Values come
// from config.yaml when present and can always be overridden by environment
// variables (HTTP_ADDR, DATABASE_URL, REDIS_ADDR, JWT_SECRET, CART_TTL).
type Config struct {
	HTTPAddr    string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
	CartTTL     time.Duration
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/pos-register")

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("redis_addr", "pos-redis:6379")
	v.SetDefault("cart_ttl", "4h")

	v.AutomaticEnv()
	for _, key := range []string{"http_addr", "database_url", "redis_addr", "jwt_secret", "cart_ttl"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	cfg := Config{
		HTTPAddr:    v.GetString("http_addr"),
		DatabaseURL: v.GetString("database_url"),
		RedisAddr:   v.GetString("redis_addr"),
		JWTSecret:   v.GetString("jwt_secret"),
		CartTTL:     v.GetDuration("cart_ttl"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database_url is required (set DATABASE_URL)")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("jwt_secret is required (set JWT_SECRET)")
	}
	return cfg, nil
}
