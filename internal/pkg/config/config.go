// Package config assembles the typed service configuration from the
// environment layer.
package config

import (
	"strings"
	"time"

	"github.com/ManuelReschke/Newsroom/internal/pkg/env"
)

const (
	DefaultGatewayURL   = "https://ai.gateway.lovable.dev"
	DefaultGatewayModel = "google/gemini-2.5-flash"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Cache   CacheConfig
	Gateway GatewayConfig
	Admin   AdminConfig
	Counter CounterConfig
}

type AppConfig struct {
	Host            string
	Port            string
	Env             string
	MetricsUser     string
	MetricsPassword string
	// requests per minute and client IP
	APIRateLimit   int
	ProxyRateLimit int
}

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

type CacheConfig struct {
	Host     string
	Port     string
	Password string
}

// GatewayConfig describes the LLM gateway. An empty APIKey is reported per
// request, not at startup.
type GatewayConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// APIKeyConfigured reports whether a gateway credential is present
func (g GatewayConfig) APIKeyConfigured() bool {
	return g.APIKey != ""
}

type AdminConfig struct {
	APIKey string
}

type CounterConfig struct {
	FlushInterval time.Duration
}

// Load reads the configuration. env.SetupEnvFile should run first.
func Load() Config {
	apiKey := env.GetEnv("AI_GATEWAY_API_KEY", "")
	if apiKey == "" {
		apiKey = env.GetEnv("LOVABLE_API_KEY", "")
	}

	return Config{
		App: AppConfig{
			Host:            env.GetEnv("APP_HOST", "localhost"),
			Port:            env.GetEnv("APP_PORT", "4000"),
			Env:             env.GetEnv("APP_ENV", "prod"),
			MetricsUser:     env.GetEnv("METRICS_USER", "admin"),
			MetricsPassword: env.GetEnv("METRICS_PASSWORD", ""),
			APIRateLimit:    env.GetInt("API_RATE_LIMIT", 120),
			ProxyRateLimit:  env.GetInt("PROXY_RATE_LIMIT", 20),
		},
		DB: DBConfig{
			User:     env.GetEnv("DB_USER", "newsroom"),
			Password: env.GetEnv("DB_PASSWORD", ""),
			Host:     env.GetEnv("DB_HOST", "127.0.0.1"),
			Port:     env.GetEnv("DB_PORT", "3306"),
			Name:     env.GetEnv("DB_NAME", "newsroom"),
		},
		Cache: CacheConfig{
			Host:     env.GetEnv("CACHE_HOST", "localhost"),
			Port:     env.GetEnv("CACHE_PORT", "6379"),
			Password: env.GetEnv("CACHE_PASSWORD", ""),
		},
		Gateway: GatewayConfig{
			BaseURL: strings.TrimRight(env.GetEnv("AI_GATEWAY_URL", DefaultGatewayURL), "/"),
			APIKey:  strings.TrimSpace(apiKey),
			Model:   env.GetEnv("AI_GATEWAY_MODEL", DefaultGatewayModel),
			Timeout: env.GetDuration("AI_GATEWAY_TIMEOUT", 120*time.Second),
		},
		Admin: AdminConfig{
			APIKey: strings.TrimSpace(env.GetEnv("ADMIN_API_KEY", "")),
		},
		Counter: CounterConfig{
			FlushInterval: env.GetDuration("COUNTER_FLUSH_INTERVAL", time.Minute),
		},
	}
}
