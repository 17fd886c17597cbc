package app

import (
	"os"
	"strings"
	"time"
)

// Environment — профиль запуска, выбирающий базу данных.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvTest Environment = "test"
)

// Config описывает настройки запуска витрины.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	// Env выбирает DSN ровно один раз при старте: dev — PostgresDSN,
	// test — PostgresTestDSN. Дальше по коду ветвления по окружению нет.
	Env             Environment
	PostgresDSN     string
	PostgresTestDSN string

	KafkaBrokers []string

	JWTSecret string
	TokenTTL  time.Duration
}

// DefaultConfig возвращает базовые адреса и профиль разработки.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		Env:         EnvDev,
		TokenTTL:    24 * time.Hour,
	}
}

// ReadConfig собирает конфигурацию из переменных окружения STOREFRONT_*.
func ReadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STOREFRONT_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STOREFRONT_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("STOREFRONT_ENV"); v != "" {
		cfg.Env = Environment(strings.ToLower(strings.TrimSpace(v)))
	}
	cfg.PostgresDSN = strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_DSN"))
	cfg.PostgresTestDSN = strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_TEST_DSN"))
	if v := os.Getenv("STOREFRONT_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}
	if v := os.Getenv("STOREFRONT_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("STOREFRONT_TOKEN_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil && ttl > 0 {
			cfg.TokenTTL = ttl
		}
	}

	return cfg
}

// DSN возвращает строку подключения, соответствующую профилю окружения.
// Пустая строка означает работу на in-memory хранилище.
func (c Config) DSN() string {
	if c.Env == EnvTest {
		return c.PostgresTestDSN
	}
	return c.PostgresDSN
}
