// Package config содержит логику чтения конфигурации магазина игр.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Значения по умолчанию.
const (
	DefaultRunAddress   = "localhost:8080"
	DefaultStoreDriver  = "sqlite"
	DefaultStoreDSN     = "gamestore.db"
	DefaultPaymentDelay = 850 * time.Millisecond
	DefaultBcryptCost   = 10
)

// Config содержит параметры конфигурации магазина.
type Config struct {
	RunAddress   string        `env:"RUN_ADDRESS"`
	StoreDriver  string        `env:"STORE_DRIVER"`
	StoreDSN     string        `env:"STORE_DSN"`
	PaymentDelay time.Duration `env:"PAYMENT_DELAY"`
	CORSOrigin   string        `env:"CORS_ORIGIN"`
	BcryptCost   int           `env:"BCRYPT_COST"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами. Файл .env, если он есть,
// загружается до чтения окружения и уже заданные переменные не перезаписывает.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", DefaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.StoreDriver, "s", DefaultStoreDriver, "store driver: memory, sqlite or postgres")
	flag.StringVar(&cfg.StoreDSN, "d", DefaultStoreDSN, "store DSN: sqlite file path or postgres URI")
	flag.DurationVar(&cfg.PaymentDelay, "p", DefaultPaymentDelay, "simulated payment processor delay")
	flag.StringVar(&cfg.CORSOrigin, "c", "", "allowed CORS origin for the storefront")
	flag.IntVar(&cfg.BcryptCost, "b", DefaultBcryptCost, "bcrypt cost for new password digests")

	flag.Parse()

	// env.Parse трогает только поля, для которых переменная задана.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = DefaultRunAddress
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = DefaultStoreDriver
	}
	if cfg.PaymentDelay < 0 {
		return nil, fmt.Errorf("payment delay must not be negative: %s", cfg.PaymentDelay)
	}

	return cfg, nil
}
