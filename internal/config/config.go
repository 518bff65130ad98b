// Package config предоставляет структуры и функции для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	Storage    `yaml:"storage"`
	HTTPServer `yaml:"http_server"`
	Reminder   `yaml:"reminder"`
}

// Storage структура для настройки хранилища
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn" env:"STORAGE_DSN" env-default:"data/subscriptions.db"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	RateLimit       float64       `yaml:"rate_limit" env:"HTTP_RATE_LIMIT" env-default:"20"`
	RateBurst       int           `yaml:"rate_burst" env-default:"40"`
	// RateLimitOff отключает ограничение частоты. Нулевой rate_limit в файле
	// заменяется значением по умолчанию, поэтому отключение задаётся отдельно.
	RateLimitOff bool `yaml:"rate_limit_disabled" env:"HTTP_RATE_LIMIT_DISABLED"`
}

// RequestRate возвращает допустимое число запросов в секунду; 0 означает
// отсутствие ограничения.
func (h HTTPServer) RequestRate() float64 {
	if h.RateLimitOff {
		return 0
	}
	return h.RateLimit
}

// Reminder структура для настройки напоминаний
type Reminder struct {
	Disabled  bool          `yaml:"disabled" env:"REMINDER_DISABLED"`
	Interval  time.Duration `yaml:"interval" env:"REMINDER_INTERVAL" env-default:"1h"`
	DaysAhead int           `yaml:"days_ahead" env:"REMINDER_DAYS_AHEAD" env-default:"3"`
	Bell      bool          `yaml:"bell" env:"REMINDER_BELL" env-default:"false"`
}

// Load читает конфиг из path. Перед чтением подгружается .env из текущего
// каталога, если он есть. Пустой path или отсутствующий файл означают
// конфигурацию из переменных окружения и значений по умолчанию.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: .env: %w", op, err)
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err = cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			return &cfg, validate(&cfg)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, validate(&cfg)
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func validate(cfg *Config) error {
	switch cfg.Storage.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported storage driver %q", cfg.Storage.Driver)
	}
	if cfg.Reminder.DaysAhead < 0 {
		return fmt.Errorf("config: reminder.days_ahead must not be negative")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  DSN: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"  RateLimit: %g/%d (disabled=%t)\n"+
			"Reminder:\n"+
			"  Disabled: %t\n"+
			"  Interval: %s\n"+
			"  DaysAhead: %d\n"+
			"  Bell: %t\n",
		c.Env,
		c.Storage.Driver,
		c.Storage.DSN,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.HTTPServer.RateLimit,
		c.HTTPServer.RateBurst,
		c.HTTPServer.RateLimitOff,
		c.Reminder.Disabled,
		c.Reminder.Interval,
		c.Reminder.DaysAhead,
		c.Reminder.Bell,
	)
}
