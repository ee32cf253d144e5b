package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	LogFile         string        `env:"LOG_FILE"`     // empty logs to stdout
	DatabaseURL     string        `env:"DATABASE_URL"` // empty disables the results archive
	TickInterval    time.Duration `env:"TICK_INTERVAL" envDefault:"50ms"`
	Quorum          int           `env:"QUORUM" envDefault:"5"`
	CleanupDelay    time.Duration `env:"CLEANUP_DELAY" envDefault:"5m"`
	DemoTournaments bool          `env:"DEMO_TOURNAMENTS" envDefault:"true"`
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
