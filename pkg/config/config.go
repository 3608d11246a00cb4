package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Resolver struct {
		Proxy     string        `env:"RESOLVER_PROXY" env-description:"optional proxy URL used for both http and https"`
		Timeout   time.Duration `env:"RESOLVER_TIMEOUT" env-default:"30s"`
		UserAgent string        `env:"RESOLVER_USER_AGENT"`
		Timezone  string        `env:"RESOLVER_TIMEZONE" env-default:"Local"`
	}
	HTTP struct {
		RateRequests int           `env:"HTTP_RATE_REQUESTS" env-default:"10"`
		RatePer      time.Duration `env:"HTTP_RATE_PER" env-default:"1m"`
		RateBurst    int           `env:"HTTP_RATE_BURST" env-default:"5"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	History struct {
		Retention   time.Duration `env:"HISTORY_RETENTION" env-default:"120h"`
		CleanupCron string        `env:"HISTORY_CLEANUP_CRON" env-default:"0 3 * * *"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// HistoryEnabled reports whether a Postgres history store is configured.
func (c *Config) HistoryEnabled() bool {
	return c.Postgres.Host != ""
}

// GetDSN returns the Postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

// Location resolves the configured timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Resolver.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
