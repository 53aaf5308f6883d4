package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	applog "stockroom/internal/log"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
	DriverMemory   = "memory"
)

type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	DBDriver       string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN          string `envconfig:"DB_DSN" default:"stockroom.db"` // sqlite file in project root
	LogFile        string `envconfig:"LOG_FILE"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	SeedDemo       bool   `envconfig:"SEED_DEMO" default:"true"`
	TemplateDir    string `envconfig:"TEMPLATE_DIR"` // empty: templates embedded in the binary
	TemplateReload bool   `envconfig:"TEMPLATE_RELOAD" default:"false"`
	RateLimit      int    `envconfig:"RATE_LIMIT" default:"120"`      // requests per minute per IP
	BodyLimit      int    `envconfig:"BODY_LIMIT" default:"1048576"` // 1 MiB
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		applog.Security(nil, "config.dotenv.fail", map[string]any{"err": err.Error()})
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	applog.Info(nil, "config.load", map[string]any{
		"port":      cfg.Port,
		"db_driver": cfg.DBDriver,
		"log_file":  cfg.LogFile,
		"seed_demo": cfg.SeedDemo,
	})
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite, pgx or memory)", c.DBDriver)
	}
	if c.DBDriver != DriverMemory && c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required for driver %s", c.DBDriver)
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	return nil
}
