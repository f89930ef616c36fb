package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileEnvName names the environment variable that points at a config file.
const FileEnvName = "CATALOG_CONFIG_FILE"

type Log struct {
	Level  string `mapstructure:"log_level"`
	Format string `mapstructure:"log_format"`
}

type Database struct {
	Driver          string        `mapstructure:"database_driver"`
	DSN             string        `mapstructure:"database_dsn"`
	AutoMigrate     bool          `mapstructure:"database_auto_migrate"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type JWT struct {
	Secret    string        `mapstructure:"jwt_secret"`
	Algorithm string        `mapstructure:"jwt_algorithm"`
	ExpiresIn time.Duration `mapstructure:"jwt_expires_in"`
}

type CORS struct {
	AllowedOrigins string `mapstructure:"cors_allowed_origins"`
}

type List struct {
	DefaultLimit int `mapstructure:"list_default_limit"`
	MaxLimit     int `mapstructure:"list_max_limit"`
}

type RabbitMQ struct {
	URL      string `mapstructure:"rabbitmq_url"`
	Exchange string `mapstructure:"rabbitmq_exchange"`
}

// Config is the whole service configuration. Keys are flat so every one of
// them can be overridden by the upper-case environment variable of the same name.
type Config struct {
	AppPort  string   `mapstructure:"app_port"`
	Log      Log      `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	JWT      JWT      `mapstructure:",squash"`
	CORS     CORS     `mapstructure:",squash"`
	List     List     `mapstructure:",squash"`
	RabbitMQ RabbitMQ `mapstructure:",squash"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:catalog.db?_foreign_keys=on")
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 25)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("JWT_EXPIRES_IN", 24*time.Hour)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LIST_DEFAULT_LIMIT", 100)
	v.SetDefault("LIST_MAX_LIMIT", 200)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "catalog")
}

// Load reads defaults, then the config file (path, or $CATALOG_CONFIG_FILE
// when path is empty, or none), then the environment. The result is validated.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(FileEnvName)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.JWT.Algorithm = strings.ToUpper(cfg.JWT.Algorithm)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.AppPort == "" {
		errs = append(errs, errors.New("APP_PORT: required"))
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER: unsupported driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN: required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET: required"))
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM: unsupported algorithm %q", c.JWT.Algorithm))
	}
	if c.List.MaxLimit < 1 {
		errs = append(errs, errors.New("LIST_MAX_LIMIT: must be positive"))
	}
	if c.List.DefaultLimit < 1 || c.List.DefaultLimit > c.List.MaxLimit {
		errs = append(errs, fmt.Errorf("LIST_DEFAULT_LIMIT: must be between 1 and %d", c.List.MaxLimit))
	}
	return errors.Join(errs...)
}
