package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// PathEnv names the variable holding an optional YAML config file.
const PathEnv = "STOREFRONT_CONFIG"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	Env           string              `yaml:"env" env:"ENV" env-default:"local"`
	HTTP          HTTPConfig          `yaml:"http"`
	Storage       StorageConfig       `yaml:"storage"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	Redis         RedisConfig         `yaml:"redis"`
	Logger        LoggerConfig        `yaml:"logger"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Cookie        CookieConfig        `yaml:"cookie"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
}

type PostgresConfig struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"storefront"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database string `yaml:"database" env:"POSTGRES_DB" env-default:"storefront"`
	SSLMode  string `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
	MaxConns int32  `yaml:"max_conns" env:"POSTGRES_MAX_CONNS" env-default:"10"`
}

// DSN is the connection string in URL form; scheme selects the driver ("postgres" for pgx, "pgx5" for migrate).
func (c PostgresConfig) DSN(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"720h"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type NotificationsConfig struct {
	MaxOwners    int           `yaml:"max_owners" env:"NOTIFICATIONS_MAX_OWNERS" env-default:"10000"`
	TrayCapacity int           `yaml:"tray_capacity" env:"NOTIFICATIONS_TRAY_CAPACITY" env-default:"5"`
	TrayTTL      time.Duration `yaml:"tray_ttl" env:"NOTIFICATIONS_TRAY_TTL" env-default:"1m"`
}

type CookieConfig struct {
	Secure bool          `yaml:"secure" env:"COOKIE_SECURE" env-default:"false"`
	MaxAge time.Duration `yaml:"max_age" env:"COOKIE_MAX_AGE" env-default:"8760h"`
}

// Load reads .env (when present), then the YAML file at path (when given), then the environment.
// A missing file falls back to the environment alone.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if path != "" {
		err := cleanenv.ReadConfig(path, &cfg)
		if err == nil {
			return &cfg, cfg.validate()
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cleanenv.ReadConfig[%s]: %w", path, err)
		}
		cfg = Config{}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	return &cfg, cfg.validate()
}

// FromEnv loads using the file named by PathEnv.
func FromEnv() (*Config, error) {
	return Load(os.Getenv(PathEnv))
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("storage driver[%s] is not supported", c.Storage.Driver)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http port[%d] is out of range", c.HTTP.Port)
	}

	return nil
}
