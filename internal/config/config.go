package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "BOOKS"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GinMode    string           `yaml:"gin_mode" envconfig:"GIN_MODE"`
	LogLevel   zapcore.Level    `yaml:"log_level" split_words:"true"`
	EnvFile    string           `yaml:"env_file" split_words:"true"`
	Server     ServerConfig     `yaml:"server"`
	DB         DBConfig         `yaml:"db"`
	Pagination PaginationConfig `yaml:"pagination"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	RequestTimeout  time.Duration `yaml:"request_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
	TrustedProxies  []string      `yaml:"trusted_proxies" split_words:"true"`
}

// DBConfig field names double as environment keys, e.g. BOOKS_DB_HOST.
type DBConfig struct {
	Driver      string        `yaml:"driver"`
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port"`
	User        string        `yaml:"user"`
	Pass        string        `yaml:"pass"`
	Name        string        `yaml:"name"`
	SSLMode     string        `yaml:"sslmode"`
	TZ          string        `yaml:"tz"`
	Path        string        `yaml:"path"`
	MaxAttempts int           `yaml:"max_attempts" split_words:"true"`
	RetryDelay  time.Duration `yaml:"retry_delay" split_words:"true"`
}

type PaginationConfig struct {
	DefaultSize int `yaml:"default_size" split_words:"true"`
	MaxSize     int `yaml:"max_size" split_words:"true"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		GinMode:  "debug",
		LogLevel: zapcore.InfoLevel,
		EnvFile:  ".env",
		Server: ServerConfig{
			Port:            "8080",
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			TrustedProxies:  []string{"127.0.0.1", "::1"},
		},
		DB: DBConfig{
			Driver:      DriverPostgres,
			Host:        "localhost",
			Port:        "5432",
			User:        "postgres",
			Name:        "postgres",
			TZ:          "UTC",
			Path:        "books.db",
			MaxAttempts: 10,
			RetryDelay:  2 * time.Second,
		},
		Pagination: PaginationConfig{
			DefaultSize: 10,
			MaxSize:     1000,
		},
	}
}

// Load builds the configuration from the defaults, the optional YAML file at
// path, a .env file in debug mode and finally the BOOKS_* environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load configuration file: %w", err)
		}
	}

	if isDebug(cfg) {
		envFile := cfg.EnvFile
		if v := os.Getenv(EnvPrefix + "_ENV_FILE"); v != "" {
			envFile = v
		}
		if err := loadEnvFile(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	if cfg.DB.SSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DB.SSLMode = "require"
		} else {
			cfg.DB.SSLMode = "disable"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile decodes the YAML file at path on top of cfg.
func LoadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return yaml.NewDecoder(file).Decode(cfg)
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}

	if c.Pagination.DefaultSize < 1 {
		return errors.New("pagination default_size must be positive")
	}
	if c.Pagination.MaxSize < c.Pagination.DefaultSize {
		return errors.New("pagination max_size must not be smaller than default_size")
	}
	if c.DB.MaxAttempts < 1 {
		return errors.New("db max_attempts must be positive")
	}

	return nil
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DB.Host,
		c.DB.User,
		c.DB.Pass,
		c.DB.Name,
		c.DB.Port,
		c.DB.SSLMode,
		c.DB.TZ,
	)
}

// isDebug looks at the environment first since the .env file has not been
// read yet.
func isDebug(cfg *Config) bool {
	if v := os.Getenv(EnvPrefix + "_GIN_MODE"); v != "" {
		return v == "debug"
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		return v == "debug"
	}
	return cfg.GinMode == "debug"
}

// loadEnvFile is a no-op when the file does not exist.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}
