package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort string `yaml:"server_port"`
	APIURL     string `yaml:"api_url"`
	// APITimeout bounds each backend call. Zero disables the timeout.
	APITimeout time.Duration `yaml:"api_timeout"`

	Session struct {
		Store       string `yaml:"store"`
		SQLitePath  string `yaml:"sqlite_path"`
		DatabaseURL string `yaml:"database_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"session"`

	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	TraceStdout bool   `yaml:"trace_stdout"`
}

func defaults() *Config {
	cfg := &Config{
		ServerPort: "3000",
		APIURL:     "http://localhost:8080",
		LogLevel:   "info",
	}
	cfg.Session.Store = "sqlite"
	cfg.Session.SQLitePath = "storefront.db"
	return cfg
}

// Load builds the configuration from defaults, then the YAML file named by
// STOREFRONT_CONFIG, then environment variables (including a .env file).
func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("STOREFRONT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.APIURL, "STOREFRONT_API_URL")
	setString(&cfg.Session.Store, "SESSION_STORE")
	setString(&cfg.Session.SQLitePath, "SESSION_DB_PATH")
	setString(&cfg.Session.DatabaseURL, "DATABASE_URL")
	setString(&cfg.Session.RedisURL, "REDIS_URL")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFile, "LOG_FILE")

	if v := os.Getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
		}
		cfg.APITimeout = d
	}
	if v := os.Getenv("TRACE_STDOUT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TRACE_STDOUT: %w", err)
		}
		cfg.TraceStdout = b
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("STOREFRONT_API_URL must be set")
	}
	switch c.Session.Store {
	case "sqlite":
		if c.Session.SQLitePath == "" {
			return fmt.Errorf("SESSION_DB_PATH must be set")
		}
	case "postgres":
		if c.Session.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set")
		}
	case "redis":
		if c.Session.RedisURL == "" {
			return fmt.Errorf("REDIS_URL must be set")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
