package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	DriverMemory = "memory"
	DriverScylla = "scylla"

	ExporterNone = "none"
	ExporterOTLP = "otlp"
)

type Config struct {
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`

	Server   ServerConfig   `koanf:"server"`
	Storage  StorageConfig  `koanf:"storage"`
	Scylla   ScyllaConfig   `koanf:"scylla"`
	Redis    RedisConfig    `koanf:"redis"`
	Registry RegistryConfig `koanf:"registry"`
	Security SecurityConfig `koanf:"security"`
	Tracing  TracingConfig  `koanf:"tracing"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	APIKey          string        `koanf:"api_key"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver string `koanf:"driver"`
}

type ScyllaConfig struct {
	Hosts    []string `koanf:"hosts"`
	Keyspace string   `koanf:"keyspace"`
}

// RedisConfig is optional; an empty URL disables report deduplication.
type RedisConfig struct {
	URL          string        `koanf:"url"`
	PoolSize     int           `koanf:"pool_size"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	ReportWindow time.Duration `koanf:"report_window"`
}

type RegistryConfig struct {
	// Extra numbers added to the snapshot on top of the storage source.
	Numbers       []string `koanf:"numbers"`
	DefaultRegion string   `koanf:"default_region"`
}

type SecurityConfig struct {
	SaltSecret string `koanf:"salt_secret"`
}

type TracingConfig struct {
	Exporter      string        `koanf:"exporter"`
	Endpoint      string        `koanf:"endpoint"`
	SamplingRate  float64       `koanf:"sampling_rate"`
	ExportTimeout time.Duration `koanf:"export_timeout"`
}

// envKeys maps the environment variables the service has always read to config keys.
var envKeys = map[string]string{
	"APP_ENV":          "environment",
	"LOG_LEVEL":        "log_level",
	"HTTP_PORT":        "server.addr",
	"API_MASTER_KEY":   "server.api_key",
	"STORAGE_DRIVER":   "storage.driver",
	"SCYLLA_HOST":      "scylla.hosts",
	"SCYLLA_KEYSPACE":  "scylla.keyspace",
	"REDIS_URL":        "redis.url",
	"REPORT_WINDOW":    "redis.report_window",
	"DEFAULT_REGION":   "registry.default_region",
	"APP_SALT_SECRET":  "security.salt_secret",
	"SCAM_NUMBERS_ADD": "registry.numbers",

	"OTEL_EXPORTER":               "tracing.exporter",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "tracing.endpoint",
}

var listKeys = map[string]bool{
	"scylla.hosts":     true,
	"registry.numbers": true,
}

func Defaults() Config {
	return Config{
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{Driver: DriverMemory},
		Scylla: ScyllaConfig{
			Hosts: []string{"localhost"},
		},
		Redis: RedisConfig{
			PoolSize:     10,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			ReportWindow: 24 * time.Hour,
		},
		Tracing: TracingConfig{
			Exporter:      ExporterNone,
			Endpoint:      "localhost:4317",
			SamplingRate:  1.0,
			ExportTimeout: 10 * time.Second,
		},
	}
}

// Load layers defaults, the optional YAML file at path, then environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// HTTP_PORT may hold a bare port.
	if cfg.Server.Addr != "" && !strings.Contains(cfg.Server.Addr, ":") {
		cfg.Server.Addr = ":" + cfg.Server.Addr
	}

	return &cfg, nil
}

// envValue maps a variable to its config key. Unknown variables map to "" and
// are skipped. List keys take comma-separated values.
func envValue(name, value string) (string, interface{}) {
	key := envKeys[name]
	if key == "" || !listKeys[key] {
		return key, value
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// Validate checks the settings every binary needs.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverScylla:
		if len(c.Scylla.Hosts) == 0 {
			return errors.New("scylla.hosts is required for the scylla driver")
		}
		if c.Scylla.Keyspace == "" {
			return errors.New("scylla.keyspace is required for the scylla driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Redis.URL != "" && c.Redis.ReportWindow <= 0 {
		return errors.New("redis.report_window must be positive")
	}
	switch c.Tracing.Exporter {
	case ExporterNone, ExporterOTLP, "":
	default:
		return fmt.Errorf("unknown tracing exporter %q", c.Tracing.Exporter)
	}
	return nil
}

// ValidateServer adds the checks that only the HTTP API needs.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.APIKey == "" {
		return errors.New("API_MASTER_KEY is required")
	}
	return nil
}

