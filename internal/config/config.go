package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. STRAVARCHIVE_TIMEZONE.
	EnvPrefix = "STRAVARCHIVE"
	// ConfigFileEnv names an optional YAML config file.
	ConfigFileEnv = EnvPrefix + "_CONFIG"
	// DefaultConfigFile is read from the working directory when present.
	DefaultConfigFile = "stravarchive.yaml"
)

// Config is the runtime configuration of the command line tool.
type Config struct {
	ArchiveDir  string        `yaml:"archive_dir" envconfig:"ARCHIVE_DIR"`
	Timezone    string        `yaml:"timezone" envconfig:"TIMEZONE" default:"Local" validate:"required"`
	ColumnWidth int           `yaml:"column_width" envconfig:"COLUMN_WIDTH" default:"10" validate:"min=6,max=40"`
	Logging     LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// LoggingConfig controls the stderr logger.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"warn" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load reads .env files (missing ones are ignored), the environment and the
// optional YAML file, in increasing order of precedence: defaults, file,
// environment.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, name := range dotenv {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	path, explicit := os.LookupEnv(ConfigFileEnv)
	if !explicit {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		mergeConfigs(&cfg, fileCfg)
	} else if explicit {
		return nil, fmt.Errorf("failed to load config from file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs copies file values into cfg for every setting the environment
// did not provide.
func mergeConfigs(cfg *Config, file *Config) {
	fromEnv := func(key string) bool {
		_, ok := os.LookupEnv(EnvPrefix + "_" + key)
		return ok
	}
	if file.ArchiveDir != "" && !fromEnv("ARCHIVE_DIR") {
		cfg.ArchiveDir = file.ArchiveDir
	}
	if file.Timezone != "" && !fromEnv("TIMEZONE") {
		cfg.Timezone = file.Timezone
	}
	if file.ColumnWidth != 0 && !fromEnv("COLUMN_WIDTH") {
		cfg.ColumnWidth = file.ColumnWidth
	}
	if file.Logging.Level != "" && !fromEnv("LOGGING_LEVEL") {
		cfg.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" && !fromEnv("LOGGING_FORMAT") {
		cfg.Logging.Format = file.Logging.Format
	}
}

// Validate checks field constraints and that the timezone exists.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; "Local" is the process zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
