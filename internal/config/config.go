package config

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. HEALTHREC_DB.
const EnvPrefix = "HEALTHREC"

// Config holds settings shared by all commands.
type Config struct {
	Database string `mapstructure:"db"`
	Addr     string `mapstructure:"addr"`
	Format   string `mapstructure:"format"`
	Verbose  bool   `mapstructure:"verbose"`
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Defaults applied before any file, env or flag source.
const (
	DefaultDatabase = "health_records.db"
	DefaultAddr     = "127.0.0.1:8765"
	DefaultFormat   = "text"
)

// New returns a viper instance with defaults, env binding and the optional
// healthrec.yaml config file search path set up. Flags are bound
// separately with BindFlags.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("healthrec")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("db", DefaultDatabase)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("verbose", false)
	return v
}

// BindFlags binds each named flag in fs to the viper key of the same name.
// Flags not present in fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(name, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads the optional config file and unmarshals the merged settings.
// Precedence, highest first: flags, environment, config file, defaults.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if !IsValidFormat(c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	return nil
}

// IsValidFormat checks if the format is one of the allowed values.
func IsValidFormat(format string) bool {
	return lo.Contains(ValidFormats, format)
}
