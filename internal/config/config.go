package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the resolved application settings
type Config struct {
	LogLevel           string  `mapstructure:"logLevel"`
	LogFormat          string  `mapstructure:"logFormat"`
	Trials             int     `mapstructure:"trials"`
	Workers            int     `mapstructure:"workers"`
	Seed               uint64  `mapstructure:"seed"`
	MaxRounds          int     `mapstructure:"maxRounds"`
	ExplosionThreshold float64 `mapstructure:"explosionThreshold"`
}

// RandomThreshold reports whether cleanup draws a fresh threshold per unit
func (c Config) RandomThreshold() bool {
	return c.ExplosionThreshold < 0
}

// SetDefaults registers the default value of every key
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "console")
	viper.SetDefault("trials", 1000)
	viper.SetDefault("workers", runtime.NumCPU())
	viper.SetDefault("seed", 0)
	viper.SetDefault("maxRounds", 6)
	viper.SetDefault("explosionThreshold", -1.0)
}

// Load sets default values and reads fleetsim.{yaml,yml,json} from configDir.
// A missing config file is not an error. Environment variables prefixed
// with FLEETSIM_ override file values.
func Load(configDir string) error {
	SetDefaults()

	viper.SetEnvPrefix("FLEETSIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("fleetsim")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// flagKeys maps command line flag names to config keys
var flagKeys = map[string]string{
	"log-level":           "logLevel",
	"log-format":          "logFormat",
	"trials":              "trials",
	"workers":             "workers",
	"seed":                "seed",
	"max-rounds":          "maxRounds",
	"explosion-threshold": "explosionThreshold",
}

// BindFlags binds the known command line flags in fs to their config keys
func BindFlags(fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			errs = append(errs, viper.BindPFlag(key, f))
		}
	})
	return errors.Join(errs...)
}

// Current returns the settings currently held by viper
func Current() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if c.Trials < 1 {
		return Config{}, fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxRounds < 1 {
		return Config{}, fmt.Errorf("maxRounds must be positive, got %d", c.MaxRounds)
	}
	if c.ExplosionThreshold > 1 {
		return Config{}, fmt.Errorf("explosionThreshold must be at most 1, got %g", c.ExplosionThreshold)
	}
	return c, nil
}
