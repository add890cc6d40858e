package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. CRYPTIDS_KEY.
const envPrefix = "CRYPTIDS"

// Config holds the resolved CLI settings. Values come from flags, then
// CRYPTIDS_* environment variables, then the optional config file.
type Config struct {
	Key      string `mapstructure:"key"`
	Keyset   string `mapstructure:"keyset"`
	Format   string `mapstructure:"format"`
	LogLevel string `mapstructure:"log-level"`
	Debug    bool   `mapstructure:"debug"`
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("cryptids", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (yaml, json or toml)")
	fs.String("key", "", "hex-encoded 16-byte AES key")
	fs.String("keyset", "", "path to a cleartext JSON Tink keyset")
	fs.String("format", "hex", "keygen output format: hex or keyset")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.Bool("debug", false, "human-readable debug logging")
	return fs
}

// loadConfig resolves settings for a parsed flag set.
func loadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
