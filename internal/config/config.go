// Package config loads runtime configuration from an optional
// vatledger.yaml file and VATLEDGER_* environment variables.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config is the runtime configuration of the engine.
type Config struct {
	StorePath    string
	SnapshotPath string
	ListenAddr   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogLevel     string
	Debug        bool
}

// Load reads configuration with defaults, an optional vatledger.yaml in
// the working directory, and environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("store_path", "clientes.txt")
	v.SetDefault("snapshot_path", "vatledger.db")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("read_timeout", 10*time.Second)
	v.SetDefault("write_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)

	v.SetConfigName("vatledger")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("VATLEDGER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		StorePath:    v.GetString("store_path"),
		SnapshotPath: v.GetString("snapshot_path"),
		ListenAddr:   v.GetString("listen_addr"),
		ReadTimeout:  v.GetDuration("read_timeout"),
		WriteTimeout: v.GetDuration("write_timeout"),
		LogLevel:     v.GetString("log_level"),
		Debug:        v.GetBool("debug"),
	}, nil
}
