// Package config loads EditKit server configuration from file and
// environment. Env var overrides use the prefix EDITKIT_.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Metrics MetricsConfig
}

// ServerConfig holds listen settings.
type ServerConfig struct {
	Address         string
	ShutdownSeconds int
}

// UploadConfig selects and parameterizes the image upload backend.
// Backend is "disk" or "s3"; an empty backend disables uploads.
type UploadConfig struct {
	Backend string
	BaseURL string

	// disk
	Dir string

	// s3
	Bucket string
	Prefix string
	Region string
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Namespace string
}

// Load reads configuration from file and env. The config file is
// EDITKIT_CONFIG if set, otherwise ~/.config/editkit/config.toml; a
// missing file yields the defaults.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_seconds", 10)
	v.SetDefault("upload.backend", "disk")
	v.SetDefault("upload.base_url", "/uploads")
	v.SetDefault("upload.dir", filepath.Join(os.TempDir(), "editkit-uploads"))
	v.SetDefault("upload.bucket", "")
	v.SetDefault("upload.prefix", "uploads")
	v.SetDefault("upload.region", "")
	v.SetDefault("metrics.namespace", "editkit")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("EDITKIT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "editkit"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("EDITKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Upload.Backend {
	case "", "disk":
	case "s3":
		if c.Upload.Bucket == "" {
			return fmt.Errorf("config: upload.backend s3 requires upload.bucket")
		}
	default:
		return fmt.Errorf("config: unknown upload backend %q", c.Upload.Backend)
	}
	return nil
}
