// Package config loads MyManaBox settings from a config file, environment
// variables, or defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings
type Config struct {
	Collection CollectionConfig `mapstructure:"collection"`
	Scryfall   ScryfallConfig   `mapstructure:"scryfall"`
	Serve      ServeConfig      `mapstructure:"serve"`
}

type CollectionConfig struct {
	CSVPath   string `mapstructure:"csv_path"`
	CachePath string `mapstructure:"cache_path"`
	OutputDir string `mapstructure:"output_dir"`
	BackupDir string `mapstructure:"backup_dir"`
}

type ScryfallConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ThrottleMS int    `mapstructure:"throttle_ms"`
}

type ServeConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	SnapshotDB  string   `mapstructure:"snapshot_db"`
}

// ThrottleInterval returns the Scryfall minimum inter-request interval
func (c ScryfallConfig) ThrottleInterval() time.Duration {
	if c.ThrottleMS <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.ThrottleMS) * time.Millisecond
}

// DefaultPath returns the default config file path
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mymanabox", "config.yml")
}

// Load reads the config from disk and environment. A missing config file is
// fine; every setting has a default.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("collection.csv_path", "moxfield_export.csv")
	v.SetDefault("collection.cache_path", "card_cache.json")
	v.SetDefault("collection.output_dir", "sorted_output")
	v.SetDefault("collection.backup_dir", "backups")
	v.SetDefault("scryfall.base_url", "https://api.scryfall.com")
	v.SetDefault("scryfall.throttle_ms", 100)
	v.SetDefault("serve.host", "127.0.0.1")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("serve.cors_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("serve.snapshot_db", "mymanabox.db")

	v.SetEnvPrefix("MYMANABOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = os.Getenv("MYMANABOX_CONFIG")
	}
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
