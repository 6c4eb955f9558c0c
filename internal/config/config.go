package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	Import   ImportConfig   `mapstructure:"import"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	BodyLimit string `mapstructure:"body_limit"`
}

type AuthConfig struct {
	// AdminToken gates the import endpoints. Empty disables the gate,
	// which is only sensible in local development.
	AdminToken string `mapstructure:"admin_token"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ImportConfig struct {
	UploadDir         string `mapstructure:"upload_dir"`
	MaxUploadBytes    int64  `mapstructure:"max_upload_bytes"`
	Workers           int    `mapstructure:"workers"`
	BatchSize         int    `mapstructure:"batch_size"`
	LeaseSeconds      int    `mapstructure:"lease_seconds"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c ImportConfig) LeaseDuration() time.Duration {
	return time.Duration(c.LeaseSeconds) * time.Second
}

func (c ImportConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

// Load reads configuration from an optional YAML file plus environment
// variables (SERVER_PORT, DATABASE_URL, ...), env taking precedence.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit", "10M")
	v.SetDefault("auth.admin_token", "")
	v.SetDefault("database.url", "")
	v.SetDefault("import.upload_dir", "/tmp/candidate-import")
	v.SetDefault("import.max_upload_bytes", int64(10<<20))
	v.SetDefault("import.workers", 1)
	v.SetDefault("import.batch_size", 100)
	v.SetDefault("import.lease_seconds", 60)
	v.SetDefault("import.retry_delay_seconds", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
