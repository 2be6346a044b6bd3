package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	AWS      AWSConfig
	Invoke   InvokeConfig
	Store    StoreConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

type AWSConfig struct {
	Region  string
	Profile string
}

// InvokeConfig is the open configuration of the inference call: timeout,
// batching and retry are surfaced here rather than hard-coded.
type InvokeConfig struct {
	Timeout       time.Duration
	BatchSize     int
	RetryAttempts int
	RetryDelay    time.Duration
	ContentType   string
}

type StoreConfig struct {
	Bucket string
	Prefix string
}

type CatalogConfig struct {
	Database string
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("AWS_REGION", "")
	v.SetDefault("AWS_PROFILE", "")
	v.SetDefault("INVOKE_TIMEOUT", "60s")
	v.SetDefault("INVOKE_BATCH_SIZE", 0)
	v.SetDefault("INVOKE_RETRY_ATTEMPTS", 1)
	v.SetDefault("INVOKE_RETRY_DELAY", "200ms")
	v.SetDefault("INVOKE_CONTENT_TYPE", "text/csv")
	v.SetDefault("STORE_BUCKET", "")
	v.SetDefault("STORE_PREFIX", "")
	v.SetDefault("CATALOG_DATABASE", "inference_store")
	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_NAME", "inference_bridge")
	v.SetDefault("DATABASE_SSL_MODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		AWS: AWSConfig{
			Region:  v.GetString("AWS_REGION"),
			Profile: v.GetString("AWS_PROFILE"),
		},
		Invoke: InvokeConfig{
			Timeout:       v.GetDuration("INVOKE_TIMEOUT"),
			BatchSize:     v.GetInt("INVOKE_BATCH_SIZE"),
			RetryAttempts: v.GetInt("INVOKE_RETRY_ATTEMPTS"),
			RetryDelay:    v.GetDuration("INVOKE_RETRY_DELAY"),
			ContentType:   v.GetString("INVOKE_CONTENT_TYPE"),
		},
		Store: StoreConfig{
			Bucket: v.GetString("STORE_BUCKET"),
			Prefix: v.GetString("STORE_PREFIX"),
		},
		Catalog: CatalogConfig{
			Database: v.GetString("CATALOG_DATABASE"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSL_MODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		},
	}

	return cfg, nil
}
