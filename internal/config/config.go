package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	Environment   string
	Database      DatabaseConfig
	Kafka         KafkaConfig
	API           APIConfig
	LogLevel      string
	RefundProfile bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers string // comma-separated; empty disables publishing
	Topic   string
}

type APIConfig struct {
	AdminKeyHash string // bcrypt hash of the admin API key
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REFUND_PROFILE", "false")
	viper.SetDefault("KAFKA_TOPIC", "order-status-events")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "shopcore"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvOrViper("KAFKA_BROKERS", ""),
			Topic:   getEnvOrViper("KAFKA_TOPIC", "order-status-events"),
		},
		API: APIConfig{
			AdminKeyHash: getEnvOrViper("ADMIN_API_KEY_HASH", ""),
		},
		LogLevel:      getEnvOrViper("LOG_LEVEL", "info"),
		RefundProfile: getEnvOrViper("REFUND_PROFILE", "false") == "true",
	}

	// Validate required fields
	if cfg.API.AdminKeyHash == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("ADMIN_API_KEY_HASH is required in production")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
