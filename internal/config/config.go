package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	// Storage selects where record collections and uploaded files live.
	Storage struct {
		Driver       string `yaml:"driver" env:"STORAGE_DRIVER"` // file, postgres, mongo
		DataDir      string `yaml:"data_dir" env:"STORAGE_DATA_DIR"`
		UploadDriver string `yaml:"upload_driver" env:"STORAGE_UPLOAD_DRIVER"` // local, s3
		UploadDir    string `yaml:"upload_dir" env:"STORAGE_UPLOAD_DIR"`
		MaxUploadMB  int    `yaml:"max_upload_mb" env:"STORAGE_MAX_UPLOAD_MB"`
		S3           struct {
			Bucket    string `yaml:"bucket" env:"S3_BUCKET"`
			Region    string `yaml:"region" env:"S3_REGION"`
			Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
			AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
			SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
			Prefix    string `yaml:"prefix" env:"S3_PREFIX"`
		} `yaml:"s3"`
	} `yaml:"storage"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Mongo struct {
		URI      string `yaml:"uri" env:"MONGO_URI"`
		Database string `yaml:"database" env:"MONGO_DATABASE"`
	} `yaml:"mongo"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		BcryptCost int `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST"`
	} `yaml:"auth"`

	LLM struct {
		APIKey  string `yaml:"api_key" env:"OPENAI_API_KEY"`
		BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL"`
		Model   string `yaml:"model" env:"OPENAI_MODEL"`
		Timeout string `yaml:"timeout" env:"OPENAI_TIMEOUT"`
	} `yaml:"llm"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	RateLimit struct {
		ChatLimit  int    `yaml:"chat_limit" env:"RATELIMIT_CHAT_LIMIT"`
		ChatWindow string `yaml:"chat_window" env:"RATELIMIT_CHAT_WINDOW"`
	} `yaml:"ratelimit"`

	Content struct {
		Path string `yaml:"path" env:"CONTENT_PATH"`
	} `yaml:"content"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8000"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "60s"

	config.Storage.Driver = "file"
	config.Storage.DataDir = "data"
	config.Storage.UploadDriver = "local"
	config.Storage.UploadDir = "uploads"
	config.Storage.MaxUploadMB = 10

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "careerhub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.Mongo.URI = "mongodb://localhost:27017"
	config.Mongo.Database = "careerhub"

	config.JWT.AccessTokenExpiration = "60m"
	config.JWT.Issuer = "careerhub"

	config.Auth.BcryptCost = 12

	config.LLM.BaseURL = "https://api.openai.com/v1"
	config.LLM.Model = "gpt-3.5-turbo"
	config.LLM.Timeout = "30s"

	config.RateLimit.ChatLimit = 20
	config.RateLimit.ChatWindow = "1m"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	switch strings.ToLower(config.Storage.Driver) {
	case "file":
		if config.Storage.DataDir == "" {
			return fmt.Errorf("storage data_dir is required for the file driver")
		}
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required for the postgres driver")
		}
	case "mongo":
		if config.Mongo.URI == "" {
			return fmt.Errorf("mongo uri is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %s", config.Storage.Driver)
	}

	switch strings.ToLower(config.Storage.UploadDriver) {
	case "local":
		if config.Storage.UploadDir == "" {
			return fmt.Errorf("storage upload_dir is required for local uploads")
		}
	case "s3":
		if config.Storage.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket is required for s3 uploads")
		}
	default:
		return fmt.Errorf("unsupported upload driver: %s", config.Storage.UploadDriver)
	}

	if config.Auth.BcryptCost < 4 || config.Auth.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31")
	}

	for name, value := range map[string]string{
		"JWT access token expiration": config.JWT.AccessTokenExpiration,
		"LLM timeout":                 config.LLM.Timeout,
		"rate limit window":           config.RateLimit.ChatWindow,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// MaxUploadBytes returns the configured upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	if c.Storage.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(c.Storage.MaxUploadMB) << 20
}

// Duration parses a duration setting, falling back when it is empty or malformed
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
