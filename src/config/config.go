package config

import (
	"fmt"
	"os"
	"strings"

	"market-climber/src/models"
	"market-climber/src/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data on top of the defaults
	config := Default()
	if err := yaml.Unmarshal(data, config.MConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	// 3. Resolve the API key from the environment
	if err := config.LoadCredentials(); err != nil {
		return nil, err
	}

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Default returns a configuration populated with the built-in defaults
func Default() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "market-climber",
		Host:     utils.DEFAULT_HOST,
		Port:     utils.DEFAULT_PORT,
		LogLevel: "INFO",
		GrpcHost: utils.DEFAULT_HOST,
		GrpcPort: utils.DEFAULT_GRPC_PORT,
		Storage: models.MStorageConfig{
			DBType: "sqlite",
			DBPath: "market_climber.db",
		},
		Network: models.MNetworkConfig{
			Enabled:        true,
			RequestTimeout: utils.DEFAULT_REQUEST_TIMEOUT_SECONDS,
			UserAgent:      utils.DEFAULT_USER_AGENT,
		},
		DataSource: models.MDataSourceConfig{
			Name:                  "alphavantage",
			Endpoint:              utils.ALPHA_VANTAGE_ENDPOINT,
			Function:              utils.ALPHA_VANTAGE_FUNCTION,
			APIKeyEnv:             utils.DEFAULT_API_KEY_ENV,
			UpdateIntervalSeconds: utils.DEFAULT_UPDATE_INTERVAL_SECONDS,
			Exchange:              utils.DEFAULT_EXCHANGE,
		},
		Dashboard: models.MDashboardConfig{
			DefaultLayout:    "stairs",
			DoorCycleSeconds: utils.DEFAULT_DOOR_CYCLE_SECONDS,
			DoorOpenSeconds:  utils.DEFAULT_DOOR_OPEN_SECONDS,
		},
	}}
}

// -----------------------------------------------------------------------------

// LoadCredentials loads the optional env file and lets the environment
// variable named by api_key_env override the YAML api_key.
func (c *Config) LoadCredentials() error {
	if c.DataSource.EnvFile != "" {
		if err := godotenv.Load(c.DataSource.EnvFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load env file '%s': %w", c.DataSource.EnvFile, err)
		}
	}

	if c.DataSource.APIKeyEnv == "" {
		return nil
	}
	if key := strings.TrimSpace(os.Getenv(c.DataSource.APIKeyEnv)); key != "" {
		c.DataSource.APIKey = key
	}
	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 && (c.GrpcPort <= 1024 || c.GrpcPort > 65535) {
		return fmt.Errorf("invalid grpc port number: %d (must be between 1025 and 65535)", c.GrpcPort)
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("redis address cannot be empty for redis")
		}
	case "":
		return fmt.Errorf("database type cannot be empty")
	default:
		return fmt.Errorf("unsupported database type: %s", c.Storage.DBType)
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}

	// Validate DataSource configuration
	if c.DataSource.Endpoint == "" {
		return fmt.Errorf("data source endpoint cannot be empty")
	}
	if c.DataSource.UpdateIntervalSeconds <= 0 {
		return fmt.Errorf("update interval must be greater than 0")
	}

	// Validate Dashboard configuration
	switch c.Dashboard.DefaultLayout {
	case "elevator", "compact", "stairs":
	default:
		return fmt.Errorf("unknown default layout: %q", c.Dashboard.DefaultLayout)
	}
	if c.Dashboard.DoorCycleSeconds <= 0 || c.Dashboard.DoorOpenSeconds <= 0 {
		return fmt.Errorf("door timings must be greater than 0")
	}
	if c.Dashboard.DoorOpenSeconds >= c.Dashboard.DoorCycleSeconds {
		return fmt.Errorf("door open time (%ds) must be shorter than the door cycle (%ds)",
			c.Dashboard.DoorOpenSeconds, c.Dashboard.DoorCycleSeconds)
	}

	return nil
}

// -----------------------------------------------------------------------------

// HasAPIKey reports whether a credential was configured
func (c *Config) HasAPIKey() bool {
	return c.DataSource.APIKey != ""
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
