package models

// MConfig Structure
type MConfig struct {
	Name        string            `yaml:"name"`
	Host        string            `yaml:"host"`
	Port        int               `yaml:"port"`
	LogLevel    string            `yaml:"log_level"`
	GrpcHost    string            `yaml:"grpc_host"`
	GrpcPort    int               `yaml:"grpc_port"`
	CORSOrigins []string          `yaml:"cors_origins"`
	Storage     MStorageConfig    `yaml:"storage"`
	Network     MNetworkConfig    `yaml:"network"`
	DataSource  MDataSourceConfig `yaml:"data_source"`
	Dashboard   MDashboardConfig  `yaml:"dashboard"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RedisAddr          string `yaml:"redis_addr"`
	RedisPassword      string `yaml:"redis_password"`
	RedisDB            int    `yaml:"redis_db"`
}

type MNetworkConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	UserAgent      string   `yaml:"user_agent"`
}

type MDataSourceConfig struct {
	Name                  string `yaml:"name"`
	Endpoint              string `yaml:"endpoint"`
	Function              string `yaml:"function"`
	APIKey                string `yaml:"api_key"`
	APIKeyEnv             string `yaml:"api_key_env"`
	EnvFile               string `yaml:"env_file"`
	UpdateIntervalSeconds int    `yaml:"update_interval_seconds"`
	Exchange              string `yaml:"exchange"` // ISO 10383 MIC, e.g. "xnys"
	PauseWhenClosed       bool   `yaml:"pause_when_closed"`
}

type MDashboardConfig struct {
	DefaultLayout      string `yaml:"default_layout"`
	AllowEmptySnapshot bool   `yaml:"allow_empty_snapshot"` // false: an empty snapshot is reported as an error
	DoorCycleSeconds   int    `yaml:"door_cycle_seconds"`
	DoorOpenSeconds    int    `yaml:"door_open_seconds"`
}
